package generate

import (
	"bytes"
	"go/format"
	"go/token"
	"strconv"
	"text/template"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/lujsom/booknest-build/buildconfig/model"
)

var goTemplate = template.Must(template.New("buildconfig.go").Funcs(template.FuncMap{
	"literal": goLiteral,
}).Parse(`// Code generated by booknest-build. DO NOT EDIT.

package {{.Package}}

const (
{{- range .Fields}}
	{{.Name}} = {{literal .}}
{{- end}}
)
`))

func renderGo(pkg string, fields []model.Field) ([]byte, error) {
	if pkg == "" {
		pkg = DefaultGoPackage
	}
	if !isGoIdentifier(pkg) {
		return nil, errorutils.CheckErrorf("'%s' is not a valid Go package name", pkg)
	}
	for _, f := range fields {
		if !isGoIdentifier(f.Name) || !token.IsExported(f.Name) {
			return nil, errorutils.CheckErrorf("'%s' is not a valid exported Go identifier", f.Name)
		}
	}
	var buf bytes.Buffer
	err := goTemplate.Execute(&buf, struct {
		Package string
		Fields  []model.Field
	}{pkg, fields})
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	return formatted, nil
}

func isGoIdentifier(name string) bool {
	return token.IsIdentifier(name)
}

// goLiteral quotes String values so that the constant equals the field value byte for byte.
func goLiteral(f model.Field) string {
	switch f.Type {
	case model.String:
		return strconv.Quote(f.Value)
	case model.Long:
		return "int64(" + canonical(f) + ")"
	}
	return canonical(f)
}

// canonical normalizes validated non-string values, e.g. "TRUE" or "007".
func canonical(f model.Field) string {
	switch f.Type {
	case model.Boolean:
		b, _ := strconv.ParseBool(f.Value)
		return strconv.FormatBool(b)
	case model.Int, model.Long:
		n, _ := strconv.ParseInt(f.Value, 10, 64)
		return strconv.FormatInt(n, 10)
	}
	return f.Value
}
