package generate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/lujsom/booknest-build/buildconfig/model"
)

var javaIdentifierRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var javaKeywords = map[string]struct{}{
	"abstract": {}, "assert": {}, "boolean": {}, "break": {}, "byte": {}, "case": {}, "catch": {},
	"char": {}, "class": {}, "const": {}, "continue": {}, "default": {}, "do": {}, "double": {},
	"else": {}, "enum": {}, "extends": {}, "final": {}, "finally": {}, "float": {}, "for": {},
	"goto": {}, "if": {}, "implements": {}, "import": {}, "instanceof": {}, "int": {},
	"interface": {}, "long": {}, "native": {}, "new": {}, "package": {}, "private": {},
	"protected": {}, "public": {}, "return": {}, "short": {}, "static": {}, "strictfp": {},
	"super": {}, "switch": {}, "synchronized": {}, "this": {}, "throw": {}, "throws": {},
	"transient": {}, "try": {}, "void": {}, "volatile": {}, "while": {}, "true": {}, "false": {},
	"null": {}, "_": {},
}

func isJavaIdentifier(name string) bool {
	if !javaIdentifierRe.MatchString(name) {
		return false
	}
	_, reserved := javaKeywords[name]
	return !reserved
}

func isJavaPackage(name string) bool {
	if name == "" {
		return false
	}
	for _, part := range strings.Split(name, ".") {
		if !isJavaIdentifier(part) {
			return false
		}
	}
	return true
}

// renderJava mirrors the BuildConfig class emitted by the Android Gradle plugin.
func renderJava(namespace string, fields []model.Field) ([]byte, error) {
	if !isJavaPackage(namespace) {
		return nil, errorutils.CheckErrorf("'%s' is not a valid Java package name", namespace)
	}
	var sb strings.Builder
	sb.WriteString("/**\n * Automatically generated file. DO NOT MODIFY\n */\n")
	sb.WriteString("package " + namespace + ";\n\n")
	sb.WriteString("public final class " + javaClassName + " {\n")
	for _, f := range fields {
		if !isJavaIdentifier(f.Name) {
			return nil, errorutils.CheckErrorf("'%s' is not a valid Java identifier", f.Name)
		}
		if f.Name == model.FieldDebug && f.Type == model.Boolean {
			sb.WriteString(fmt.Sprintf("  public static final boolean DEBUG = Boolean.parseBoolean(\"%s\");\n", canonical(f)))
			continue
		}
		sb.WriteString(fmt.Sprintf("  public static final %s %s = %s;\n", f.Type, f.Name, javaLiteral(f)))
	}
	sb.WriteString("}\n")
	return []byte(sb.String()), nil
}

func javaLiteral(f model.Field) string {
	switch f.Type {
	case model.String:
		return javaQuote(f.Value)
	case model.Long:
		return canonical(f) + "L"
	}
	return canonical(f)
}

func javaQuote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				sb.WriteRune(r)
			case r > 0xffff:
				r1, r2 := utf16.EncodeRune(r)
				sb.WriteString(fmt.Sprintf(`\u%04x\u%04x`, r1, r2))
			default:
				sb.WriteString(fmt.Sprintf(`\u%04x`, r))
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
