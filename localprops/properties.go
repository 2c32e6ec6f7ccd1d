// Package localprops reads developer-local properties files such as local.properties
// and gradle.properties.
package localprops

import (
	"bytes"
	"os"
	"sort"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/io/fileutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"gopkg.in/ini.v1"
)

// Properties is a flat, case-sensitive key/value set.
type Properties struct {
	values map[string]string
}

func newProperties() *Properties {
	return &Properties{values: make(map[string]string)}
}

func (p *Properties) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// GetOrDefault returns def when the key is absent. An empty value is returned as is.
func (p *Properties) GetOrDefault(key, def string) string {
	if v, ok := p.values[key]; ok {
		return v
	}
	return def
}

func (p *Properties) Len() int {
	return len(p.values)
}

func (p *Properties) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToMap returns a copy of the underlying values.
func (p *Properties) ToMap() map[string]string {
	m := make(map[string]string, len(p.values))
	for k, v := range p.values {
		m[k] = v
	}
	return m
}

// Load parses the properties file at path. A missing file is not an error and yields
// an empty set.
func Load(path string) (*Properties, error) {
	exists, err := fileutils.IsFileExists(path, false)
	if err != nil {
		return nil, err
	}
	if !exists {
		log.Debug("Properties file not found, using empty set:", path)
		return newProperties(), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	props, err := Parse(content)
	if err != nil {
		return nil, errorutils.CheckErrorf("failed to parse properties file %s: %s", path, err.Error())
	}
	return props, nil
}

// Parse parses properties content in the java.util.Properties line format.
func Parse(content []byte) (*Properties, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		// Keys are case-sensitive and '#' inside a value is literal.
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
		SkipUnrecognizableLines: true,
		IgnoreContinuation:      true,
		KeyValueDelimiters:      "=:",
	}, normalize(content))
	if err != nil {
		return nil, err
	}

	props := newProperties()
	for _, key := range file.Section(ini.DefaultSection).Keys() {
		name, err := unescape(key.Name())
		if err != nil {
			return nil, err
		}
		value, err := unescape(key.Value())
		if err != nil {
			return nil, err
		}
		props.values[name] = value
	}
	return props, nil
}

// normalize rewrites properties content into ini lines that ini.v1 reads back verbatim.
// Logical lines are joined here, '!' comments and '[' lines become ini comments, and
// every key=value line is re-emitted with the characters ini would quote or trim
// protected by properties escapes that unescape decodes again.
func normalize(content []byte) []byte {
	var out bytes.Buffer
	lines := bytes.Split(content, []byte("\n"))
	for i := 0; i < len(lines); i++ {
		line := bytes.TrimLeft(bytes.TrimSuffix(lines[i], []byte("\r")), " \t\f")
		switch {
		case len(line) == 0:
		case line[0] == '#' || line[0] == '!':
			out.WriteByte('#')
			out.Write(line[1:])
		default:
			logical := append([]byte(nil), line...)
			for endsWithContinuation(logical) && i+1 < len(lines) {
				i++
				next := bytes.TrimLeft(bytes.TrimSuffix(lines[i], []byte("\r")), " \t\f")
				logical = append(logical[:len(logical)-1], next...)
			}
			if endsWithContinuation(logical) {
				logical = logical[:len(logical)-1]
			}
			writeEntry(&out, logical)
		}
		out.WriteByte('\n')
	}
	return out.Bytes()
}

// writeEntry writes one logical line as key=value. Lines that are not entries in the
// properties format are written as comments.
func writeEntry(out *bytes.Buffer, line []byte) {
	sep := bytes.IndexAny(line, "=:")
	if line[0] == '[' || sep <= 0 || len(bytes.TrimSpace(line[:sep])) == 0 {
		// Not a section in this format; the line names a key nobody looks up.
		out.WriteByte('#')
		out.Write(line)
		return
	}
	key := line[:sep]
	if key[0] == '"' || key[0] == '`' {
		out.WriteByte('\\')
	}
	out.Write(key)
	out.WriteByte('=')

	value := bytes.TrimLeft(line[sep+1:], " \t\f")
	if len(value) > 0 && bytes.IndexByte([]byte("\"'`"), value[0]) >= 0 {
		out.WriteByte('\\')
	}
	body := bytes.TrimRight(value, " \t\f")
	out.Write(body)
	// ini trims values, trailing whitespace is kept as escapes.
	escaped := trailingBackslashes(body)%2 == 1
	for _, c := range value[len(body):] {
		if !escaped {
			out.WriteByte('\\')
		}
		escaped = false
		switch c {
		case ' ':
			out.WriteString("u0020")
		case '\t':
			out.WriteByte('t')
		case '\f':
			out.WriteByte('f')
		}
	}
}

// endsWithContinuation reports whether the line ends with an odd number of backslashes.
func endsWithContinuation(line []byte) bool {
	return trailingBackslashes(bytes.TrimSuffix(line, []byte("\r")))%2 == 1
}

func trailingBackslashes(line []byte) int {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n
}
