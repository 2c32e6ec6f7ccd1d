package gradle

import (
	"strconv"
	"strings"
)

// decodeExpression evaluates the few expression shapes a build script uses for
// configuration values: a single quoted string (with $ templates resolved from props),
// a number, a boolean or a bare property name. ok is false for anything else, such as
// concatenations and function calls.
func decodeExpression(expr string, props map[string]string) (string, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", false
	}
	if expr[0] == '"' || expr[0] == '\'' {
		end := closingQuote(expr)
		if end < 0 || strings.TrimSpace(expr[end+1:]) != "" {
			return "", false
		}
		value := unescapeScriptString(expr[1:end])
		if expr[0] == '"' {
			value = ResolveProperty(value, props)
			if hasUnresolvedReference(value) {
				return "", false
			}
		}
		return value, true
	}
	if n, ok := parseNumber(expr); ok {
		return n, true
	}
	switch expr {
	case "true", "false":
		return expr, true
	}
	if key := propertyAccessKey(expr); key != "" {
		if v, ok := props[key]; ok {
			return v, true
		}
	}
	return "", false
}

// closingQuote returns the index of the quote that closes the literal opening at s[0].
func closingQuote(s string) int {
	quote := s[0]
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return -1
}

func unescapeScriptString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func parseNumber(expr string) (string, bool) {
	trimmed := strings.TrimRight(expr, "lL")
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return strconv.FormatInt(n, 10), true
	}
	return "", false
}

// propertyAccessKey returns the property a bare accessor refers to:
// `name`, `project.name`, `findProperty("name")`, `property("name")`.
func propertyAccessKey(expr string) string {
	expr = strings.TrimSuffix(strings.TrimSpace(expr), " as String")
	expr = strings.TrimSuffix(expr, ".toString()")
	key := placeholderKey(expr)
	if key != expr {
		return key
	}
	if isIdentifierPath(key) {
		return key
	}
	return ""
}

func isIdentifierPath(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
		for i, r := range part {
			isLetter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			if !isLetter && (i == 0 || r < '0' || r > '9') {
				return false
			}
		}
	}
	return true
}

// unquoteJavaLiteral decodes the Java string literal a String buildConfigField carries,
// e.g. `"abc"` → abc.
func unquoteJavaLiteral(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	v, err := strconv.Unquote(s)
	if err != nil {
		return "", false
	}
	return v, true
}
