package localprops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLocalProperties(t *testing.T, content string) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, LocalPropertiesFileName), []byte(content), 0600))
	return dir
}

func TestLoadAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"Key present", "API_KEY=abc123\n", "abc123"},
		{"Key absent", "sdk.dir=/opt/android\n", ""},
		{"Empty value", "API_KEY=\n", ""},
		{"Empty file", "", ""},
		{"Colon separator with spaces", "API_KEY : spaced value  \n", "spaced value  "},
		{"Trailing whitespace is kept", "API_KEY=abc123  \n", "abc123  "},
		{"Escaped trailing space", "API_KEY=abc\\ \n", "abc "},
		{"Hash inside value", "API_KEY=abc#123\n", "abc#123"},
		{"Quotes are kept", `API_KEY="abc"` + "\n", `"abc"`},
		{"Last assignment wins", "API_KEY=first\nAPI_KEY=second\n", "second"},
		{"Windows line endings", "sdk.dir=C\\:\\\\sdk\r\nAPI_KEY=abc123\r\n", "abc123"},
		{"Comment lines", "# API_KEY=hash\n! API_KEY=bang\nAPI_KEY=real\n", "real"},
		{"Commented out key", "#API_KEY=abc123\n", ""},
		{"Continuation line", "API_KEY=abc\\\n    def\n", "abcdef"},
		{"Escaped backslash ends the line", "sdk.dir=C\\:\\\\Android\\\\Sdk\\\\\nAPI_KEY=abc123\n", "abc123"},
		{"Continuation at end of file", "API_KEY=abc\\", "abc"},
		{"Backticks are kept", "API_KEY=`abc`\n", "`abc`"},
		{"Triple quotes are kept", `API_KEY="""abc` + "\n", `"""abc`},
		{"Single quotes are kept", "API_KEY='abc'\n", "'abc'"},
		{"Surrogate pair escape", "API_KEY=\\uD83D\\uDE00\n", "\U0001F600"},
		{"Quoted key is a different key", "\"API_KEY=abc\n", ""},
		{"Unicode escape", "API_KEY=\\u0041BC\n", "ABC"},
		{"Line without separator", "JUST_A_KEY\nAPI_KEY=abc\n", "abc"},
		{"Bracket line is not a section", "[app]\nAPI_KEY=abc\n", "abc"},
		{"Key is case-sensitive", "api_key=abc\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeLocalProperties(t, tt.content)
			key, err := LoadAPIKey(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestLoadAPIKeyMissingFile(t *testing.T) {
	key, err := LoadAPIKey(t.TempDir())
	assert.NoError(t, err)
	assert.Empty(t, key)

	key, err = LoadAPIKey(filepath.Join(t.TempDir(), "does", "not", "exist"))
	assert.NoError(t, err)
	assert.Empty(t, key)
}

func TestLoadAPIKeyMalformed(t *testing.T) {
	for _, content := range []string{
		"API_KEY=\\u00G1\n",
		"API_KEY=abc\\u12\n",
	} {
		dir := writeLocalProperties(t, content)
		_, err := LoadAPIKey(dir)
		assert.Error(t, err, "content: %q", content)
	}
}

func TestLoadAPIKeyDoesNotModifyFile(t *testing.T) {
	content := "sdk.dir=/opt/android\nAPI_KEY=abc123\n"
	dir := writeLocalProperties(t, content)
	path := filepath.Join(dir, LocalPropertiesFileName)
	before, err := os.Stat(path)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		key, err := LoadAPIKey(dir)
		require.NoError(t, err)
		assert.Equal(t, "abc123", key)
	}

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
	assert.Equal(t, before.Mode(), after.Mode())
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(raw))
}

func TestParseAndroidLocalProperties(t *testing.T) {
	content := `## This file must *NOT* be checked into Version Control Systems,
# as it contains information specific to your local configuration.
#
# Location of the SDK. This is only used by Gradle.
sdk.dir=C\:\\Users\\dev\\AppData\\Local\\Android\\Sdk
API_KEY=AIzaExampleKey
`
	props, err := Parse([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, 2, props.Len())
	assert.Equal(t, []string{"API_KEY", "sdk.dir"}, props.Keys())

	sdkDir, ok := props.Get("sdk.dir")
	assert.True(t, ok)
	assert.Equal(t, `C:\Users\dev\AppData\Local\Android\Sdk`, sdkDir)
	assert.Equal(t, "AIzaExampleKey", props.GetOrDefault(ApiKeyProperty, "fallback"))
	assert.Equal(t, "fallback", props.GetOrDefault("missing", "fallback"))
}

func TestLoadProperty(t *testing.T) {
	dir := writeLocalProperties(t, "BOOKS_KEY=xyz\nEMPTY=\n")
	path := filepath.Join(dir, LocalPropertiesFileName)

	v, err := LoadProperty(path, "BOOKS_KEY", "def")
	require.NoError(t, err)
	assert.Equal(t, "xyz", v)

	v, err = LoadProperty(path, "EMPTY", "def")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	v, err = LoadProperty(path, "MISSING", "def")
	require.NoError(t, err)
	assert.Equal(t, "def", v)

	v, err = LoadProperty(filepath.Join(dir, "missing.properties"), "BOOKS_KEY", "def")
	require.NoError(t, err)
	assert.Equal(t, "def", v)
}

func TestParseEscapedTrailingBackslash(t *testing.T) {
	props, err := Parse([]byte("API_KEY=abc\\\\\nNEXT=x\n"))
	require.NoError(t, err)
	assert.Equal(t, `abc\`, props.GetOrDefault(ApiKeyProperty, ""))
	assert.Equal(t, "x", props.GetOrDefault("NEXT", ""))
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{`plain`, "plain"},
		{`a\:b\=c`, "a:b=c"},
		{`tab\there`, "tab\there"},
		{`new\nline`, "new\nline"},
		{`back\\slash`, `back\slash`},
		{`\u00e9t\u00e9`, "été"},
		{`unknown\q`, "unknownq"},
		{`trailing\`, "trailing"},
		{`\uD83D\uDE00`, "\U0001F600"},
		{`lone\uD83Dx`, "lone\uFFFDx"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out, err := unescape(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestEndsWithContinuation(t *testing.T) {
	assert.True(t, endsWithContinuation([]byte(`a=b\`)))
	assert.True(t, endsWithContinuation([]byte("a=b\\\r")))
	assert.False(t, endsWithContinuation([]byte(`a=b\\`)))
	assert.False(t, endsWithContinuation([]byte(`a=b`)))
	assert.False(t, endsWithContinuation([]byte(`a=b\ `)))
}
