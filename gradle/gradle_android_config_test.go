package gradle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookNestProject = "testdata/booknest"

func readBookNestScript(t *testing.T) string {
	content, err := os.ReadFile(filepath.Join(bookNestProject, "app", BuildScriptKts))
	require.NoError(t, err)
	return string(content)
}

func TestParseAndroidConfigKotlinDsl(t *testing.T) {
	cfg := ParseAndroidConfig(readBookNestScript(t), nil)
	require.NotNil(t, cfg)

	assert.Equal(t, "com.lujsom.booknest", cfg.Namespace)
	assert.Equal(t, "com.lujsom.booknest", cfg.ApplicationID)
	assert.Equal(t, 35, cfg.CompileSdk)
	assert.Equal(t, 24, cfg.MinSdk)
	assert.Equal(t, 35, cfg.TargetSdk)
	assert.Equal(t, 1, cfg.VersionCode)
	assert.Equal(t, "1.0", cfg.VersionName)

	require.Len(t, cfg.BuildConfigFields, 1)
	field := cfg.BuildConfigFields[0]
	assert.Equal(t, "String", field.Type)
	assert.Equal(t, "GOOGLE_BOOKS_API_KEY", field.Name)
	assert.Equal(t, `"\"" + getApiKey() + "\""`, field.Expression)
	assert.False(t, field.Literal)
	assert.Empty(t, field.Value)

	require.Len(t, cfg.BuildTypes, 1)
	release, ok := cfg.BuildType("release")
	assert.True(t, ok)
	assert.False(t, release.MinifyEnabled)
	_, ok = cfg.BuildType("debug")
	assert.False(t, ok)

	require.NotNil(t, cfg.BuildConfigEnabled)
	assert.True(t, *cfg.BuildConfigEnabled)
}

func TestParseAndroidConfigGroovyDsl(t *testing.T) {
	content := `
ext {
    sdkVersion = "34"
}

android {
    namespace 'com.example.app'
    compileSdkVersion 34
    defaultConfig {
        applicationId "com.example.app"
        minSdkVersion 21
        targetSdkVersion sdkVersion
        versionCode 7
        versionName "${appVersion}"
        buildConfigField "String", "API_URL", '"https://example.com"'
        buildConfigField "boolean", "LOGGING", "false"
        buildConfigField "int", "RETRIES", "3"
        buildConfigField "long", "TIMEOUT", "30000L"
    }
    buildTypes {
        debug {
            applicationIdSuffix ".debug"
            versionNameSuffix "-dev"
            buildConfigField "boolean", "LOGGING", "true"
        }
        release {
            minifyEnabled true
        }
    }
}`
	cfg := ParseAndroidConfig(content, map[string]string{"appVersion": "2.1"})
	require.NotNil(t, cfg)

	assert.Equal(t, "com.example.app", cfg.Namespace)
	assert.Equal(t, "com.example.app", cfg.ApplicationID)
	assert.Equal(t, 34, cfg.CompileSdk)
	assert.Equal(t, 21, cfg.MinSdk)
	assert.Equal(t, 34, cfg.TargetSdk)
	assert.Equal(t, 7, cfg.VersionCode)
	assert.Equal(t, "2.1", cfg.VersionName)
	assert.Nil(t, cfg.BuildConfigEnabled)

	expected := []BuildConfigField{
		{Type: "String", Name: "API_URL", Expression: `'"https://example.com"'`, Value: "https://example.com", Literal: true},
		{Type: "boolean", Name: "LOGGING", Expression: `"false"`, Value: "false", Literal: true},
		{Type: "int", Name: "RETRIES", Expression: `"3"`, Value: "3", Literal: true},
		{Type: "long", Name: "TIMEOUT", Expression: `"30000L"`, Value: "30000", Literal: true},
	}
	assert.Equal(t, expected, cfg.BuildConfigFields)

	debug, ok := cfg.BuildType("debug")
	require.True(t, ok)
	assert.Equal(t, ".debug", debug.ApplicationIDSuffix)
	assert.Equal(t, "-dev", debug.VersionNameSuffix)
	require.Len(t, debug.BuildConfigFields, 1)
	assert.Equal(t, "true", debug.BuildConfigFields[0].Value)

	release, ok := cfg.BuildType("release")
	require.True(t, ok)
	assert.True(t, release.MinifyEnabled)
}

func TestParseAndroidConfigWithoutAndroidBlock(t *testing.T) {
	assert.Nil(t, ParseAndroidConfig(`plugins { id("java-library") }`, nil))
}

func TestParseAndroidConfigLastAssignmentWins(t *testing.T) {
	content := `
android {
    compileSdk = 33
    compileSdk = 35
}`
	cfg := ParseAndroidConfig(content, nil)
	require.NotNil(t, cfg)
	assert.Equal(t, 35, cfg.CompileSdk)
}

func TestDecodeExpression(t *testing.T) {
	props := map[string]string{"appName": "BookNest", "code": "12"}
	tests := []struct {
		expr     string
		expected string
		ok       bool
	}{
		{`"plain"`, "plain", true},
		{`'single'`, "single", true},
		{`"${appName} Debug"`, "BookNest Debug", true},
		{`'${appName}'`, "${appName}", true},
		{`"$missing"`, "", false},
		{`42`, "42", true},
		{`1_000L`, "1000", true},
		{`true`, "true", true},
		{`appName`, "BookNest", true},
		{`project.code`, "12", true},
		{`findProperty("code") as String`, "12", true},
		{`"a" + "b"`, "", false},
		{`getApiKey()`, "", false},
		{`unknownProp`, "", false},
		{``, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			value, ok := decodeExpression(tt.expr, props)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestDecodeFieldSource(t *testing.T) {
	tests := []struct {
		fieldType string
		source    string
		expected  string
		ok        bool
	}{
		{"String", `"abc"`, "abc", true},
		{"String", `""`, "", true},
		{"String", `"tab\tquote\""`, "tab\tquote\"", true},
		{"String", `abc`, "", false},
		{"boolean", "true", "true", true},
		{"int", " 7 ", "7", true},
		{"long", "9L", "9", true},
		{"int", "BuildConfig.X", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.fieldType+" "+tt.source, func(t *testing.T) {
			value, ok := decodeFieldSource(tt.fieldType, tt.source)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, value)
		})
	}
}
