package gradle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProperty(t *testing.T) {
	props := map[string]string{
		"version":   "1.0",
		"host":      "repo.example",
		"url":       "https://${host}/maven",
		"selfRef":   "${selfRef}",
		"loopA":     "${loopB}",
		"loopB":     "${loopA}",
		"empty":     "",
		"app.label": "BookNest",
	}
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{"no reference", "plain", "plain"},
		{"braced", "${version}-SNAPSHOT", "1.0-SNAPSHOT"},
		{"dollar", "v$version", "v1.0"},
		{"dotted key", "$app.label", "BookNest"},
		{"prefix of dotted reference", "$host.com", "repo.example.com"},
		{"project prefix", "${project.version}", "1.0"},
		{"rootProject prefix", "${rootProject.version}", "1.0"},
		{"findProperty", `${findProperty("version")}`, "1.0"},
		{"nested", "${url}", "https://repo.example/maven"},
		{"unknown", "${missing}", "${missing}"},
		{"empty value is unresolved", "${empty}", "${empty}"},
		{"self reference", "${selfRef}", "${selfRef}"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveProperty(tt.value, props))
		})
	}

	t.Run("reference loop terminates", func(t *testing.T) {
		assert.Contains(t, ResolveProperty("${loopA}", props), "${loop")
	})
}

func TestExtractScriptProperties(t *testing.T) {
	content := `
ext {
    glideVersion = "4.15.1"
    retrofitVersion = '2.9.0'
}
ext.firebaseBom = "33.9.0"
project.ext.minSdk = "24"
extra["compileSdk"] = "35"
val notAProperty = "x"
`
	props := ExtractScriptProperties(content)
	assert.Equal(t, map[string]string{
		"glideVersion":    "4.15.1",
		"retrofitVersion": "2.9.0",
		"firebaseBom":     "33.9.0",
		"minSdk":          "24",
		"compileSdk":      "35",
	}, props)
}

func TestLocalPropertyReads(t *testing.T) {
	assert.Equal(t, []string{"API_KEY"}, LocalPropertyReads(readBookNestScript(t)))

	content := `
val p = Properties()
// p.getProperty("COMMENTED")
val a = p.getProperty("MAPS_KEY")
val b = p.getProperty('SIGNING_PASSWORD', "")
val c = p.getProperty("MAPS_KEY")
`
	assert.Equal(t, []string{"MAPS_KEY", "SIGNING_PASSWORD"}, LocalPropertyReads(content))
	assert.Empty(t, LocalPropertyReads(`android { }`))
}

func TestCollectProperties(t *testing.T) {
	projectDir := t.TempDir()
	gradleHome := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(gradleHome, GradlePropertiesFileName), []byte("a=home\nc=home\nd=home\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, GradlePropertiesFileName), []byte("a=project\nb=project\nd=\n"), 0644))
	t.Setenv("GRADLE_USER_HOME", gradleHome)
	t.Setenv("ORG_GRADLE_PROJECT_b", "env")
	t.Setenv("ORG_GRADLE_PROJECT_empty", "")

	props := CollectProperties(projectDir)
	assert.Equal(t, "project", props["a"])
	assert.Equal(t, "env", props["b"])
	assert.Equal(t, "home", props["c"])
	assert.Equal(t, "home", props["d"])
	_, ok := props["empty"]
	assert.False(t, ok)
}

func TestCollectPropertiesWithoutFiles(t *testing.T) {
	t.Setenv("GRADLE_USER_HOME", t.TempDir())
	assert.Empty(t, CollectProperties(t.TempDir()))
}
