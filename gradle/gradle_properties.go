package gradle

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	buildinfoflexpack "github.com/jfrog/build-info-go/flexpack/gradle"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/lujsom/booknest-build/localprops"
)

var (
	// [a-zA-Z_][a-zA-Z0-9_.]* Property name, \s*=\s* equals sign, ['"]([^'"]+)['"] quoted value
	// example: myProp = "value" (inside an ext { } block)
	// Capture group 1: property name
	// Capture group 2: property value
	extBlockRe = regexp.MustCompile(`(?m)^\s*([a-zA-Z_][a-zA-Z0-9_.]*)\s*=\s*['"]([^'"]+)['"]`)

	// (?:project\.)?ext\. Optional project prefix followed by the ext accessor
	// example: ext.myProp = "value" or project.ext.myProp = "value"
	// Capture group 1: property name
	// Capture group 2: property value
	extAssignmentRe = regexp.MustCompile(`(?m)^\s*(?:project\.)?ext\.([a-zA-Z_][a-zA-Z0-9_.]*)\s*=\s*['"]([^'"]+)['"]`)

	// extra\["name"\] = "value" is the Kotlin DSL spelling of ext
	// Capture group 1: property name
	// Capture group 2: property value
	extraAssignmentRe = regexp.MustCompile(`(?m)^\s*(?:project\.)?extra\s*\[\s*"([^"]+)"\s*\]\s*=\s*"([^"]*)"`)

	// propPlaceHolderRe matches ${name} templates
	// Capture group 1: property name
	propPlaceHolderRe = regexp.MustCompile(`\$\{([^}]+)\}`)

	// propVarRe matches $name and $dotted.name templates
	// Capture group 1: property name
	propVarRe = regexp.MustCompile(`\$([a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z_][a-zA-Z0-9_]*)*)`)

	// getProperty("KEY") calls made on a java.util.Properties loaded by the script
	// example: localProperties.getProperty("API_KEY", "")
	// Capture group 1: property key
	getPropertyRe = regexp.MustCompile(`getProperty\s*\(\s*["']([^"']+)["']`)
)

const maxResolveDepth = 10

// CollectProperties merges the property sources Gradle exposes to a project, lowest
// priority first: ~/.gradle/gradle.properties, <projectDir>/gradle.properties and
// ORG_GRADLE_PROJECT_* environment variables. Empty values are ignored.
func CollectProperties(projectDir string) map[string]string {
	props := make(map[string]string)
	merge := func(source map[string]string) {
		for k, v := range source {
			if v != "" {
				props[k] = v
			}
		}
	}

	if home := buildinfoflexpack.GetGradleUserHome(); home != "" {
		merge(readPropertiesFile(filepath.Join(home, GradlePropertiesFileName)))
	}
	merge(readPropertiesFile(filepath.Join(projectDir, GradlePropertiesFileName)))

	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envProjectPrefix) {
			continue
		}
		key, val, found := strings.Cut(env[len(envProjectPrefix):], "=")
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if found && key != "" && val != "" {
			props[key] = val
		}
	}
	return props
}

func readPropertiesFile(path string) map[string]string {
	props, err := localprops.Load(path)
	if err != nil {
		log.Debug("Ignoring unreadable properties file", path+":", err.Error())
		return map[string]string{}
	}
	return props.ToMap()
}

// ExtractScriptProperties returns the extra properties a script defines with
// `ext { }`, `ext.name = ...` or `extra["name"] = ...`.
func ExtractScriptProperties(content string) map[string]string {
	props := make(map[string]string)
	for _, block := range ExtractBlocks(content, blockExt) {
		for _, match := range extBlockRe.FindAllStringSubmatch(block, -1) {
			props[strings.TrimSpace(match[1])] = match[2]
		}
	}
	for _, re := range []*regexp.Regexp{extAssignmentRe, extraAssignmentRe} {
		for _, match := range re.FindAllStringSubmatch(content, -1) {
			props[strings.TrimSpace(match[1])] = match[2]
		}
	}
	return props
}

// LocalPropertyReads lists the keys a script reads through Properties.getProperty,
// e.g. the API_KEY lookup of a getApiKey() helper.
func LocalPropertyReads(content string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, match := range getPropertyRe.FindAllStringSubmatch(stripComments(content), -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			keys = append(keys, match[1])
		}
	}
	return keys
}

// ResolveProperty expands ${name} and $name references in val using props.
// Unknown references are left as written.
func ResolveProperty(val string, props map[string]string) string {
	if val == "" || !strings.Contains(val, "$") {
		return val
	}
	return resolveProperty(val, props, 0)
}

func resolveProperty(s string, props map[string]string, depth int) string {
	if depth > maxResolveDepth {
		log.Debug("Max recursion depth reached in property resolution for: " + s)
		return s
	}

	result := propPlaceHolderRe.ReplaceAllStringFunc(s, func(match string) string {
		key := placeholderKey(match[2 : len(match)-1])
		if key == "" || strings.HasPrefix(key, "$") {
			return match
		}
		if v, ok := props[key]; ok && v != "" {
			if v == match {
				log.Debug("Circular property reference detected for: " + key)
				return match
			}
			return resolveProperty(v, props, depth+1)
		}
		return match
	})

	return propVarRe.ReplaceAllStringFunc(result, func(match string) string {
		fullKey := match[1:]
		if v, ok := props[fullKey]; ok && v != "" {
			if v == match {
				return match
			}
			return resolveProperty(v, props, depth+1)
		}
		// "$host.com" where only "host" is a property
		parts := strings.Split(fullKey, ".")
		for i := len(parts) - 1; i >= 1; i-- {
			prefix := strings.Join(parts[:i], ".")
			if v, ok := props[prefix]; ok && v != "" && v != "$"+prefix {
				return resolveProperty(v, props, depth+1) + "." + strings.Join(parts[i:], ".")
			}
		}
		return match
	})
}

// placeholderKey normalizes the accessor forms Gradle scripts use inside ${...}.
func placeholderKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimPrefix(key, "project.")
	key = strings.TrimPrefix(key, "rootProject.")
	for _, fn := range []string{"findProperty", "property"} {
		for _, q := range []string{`"`, `'`} {
			prefix, suffix := fn+"("+q, q+")"
			if strings.HasPrefix(key, prefix) && strings.HasSuffix(key, suffix) {
				return key[len(prefix) : len(key)-len(suffix)]
			}
		}
	}
	return key
}

// hasUnresolvedReference reports whether s still contains a ${...} or $name template.
func hasUnresolvedReference(s string) bool {
	return propPlaceHolderRe.MatchString(s) || propVarRe.MatchString(s)
}
