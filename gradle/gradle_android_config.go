package gradle

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/log"
)

// buildConfigField("String", "NAME", <expr>) in the Kotlin DSL or
// buildConfigField "String", "NAME", <expr> in the Groovy DSL.
// Capture group 2: type, group 4: field name, group 5: value expression
var buildConfigFieldRe = regexp.MustCompile(`(?m)^\s*buildConfigField\s*\(?\s*(["'])(\w+)["']\s*,\s*(["'])(\w+)["']\s*,\s*(.+?)\s*\)?\s*;?\s*$`)

// BuildConfigField is a buildConfigField declaration. Value is only meaningful when
// Literal is true; otherwise the value is computed by script code (e.g. getApiKey()).
type BuildConfigField struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	Expression string `json:"expression"`
	Value      string `json:"value,omitempty"`
	Literal    bool   `json:"literal"`
}

type BuildType struct {
	Name                string             `json:"name"`
	MinifyEnabled       bool               `json:"minifyEnabled"`
	ApplicationIDSuffix string             `json:"applicationIdSuffix,omitempty"`
	VersionNameSuffix   string             `json:"versionNameSuffix,omitempty"`
	BuildConfigFields   []BuildConfigField `json:"buildConfigFields,omitempty"`
}

type AndroidConfig struct {
	Namespace         string             `json:"namespace"`
	ApplicationID     string             `json:"applicationId"`
	CompileSdk        int                `json:"compileSdk"`
	MinSdk            int                `json:"minSdk"`
	TargetSdk         int                `json:"targetSdk"`
	VersionCode       int                `json:"versionCode"`
	VersionName       string             `json:"versionName"`
	BuildConfigFields []BuildConfigField `json:"buildConfigFields,omitempty"`
	BuildTypes        []BuildType        `json:"buildTypes,omitempty"`

	// BuildConfigEnabled is nil when buildFeatures does not mention buildConfig.
	BuildConfigEnabled *bool `json:"buildConfigEnabled,omitempty"`
}

func (ac *AndroidConfig) BuildType(name string) (BuildType, bool) {
	for _, bt := range ac.BuildTypes {
		if bt.Name == name {
			return bt, true
		}
	}
	return BuildType{}, false
}

// ParseAndroidConfig reads the android { } block of a module build script.
// It returns nil when the script has no android block.
func ParseAndroidConfig(content string, props map[string]string) *AndroidConfig {
	blocks := ExtractBlocks(content, blockAndroid)
	if len(blocks) == 0 {
		return nil
	}
	scriptProps := mergeProps(props, ExtractScriptProperties(content))
	cfg := &AndroidConfig{}
	for _, android := range blocks {
		parseAndroidBlock(android, scriptProps, cfg)
	}
	return cfg
}

func parseAndroidBlock(android string, props map[string]string, cfg *AndroidConfig) {
	top := topLevel(android)
	setString(&cfg.Namespace, top, props, "namespace")
	setInt(&cfg.CompileSdk, top, props, "compileSdk", "compileSdkVersion")

	for _, defaultConfig := range ExtractBlocks(android, blockDefaultConfig) {
		dc := topLevel(defaultConfig)
		setString(&cfg.ApplicationID, dc, props, "applicationId")
		setInt(&cfg.MinSdk, dc, props, "minSdk", "minSdkVersion")
		setInt(&cfg.TargetSdk, dc, props, "targetSdk", "targetSdkVersion")
		setInt(&cfg.VersionCode, dc, props, "versionCode")
		setString(&cfg.VersionName, dc, props, "versionName")
		cfg.BuildConfigFields = append(cfg.BuildConfigFields, parseBuildConfigFields(dc, props)...)
	}

	for _, buildTypes := range ExtractBlocks(android, blockBuildTypes) {
		for _, child := range childBlocks(buildTypes) {
			cfg.BuildTypes = append(cfg.BuildTypes, parseBuildType(child, props))
		}
	}

	for _, features := range ExtractBlocks(android, blockBuildFeatures) {
		if raw, ok := assignment(features, "buildConfig"); ok {
			if v, ok := decodeExpression(raw, props); ok {
				enabled := v == "true"
				cfg.BuildConfigEnabled = &enabled
			}
		}
	}
}

func parseBuildType(block namedBlock, props map[string]string) BuildType {
	body := topLevel(block.Body)
	bt := BuildType{Name: block.Name}
	var minify string
	setString(&minify, body, props, "isMinifyEnabled", "minifyEnabled")
	bt.MinifyEnabled = minify == "true"
	setString(&bt.ApplicationIDSuffix, body, props, "applicationIdSuffix")
	setString(&bt.VersionNameSuffix, body, props, "versionNameSuffix")
	bt.BuildConfigFields = parseBuildConfigFields(body, props)
	return bt
}

func parseBuildConfigFields(content string, props map[string]string) []BuildConfigField {
	var fields []BuildConfigField
	for _, match := range buildConfigFieldRe.FindAllStringSubmatch(stripComments(content), -1) {
		field := BuildConfigField{
			Type:       match[2],
			Name:       match[4],
			Expression: strings.TrimSpace(match[5]),
		}
		if source, ok := decodeExpression(field.Expression, props); ok {
			field.Value, field.Literal = decodeFieldSource(field.Type, source)
		}
		if !field.Literal {
			log.Debug("buildConfigField", field.Name, "is computed by the build script:", field.Expression)
		}
		fields = append(fields, field)
	}
	return fields
}

// decodeFieldSource turns the Java source text of a field value into its value.
func decodeFieldSource(fieldType, source string) (string, bool) {
	if fieldType == "String" {
		return unquoteJavaLiteral(source)
	}
	source = strings.TrimSpace(source)
	if n, ok := parseNumber(source); ok {
		return n, true
	}
	switch source {
	case "true", "false":
		return source, true
	}
	return "", false
}

// topLevel returns content with nested blocks removed, so that assignments of a parent
// block are not confused with those of its children.
func topLevel(content string) string {
	var sb strings.Builder
	state := &blockExtractorState{}
	depth := 0
	for i := 0; i < len(content); i++ {
		start := i
		newIndex, processed := state.processChar(content, i)
		if processed {
			if depth == 0 {
				sb.WriteString(content[start : newIndex+1])
			}
			i = newIndex
			continue
		}
		switch content[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				sb.WriteByte(content[i])
			}
		}
	}
	return sb.String()
}

// assignment finds `name = value`, `name value` or `name(value)` at the start of a line.
func assignment(content, name string) (string, bool) {
	re := regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(name) + `(?:[ \t]*=[ \t]*|[ \t]+|[ \t]*\([ \t]*)(.+?)[ \t]*\)?[ \t]*;?[ \t]*\r?$`)
	matches := re.FindAllStringSubmatch(stripComments(content), -1)
	if len(matches) == 0 {
		return "", false
	}
	// The last assignment wins.
	return matches[len(matches)-1][1], true
}

func setString(target *string, content string, props map[string]string, names ...string) {
	for _, name := range names {
		if raw, ok := assignment(content, name); ok {
			if v, ok := decodeExpression(raw, props); ok {
				*target = v
			} else {
				log.Debug("Could not evaluate", name, "=", raw)
			}
		}
	}
}

func setInt(target *int, content string, props map[string]string, names ...string) {
	var s string
	setString(&s, content, props, names...)
	if s == "" {
		return
	}
	if n, err := strconv.Atoi(s); err == nil {
		*target = n
	}
}

func mergeProps(base, override map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
