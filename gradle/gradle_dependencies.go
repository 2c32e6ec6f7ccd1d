package gradle

import (
	"regexp"
	"strings"
)

var (
	// (\w+) Configuration name, \(? optional parenthesis (Kotlin DSL),
	// (platform|enforcedPlatform)\( BOM wrapper, ['"]([^'"]+)['"] the quoted coordinate
	// example: implementation(platform("com.google.firebase:firebase-bom:33.9.0"))
	// Capture group 1: configuration, group 2: wrapper, group 3: coordinate
	platformDepRe = regexp.MustCompile(`(?m)^\s*(\w+)\s*\(?\s*(platform|enforcedPlatform)\s*\(\s*['"]([^'"]+)['"]\s*\)`)

	// example: implementation ("com.github.bumptech.glide:glide:4.15.1") or api 'g:n:v@aar'
	// Capture group 1: configuration, group 2: coordinate
	stringDepRe = regexp.MustCompile(`(?m)^\s*(\w+)\s*\(?\s*['"]([^'"\s]+:[^'"\s]+)['"]`)

	// example: implementation(libs.firebase.firestore) or implementation(platform(libs.compose.bom))
	// Capture group 1: configuration, group 2: optional platform wrapper, group 3: accessor
	catalogDepRe = regexp.MustCompile(`(?m)^\s*(\w+)\s*\(?\s*(platform\s*\(\s*)?(libs\.[A-Za-z0-9_.]+)`)

	// example: implementation group: 'com.google.code.gson', name: 'gson', version: '2.10.1'
	// Capture group 1: configuration, group 2: group, group 3: name, group 5: version
	mapDepRe = regexp.MustCompile(`(?m)^\s*(\w+)\s*\(?\s*group\s*[:=]\s*['"]([^'"]+)['"]\s*,\s*name\s*[:=]\s*['"]([^'"]+)['"](\s*,\s*version\s*[:=]\s*['"]([^'"]+)['"])?`)

	// example: implementation(project(":core"))
	// Capture group 1: configuration, group 2: project path
	projectDepRe = regexp.MustCompile(`(?m)^\s*(\w+)\s*\(?\s*project\s*\(\s*(?:path\s*[:=]\s*)?['"]([^'"]+)['"]`)
)

type Dependency struct {
	Configuration string `json:"configuration"`
	Group         string `json:"group,omitempty"`
	Name          string `json:"name"`
	Version       string `json:"version,omitempty"`
	Classifier    string `json:"classifier,omitempty"`
	Extension     string `json:"extension,omitempty"`
	Platform      bool   `json:"platform,omitempty"`
	CatalogAlias  string `json:"catalogAlias,omitempty"`
	ProjectPath   string `json:"projectPath,omitempty"`
}

// Module returns the group:name pair.
func (d Dependency) Module() string {
	if d.ProjectPath != "" {
		return d.ProjectPath
	}
	return d.Group + ":" + d.Name
}

func (d Dependency) Coordinate() string {
	if d.Version == "" {
		return d.Module()
	}
	return d.Module() + ":" + d.Version
}

// ParseCoordinate splits "group:name[:version[:classifier]][@extension]".
func ParseCoordinate(coordinate string) (Dependency, bool) {
	var dep Dependency
	coordinate, dep.Extension, _ = strings.Cut(coordinate, "@")
	parts := strings.Split(coordinate, ":")
	if len(parts) < 2 || len(parts) > 4 || parts[0] == "" || parts[1] == "" {
		return Dependency{}, false
	}
	dep.Group, dep.Name = parts[0], parts[1]
	if len(parts) > 2 {
		dep.Version = parts[2]
	}
	if len(parts) > 3 {
		dep.Classifier = parts[3]
	}
	return dep, true
}

// ParseDependencies returns the dependencies declared in the dependencies { } blocks of a
// module script, in declaration order. buildscript { } classpath dependencies are skipped.
func ParseDependencies(content string, props map[string]string) []Dependency {
	content = removeBlocks(stripComments(content), blockBuildscript)
	var deps []Dependency
	for _, block := range ExtractBlocks(content, blockDependencies) {
		for _, line := range splitStatements(topLevel(block)) {
			if dep, ok := parseDependencyLine(line, props); ok {
				deps = append(deps, dep)
			}
		}
	}
	return deps
}

func parseDependencyLine(line string, props map[string]string) (Dependency, bool) {
	if m := platformDepRe.FindStringSubmatch(line); m != nil {
		dep, ok := ParseCoordinate(ResolveProperty(m[3], props))
		dep.Configuration, dep.Platform = m[1], true
		return dep, ok
	}
	if m := projectDepRe.FindStringSubmatch(line); m != nil {
		return Dependency{Configuration: m[1], Name: strings.TrimPrefix(m[2], ":"), ProjectPath: m[2]}, true
	}
	if m := mapDepRe.FindStringSubmatch(line); m != nil {
		return Dependency{Configuration: m[1], Group: m[2], Name: m[3], Version: ResolveProperty(m[5], props)}, true
	}
	if m := catalogDepRe.FindStringSubmatch(line); m != nil {
		return Dependency{Configuration: m[1], CatalogAlias: m[3], Platform: m[2] != ""}, true
	}
	if m := stringDepRe.FindStringSubmatch(line); m != nil {
		dep, ok := ParseCoordinate(ResolveProperty(m[2], props))
		dep.Configuration = m[1]
		return dep, ok
	}
	return Dependency{}, false
}

// splitStatements splits a block body into lines, keeping each statement on its own line.
func splitStatements(body string) []string {
	return strings.FieldsFunc(body, func(r rune) bool {
		return r == '\n' || r == ';'
	})
}
