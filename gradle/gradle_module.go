package gradle

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	buildinfoflexpack "github.com/jfrog/build-info-go/flexpack/gradle"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/io/fileutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

// apply from: 'versions.gradle' (Groovy) or apply(from = "versions.gradle") (Kotlin DSL)
// Capture group 1: script path
var applyFromRe = regexp.MustCompile(`(?m)^\s*apply\s*\(?\s*from\s*[:=]\s*['"]([^'"]+)['"]`)

// Module is a Gradle module read from disk.
type Module struct {
	Name         string
	Dir          string
	ScriptPath   string
	Kotlin       bool
	Script       string
	Properties   map[string]string
	Android      *AndroidConfig
	Dependencies []Dependency
	Catalog      *Catalog
}

// LocalPropertyReads lists the local.properties keys the module script reads.
func (m *Module) LocalPropertyReads() []string {
	return LocalPropertyReads(m.Script)
}

// FindBuildScript returns the build script of moduleDir, preferring the Kotlin DSL.
func FindBuildScript(moduleDir string) (path string, isKts bool, err error) {
	for _, candidate := range []struct {
		name  string
		isKts bool
	}{{BuildScriptKts, true}, {BuildScriptGroovy, false}} {
		path = filepath.Join(moduleDir, candidate.name)
		exists, err := fileutils.IsFileExists(path, false)
		if err != nil {
			return "", false, err
		}
		if exists {
			return path, candidate.isKts, nil
		}
	}
	return "", false, errorutils.CheckErrorf("no %s or %s found in %s", BuildScriptKts, BuildScriptGroovy, moduleDir)
}

// LoadModule reads the build script of <projectDir>/<module>, the project properties and
// the version catalog of the project.
func LoadModule(projectDir, module string) (*Module, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	root, err := buildinfoflexpack.SanitizePath(abs)
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	moduleDir, err := buildinfoflexpack.SanitizeAndValidatePath(filepath.Join(root, module), root)
	if err != nil {
		return nil, errorutils.CheckErrorf("invalid module '%s': %s", module, err.Error())
	}
	scriptPath, isKts, err := FindBuildScript(moduleDir)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	log.Debug("Reading build script", scriptPath)

	props := CollectProperties(root)
	for _, applied := range appliedScripts(string(content), scriptPath, props) {
		if data, err := os.ReadFile(applied); err == nil {
			props = mergeProps(props, ExtractScriptProperties(string(data)))
		} else {
			log.Debug("Skipping unreadable applied script", applied+":", err.Error())
		}
	}
	props = mergeProps(props, ExtractScriptProperties(string(content)))

	catalog, err := LoadVersionCatalog(filepath.Join(root, VersionCatalogPath))
	if err != nil {
		return nil, err
	}

	return &Module{
		Name:         module,
		Dir:          moduleDir,
		ScriptPath:   scriptPath,
		Kotlin:       isKts,
		Script:       string(content),
		Properties:   props,
		Android:      ParseAndroidConfig(string(content), props),
		Dependencies: ParseDependencies(string(content), props),
		Catalog:      catalog,
	}, nil
}

// appliedScripts lists local scripts pulled in with `apply from`. Remote scripts are skipped.
func appliedScripts(content, scriptPath string, props map[string]string) []string {
	var paths []string
	scriptDir := filepath.Dir(scriptPath)
	for _, match := range applyFromRe.FindAllStringSubmatch(stripComments(content), -1) {
		path := ResolveProperty(match[1], props)
		if strings.Contains(path, "://") {
			log.Debug("Skipping remote script: " + path)
			continue
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(scriptDir, path)
		}
		sanitized, err := buildinfoflexpack.SanitizePath(path)
		if err != nil {
			log.Debug(fmt.Sprintf("Skipping invalid script path %s: %s", path, err.Error()))
			continue
		}
		paths = append(paths, sanitized)
	}
	return paths
}
