package generate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/lujsom/booknest-build/buildconfig/model"
)

type Language string

const (
	Go   Language = "go"
	Java Language = "java"

	DefaultGoPackage = "buildconfig"
	DefaultGoOutput  = "buildconfig/buildconfig_gen.go"

	javaClassName = "BuildConfig"
)

func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case "", Go:
		return Go, nil
	case Java:
		return Java, nil
	}
	return "", errorutils.CheckErrorf("unsupported language '%s'. Supported languages are 'go' and 'java'", s)
}

// DefaultOutput returns the conventional output path. Java output is relative to the Gradle
// module directory, Go output to the project directory.
func DefaultOutput(lang Language, namespace string) string {
	if lang == Java {
		parts := append([]string{"build", "generated", "source", "buildConfig"}, strings.Split(namespace, ".")...)
		return filepath.Join(append(parts, javaClassName+".java")...)
	}
	return filepath.FromSlash(DefaultGoOutput)
}

// Render produces the source of the generated build config file.
func Render(cfg *model.BuildConfig, lang Language) ([]byte, error) {
	fields := cfg.AllFields()
	for _, f := range fields {
		if err := f.Validate(); err != nil {
			return nil, errorutils.CheckError(err)
		}
	}
	switch lang {
	case Go, "":
		return renderGo(cfg.Package, fields)
	case Java:
		return renderJava(cfg.Namespace, fields)
	}
	return nil, errorutils.CheckErrorf("unsupported language '%s'", lang)
}

// Write stores content at path, creating parent directories. The file is left untouched
// when its content is already up to date, so the build does not see a spurious change.
func Write(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, content) {
		log.Debug("Build config is up to date:", path)
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, errorutils.CheckError(err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, errorutils.CheckError(err)
	}
	if err = os.WriteFile(path, content, 0644); err != nil {
		return false, errorutils.CheckError(fmt.Errorf("failed to write build config to %s: %w", path, err))
	}
	return true, nil
}
