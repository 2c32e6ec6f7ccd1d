package config

import (
	"path/filepath"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/io/fileutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/joho/godotenv"
	"github.com/lujsom/booknest-build/buildconfig/generate"
	"github.com/lujsom/booknest-build/buildconfig/model"
	"github.com/lujsom/booknest-build/localprops"
	"github.com/spf13/viper"
)

const (
	configDir      = ".booknest"
	configFileYml  = "build.yml"
	configFileYaml = "build.yaml"
	dotEnvFile     = ".env"
	envPrefix      = "BOOKNEST"

	keyPropertiesFile   = "properties.file"
	keyPropertiesAPIKey = "properties.apiKey"
	keyField            = "buildConfig.field"
	keyPackage          = "buildConfig.package"
	keyOutput           = "buildConfig.output"
	keyLanguage         = "buildConfig.language"
	keyBuildType        = "buildConfig.buildType"
	keyModule           = "gradle.module"

	DefaultPropertiesFile = localprops.LocalPropertiesFileName
	DefaultAPIKeyProperty = localprops.ApiKeyProperty
	DefaultField          = model.DefaultAPIKeyField
	DefaultPackage        = generate.DefaultGoPackage
	DefaultLanguage       = string(generate.Go)
	DefaultBuildType      = "debug"
	DefaultModule         = "app"
)

type PropertiesConfig struct {
	File   string `mapstructure:"file"`
	APIKey string `mapstructure:"apiKey"`
}

type BuildConfigConfig struct {
	Field     string `mapstructure:"field"`
	Package   string `mapstructure:"package"`
	Output    string `mapstructure:"output"`
	Language  string `mapstructure:"language"`
	BuildType string `mapstructure:"buildType"`
}

type GradleConfig struct {
	Module string `mapstructure:"module"`
}

type Config struct {
	Properties  PropertiesConfig  `mapstructure:"properties"`
	BuildConfig BuildConfigConfig `mapstructure:"buildConfig"`
	Gradle      GradleConfig      `mapstructure:"gradle"`

	// File is the configuration file that was read, empty when only defaults and
	// environment variables apply.
	File string `mapstructure:"-"`
}

// PropertiesPath returns the absolute location of the properties file for projectDir.
func (c *Config) PropertiesPath(projectDir string) string {
	if filepath.IsAbs(c.Properties.File) {
		return c.Properties.File
	}
	return filepath.Join(projectDir, c.Properties.File)
}

// Load resolves the configuration of the project rooted at projectDir:
// <projectDir>/.env, then the first .booknest/build.yml found from projectDir upwards,
// then BOOKNEST_* environment variables (e.g. BOOKNEST_BUILDCONFIG_PACKAGE), which win.
func Load(projectDir string) (*Config, error) {
	if err := loadDotEnv(projectDir); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(keyPropertiesFile, DefaultPropertiesFile)
	v.SetDefault(keyPropertiesAPIKey, DefaultAPIKeyProperty)
	v.SetDefault(keyField, DefaultField)
	v.SetDefault(keyPackage, DefaultPackage)
	v.SetDefault(keyOutput, "")
	v.SetDefault(keyLanguage, DefaultLanguage)
	v.SetDefault(keyBuildType, DefaultBuildType)
	v.SetDefault(keyModule, DefaultModule)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := findConfigFile(projectDir)
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.Debug("Reading configuration from", path)
		v.SetConfigFile(path)
		if err = v.ReadInConfig(); err != nil {
			return nil, errorutils.CheckErrorf("failed to read %s: %s", path, err.Error())
		}
	}

	cfg := new(Config)
	if err = v.Unmarshal(cfg); err != nil {
		return nil, errorutils.CheckError(err)
	}
	cfg.File = path
	return cfg, nil
}

// loadDotEnv exports the variables of <projectDir>/.env. Variables already set in the
// environment keep their value.
func loadDotEnv(projectDir string) error {
	path := filepath.Join(projectDir, dotEnvFile)
	exists, err := fileutils.IsFileExists(path, false)
	if err != nil || !exists {
		return err
	}
	log.Debug("Loading environment from", path)
	return errorutils.CheckError(godotenv.Load(path))
}

// findConfigFile walks up from projectDir looking for .booknest/build.yml (or .yaml).
func findConfigFile(projectDir string) (string, error) {
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return "", errorutils.CheckError(err)
	}
	for {
		for _, name := range []string{configFileYml, configFileYaml} {
			candidate := filepath.Join(dir, configDir, name)
			exists, err := fileutils.IsFileExists(candidate, false)
			if err != nil {
				return "", err
			}
			if exists {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
