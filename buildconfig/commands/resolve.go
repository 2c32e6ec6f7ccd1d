package commands

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/lujsom/booknest-build/buildconfig/model"
	"github.com/lujsom/booknest-build/config"
	"github.com/lujsom/booknest-build/gradle"
	"github.com/lujsom/booknest-build/localprops"
)

// Resolved is a build config together with what it was resolved from.
type Resolved struct {
	BuildConfig *model.BuildConfig
	// Module is nil when the project has no build script for the configured module.
	Module *gradle.Module
	// Skipped lists buildConfigField declarations whose value is computed by script code.
	Skipped []gradle.BuildConfigField
}

// ResolveBuildConfig reads the API key from the properties file and merges it with the
// android configuration declared by the module build script, for the configured build type.
func ResolveBuildConfig(projectDir string, cfg *config.Config) (*Resolved, error) {
	apiKey, err := localprops.LoadProperty(cfg.PropertiesPath(projectDir), cfg.Properties.APIKey, "")
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		log.Warn(fmt.Sprintf("%s is not set in %s. %s will be empty.", cfg.Properties.APIKey, cfg.Properties.File, cfg.BuildConfig.Field))
	}

	resolved := &Resolved{
		BuildConfig: &model.BuildConfig{
			Package:   cfg.BuildConfig.Package,
			BuildType: cfg.BuildConfig.BuildType,
		},
	}

	if _, _, err = gradle.FindBuildScript(filepath.Join(projectDir, cfg.Gradle.Module)); err != nil {
		log.Debug("No build script for module", cfg.Gradle.Module+", generating the API key field only")
	} else {
		if resolved.Module, err = gradle.LoadModule(projectDir, cfg.Gradle.Module); err != nil {
			return nil, err
		}
		if err = applyModule(resolved, cfg); err != nil {
			return nil, err
		}
	}

	resolved.BuildConfig.AddField(model.Field{Type: model.String, Name: cfg.BuildConfig.Field, Value: apiKey, Secret: true})
	return resolved, nil
}

func applyModule(resolved *Resolved, cfg *config.Config) error {
	module, bc := resolved.Module, resolved.BuildConfig
	if reads := module.LocalPropertyReads(); len(reads) > 0 && !slices.Contains(reads, cfg.Properties.APIKey) {
		log.Warn(fmt.Sprintf("%s reads %v from local.properties but the configured key is %s", filepath.Base(module.ScriptPath), reads, cfg.Properties.APIKey))
	}

	android := module.Android
	if android == nil {
		log.Debug("Module", module.Name, "has no android block")
		return nil
	}
	if android.BuildConfigEnabled != nil && !*android.BuildConfigEnabled {
		log.Warn("buildFeatures.buildConfig is disabled in", module.ScriptPath)
	}

	bc.Namespace = android.Namespace
	bc.ApplicationID = android.ApplicationID
	if bc.ApplicationID == "" {
		bc.ApplicationID = android.Namespace
	}
	bc.VersionCode = android.VersionCode
	bc.VersionName = android.VersionName

	fields := android.BuildConfigFields
	if buildType, ok := android.BuildType(bc.BuildType); ok {
		bc.ApplicationID += buildType.ApplicationIDSuffix
		bc.VersionName += buildType.VersionNameSuffix
		fields = append(slices.Clone(fields), buildType.BuildConfigFields...)
	} else if bc.BuildType != model.DebugBuildType && bc.BuildType != model.ReleaseBuildType {
		return fmt.Errorf("build type '%s' is not declared in %s", bc.BuildType, module.ScriptPath)
	}

	for _, field := range fields {
		if field.Name == cfg.BuildConfig.Field {
			continue
		}
		if !field.Literal {
			log.Warn(fmt.Sprintf("Skipping buildConfigField %s: its value is computed by the build script (%s)", field.Name, field.Expression))
			resolved.Skipped = append(resolved.Skipped, field)
			continue
		}
		fieldType, err := model.ParseFieldType(field.Type)
		if err != nil {
			return err
		}
		bc.AddField(model.Field{Type: fieldType, Name: field.Name, Value: field.Value})
	}
	return nil
}
