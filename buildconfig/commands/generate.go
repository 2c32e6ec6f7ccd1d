package commands

import (
	"path/filepath"

	coreConfig "github.com/jfrog/jfrog-cli-core/v2/utils/config"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/lujsom/booknest-build/buildconfig/generate"
	"github.com/lujsom/booknest-build/config"
)

// Options holds the command-line overrides of the configuration. Empty values keep
// the configured value.
type Options struct {
	Module    string
	Package   string
	Language  string
	BuildType string
	Output    string
}

func (o Options) apply(cfg *config.Config) {
	if o.Module != "" {
		cfg.Gradle.Module = o.Module
	}
	if o.Package != "" {
		cfg.BuildConfig.Package = o.Package
	}
	if o.Language != "" {
		cfg.BuildConfig.Language = o.Language
	}
	if o.BuildType != "" {
		cfg.BuildConfig.BuildType = o.BuildType
	}
	if o.Output != "" {
		cfg.BuildConfig.Output = o.Output
	}
}

type GenerateCommand struct {
	projectDir string
	options    Options
	dryRun     bool
	// Set after Run
	outputPath string
	changed    bool
}

func NewGenerateCommand() *GenerateCommand {
	return &GenerateCommand{projectDir: "."}
}

func (gc *GenerateCommand) SetProjectDir(projectDir string) *GenerateCommand {
	gc.projectDir = projectDir
	return gc
}

func (gc *GenerateCommand) SetOptions(options Options) *GenerateCommand {
	gc.options = options
	return gc
}

func (gc *GenerateCommand) SetDryRun(dryRun bool) *GenerateCommand {
	gc.dryRun = dryRun
	return gc
}

// OutputPath is the file written by the last run, empty on dry runs.
func (gc *GenerateCommand) OutputPath() string {
	return gc.outputPath
}

func (gc *GenerateCommand) Changed() bool {
	return gc.changed
}

func (gc *GenerateCommand) CommandName() string {
	return "booknest_generate"
}

func (gc *GenerateCommand) ServerDetails() (*coreConfig.ServerDetails, error) {
	return nil, nil
}

func (gc *GenerateCommand) Run() error {
	cfg, err := loadConfig(gc.projectDir, gc.options)
	if err != nil {
		return err
	}
	lang, err := generate.ParseLanguage(cfg.BuildConfig.Language)
	if err != nil {
		return err
	}
	resolved, err := ResolveBuildConfig(gc.projectDir, cfg)
	if err != nil {
		return err
	}
	content, err := generate.Render(resolved.BuildConfig, lang)
	if err != nil {
		return err
	}
	if gc.dryRun {
		log.Output(string(content))
		return nil
	}

	gc.outputPath = outputPath(gc.projectDir, cfg, lang, resolved.BuildConfig.Namespace)
	if gc.changed, err = generate.Write(gc.outputPath, content); err != nil {
		return err
	}
	if gc.changed {
		log.Info("Generated", cfg.BuildConfig.Field, "into", gc.outputPath)
	} else {
		log.Info(gc.outputPath, "is up to date")
	}
	return nil
}

func loadConfig(projectDir string, options Options) (*config.Config, error) {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return nil, err
	}
	options.apply(cfg)
	return cfg, nil
}

func outputPath(projectDir string, cfg *config.Config, lang generate.Language, namespace string) string {
	path := cfg.BuildConfig.Output
	base := projectDir
	if path == "" {
		path = generate.DefaultOutput(lang, namespace)
		if lang == generate.Java {
			base = filepath.Join(projectDir, cfg.Gradle.Module)
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
