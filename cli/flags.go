package cli

import (
	pluginsCommon "github.com/jfrog/jfrog-cli-core/v2/plugins/common"
	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"
)

const (
	// Commands keys
	Generate     = "generate"
	Show         = "show"
	Dependencies = "dependencies"
	Verify       = "verify"
)

const (
	// Common flags keys
	projectDir = "project-dir"
	module     = "module"
	format     = "format"

	// Build config flags keys
	output    = "output"
	goPackage = "package"
	language  = "language"
	buildType = "build-type"
	dryRun    = "dry-run"
	reveal    = "reveal"

	// Dependencies flags keys
	displayLimit = "display-limit"
)

// Flag keys mapped to their corresponding components.Flag definition.
var flagsMap = map[string]components.Flag{
	projectDir: components.NewStringFlag(projectDir, "Root directory of the Android project.", func(f *components.StringFlag) { f.Mandatory = false; f.DefaultValue = "." }),
	module:     components.NewStringFlag(module, "Gradle module holding the android block. The default is 'app'.", func(f *components.StringFlag) { f.Mandatory = false }),
	format:     components.NewStringFlag(format, "Output format. Supported formats: 'table' and 'json'. The verify command also supports 'markdown'.", func(f *components.StringFlag) { f.Mandatory = false }),

	output:    components.NewStringFlag(output, "Path of the generated file, relative to the project directory.", func(f *components.StringFlag) { f.Mandatory = false }),
	goPackage: components.NewStringFlag(goPackage, "Package of the generated Go file. The default is 'buildconfig'.", func(f *components.StringFlag) { f.Mandatory = false }),
	language:  components.NewStringFlag(language, "Language of the generated file. Supported languages: 'go' and 'java'.", func(f *components.StringFlag) { f.Mandatory = false }),
	buildType: components.NewStringFlag(buildType, "Build type to generate the constants for. The default is 'debug'.", func(f *components.StringFlag) { f.Mandatory = false }),
	dryRun:    components.NewBoolFlag(dryRun, "Print the generated file instead of writing it.", components.WithBoolDefaultValueFalse()),
	reveal:    components.NewBoolFlag(reveal, "Print secret values in clear text.", components.WithBoolDefaultValueFalse()),

	displayLimit: components.NewStringFlag(displayLimit, "Maximum number of dependencies printed in table format. The default is 50.", func(f *components.StringFlag) { f.Mandatory = false }),
}

var commandFlags = map[string][]string{
	Generate: {
		projectDir,
		module,
		output,
		goPackage,
		language,
		buildType,
		dryRun,
	},
	Show: {
		projectDir,
		module,
		buildType,
		format,
		reveal,
	},
	Dependencies: {
		projectDir,
		module,
		format,
		displayLimit,
	},
	Verify: {
		projectDir,
		format,
	},
}

func GetCommandFlags(cmdKey string) []components.Flag {
	return pluginsCommon.GetCommandFlags(cmdKey, commandFlags, flagsMap)
}
