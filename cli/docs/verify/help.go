package verify

import "github.com/jfrog/jfrog-cli-core/v2/plugins/components"

var Usage = []string{"booknest-build verify [command options]"}

func GetDescription() string {
	return `Verify that the API key stays out of version control.

Checks:
  properties-ignored   local.properties is ignored by git
  no-key-literals      no Google API key literal appears in source files
  key-configured       the API key property is set (warning only)

The command exits with an error when a check fails.`
}

func GetArguments() []components.Argument {
	return []components.Argument{}
}
