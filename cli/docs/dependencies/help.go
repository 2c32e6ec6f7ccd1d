package dependencies

import "github.com/jfrog/jfrog-cli-core/v2/plugins/components"

var Usage = []string{"booknest-build deps [command options]"}

func GetDescription() string {
	return "List the dependencies declared by the module build script, with version catalog aliases and platform-managed versions resolved."
}

func GetArguments() []components.Argument {
	return []components.Argument{}
}
