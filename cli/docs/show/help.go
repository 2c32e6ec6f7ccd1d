package show

import "github.com/jfrog/jfrog-cli-core/v2/plugins/components"

var Usage = []string{"booknest-build show [command options]"}

func GetDescription() string {
	return "Show the resolved build config fields. Secret values are masked unless --reveal is set."
}

func GetArguments() []components.Argument {
	return []components.Argument{}
}
