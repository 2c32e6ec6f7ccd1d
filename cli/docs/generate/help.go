package generate

import "github.com/jfrog/jfrog-cli-core/v2/plugins/components"

var Usage = []string{
	"booknest-build generate [command options]",
	"booknest-build g [command options]",
}

func GetDescription() string {
	return `Generate the build config constants of the project.

The Google Books API key is read from local.properties (key API_KEY) and written as the
GOOGLE_BOOKS_API_KEY constant, next to the values declared in the android block of the
module build script.

Examples:
  # Generate buildconfig/buildconfig_gen.go for the debug build type
  booknest-build generate

  # Generate the Java BuildConfig class of the release build type
  booknest-build generate --language=java --build-type=release

  # Print the generated file without writing it
  booknest-build g --dry-run`
}

func GetArguments() []components.Argument {
	return []components.Argument{}
}
