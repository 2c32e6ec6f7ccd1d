package cli

import (
	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"
)

const (
	appName = "booknest-build"
	Version = "1.0.0"
)

func GetBooknestBuildApp() components.App {
	app := components.CreateEmbeddedApp(
		appName,
		[]components.Command{},
	)
	app.Description = "Build-time configuration of the BookNest Android app."
	app.Version = Version
	app.Commands = append(app.Commands, GetCommands()...)
	return app
}
