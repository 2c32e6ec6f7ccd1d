package main

import (
	"github.com/jfrog/jfrog-cli-core/v2/plugins"
	"github.com/lujsom/booknest-build/cli"
)

func main() {
	plugins.PluginMain(cli.GetBooknestBuildApp())
}
