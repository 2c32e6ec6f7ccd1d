package cli

import (
	"strconv"

	"github.com/jfrog/jfrog-cli-core/v2/common/commands"
	pluginsCommon "github.com/jfrog/jfrog-cli-core/v2/plugins/common"
	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	buildconfig "github.com/lujsom/booknest-build/buildconfig/commands"
	"github.com/lujsom/booknest-build/cli/docs/dependencies"
	"github.com/lujsom/booknest-build/cli/docs/generate"
	showDocs "github.com/lujsom/booknest-build/cli/docs/show"
	"github.com/lujsom/booknest-build/cli/docs/verify"
	"github.com/lujsom/booknest-build/commonutils"
	dependenciesCmd "github.com/lujsom/booknest-build/dependencies"
	verifyCmd "github.com/lujsom/booknest-build/verify"
)

const buildCategory = "Build Config"

func GetCommands() []components.Command {
	return []components.Command{
		{
			Name:        Generate,
			Aliases:     []string{"g"},
			Flags:       GetCommandFlags(Generate),
			Description: generate.GetDescription(),
			Arguments:   generate.GetArguments(),
			Action:      generateCmd,
			Category:    buildCategory,
		},
		{
			Name:        Show,
			Aliases:     []string{"s"},
			Flags:       GetCommandFlags(Show),
			Description: showDocs.GetDescription(),
			Arguments:   showDocs.GetArguments(),
			Action:      showCmd,
			Category:    buildCategory,
		},
		{
			Name:        Dependencies,
			Aliases:     []string{"deps"},
			Flags:       GetCommandFlags(Dependencies),
			Description: dependencies.GetDescription(),
			Arguments:   dependencies.GetArguments(),
			Action:      dependenciesAction,
		},
		{
			Name:        Verify,
			Aliases:     []string{"v"},
			Flags:       GetCommandFlags(Verify),
			Description: verify.GetDescription(),
			Arguments:   verify.GetArguments(),
			Action:      verifyAction,
		},
	}
}

var execFunc = commands.Exec

func generateCmd(ctx *components.Context) error {
	if err := validateNoArguments(ctx); err != nil {
		return err
	}
	cmd := buildconfig.NewGenerateCommand().
		SetProjectDir(getProjectDir(ctx)).
		SetOptions(getBuildConfigOptions(ctx)).
		SetDryRun(ctx.GetBoolFlagValue(dryRun))
	return execFunc(cmd)
}

func showCmd(ctx *components.Context) error {
	if err := validateNoArguments(ctx); err != nil {
		return err
	}
	cmd := buildconfig.NewShowCommand().
		SetProjectDir(getProjectDir(ctx)).
		SetOptions(getBuildConfigOptions(ctx)).
		SetReveal(ctx.GetBoolFlagValue(reveal))
	if value := ctx.GetStringFlagValue(format); value != "" {
		cmd.SetFormat(value)
	}
	return execFunc(cmd)
}

func dependenciesAction(ctx *components.Context) error {
	if err := validateNoArguments(ctx); err != nil {
		return err
	}
	cmd := dependenciesCmd.NewDependenciesCommand().
		SetProjectDir(getProjectDir(ctx)).
		SetModule(ctx.GetStringFlagValue(module))
	if value := ctx.GetStringFlagValue(format); value != "" {
		cmd.SetFormat(value)
	}
	if value := ctx.GetStringFlagValue(displayLimit); value != "" {
		limit, err := parseDisplayLimit(value)
		if err != nil {
			return err
		}
		cmd.SetDisplayLimit(limit)
	}
	return execFunc(cmd)
}

func verifyAction(ctx *components.Context) error {
	if err := validateNoArguments(ctx); err != nil {
		return err
	}
	cmd := verifyCmd.NewVerifyCommand().SetProjectDir(getProjectDir(ctx))
	if value := ctx.GetStringFlagValue(format); value != "" {
		cmd.SetFormat(value)
	}
	return execFunc(cmd)
}

func validateNoArguments(ctx *components.Context) error {
	if show, err := pluginsCommon.ShowCmdHelpIfNeeded(ctx, ctx.Arguments); show || err != nil {
		return err
	}
	if len(ctx.Arguments) > 0 {
		return pluginsCommon.WrongNumberOfArgumentsHandler(ctx)
	}
	return nil
}

func getProjectDir(ctx *components.Context) string {
	if dir := ctx.GetStringFlagValue(projectDir); dir != "" {
		return dir
	}
	return "."
}

func getBuildConfigOptions(ctx *components.Context) buildconfig.Options {
	return buildconfig.Options{
		Module:    ctx.GetStringFlagValue(module),
		Package:   ctx.GetStringFlagValue(goPackage),
		Language:  ctx.GetStringFlagValue(language),
		BuildType: ctx.GetStringFlagValue(buildType),
		Output:    ctx.GetStringFlagValue(output),
	}
}

func parseDisplayLimit(value string) (int, error) {
	if !commonutils.IsFlagPositiveNumber(value) {
		return 0, errorutils.CheckErrorf("the --%s option must be a positive number, got '%s'", displayLimit, value)
	}
	return strconv.Atoi(value)
}
