package verify

import (
	"fmt"
	"path/filepath"

	coreConfig "github.com/jfrog/jfrog-cli-core/v2/utils/config"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/lujsom/booknest-build/config"
	"github.com/lujsom/booknest-build/localprops"
	"github.com/lujsom/booknest-build/verify/model"
	"github.com/lujsom/booknest-build/verify/reports"
)

// VerifyCommand checks that the API key stays out of version control.
type VerifyCommand struct {
	projectDir string
	format     string
	// Set after Run
	result *model.VerificationResponse
}

func NewVerifyCommand() *VerifyCommand {
	return &VerifyCommand{projectDir: ".", format: reports.FormatText}
}

func (vc *VerifyCommand) SetProjectDir(projectDir string) *VerifyCommand {
	vc.projectDir = projectDir
	return vc
}

func (vc *VerifyCommand) SetFormat(format string) *VerifyCommand {
	vc.format = format
	return vc
}

func (vc *VerifyCommand) Result() *model.VerificationResponse {
	return vc.result
}

func (vc *VerifyCommand) CommandName() string {
	return "booknest_verify"
}

func (vc *VerifyCommand) ServerDetails() (*coreConfig.ServerDetails, error) {
	return nil, nil
}

func (vc *VerifyCommand) Run() error {
	printer, err := reports.GetPrinter(vc.format)
	if err != nil {
		return err
	}
	cfg, err := config.Load(vc.projectDir)
	if err != nil {
		return err
	}
	wt, err := openWorktree(vc.projectDir)
	if err != nil {
		return err
	}
	if !wt.isRepo() {
		log.Warn(vc.projectDir, "is not inside a git repository, only its .gitignore files are checked")
	}

	propertiesPath := cfg.PropertiesPath(vc.projectDir)
	ignored, err := checkPropertiesIgnored(wt, propertiesPath, cfg.Properties.File)
	if err != nil {
		return err
	}
	checks := []model.CheckResult{ignored}
	literals, err := checkKeyLiterals(wt, vc.projectDir)
	if err != nil {
		return err
	}
	checks = append(checks, literals, checkKeyConfigured(propertiesPath, cfg))

	vc.result = &model.VerificationResponse{
		SchemaVersion:  model.SchemaVersion,
		ProjectDir:     vc.projectDir,
		PropertiesFile: cfg.Properties.File,
		Checks:         checks,
		OverallStatus:  model.Overall(checks),
	}
	return printer.Print(vc.result)
}

// checkPropertiesIgnored fails when the properties file is not ignored, or when it was
// committed before the ignore rule was added. Ignore rules do not untrack a file.
func checkPropertiesIgnored(wt *worktree, propertiesPath, displayName string) (model.CheckResult, error) {
	check := model.CheckResult{
		Name:        model.CheckPropertiesIgnored,
		Description: displayName + " is ignored by git",
		Status:      model.Success,
	}
	rel, ok := wt.rel(propertiesPath)
	if !ok {
		check.Status = model.Warning
		check.Message = fmt.Sprintf("%s is outside of the repository at %s", propertiesPath, wt.root)
		return check, nil
	}
	tracked, err := wt.tracked(rel)
	if err != nil {
		return check, err
	}
	switch {
	case tracked:
		check.Status = model.Failed
		check.Message = fmt.Sprintf("%s is tracked by git, run 'git rm --cached %s'", filepath.ToSlash(rel), filepath.ToSlash(rel))
	case !wt.ignored(rel, false):
		check.Status = model.Failed
		check.Message = fmt.Sprintf("add /%s to .gitignore", filepath.ToSlash(rel))
	}
	return check, nil
}

func checkKeyLiterals(wt *worktree, projectDir string) (model.CheckResult, error) {
	check := model.CheckResult{
		Name:        model.CheckNoKeyLiterals,
		Description: "No API key literals in source files",
		Status:      model.Success,
	}
	findings, err := scanKeyLiterals(wt, projectDir)
	if err != nil {
		return check, err
	}
	if len(findings) > 0 {
		check.Status = model.Failed
		check.Findings = findings
		check.Message = fmt.Sprintf("%d API key literal(s) found. Move them to the properties file", len(findings))
	}
	return check, nil
}

// checkKeyConfigured only warns: a build with an empty key is still valid.
func checkKeyConfigured(propertiesPath string, cfg *config.Config) model.CheckResult {
	check := model.CheckResult{
		Name:        model.CheckKeyConfigured,
		Description: fmt.Sprintf("%s is set in %s", cfg.Properties.APIKey, cfg.Properties.File),
		Status:      model.Success,
	}
	value, err := localprops.LoadProperty(propertiesPath, cfg.Properties.APIKey, "")
	switch {
	case err != nil:
		check.Status = model.Failed
		check.Message = err.Error()
	case value == "":
		check.Status = model.Warning
		check.Message = fmt.Sprintf("%s is empty, %s will be generated as an empty string", cfg.Properties.APIKey, cfg.BuildConfig.Field)
	}
	return check
}
