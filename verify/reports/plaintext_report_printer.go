package reports

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/lujsom/booknest-build/verify/model"
)

var PlaintextReportPrinter = &plaintextReportPrinter{
	success: color.Green.Render("success"),
	warning: color.Yellow.Render("warning"),
	failed:  color.Red.Render("failed"),
}

type plaintextReportPrinter struct {
	success string
	warning string
	failed  string
}

func (p *plaintextReportPrinter) Print(result *model.VerificationResponse) error {
	err := verifyNotEmptyResponse(result)
	if err != nil {
		return err
	}
	fmt.Printf("Project:               %s\n", result.ProjectDir)
	fmt.Printf("Properties file:       %s\n", result.PropertiesFile)
	fmt.Println()

	checksNumber := len(result.Checks)
	passed := countStatus(result.Checks, model.Success) + countStatus(result.Checks, model.Warning)
	statusMessage := fmt.Sprintf("Verification passed for %d out of %d checks", passed, checksNumber)
	switch result.OverallStatus {
	case model.Failed:
		fmt.Println(color.Red.Render(statusMessage))
	case model.Warning:
		fmt.Println(color.Yellow.Render(statusMessage))
	default:
		fmt.Println(color.Green.Render(statusMessage))
	}
	fmt.Println()
	for i := range result.Checks {
		p.printCheckResult(&result.Checks[i], i)
	}
	return exitError(result)
}

func (p *plaintextReportPrinter) printCheckResult(check *model.CheckResult, index int) {
	fmt.Printf("- Check %d: %s\n", index+1, check.Description)
	fmt.Printf("    - Status:   %s\n", p.getColoredStatus(check.Status))
	if check.Message != "" {
		fmt.Printf("    - Details:  %s\n", check.Message)
	}
	for _, finding := range check.Findings {
		fmt.Printf("    - Found:    %s:%d (%s)\n", finding.Path, finding.Line, finding.Match)
	}
}

func (p *plaintextReportPrinter) getColoredStatus(status model.Status) string {
	switch status {
	case model.Success:
		return p.success
	case model.Warning:
		return p.warning
	default:
		return p.failed
	}
}
