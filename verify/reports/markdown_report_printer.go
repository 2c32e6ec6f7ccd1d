package reports

import (
	"fmt"

	"github.com/lujsom/booknest-build/verify/model"
)

var MarkdownReportPrinter = &markdownReportPrinter{}

type markdownReportPrinter struct {
}

func (p *markdownReportPrinter) Print(result *model.VerificationResponse) error {
	err := verifyNotEmptyResponse(result)
	if err != nil {
		return err
	}

	fmt.Println("# Credential Verification Result")
	fmt.Println()
	fmt.Printf("**Project:** %s  \n", result.ProjectDir)
	fmt.Printf("**Properties file:** %s  \n", result.PropertiesFile)

	fmt.Println("## Quick Summary")
	fmt.Println("| Check | Status |")
	fmt.Println("|-|-|")
	for _, check := range result.Checks {
		fmt.Printf("| %s | %s |\n", check.Description, check.Status)
	}
	fmt.Printf("**Failed checks:** %d  \n", countStatus(result.Checks, model.Failed))
	fmt.Printf("**Overall verification status:** %s  \n", result.OverallStatus)

	findings := 0
	for _, check := range result.Checks {
		findings += len(check.Findings)
	}
	if findings > 0 {
		fmt.Println()
		fmt.Println("## Findings")
		fmt.Println("| Check | Path | Line | Match |")
		fmt.Println("|-|-|-|-|")
		for _, check := range result.Checks {
			for _, finding := range check.Findings {
				fmt.Printf("| %s | %s | %d | %s |\n", check.Name, finding.Path, finding.Line, finding.Match)
			}
		}
	}
	fmt.Println()
	return exitError(result)
}
