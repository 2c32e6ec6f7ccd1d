package reports

import (
	"fmt"
	"strings"

	"github.com/jfrog/jfrog-cli-core/v2/utils/coreutils"
	"github.com/lujsom/booknest-build/verify/model"
)

const (
	FormatText     = "table"
	FormatJson     = "json"
	FormatMarkdown = "markdown"
)

// GetPrinter returns the printer of format, or an error for an unknown format.
func GetPrinter(format string) (ReportPrinter, error) {
	switch strings.ToLower(format) {
	case "", FormatText, "text":
		return PlaintextReportPrinter, nil
	case FormatJson:
		return JsonReportPrinter, nil
	case FormatMarkdown, "md":
		return MarkdownReportPrinter, nil
	}
	return nil, fmt.Errorf("unsupported format '%s'. Supported formats are 'table', 'json' and 'markdown'", format)
}

func verifyNotEmptyResponse(result *model.VerificationResponse) error {
	if result == nil {
		return fmt.Errorf("verification response is empty")
	}
	return nil
}

func exitError(result *model.VerificationResponse) error {
	if result.OverallStatus == model.Failed {
		return coreutils.CliError{ExitCode: coreutils.ExitCodeError}
	}
	return nil
}

func countStatus(checks []model.CheckResult, status model.Status) int {
	count := 0
	for _, check := range checks {
		if check.Status == status {
			count++
		}
	}
	return count
}
