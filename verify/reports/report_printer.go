package reports

import "github.com/lujsom/booknest-build/verify/model"

type ReportPrinter interface {
	Print(result *model.VerificationResponse) error
}
