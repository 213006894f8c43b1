package cli

import (
	"io"

	"github.com/agbru/trapcalc/internal/orchestration"
)

// CLIDiscrepancyPresenter implements orchestration.DiscrepancyPresenter by
// printing the plain-text discrepancy report.
type CLIDiscrepancyPresenter struct{}

var _ orchestration.DiscrepancyPresenter = CLIDiscrepancyPresenter{}

// PresentDiscrepancy implements orchestration.DiscrepancyPresenter.
func (CLIDiscrepancyPresenter) PresentDiscrepancy(d orchestration.Discrepancy, out io.Writer) {
	DisplayDiscrepancy(out, d)
}
