package report

import (
	"context"

	"github.com/xuri/excelize/v2"
)

// ReportService renders filtered attendance history to a spreadsheet.
// Each row carries the day record plus its computed session bundle.
type ReportService interface {
	ExportAttendance(ctx context.Context, filter ExportFilter) (*excelize.File, error)
}
