package report

import (
	"context"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/worktime"
	"github.com/xuri/excelize/v2"
)

type ReportServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
}

func NewReportService(db *database.DB, attendanceRepository attendance.AttendanceRepository) report.ReportService {
	return &ReportServiceImpl{db: db, AttendanceRepository: attendanceRepository}
}

// exportBatchSize pages through the repository; the export itself is
// unbounded.
const exportBatchSize = 500

func cellOrPlaceholder(value *string) string {
	if value == nil || *value == "" {
		return worktime.Placeholder
	}
	return *value
}

// ExportAttendance implements report.ReportService.
func (r *ReportServiceImpl) ExportAttendance(ctx context.Context, filter report.ExportFilter) (*excelize.File, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	sheet := file.GetSheetName(file.GetActiveSheetIndex())

	headers := []string{
		"Date", "Employee", "Morning In", "Morning Out", "Evening In", "Evening Out",
		"Morning", "Evening", "Lunch", "Total", "Status",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := 2
	filter.Page = 1
	filter.Limit = exportBatchSize
	for {
		days, _, err := r.AttendanceRepository.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to load attendance for export: %w", err)
		}
		if len(days) == 0 {
			break
		}

		for _, day := range days {
			sessions := attendance.ComputeSessions(day)
			name := ""
			if day.UserName != nil {
				name = *day.UserName
			}
			values := []interface{}{
				day.Date.Format("2006-01-02"),
				name,
				cellOrPlaceholder(day.MorningCheckIn),
				cellOrPlaceholder(day.MorningCheckOut),
				cellOrPlaceholder(day.EveningCheckIn),
				cellOrPlaceholder(day.EveningCheckOut),
				sessions.Morning.Readable,
				sessions.Evening.Readable,
				sessions.Lunch.Readable,
				sessions.Total.Readable,
				day.Status,
			}
			for i, value := range values {
				cell, err := excelize.CoordinatesToCellName(i+1, row)
				if err != nil {
					return nil, fmt.Errorf("failed to address cell: %w", err)
				}
				if err := file.SetCellValue(sheet, cell, value); err != nil {
					return nil, fmt.Errorf("failed to write row: %w", err)
				}
			}
			row++
		}

		if len(days) < exportBatchSize {
			break
		}
		filter.Page++
	}

	return file, nil
}
