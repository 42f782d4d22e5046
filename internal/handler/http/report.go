package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportAttendance(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// ExportAttendance implements ReportHandler.
func (h *ReportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	filter := report.ExportFilter{
		UserID:    queryString(r, "user_id"),
		Date:      queryString(r, "date"),
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Status:    queryString(r, "status"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}

	file, err := h.reportService.ExportAttendance(r.Context(), filter)
	if err != nil {
		slog.Error("Export attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	if err := file.Write(w); err != nil {
		slog.Error("Export attendance write error", "error", err)
	}
}
