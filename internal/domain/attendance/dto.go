package attendance

import (
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
	"github.com/attendly/attendance-backend-go/internal/pkg/worktime"
)

func isValidClock(s string) bool {
	_, ok := worktime.ParseClock(s)
	return ok
}

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckRequest carries the caller context for one state-machine
// transition. The user comes from the JWT claims; the address is the
// one the request actually arrived from.
type CheckRequest struct {
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

func (r *CheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.IPAddress) {
		errs = append(errs, validator.ValidationError{
			Field:   "ip_address",
			Message: "caller address could not be determined",
		})
	} else if !validator.IsValidIPAddress(r.IPAddress) {
		errs = append(errs, validator.ValidationError{
			Field:   "ip_address",
			Message: "caller address is not a valid IP address",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionBundleResponse struct {
	Morning      string `json:"morning"`
	Evening      string `json:"evening"`
	Lunch        string `json:"lunch"`
	Total        string `json:"total"`
	TotalSeconds int64  `json:"total_seconds"`
	Status       string `json:"status"`
}

type AttendanceResponse struct {
	ID              string                `json:"id"`
	UserID          string                `json:"user_id"`
	UserName        string                `json:"user_name,omitempty"`
	Date            string                `json:"date"`
	MorningCheckIn  *string               `json:"morning_check_in"`
	MorningCheckOut *string               `json:"morning_check_out"`
	EveningCheckIn  *string               `json:"evening_check_in"`
	EveningCheckOut *string               `json:"evening_check_out"`
	Status          string                `json:"status"`
	WorkingHours    *string               `json:"working_hours"`
	IPAddress       string                `json:"ip_address"`
	Sessions        SessionBundleResponse `json:"sessions"`
	CreatedAt       string                `json:"created_at,omitempty"`
	UpdatedAt       string                `json:"updated_at,omitempty"`
}

// TodayResponse wraps the optional day record together with the state
// the dashboard needs to enable exactly one action control.
type TodayResponse struct {
	Record     *AttendanceResponse `json:"record"`
	State      State               `json:"state"`
	NextAction string              `json:"next_action"`
}

type AttendanceFilter struct {
	UserID    *string `json:"user_id"`
	Date      *string `json:"date"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    *string `json:"status"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
	SortBy    string  `json:"sort_by"`
	SortOrder string  `json:"sort_order"`
}

var filterStatuses = []string{StatusPresent, StatusPartial, StatusAbsent, StatusHalfDay}

func validateDates(errs validator.ValidationErrors, date, startDate, endDate *string) validator.ValidationErrors {
	if date != nil {
		if _, ok := validator.IsValidDate(*date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
		}
	}
	if startDate != nil {
		if _, ok := validator.IsValidDate(*startDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
	}
	if endDate != nil {
		if _, ok := validator.IsValidDate(*endDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
	}
	return errs
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = validateDates(errs, f.Date, f.StartDate, f.EndDate)

	if f.Status != nil && !validator.IsInSlice(*f.Status, filterStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, partial, absent, half-day",
		})
	}

	if f.SortBy != "" && !validator.IsInSlice(f.SortBy, []string{"date", "status", "user_name"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_by",
			Message: "sort_by must be one of date, status, user_name",
		})
	}

	if f.SortOrder != "" && !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be asc or desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MyAttendanceFilter struct {
	Date      *string `json:"date"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    *string `json:"status"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
	SortBy    string  `json:"sort_by"`
	SortOrder string  `json:"sort_order"`
}

func (f *MyAttendanceFilter) Validate() error {
	full := AttendanceFilter{
		Date:      f.Date,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Status:    f.Status,
		SortBy:    f.SortBy,
		SortOrder: f.SortOrder,
	}
	return full.Validate()
}

// UpdateAttendanceRequest is the administrative correction path: fix a
// recorded time or override the status (including "half-day", which the
// derivation never produces on its own).
type UpdateAttendanceRequest struct {
	ID              string  `json:"-"`
	MorningCheckIn  *string `json:"morning_check_in"`
	MorningCheckOut *string `json:"morning_check_out"`
	EveningCheckIn  *string `json:"evening_check_in"`
	EveningCheckOut *string `json:"evening_check_out"`
	Status          *string `json:"status"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	checkClock := func(field string, value *string) {
		if value == nil || *value == "" {
			return
		}
		if !isValidClock(*value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a time of day like 09:00:00",
			})
		}
	}
	checkClock("morning_check_in", r.MorningCheckIn)
	checkClock("morning_check_out", r.MorningCheckOut)
	checkClock("evening_check_in", r.EveningCheckIn)
	checkClock("evening_check_out", r.EveningCheckOut)

	if r.Status != nil && !validator.IsInSlice(*r.Status, filterStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, partial, absent, half-day",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}
