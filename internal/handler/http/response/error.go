package response

import (
	"errors"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/allowedip"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/auth"
	"github.com/attendly/attendance-backend-go/internal/domain/device"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// State machine violations: the message already names the step.
	if attendance.IsSequenceError(err) || attendance.IsAlreadyDoneError(err) {
		Conflict(w, err.Error())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrFingerprintRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrDevicePendingApproval):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrOAuthNotConfigured),
		errors.Is(err, auth.ErrOAuthEmailNotVerified),
		errors.Is(err, auth.ErrOAuthStateMismatch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrUnauthorizedAddress):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDayAlreadyExists):
		Conflict(w, err.Error())

	// Account management errors
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrCannotDeactivateSelf):
		Conflict(w, err.Error())

	// Allowlist errors
	case errors.Is(err, allowedip.ErrAllowedIPNotFound):
		NotFound(w, "Allowed IP not found")
	case errors.Is(err, allowedip.ErrAddressExists):
		Conflict(w, err.Error())

	// Device errors
	case errors.Is(err, device.ErrDeviceNotFound):
		NotFound(w, "Device fingerprint not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
