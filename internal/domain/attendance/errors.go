package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrUnauthorizedAddress = errors.New("your network address is not authorized; please connect from an approved office network")
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrDayAlreadyExists    = errors.New("an attendance record already exists for today")
)

// Step names used in sequence and already-done messages.
const (
	StepMorningCheckIn  = "morning check-in"
	StepMorningCheckOut = "morning check-out"
	StepEveningCheckIn  = "evening check-in"
	StepEveningCheckOut = "evening check-out"
)

// SequenceError is returned when a transition is attempted before its
// prerequisite step was recorded. Nothing is created or mutated.
type SequenceError struct {
	Attempted string
	Missing   string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("cannot record %s: you must complete %s first", e.Attempted, e.Missing)
}

// AlreadyDoneError is returned when the target field of a transition is
// already set. It is benign: the record is left untouched.
type AlreadyDoneError struct {
	Step       string
	RecordedAt string
}

func (e *AlreadyDoneError) Error() string {
	return fmt.Sprintf("%s was already recorded at %s", e.Step, e.RecordedAt)
}

// IsSequenceError reports whether err is a prerequisite-step violation.
func IsSequenceError(err error) bool {
	var se *SequenceError
	return errors.As(err, &se)
}

// IsAlreadyDoneError reports whether err is a duplicate-step violation.
func IsAlreadyDoneError(err error) bool {
	var ae *AlreadyDoneError
	return errors.As(err, &ae)
}
