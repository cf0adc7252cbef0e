package platform

import "errors"

// Registry and identity errors. All of these are recoverable by the
// caller; none leaves the platform in a partially mutated state.
var (
	ErrDuplicateEmail       = errors.New("a user with this email already exists")
	ErrNotFound             = errors.New("record not found")
	ErrAuthenticationFailed = errors.New("invalid email or password")
	ErrSelfRemovalForbidden = errors.New("admins cannot remove themselves")
	ErrNotAuthorized        = errors.New("operation not permitted for this user")
)

// Grading errors
var (
	ErrInvalidGradeValue = errors.New("grade value must be between 1 and 5")
	ErrNotSubmitted      = errors.New("student has not submitted this assignment")
	ErrSubmissionTooLong = errors.New("submission content exceeds maximum length")
)

// Scheduling errors
var (
	ErrSlotOccupied        = errors.New("a lesson already exists at this time slot")
	ErrTeacherDoubleBooked = errors.New("teacher is already scheduled at this time slot")
	ErrNoLessonAtSlot      = errors.New("no lesson found at this time slot")
)

// Parent linking errors
var (
	ErrChildNotLinked     = errors.New("child is not linked to this parent")
	ErrChildAlreadyLinked = errors.New("child is already linked to this parent")
)

// ErrValidationFailed aborts an export when the registry contains
// records that fail the export precondition check.
var ErrValidationFailed = errors.New("data validation failed")
