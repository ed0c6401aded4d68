package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Error codes surfaced to the transport layer. Handlers map on Code, never
// on message text.
const (
	CodeValidation             = "VALIDATION_FAILED"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeForbidden              = "FORBIDDEN"
	CodeNotFound               = "NOT_FOUND"
	CodeConflict               = "CONFLICT"
	CodeIllegalTransition      = "ILLEGAL_TRANSITION"
	CodeTerminalState          = "TERMINAL_STATE"
	CodeAssignmentMismatch     = "ASSIGNMENT_MISMATCH"
	CodeInactiveAssignee       = "INACTIVE_ASSIGNEE"
	CodeCatalogMismatch        = "CATALOG_MISMATCH"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
	CodeInternal               = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

// NewNotFound covers both an absent entity and an entity outside the caller's
// visibility; the two are intentionally indistinguishable.
func NewNotFound(resource string, details map[string]any) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, details)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewIllegalTransition(current, next string) error {
	return NewDomainError(
		CodeIllegalTransition,
		fmt.Sprintf("transition from %s to %s not allowed", current, next),
		http.StatusUnprocessableEntity,
		map[string]any{"current_status": current, "requested_status": next},
	)
}

func NewTerminalState(ticketNumber string) error {
	return NewDomainError(
		CodeTerminalState,
		"closed tickets cannot be modified",
		http.StatusConflict,
		map[string]any{"ticket_number": ticketNumber},
	)
}

func NewAssignmentMismatch(staffID string) error {
	return NewDomainError(
		CodeAssignmentMismatch,
		"assigned staff specialty does not match ticket issue",
		http.StatusUnprocessableEntity,
		map[string]any{"staff_id": staffID},
	)
}

func NewInactiveAssignee(staffID string) error {
	return NewDomainError(
		CodeInactiveAssignee,
		"assigned staff is inactive",
		http.StatusConflict,
		map[string]any{"staff_id": staffID},
	)
}

func NewCatalogMismatch() error {
	return NewDomainError(
		CodeCatalogMismatch,
		"selected sub-issue does not belong to selected issue",
		http.StatusUnprocessableEntity,
		nil,
	)
}

func NewConcurrentModification(ticketID string) error {
	return NewDomainError(
		CodeConcurrentModification,
		"ticket was modified concurrently, retry with fresh state",
		http.StatusConflict,
		map[string]any{"ticket_id": ticketID},
	)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Missing rows map to
// NOT_FOUND; everything else unknown becomes an internal error.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &DomainError{
			Code:       CodeNotFound,
			Message:    "resource not found",
			HTTPStatus: http.StatusNotFound,
		}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
