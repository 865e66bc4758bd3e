package ingest

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// Every code except EUNAUTHORIZED and EINTERNAL describes a problem with the
// submitted source and is reported to the caller as a bad request.
const (
	EINVALID          = "invalid"
	ECAPTIONSDISABLED = "captions_disabled"
	ENOTRANSCRIPT     = "no_transcript"
	ERATELIMITED      = "rate_limited"
	ETRANSCRIPT       = "transcript"
	EFORBIDDEN        = "forbidden"
	ENOTFOUND         = "not_found"
	EFETCH            = "fetch"
	ENOTTEXTUAL       = "not_textual"
	EINSUFFICIENT     = "insufficient_content"
	EUNAUTHORIZED     = "unauthorized"
	EINTERNAL         = "internal"
)

// Error represents an application-specific error. Message is safe to show
// to the end user.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("ingest error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsUserError reports whether err carries one of the codes that describe a
// problem with the submitted source rather than with the service.
func IsUserError(err error) bool {
	switch ErrorCode(err) {
	case EINVALID, ECAPTIONSDISABLED, ENOTRANSCRIPT, ERATELIMITED, ETRANSCRIPT,
		EFORBIDDEN, ENOTFOUND, EFETCH, ENOTTEXTUAL, EINSUFFICIENT:
		return true
	}
	return false
}
