package seascan

import "fmt"

// ErrorCode classifies a failed operation for logs and for picking the
// user-facing notice.
type ErrorCode string

const (
	ErrorStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	ErrorActionFailed     ErrorCode = "ACTION_FAILED"
	ErrorMailFailed       ErrorCode = "MAIL_FAILED"
	ErrorMailAuth         ErrorCode = "MAIL_AUTH"
	ErrorTransportFailed  ErrorCode = "TRANSPORT_FAILED"
)

// userMessages maps each code to the single notice shown in the chat.
var userMessages = map[ErrorCode]string{
	ErrorStoreUnavailable: "Could not read the measurement table, please try again later.",
	ErrorActionFailed:     "The sensor network did not accept the request, please try again.",
	ErrorMailFailed:       "Error sending email, please try again.",
	ErrorMailAuth:         "Email is not configured correctly, contact the operator.",
	ErrorTransportFailed:  "Something went wrong, please try again.",
}

// Error is a classified operation failure.
type Error struct {
	Kind   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("seascan: %s (%s)", e.Kind, e.Reason)
	}
	return fmt.Sprintf("seascan: %s (%s): %v", e.Kind, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Code reports the classification, surfaced as err_code in handler summaries.
func (e *Error) Code() string {
	if e == nil {
		return ""
	}
	return string(e.Kind)
}

// UserMessage is the notice the dispatch boundary sends to the chat.
func (e *Error) UserMessage() string {
	if e == nil {
		return ""
	}
	return userMessages[e.Kind]
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Kind: code, Reason: reason, Err: err}
}
