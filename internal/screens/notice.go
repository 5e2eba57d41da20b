package screens

import (
	"errors"

	"kakeibo/internal/core"
)

// Severity decides how a screen shows a problem.
type Severity int

const (
	// SeverityInfo is a low-key hint; nothing went wrong that needs action.
	SeverityInfo Severity = iota
	// SeverityWarning is non-blocking: the action took effect in this
	// session but may not have been saved.
	SeverityWarning
	// SeverityBlocking is a confirmation dialog: the action was refused.
	SeverityBlocking
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityBlocking:
		return "blocking"
	default:
		return "unknown"
	}
}

// Notice is what a screen displays for an error.
type Notice struct {
	Severity Severity
	Message  string
	Err      error
}

// NoticeFor maps an operation error to the message a screen shows. It
// returns false for a nil error. No error is ever fatal.
func NoticeFor(err error) (Notice, bool) {
	if err == nil {
		return Notice{}, false
	}
	n := Notice{Err: err}
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		n.Severity, n.Message = SeverityBlocking, "Enter an amount greater than zero."
	case errors.Is(err, core.ErrMemoTooLong):
		n.Severity, n.Message = SeverityBlocking, "Memo is too long."
	case errors.Is(err, core.ErrInvalidMemo):
		n.Severity, n.Message = SeverityBlocking, "Memo contains unreadable characters."
	case errors.Is(err, core.ErrTooManyItems):
		n.Severity, n.Message = SeverityBlocking, "No more categories can be added."
	case errors.Is(err, core.ErrDuplicateItem):
		n.Severity, n.Message = SeverityBlocking, "That category already exists."
	case errors.Is(err, ErrResetNotConfirmed):
		n.Severity, n.Message = SeverityBlocking, "Confirm before deleting all data."
	case errors.Is(err, core.ErrValidation):
		n.Severity, n.Message = SeverityBlocking, "Please check your input."
	case errors.Is(err, core.ErrStorageWrite):
		n.Severity, n.Message = SeverityWarning, "Saved for now, but writing to storage failed."
	case errors.Is(err, core.ErrStorageRead):
		n.Severity, n.Message = SeverityWarning, "Saved data could not be read; starting empty."
	case errors.Is(err, core.ErrNotFound):
		n.Severity, n.Message = SeverityInfo, "That entry no longer exists."
	default:
		n.Severity, n.Message = SeverityWarning, "Something went wrong."
	}
	return n, true
}
