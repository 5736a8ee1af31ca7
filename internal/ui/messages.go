package ui

import (
	"time"

	"outlooker/internal/domain"
	"outlooker/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for animations and toast expiry
type tickMsg time.Time

// verifyResultMsg contains the result of a verification code lookup
type verifyResultMsg struct {
	code domain.VerificationCode
	err  error
}

// loginResultMsg reports a failed login attempt; successes arrive as a
// LoggedInEvent instead.
type loginResultMsg struct {
	err error
}

// batchDeleteResultMsg reports the outcome of a batch delete call. State
// changes happen in Update when this arrives, never on the call goroutine.
type batchDeleteResultMsg struct {
	emails []string
	err    error
}

// batchTagsResultMsg reports the outcome of a batch tag call.
type batchTagsResultMsg struct {
	emails []string
	tags   []string
	mode   domain.TagMode
	err    error
}

// parseResultMsg contains the parse preview for the import text
type parseResultMsg struct {
	preview domain.ImportPreview
	err     error
}

// reportPagerMsg contains the result of showing the import error report
type reportPagerMsg struct {
	err error
}
