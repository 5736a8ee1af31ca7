package types

import (
	tea "github.com/charmbracelet/bubbletea"

	"outlooker/internal/ui/state"
)

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeDeleteConfirm
	ModeSearch     // dashboard search text
	ModeJump       // jump-to-page text
	ModeTagBatch   // batch tag modal text
	ModeTagRow     // single-row tag edit text
	ModeLogin      // admin password text
	ModeEmail      // verification email text
	ModeEmailLimit // system config number text
)

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	View() state.View
	HasSelection() bool
	SelectedCount() int
	CurrentEmail() string
	CurrentRowTags() string
	CurrentTagName() string
	ImportHasPreview() bool
	ImportHasErrors() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
