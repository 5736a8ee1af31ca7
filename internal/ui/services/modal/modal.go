// Package modal provides the generic open/close/payload container every
// dialog builds on.
package modal

// State is a minimal modal container. Open sets the flag and optionally
// replaces the payload; Close clears the flag but PRESERVES the payload —
// dialogs that must reset their payload on close layer that rule on top
// themselves rather than changing this primitive.
type State struct {
	isOpen bool
	data   interface{}
}

// New creates a closed modal with no payload.
func New() *State {
	return &State{}
}

// Open marks the modal open. When a payload is given it replaces the
// current one; Open() with no argument keeps whatever was stored.
func (s *State) Open(data ...interface{}) {
	s.isOpen = true
	if len(data) > 0 {
		s.data = data[0]
	}
}

// Close marks the modal closed. The payload is kept so a reopened dialog
// can show what it showed before.
func (s *State) Close() {
	s.isOpen = false
}

// SetData replaces the payload without touching the open flag.
func (s *State) SetData(data interface{}) {
	s.data = data
}

// IsOpen reports whether the modal is open.
func (s *State) IsOpen() bool {
	return s.isOpen
}

// Data returns the last stored payload, open or not.
func (s *State) Data() interface{} {
	return s.data
}
