package selection

// State holds selection state
type State struct {
	SelectedEmails map[string]bool
	LastSelected   int // row index of the last toggle, for range extension
}

// Event types
type SelectionChangedEvent struct {
	Added   []string
	Removed []string
	Total   int
}

type SelectionClearedEvent struct{}

type AllSelectedEvent struct {
	Emails []string
}
