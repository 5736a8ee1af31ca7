package selection

import (
	"sort"
	"sync"

	"outlooker/internal/ui/services/events"
)

// Service tracks which account rows are checked. The set is always kept a
// subset of the rows currently loaded: Prune is called on every page load.
type Service struct {
	mu    sync.RWMutex
	state *State
	bus   events.EventBus
}

// NewService creates a new selection service
func NewService(bus events.EventBus) *Service {
	return &Service{
		state: &State{
			SelectedEmails: make(map[string]bool),
			LastSelected:   -1,
		},
		bus: bus,
	}
}

// Toggle flips the selection for one email. The row index is remembered
// for range extension.
func (s *Service) Toggle(email string, index int) {
	if email == "" {
		return
	}

	s.mu.Lock()
	var added, removed []string
	if s.state.SelectedEmails[email] {
		delete(s.state.SelectedEmails, email)
		removed = append(removed, email)
	} else {
		s.state.SelectedEmails[email] = true
		added = append(added, email)
	}
	s.state.LastSelected = index
	total := len(s.state.SelectedEmails)
	s.mu.Unlock()

	s.bus.Publish(SelectionChangedEvent{
		Added:   added,
		Removed: removed,
		Total:   total,
	})
}

// SelectAll selects every currently loaded row.
func (s *Service) SelectAll(emails []string) {
	s.mu.Lock()
	s.state.SelectedEmails = make(map[string]bool, len(emails))
	for _, email := range emails {
		s.state.SelectedEmails[email] = true
	}
	s.mu.Unlock()

	s.bus.Publish(AllSelectedEvent{Emails: emails})
}

// Clear drops all selections.
func (s *Service) Clear() {
	s.mu.Lock()
	s.state.SelectedEmails = make(map[string]bool)
	s.state.LastSelected = -1
	s.mu.Unlock()

	s.bus.Publish(SelectionClearedEvent{})
}

// Prune drops selected emails that are no longer among the loaded rows,
// keeping the subset invariant after a page change.
func (s *Service) Prune(loaded []string) {
	loadedSet := make(map[string]bool, len(loaded))
	for _, email := range loaded {
		loadedSet[email] = true
	}

	s.mu.Lock()
	var removed []string
	for email := range s.state.SelectedEmails {
		if !loadedSet[email] {
			delete(s.state.SelectedEmails, email)
			removed = append(removed, email)
		}
	}
	total := len(s.state.SelectedEmails)
	s.mu.Unlock()

	if len(removed) > 0 {
		s.bus.Publish(SelectionChangedEvent{
			Removed: removed,
			Total:   total,
		})
	}
}

// IsSelected checks if an email is selected
func (s *Service) IsSelected(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.SelectedEmails[email]
}

// Ordered returns the selected emails as a sorted slice. Batch endpoints
// receive exactly this sequence.
func (s *Service) Ordered() []string {
	s.mu.RLock()
	selected := make([]string, 0, len(s.state.SelectedEmails))
	for email := range s.state.SelectedEmails {
		selected = append(selected, email)
	}
	s.mu.RUnlock()

	sort.Strings(selected)
	return selected
}

// Count returns the number of selected items
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.SelectedEmails)
}

// HasSelection returns true if anything is selected
func (s *Service) HasSelection() bool {
	return s.Count() > 0
}
