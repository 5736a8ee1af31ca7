// Package batch coordinates multi-select delete and tag actions: the
// confirmation dialog, the tag modal, and the state around the calls made
// against the selected identifiers. It never mutates rows locally before
// the server confirms.
//
// The service is single-goroutine state, owned by the UI loop. A batch
// call splits into Begin (snapshot the request, set the loading flag) and
// Finish (apply the outcome); the HTTP call itself happens elsewhere, on a
// command goroutine that touches nothing in here.
package batch

import (
	"outlooker/internal/domain"
	"outlooker/internal/eventbus"
	"outlooker/internal/tags"
	"outlooker/internal/ui/services/modal"
)

// Service drives the batch-operations workflow.
type Service struct {
	sel Selection
	bus eventbus.EventBus

	// onSuccess runs after any batch call the server confirmed; the owner
	// uses it for cache invalidation and clearing the selection.
	onSuccess func()

	deleteConfirm *modal.State // payload: selection count frozen at request time
	tagModal      *modal.State // payload: the active domain.TagMode
	tagText       string       // raw comma-separated input, unvalidated
	loading       bool         // one batch call in flight at a time
}

// NewService creates the workflow. bus may be nil in tests; onSuccess may
// be nil when the owner has nothing to invalidate.
func NewService(sel Selection, bus eventbus.EventBus, onSuccess func()) *Service {
	return &Service{
		sel:           sel,
		bus:           bus,
		onSuccess:     onSuccess,
		deleteConfirm: modal.New(),
		tagModal:      modal.New(),
	}
}

// --- deletion state machine ---

// RequestDelete opens the confirmation dialog, freezing the current
// selection size. Nothing is sent yet. No-op with an empty selection.
func (s *Service) RequestDelete() {
	if !s.sel.HasSelection() {
		return
	}
	s.deleteConfirm.Open(s.sel.Count())
}

// CloseDeleteConfirm cancels: no API call, selection untouched.
func (s *Service) CloseDeleteConfirm() {
	s.deleteConfirm.Close()
}

// DeleteConfirmOpen reports whether the confirmation dialog is open.
func (s *Service) DeleteConfirmOpen() bool {
	return s.deleteConfirm.IsOpen()
}

// DeleteCount returns the selection size snapshotted when the dialog
// opened. It does not track later selection changes.
func (s *Service) DeleteCount() int {
	if n, ok := s.deleteConfirm.Data().(int); ok {
		return n
	}
	return 0
}

// BeginDelete freezes the ordered selection for the delete call and sets
// the loading flag. Returns ok=false when the dialog is not open or a
// call is already in flight; the dialog stays open until FinishDelete.
func (s *Service) BeginDelete() (emails []string, ok bool) {
	if !s.deleteConfirm.IsOpen() || s.loading {
		return nil, false
	}
	s.loading = true
	return s.sel.Ordered(), true
}

// FinishDelete applies the outcome of the delete call. The dialog closes
// and the loading flag resets on every path; on failure the selection is
// untouched so the rows stay selected for a retry.
func (s *Service) FinishDelete(emails []string, err error) {
	s.loading = false
	s.deleteConfirm.Close()

	if err != nil {
		s.publishError("Batch delete failed", err)
		return
	}

	if s.bus != nil {
		s.bus.Publish(eventbus.AccountsDeletedEvent{Emails: emails})
	}
	if s.onSuccess != nil {
		s.onSuccess()
	}
}

// --- tag modal workflow ---

// OpenTagModal opens the tag dialog in the given mode, defaulting to add
// when the mode is unknown.
func (s *Service) OpenTagModal(mode domain.TagMode) {
	if !mode.Valid() {
		mode = domain.TagModeAdd
	}
	s.tagModal.Open(mode)
}

// SetTagMode switches the mode while the dialog is open.
func (s *Service) SetTagMode(mode domain.TagMode) {
	if mode.Valid() {
		s.tagModal.SetData(mode)
	}
}

// CycleTagMode steps add → remove → set → add.
func (s *Service) CycleTagMode() {
	switch s.TagMode() {
	case domain.TagModeAdd:
		s.tagModal.SetData(domain.TagModeRemove)
	case domain.TagModeRemove:
		s.tagModal.SetData(domain.TagModeSet)
	default:
		s.tagModal.SetData(domain.TagModeAdd)
	}
}

// TagMode returns the active mode, defaulting to add.
func (s *Service) TagMode() domain.TagMode {
	if m, ok := s.tagModal.Data().(domain.TagMode); ok && m.Valid() {
		return m
	}
	return domain.TagModeAdd
}

// TagModalOpen reports whether the tag dialog is open.
func (s *Service) TagModalOpen() bool {
	return s.tagModal.IsOpen()
}

// SetTagText stores the raw comma-separated text, unvalidated.
func (s *Service) SetTagText(text string) {
	s.tagText = text
}

// TagText returns the raw tag text.
func (s *Service) TagText() string {
	return s.tagText
}

// CloseTagModal closes the dialog AND clears the text. This deliberately
// overrides the generic modal's preserve-on-close rule: stale tag input
// must not leak into the next batch.
func (s *Service) CloseTagModal() {
	s.tagModal.Close()
	s.tagText = ""
}

// BeginTagSubmit parses the text and freezes the request for the tag
// call, setting the loading flag. Returns ok=false with an empty
// selection or a call already in flight; the dialog stays as it is.
func (s *Service) BeginTagSubmit() (emails, parsed []string, mode domain.TagMode, ok bool) {
	if !s.sel.HasSelection() || s.loading {
		return nil, nil, "", false
	}
	s.loading = true
	return s.sel.Ordered(), tags.SplitTags(s.tagText), s.TagMode(), true
}

// FinishTagSubmit applies the outcome of the tag call. The loading flag
// resets on every path; on success the dialog closes (clearing the text)
// and the success callback runs, on failure it stays open for a retry.
func (s *Service) FinishTagSubmit(emails, parsed []string, mode domain.TagMode, err error) {
	s.loading = false

	if err != nil {
		s.publishError("Batch tag update failed", err)
		return
	}

	s.CloseTagModal()
	if s.bus != nil {
		s.bus.Publish(eventbus.TagsUpdatedEvent{Emails: emails, Tags: parsed, Mode: mode})
	}
	if s.onSuccess != nil {
		s.onSuccess()
	}
}

// Loading reports whether a batch call is in flight. The owning view
// disables the triggering controls while true.
func (s *Service) Loading() bool {
	return s.loading
}

func (s *Service) publishError(msg string, err error) {
	if s.bus != nil {
		s.bus.Publish(eventbus.ErrorEvent{Message: msg, Err: err})
	}
}
