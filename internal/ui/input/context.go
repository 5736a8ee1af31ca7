package input

import (
	"strings"

	"outlooker/internal/tags"
	"outlooker/internal/ui/services/selection"
	"outlooker/internal/ui/state"
)

// ModelContext exposes the read-only state the mode handlers consult
// when deciding what an action means on the current view.
type ModelContext struct {
	state     *state.AppState
	selection *selection.Service
	tags      tags.Manager
}

func NewModelContext(st *state.AppState, sel *selection.Service, tm tags.Manager) *ModelContext {
	return &ModelContext{state: st, selection: sel, tags: tm}
}

func (c *ModelContext) View() state.View {
	return c.state.CurrentView
}

func (c *ModelContext) HasSelection() bool {
	return c.selection.HasSelection()
}

func (c *ModelContext) SelectedCount() int {
	return c.selection.Count()
}

func (c *ModelContext) CurrentEmail() string {
	return c.state.CurrentEmail()
}

// CurrentRowTags returns the cursor row's tags as comma-joined text,
// used to prefill the row tag editor.
func (c *ModelContext) CurrentRowTags() string {
	idx := c.state.SelectedIndex
	if idx < 0 || idx >= len(c.state.Page.Accounts) {
		return ""
	}
	return strings.Join(c.state.Page.Accounts[idx].Tags, ", ")
}

// CurrentTagName returns the tag under the tags-view cursor, or "".
func (c *ModelContext) CurrentTagName() string {
	names := c.tags.Names()
	if c.state.TagIndex < 0 || c.state.TagIndex >= len(names) {
		return ""
	}
	return names[c.state.TagIndex]
}

func (c *ModelContext) ImportHasPreview() bool {
	return c.state.ImportPreview != nil && len(c.state.ImportPreview.Accounts) > 0
}

func (c *ModelContext) ImportHasErrors() bool {
	return c.state.ImportPreview != nil && len(c.state.ImportPreview.Errors) > 0
}
