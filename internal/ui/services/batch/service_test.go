package batch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlooker/internal/domain"
	"outlooker/internal/eventbus"
)

type fakeSelection struct {
	emails []string
}

func (f *fakeSelection) Ordered() []string  { return f.emails }
func (f *fakeSelection) Count() int         { return len(f.emails) }
func (f *fakeSelection) HasSelection() bool { return len(f.emails) > 0 }

func TestRequestDeleteNeedsSelection(t *testing.T) {
	svc := NewService(&fakeSelection{}, nil, nil)
	svc.RequestDelete()
	assert.False(t, svc.DeleteConfirmOpen())
}

func TestDeleteCountFrozenAtRequestTime(t *testing.T) {
	sel := &fakeSelection{emails: []string{"a@x.com", "b@x.com"}}
	svc := NewService(sel, nil, nil)

	svc.RequestDelete()
	require.True(t, svc.DeleteConfirmOpen())
	assert.Equal(t, 2, svc.DeleteCount())

	// Selection changes while the dialog is open; the shown count must not.
	sel.emails = append(sel.emails, "c@x.com")
	assert.Equal(t, 2, svc.DeleteCount())
}

func TestCloseDeleteConfirmKeepsSelection(t *testing.T) {
	sel := &fakeSelection{emails: []string{"a@x.com"}}
	svc := NewService(sel, nil, nil)

	svc.RequestDelete()
	svc.CloseDeleteConfirm()

	assert.False(t, svc.DeleteConfirmOpen())
	assert.True(t, sel.HasSelection())
}

func TestBeginDeleteSnapshotsOrderedSelection(t *testing.T) {
	sel := &fakeSelection{emails: []string{"a@x.com", "b@x.com", "c@x.com"}}
	svc := NewService(sel, nil, nil)
	svc.RequestDelete()

	emails, ok := svc.BeginDelete()
	require.True(t, ok)
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, emails)
	assert.True(t, svc.Loading())
	assert.True(t, svc.DeleteConfirmOpen(), "dialog stays up while the call runs")
}

func TestBeginDeleteWithoutConfirmRefuses(t *testing.T) {
	svc := NewService(&fakeSelection{emails: []string{"a@x.com"}}, nil, nil)
	_, ok := svc.BeginDelete()
	assert.False(t, ok)
	assert.False(t, svc.Loading())
}

func TestBeginDeleteRefusesWhileInFlight(t *testing.T) {
	svc := NewService(&fakeSelection{emails: []string{"a@x.com"}}, nil, nil)
	svc.RequestDelete()

	_, ok := svc.BeginDelete()
	require.True(t, ok)
	_, again := svc.BeginDelete()
	assert.False(t, again, "one batch call at a time")
}

func TestFinishDeleteSuccess(t *testing.T) {
	sel := &fakeSelection{emails: []string{"a@x.com", "b@x.com"}}
	bus := eventbus.New()

	cleared := false
	svc := NewService(sel, bus, func() { cleared = true })
	svc.RequestDelete()
	emails, ok := svc.BeginDelete()
	require.True(t, ok)

	svc.FinishDelete(emails, nil)

	assert.True(t, cleared)
	assert.False(t, svc.DeleteConfirmOpen())
	assert.False(t, svc.Loading())
}

func TestFinishDeleteFailureSkipsCallback(t *testing.T) {
	sel := &fakeSelection{emails: []string{"a@x.com"}}

	cleared := false
	svc := NewService(sel, nil, func() { cleared = true })
	svc.RequestDelete()
	emails, ok := svc.BeginDelete()
	require.True(t, ok)

	svc.FinishDelete(emails, errors.New("boom"))

	assert.False(t, cleared, "success callback must not run on failure")
	assert.False(t, svc.DeleteConfirmOpen())
	assert.True(t, sel.HasSelection(), "rows stay selected for a retry")
	assert.False(t, svc.Loading())
}

func TestTagModeCycle(t *testing.T) {
	svc := NewService(&fakeSelection{}, nil, nil)
	svc.OpenTagModal(domain.TagModeAdd)

	assert.Equal(t, domain.TagModeAdd, svc.TagMode())
	svc.CycleTagMode()
	assert.Equal(t, domain.TagModeRemove, svc.TagMode())
	svc.CycleTagMode()
	assert.Equal(t, domain.TagModeSet, svc.TagMode())
	svc.CycleTagMode()
	assert.Equal(t, domain.TagModeAdd, svc.TagMode())
}

func TestOpenTagModalDefaultsInvalidMode(t *testing.T) {
	svc := NewService(&fakeSelection{}, nil, nil)
	svc.OpenTagModal(domain.TagMode("bogus"))
	assert.Equal(t, domain.TagModeAdd, svc.TagMode())
}

func TestCloseTagModalClearsText(t *testing.T) {
	svc := NewService(&fakeSelection{}, nil, nil)
	svc.OpenTagModal(domain.TagModeAdd)
	svc.SetTagText("VIP, Premium")

	svc.CloseTagModal()

	assert.False(t, svc.TagModalOpen())
	assert.Empty(t, svc.TagText(), "stale tag input must not survive a close")
}

func TestBeginTagSubmitEmptySelectionRefuses(t *testing.T) {
	svc := NewService(&fakeSelection{}, nil, nil)
	svc.OpenTagModal(domain.TagModeAdd)
	svc.SetTagText("VIP")

	_, _, _, ok := svc.BeginTagSubmit()

	assert.False(t, ok)
	assert.True(t, svc.TagModalOpen(), "dialog stays as it is")
	assert.Equal(t, "VIP", svc.TagText())
}

func TestBeginTagSubmitParsesCommaList(t *testing.T) {
	sel := &fakeSelection{emails: []string{"a@x.com", "b@x.com"}}
	svc := NewService(sel, nil, nil)
	svc.OpenTagModal(domain.TagModeRemove)
	svc.SetTagText(" VIP , Premium ,")

	emails, parsed, mode, ok := svc.BeginTagSubmit()

	require.True(t, ok)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, emails)
	assert.Equal(t, []string{"VIP", "Premium"}, parsed)
	assert.Equal(t, domain.TagModeRemove, mode)
	assert.True(t, svc.Loading())
}

func TestFinishTagSubmitSuccessClosesModal(t *testing.T) {
	sel := &fakeSelection{emails: []string{"a@x.com"}}
	bus := eventbus.New()

	cleared := false
	svc := NewService(sel, bus, func() { cleared = true })
	svc.OpenTagModal(domain.TagModeAdd)
	svc.SetTagText("VIP")
	emails, parsed, mode, ok := svc.BeginTagSubmit()
	require.True(t, ok)

	svc.FinishTagSubmit(emails, parsed, mode, nil)

	assert.True(t, cleared)
	assert.False(t, svc.TagModalOpen(), "dialog closes after success")
	assert.Empty(t, svc.TagText())
	assert.False(t, svc.Loading())
}

func TestFinishTagSubmitFailureKeepsDialogOpen(t *testing.T) {
	sel := &fakeSelection{emails: []string{"a@x.com"}}
	svc := NewService(sel, nil, nil)
	svc.OpenTagModal(domain.TagModeAdd)
	svc.SetTagText("VIP")
	emails, parsed, mode, ok := svc.BeginTagSubmit()
	require.True(t, ok)

	svc.FinishTagSubmit(emails, parsed, mode, errors.New("boom"))

	assert.True(t, svc.TagModalOpen(), "dialog stays open for a retry")
	assert.Equal(t, "VIP", svc.TagText())
	assert.False(t, svc.Loading())
}
