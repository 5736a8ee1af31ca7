package handlers

import (
	"fmt"
	"time"

	"outlooker/internal/cache"
	"outlooker/internal/eventbus"
	"outlooker/internal/ui/services/pagination"
	"outlooker/internal/ui/state"
)

// EventHandler applies domain events to the application state.
type EventHandler struct {
	state    *state.AppState
	pager    *pagination.Service
	snapshot *cache.Snapshot
	toastTTL time.Duration

	// requestReload asks the model to refetch the current page.
	requestReload func()
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, pager *pagination.Service, snapshot *cache.Snapshot, toastTTL time.Duration, requestReload func()) *EventHandler {
	return &EventHandler{
		state:         appState,
		pager:         pager,
		snapshot:      snapshot,
		toastTTL:      toastTTL,
		requestReload: requestReload,
	}
}

func (h *EventHandler) toast(level state.ToastLevel, msg string) {
	h.state.SetToast(level, msg, time.Now().Add(h.toastTTL))
}

// HandleEvent applies a domain event to the state. The model's own tick
// loop covers animation and toast expiry, so no command comes back.
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.AccountsLoadedEvent:
		h.state.Query = e.Query
		h.state.ApplyPage(e.Page, false)
		h.pager.SetTotals(e.Page.Total, e.Page.TotalPages)
		h.pager.SetPage(e.Page.Page)
		h.snapshot.SaveAccounts(e.Page)

	case eventbus.AccountsDeletedEvent:
		h.toast(state.ToastSuccess, fmt.Sprintf("Deleted %d account(s)", len(e.Emails)))
		if h.requestReload != nil {
			h.requestReload()
		}

	case eventbus.TagsUpdatedEvent:
		h.state.UpdatingRowTags = false
		h.toast(state.ToastSuccess, fmt.Sprintf("Tags updated on %d account(s)", len(e.Emails)))
		if h.requestReload != nil {
			h.requestReload()
		}

	case eventbus.ImportCompletedEvent:
		h.state.ImportLoading = false
		h.state.ImportResult = &e.Result
		h.state.ImportPreview = nil
		h.state.ImportText = ""
		h.toast(state.ToastSuccess, fmt.Sprintf("Imported: %d added, %d updated, %d skipped",
			e.Result.AddedCount, e.Result.UpdatedCount, e.Result.SkippedCount))
		if h.requestReload != nil {
			h.requestReload()
		}

	case eventbus.MetricsLoadedEvent:
		h.state.Metrics = &e.Metrics
		h.snapshot.SaveMetrics(e.Metrics)

	case eventbus.ConfigLoadedEvent:
		h.state.SystemConfig = &e.Config

	case eventbus.ConfigSavedEvent:
		h.state.SavingConfig = false
		h.state.SystemConfig = &e.Config
		h.toast(state.ToastSuccess, fmt.Sprintf("Email limit set to %d", e.Config.EmailLimit))

	case eventbus.CacheRefreshedEvent:
		h.state.RefreshingCache = false
		h.toast(state.ToastSuccess, "Server cache refreshed")
		if h.requestReload != nil {
			h.requestReload()
		}

	case eventbus.AuthExpiredEvent:
		// Every in-flight loading flag is cleared so no view is stuck
		// on a spinner after the jump to the login form.
		h.state.LoadingAccounts = false
		h.state.RefreshingCache = false
		h.state.SavingConfig = false
		h.state.ImportLoading = false
		h.state.UpdatingRowTags = false
		if h.state.CurrentView != state.ViewLogin {
			h.state.CurrentView = state.ViewLogin
			h.toast(state.ToastError, "Session expired, sign in again")
		}

	case eventbus.LoggedInEvent:
		h.state.LoginLoading = false
		h.state.LoginAttempts = 0
		h.state.CurrentView = state.ViewDashboard
		h.toast(state.ToastSuccess, "Signed in")
		if h.requestReload != nil {
			h.requestReload()
		}

	case eventbus.ErrorEvent:
		// An error ends whatever operation was running.
		h.state.LoadingAccounts = false
		h.state.RefreshingCache = false
		h.state.SavingConfig = false
		h.state.ImportLoading = false
		h.state.UpdatingRowTags = false
		h.state.VerifyLoading = false
		h.state.LoginLoading = false
		h.toast(state.ToastError, e.Message)
	}
}
