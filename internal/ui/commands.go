package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"outlooker/internal/api"
	"outlooker/internal/domain"
	"outlooker/internal/eventbus"
)

// apiTimeout bounds every request a command fires.
const apiTimeout = 30 * time.Second

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}

// publishResult converts a call outcome into domain events. Unauthorized
// errors stay silent here: the client already published AuthExpiredEvent.
func publishResult(bus eventbus.EventBus, message string, err error, success eventbus.DomainEvent) {
	if err != nil {
		if !api.IsUnauthorized(err) {
			bus.Publish(eventbus.ErrorEvent{Message: message, Err: err})
		}
		return
	}
	if success != nil {
		bus.Publish(success)
	}
}

func (m *Model) verifyCmd(email string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		code, err := m.api.VerificationCode(ctx, email)
		return verifyResultMsg{code: code, err: err}
	}
}

func (m *Model) loginCmd(password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		if err := m.api.Login(ctx, password); err != nil {
			return loginResultMsg{err: err}
		}
		m.bus.Publish(eventbus.LoggedInEvent{})
		return nil
	}
}

func (m *Model) parseImportCmd(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		preview, err := m.api.ParseImportText(ctx, text)
		return parseResultMsg{preview: preview, err: err}
	}
}

func (m *Model) commitImportCmd(accounts []domain.Account, mode domain.MergeMode) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		result, err := m.api.Import(ctx, accounts, mode)
		publishResult(m.bus, "Import failed", err, eventbus.ImportCompletedEvent{Result: result})
		return nil
	}
}

func (m *Model) rowTagsCmd(email string, tags []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		err := m.api.UpdateAccountTags(ctx, email, tags)
		publishResult(m.bus, "Tag update failed", err, eventbus.TagsUpdatedEvent{
			Emails: []string{email},
			Tags:   tags,
			Mode:   domain.TagModeSet,
		})
		return nil
	}
}

func (m *Model) loadSystemConfigCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		cfg, err := m.api.SystemConfig(ctx)
		publishResult(m.bus, "Loading system config failed", err, eventbus.ConfigLoadedEvent{Config: cfg})
		return nil
	}
}

func (m *Model) loadMetricsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		metrics, err := m.api.SystemMetrics(ctx)
		publishResult(m.bus, "Loading metrics failed", err, eventbus.MetricsLoadedEvent{Metrics: metrics})
		return nil
	}
}

func (m *Model) saveConfigCmd(cfg domain.SystemConfig) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		err := m.api.SaveSystemConfig(ctx, cfg)
		publishResult(m.bus, "Saving system config failed", err, eventbus.ConfigSavedEvent{Config: cfg})
		return nil
	}
}

func (m *Model) refreshCacheCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		err := m.api.RefreshCache(ctx)
		publishResult(m.bus, "Cache refresh failed", err, eventbus.CacheRefreshedEvent{})
		return nil
	}
}

// executeDeleteCmd snapshots the confirmed delete on the update goroutine
// and returns a command that only performs the call. Model state moves
// again when the batchDeleteResultMsg comes back through Update.
func (m *Model) executeDeleteCmd() tea.Cmd {
	emails, ok := m.batch.BeginDelete()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return batchDeleteResultMsg{emails: emails, err: m.api.BatchDelete(ctx, emails)}
	}
}

// submitTagsCmd snapshots the tag modal the same way; the command does
// nothing but the call.
func (m *Model) submitTagsCmd() tea.Cmd {
	emails, parsed, mode, ok := m.batch.BeginTagSubmit()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		err := m.api.BatchUpdateTags(ctx, emails, parsed, mode)
		return batchTagsResultMsg{emails: emails, tags: parsed, mode: mode, err: err}
	}
}

func (m *Model) showReportCmd(preview domain.ImportPreview) tea.Cmd {
	return func() tea.Msg {
		content := m.reporter.BuildErrorReport(preview)
		return reportPagerMsg{err: m.reporter.ShowInPager(content)}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
