package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"outlooker/internal/domain"
	"outlooker/internal/ui/input/types"
	"outlooker/internal/ui/state"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		if ctx.View() == state.ViewDashboard && ctx.HasSelection() {
			return []types.Action{types.DeselectAllAction{}}, true
		}
		return nil, false

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyLeft:
		if ctx.View() == state.ViewDashboard {
			return []types.Action{types.PrevPageAction{}}, true
		}
		return nil, false

	case tea.KeyRight:
		if ctx.View() == state.ViewDashboard {
			return []types.Action{types.NextPageAction{}}, true
		}
		return nil, false

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		return m.handleEnter(ctx)

	case tea.KeySpace:
		if ctx.View() == state.ViewDashboard && ctx.CurrentEmail() != "" {
			return []types.Action{types.ToggleSelectAction{}}, true
		}
		return nil, false
	}

	// Handle string keys
	switch msg.String() {
	case "q":
		return []types.Action{types.QuitAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	// View switching
	case "1":
		return []types.Action{types.SwitchViewAction{View: state.ViewDashboard}}, true
	case "2":
		return []types.Action{types.SwitchViewAction{View: state.ViewImport}}, true
	case "3":
		return []types.Action{types.SwitchViewAction{View: state.ViewTags}}, true
	case "4":
		return []types.Action{types.SwitchViewAction{View: state.ViewSystem}}, true
	case "0":
		return []types.Action{types.SwitchViewAction{View: state.ViewVerification}}, true
	}

	switch ctx.View() {
	case state.ViewDashboard:
		return m.handleDashboardKey(msg, ctx)
	case state.ViewImport:
		return m.handleImportKey(msg, ctx)
	case state.ViewTags:
		return m.handleTagsKey(msg, ctx)
	case state.ViewSystem:
		return m.handleSystemKey(msg, ctx)
	case state.ViewVerification:
		if msg.String() == "L" {
			return []types.Action{types.SwitchViewAction{View: state.ViewLogin}}, true
		}
	}

	return nil, false
}

func (m *NormalMode) handleEnter(ctx types.Context) ([]types.Action, bool) {
	switch ctx.View() {
	case state.ViewVerification:
		// Focus the email field
		return []types.Action{types.ChangeModeAction{Mode: types.ModeEmail}}, true
	case state.ViewLogin:
		return []types.Action{types.ChangeModeAction{Mode: types.ModeLogin}}, true
	case state.ViewTags:
		if ctx.CurrentTagName() != "" {
			return []types.Action{types.FilterByTagAction{}}, true
		}
	case state.ViewImport:
		if ctx.ImportHasPreview() {
			return []types.Action{types.CommitImportAction{}}, true
		}
	}
	return nil, false
}

func (m *NormalMode) handleDashboardKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "a":
		return []types.Action{types.SelectAllAction{}}, true

	case "A":
		return []types.Action{types.DeselectAllAction{}}, true

	case "d":
		if ctx.HasSelection() {
			return []types.Action{
				types.RequestDeleteAction{},
				types.ChangeModeAction{Mode: types.ModeDeleteConfirm},
			}, true
		}
		return nil, false

	case "t":
		if ctx.HasSelection() {
			return []types.Action{
				types.OpenTagModalAction{Mode: domain.TagModeAdd},
				types.ChangeModeAction{Mode: types.ModeTagBatch},
			}, true
		}
		return nil, false

	case "T":
		if ctx.HasSelection() {
			return []types.Action{
				types.OpenTagModalAction{Mode: domain.TagModeRemove},
				types.ChangeModeAction{Mode: types.ModeTagBatch},
			}, true
		}
		return nil, false

	case "e":
		// Edit the tags of the row under the cursor, prefilled
		if ctx.CurrentEmail() != "" {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeTagRow, Data: ctx.CurrentRowTags()}}, true
		}
		return nil, false

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case "g":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeJump}}, true

	case "n":
		return []types.Action{types.NextPageAction{}}, true

	case "p":
		return []types.Action{types.PrevPageAction{}}, true

	case "s":
		return []types.Action{types.CyclePageSizeAction{}}, true

	case "r":
		return []types.Action{types.RefreshAction{}}, true

	case "R":
		return []types.Action{types.RefreshCacheAction{}}, true

	case "f":
		return []types.Action{types.FilterByTagAction{}}, true

	case "F":
		return []types.Action{types.ClearFilterAction{}}, true

	case "L":
		return []types.Action{types.LogoutAction{}}, true
	}
	return nil, false
}

func (m *NormalMode) handleImportKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "e", "i":
		return []types.Action{types.EditImportTextAction{}}, true

	case "P":
		return []types.Action{types.ParseImportAction{}}, true

	case "m":
		return []types.Action{types.ToggleMergeModeAction{}}, true

	case "v":
		if ctx.ImportHasErrors() {
			return []types.Action{types.ShowImportReportAction{}}, true
		}
		return nil, false
	}
	return nil, false
}

func (m *NormalMode) handleTagsKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "r":
		return []types.Action{types.RefreshAction{}}, true
	}
	return nil, false
}

func (m *NormalMode) handleSystemKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "c":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeEmailLimit}}, true

	case "r":
		return []types.Action{types.RefreshAction{}}, true

	case "R":
		return []types.Action{types.RefreshCacheAction{}}, true
	}
	return nil, false
}
