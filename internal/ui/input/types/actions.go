package types

import (
	"outlooker/internal/domain"
	"outlooker/internal/ui/state"
)

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Selection actions
type ToggleSelectAction struct{}

func (a ToggleSelectAction) Type() string { return "toggle_select" }

type SelectAllAction struct{}

func (a SelectAllAction) Type() string { return "select_all" }

type DeselectAllAction struct{}

func (a DeselectAllAction) Type() string { return "deselect_all" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // Optional prefill for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// View actions
type SwitchViewAction struct {
	View state.View
}

func (a SwitchViewAction) Type() string { return "switch_view" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// Batch actions
type RequestDeleteAction struct{}

func (a RequestDeleteAction) Type() string { return "request_delete" }

type ConfirmDeleteAction struct{}

func (a ConfirmDeleteAction) Type() string { return "confirm_delete" }

type CancelDeleteAction struct{}

func (a CancelDeleteAction) Type() string { return "cancel_delete" }

type OpenTagModalAction struct {
	Mode domain.TagMode
}

func (a OpenTagModalAction) Type() string { return "open_tag_modal" }

type CycleTagModeAction struct{}

func (a CycleTagModeAction) Type() string { return "cycle_tag_mode" }

// Pagination actions
type NextPageAction struct{}

func (a NextPageAction) Type() string { return "next_page" }

type PrevPageAction struct{}

func (a PrevPageAction) Type() string { return "prev_page" }

type CyclePageSizeAction struct{}

func (a CyclePageSizeAction) Type() string { return "cycle_page_size" }

// Data actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type RefreshCacheAction struct{}

func (a RefreshCacheAction) Type() string { return "refresh_cache" }

type FilterByTagAction struct{}

func (a FilterByTagAction) Type() string { return "filter_by_tag" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }

// Import actions
type EditImportTextAction struct{}

func (a EditImportTextAction) Type() string { return "edit_import_text" }

type ParseImportAction struct{}

func (a ParseImportAction) Type() string { return "parse_import" }

type CommitImportAction struct{}

func (a CommitImportAction) Type() string { return "commit_import" }

type ShowImportReportAction struct{}

func (a ShowImportReportAction) Type() string { return "show_import_report" }

type ToggleMergeModeAction struct{}

func (a ToggleMergeModeAction) Type() string { return "toggle_merge_mode" }

// Session actions
type LogoutAction struct{}

func (a LogoutAction) Type() string { return "logout" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
