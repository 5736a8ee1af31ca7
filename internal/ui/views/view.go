package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"outlooker/internal/domain"
	"outlooker/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	App *state.AppState

	// Selection
	Selected       map[string]bool
	SelectionCount int

	// Tag index
	TagNames  []string
	TagCounts map[string]int

	// Column toggles from config
	ShowTags    bool
	ShowRemarks bool

	// Pagination
	PageNumbers []int
	CanPrev     bool
	CanNext     bool

	// Batch workflow
	DeleteConfirmOpen bool
	DeleteCount       int
	TagModalOpen      bool
	TagMode           domain.TagMode
	TagText           string
	BatchLoading      bool

	// Text entry; InputMode is "" in normal mode
	InputMode     string
	TextInputView string

	// ImportEditor is the rendered textarea while import text is edited
	ImportEditor string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func spinnerFrame() string {
	return spinnerFrames[int(time.Now().UnixMilli()/80)%len(spinnerFrames)]
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderHeader(vs))
	content.WriteString("\n")

	var body string
	switch vs.App.CurrentView {
	case state.ViewVerification:
		body = r.renderVerification(vs)
	case state.ViewLogin:
		body = r.renderLogin(vs)
	case state.ViewDashboard:
		body = r.renderDashboard(vs)
	case state.ViewImport:
		body = r.renderImport(vs)
	case state.ViewTags:
		body = r.renderTags(vs)
	case state.ViewSystem:
		body = r.renderSystem(vs)
	case state.ViewRecovery:
		body = r.renderRecovery(vs)
	}
	content.WriteString(body)

	helpText := ""
	if !vs.App.ShowHelp && !vs.DeleteConfirmOpen && !vs.TagModalOpen {
		helpText = r.styles.Help.Render("Press ? for help")
	}

	if helpText != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := vs.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		padding := availableLines - currentLines - 1
		if padding > 0 {
			content.WriteString(strings.Repeat("\n", padding))
		}
		content.WriteString("\n")
		content.WriteString(helpText)
	}

	mainStyle := r.styles.Main.MaxHeight(vs.Height)
	finalContent := mainStyle.Render(content.String())

	if vs.DeleteConfirmOpen {
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderDeleteConfirm(vs), vs.Height, vs.Width, r.styles.ModalBox)
	}
	if vs.TagModalOpen {
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderTagModal(vs), vs.Height, vs.Width, r.styles.InfoBox)
	}
	if vs.App.ShowHelp {
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderHelpContent(vs.App.CurrentView), vs.Height, vs.Width, r.styles.InfoBox)
	}

	return finalContent
}

// renderHeader draws the title, the view tabs and any active toast.
func (r *Renderer) renderHeader(vs ViewState) string {
	logo := r.styles.Title.Render("outlooker")

	tabs := []struct {
		view  state.View
		label string
	}{
		{state.ViewDashboard, "1:Accounts"},
		{state.ViewImport, "2:Import"},
		{state.ViewTags, "3:Tags"},
		{state.ViewSystem, "4:System"},
		{state.ViewVerification, "0:Verify"},
	}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.view == vs.App.CurrentView {
			parts = append(parts, r.styles.ActiveTab.Render(t.label))
		} else {
			parts = append(parts, r.styles.Tab.Render(t.label))
		}
	}
	tabLine := strings.Join(parts, "  ")

	right := ""
	if vs.App.Toast != "" {
		switch vs.App.ToastLevel {
		case state.ToastSuccess:
			right = r.styles.ToastSuccess.Render(vs.App.Toast)
		case state.ToastError:
			right = r.styles.ToastError.Render(vs.App.Toast)
		default:
			right = r.styles.ToastInfo.Render(vs.App.Toast)
		}
	}

	termWidth := vs.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	line := logo + "  " + tabLine
	if right != "" {
		pad := termWidth - 4 - lipgloss.Width(line) - lipgloss.Width(right)
		if pad > 0 {
			line += strings.Repeat(" ", pad) + right
		} else {
			line += "  " + right
		}
	}
	return line
}

// renderHelpContent renders the key reference for the active view.
func (r *Renderer) renderHelpContent(view state.View) string {
	key := r.styles.Label
	desc := r.styles.Value
	section := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)

	var help strings.Builder
	help.WriteString(r.styles.Title.Render("Outlooker Help"))
	help.WriteString("\n")

	row := func(k, d string) {
		help.WriteString(fmt.Sprintf("  %-12s %s\n", key.Render(k), desc.Render(d)))
	}

	help.WriteString(section.Render("Global"))
	help.WriteString("\n")
	row("1/2/3/4", "Accounts / Import / Tags / System")
	row("0", "Verification code lookup")
	row("?", "Toggle this help")
	row("q", "Quit")

	switch view {
	case state.ViewDashboard:
		help.WriteString(section.Render("Accounts"))
		help.WriteString("\n")
		row("↑/↓, j/k", "Move cursor")
		row("←/→, p/n", "Previous / next page")
		row("space", "Toggle row selection")
		row("a / A", "Select all loaded / deselect all")
		row("d", "Delete selected accounts")
		row("t / T", "Add / remove tags on selection")
		row("e", "Edit tags of cursor row")
		row("/", "Search")
		row("f / F", "Filter by cursor row's first tag / clear filter")
		row("g", "Jump to page")
		row("s", "Cycle page size")
		row("r / R", "Reload page / refresh server cache")
		row("L", "Log out")
	case state.ViewImport:
		help.WriteString(section.Render("Import"))
		help.WriteString("\n")
		row("e / i", "Edit import text")
		row("P", "Parse text into a preview")
		row("m", "Toggle merge mode (update/skip)")
		row("v", "View parse error report")
		row("enter", "Commit the previewed import")
	case state.ViewTags:
		help.WriteString(section.Render("Tags"))
		help.WriteString("\n")
		row("↑/↓, j/k", "Move cursor")
		row("enter", "Filter accounts by tag")
		row("r", "Reload")
	case state.ViewSystem:
		help.WriteString(section.Render("System"))
		help.WriteString("\n")
		row("c", "Edit per-account email limit")
		row("r", "Reload metrics")
		row("R", "Refresh server cache")
	case state.ViewVerification:
		help.WriteString(section.Render("Verification"))
		help.WriteString("\n")
		row("enter", "Edit email / fetch latest code")
		row("L", "Admin login")
	}

	return strings.TrimRight(help.String(), "\n")
}

// renderDeleteConfirm renders the batch delete confirmation dialog.
func (r *Renderer) renderDeleteConfirm(vs ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Confirm.Render(fmt.Sprintf("Delete %d account(s)?", vs.DeleteCount)))
	b.WriteString("\n\n")
	if vs.BatchLoading {
		b.WriteString(r.styles.Dim.Render(spinnerFrame() + " Deleting..."))
	} else {
		b.WriteString(r.styles.Help.Render("y/enter: confirm   n/esc: cancel"))
	}
	return b.String()
}

// renderTagModal renders the batch tag editor.
func (r *Renderer) renderTagModal(vs ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Confirm.Render(fmt.Sprintf("Tags for %d account(s)", vs.SelectionCount)))
	b.WriteString("\n\n")

	modes := []domain.TagMode{domain.TagModeAdd, domain.TagModeRemove, domain.TagModeSet}
	parts := make([]string, 0, len(modes))
	for _, m := range modes {
		if m == vs.TagMode {
			parts = append(parts, r.styles.PageActive.Render("["+string(m)+"]"))
		} else {
			parts = append(parts, r.styles.PageInactive.Render(" "+string(m)+" "))
		}
	}
	b.WriteString(strings.Join(parts, " "))
	b.WriteString("\n\n")
	b.WriteString(vs.TextInputView)
	b.WriteString("\n\n")
	if vs.BatchLoading {
		b.WriteString(r.styles.Dim.Render(spinnerFrame() + " Applying..."))
	} else {
		b.WriteString(r.styles.Help.Render("tab: mode   enter: apply   esc: cancel"))
	}
	return b.String()
}
