package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"outlooker/internal/ui/services/pagination"
)

// renderDashboard renders the accounts table with its pagination bar.
func (r *Renderer) renderDashboard(vs ViewState) string {
	var b strings.Builder

	switch vs.InputMode {
	case "search":
		b.WriteString(r.styles.Label.Render("Search: "))
		b.WriteString(vs.TextInputView)
		b.WriteString("\n\n")
	case "jump":
		b.WriteString(r.styles.Label.Render("Go to page: "))
		b.WriteString(vs.TextInputView)
		b.WriteString("\n\n")
	case "row-tags":
		b.WriteString(r.styles.Label.Render(fmt.Sprintf("Tags for %s: ", vs.App.CurrentEmail())))
		b.WriteString(vs.TextInputView)
		b.WriteString("\n\n")
	}

	b.WriteString(r.renderStatusLine(vs))
	b.WriteString("\n\n")

	if len(vs.App.Page.Accounts) == 0 {
		if vs.App.LoadingAccounts {
			b.WriteString(r.styles.Dim.Render(spinnerFrame() + " Loading accounts..."))
		} else {
			b.WriteString(r.styles.Dim.Render("No accounts. Press 2 to import, or / to change the search."))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(r.renderAccountTable(vs))
	}

	b.WriteString("\n")
	b.WriteString(r.renderPaginationBar(vs))

	return b.String()
}

// renderStatusLine summarizes the query, totals and background activity.
func (r *Renderer) renderStatusLine(vs ViewState) string {
	parts := []string{
		fmt.Sprintf("%d accounts", vs.App.Page.Total),
		fmt.Sprintf("page %d/%d", vs.App.Page.Page, max(vs.App.Page.TotalPages, 1)),
		fmt.Sprintf("size %d", vs.App.Query.PageSize),
	}
	if vs.SelectionCount > 0 {
		parts = append(parts, r.styles.SelectedRow.Render(fmt.Sprintf("%d selected", vs.SelectionCount)))
	}
	if vs.App.Query.Search != "" {
		parts = append(parts, r.styles.Label.Render(fmt.Sprintf("search: %q", vs.App.Query.Search)))
	}
	if vs.App.Query.Tag != "" {
		parts = append(parts, r.styles.Tag.Render(fmt.Sprintf("tag: %s", vs.App.Query.Tag)))
	}
	if vs.App.FromCache {
		parts = append(parts, r.styles.Dim.Render("cached"))
	}
	if vs.App.LoadingAccounts {
		parts = append(parts, r.styles.Dim.Render(spinnerFrame()+" loading"))
	}
	if vs.App.RefreshingCache {
		parts = append(parts, r.styles.Dim.Render(spinnerFrame()+" refreshing cache"))
	}
	if vs.App.UpdatingRowTags {
		parts = append(parts, r.styles.Dim.Render(spinnerFrame()+" saving tags"))
	}
	return strings.Join(parts, "  ·  ")
}

func (r *Renderer) renderAccountTable(vs ViewState) string {
	emailW := 36
	tagsW := 24
	remarkW := 20

	var b strings.Builder
	header := fmt.Sprintf("   %-*s", emailW, "EMAIL")
	if vs.ShowTags {
		header += fmt.Sprintf("  %-*s", tagsW, "TAGS")
	}
	if vs.ShowRemarks {
		header += fmt.Sprintf("  %-*s", remarkW, "REMARK")
	}
	header += "  CREATED"
	b.WriteString(r.styles.Header.Render(header))
	b.WriteString("\n")

	for i, acct := range vs.App.Page.Accounts {
		marker := " "
		if vs.Selected[acct.Email] {
			marker = "✓"
		}
		cursor := " "
		if i == vs.App.SelectedIndex {
			cursor = ">"
		}

		line := fmt.Sprintf("%s%s %-*s", cursor, marker, emailW, truncate(acct.Email, emailW))
		if vs.ShowTags {
			line += fmt.Sprintf("  %-*s", tagsW, truncate(strings.Join(acct.Tags, ","), tagsW))
		}
		if vs.ShowRemarks {
			line += fmt.Sprintf("  %-*s", remarkW, truncate(acct.Remark, remarkW))
		}
		created := ""
		if !acct.CreatedAt.IsZero() {
			created = acct.CreatedAt.Format("2006-01-02")
		}
		line += "  " + created

		style := r.styles.Row
		switch {
		case i == vs.App.SelectedIndex:
			style = r.styles.CursorRow
		case vs.Selected[acct.Email]:
			style = r.styles.SelectedRow
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// renderPaginationBar draws prev/next arrows and the page window.
// Ellipsis slots are visual only and never respond to input.
func (r *Renderer) renderPaginationBar(vs ViewState) string {
	if vs.App.Page.TotalPages <= 0 {
		return ""
	}

	var parts []string
	if vs.CanPrev {
		parts = append(parts, r.styles.PageInactive.Render("‹ prev"))
	} else {
		parts = append(parts, r.styles.PageDisabled.Render("‹ prev"))
	}

	for _, n := range vs.PageNumbers {
		switch {
		case n == pagination.Ellipsis:
			parts = append(parts, r.styles.PageDisabled.Render("…"))
		case n == vs.App.Page.Page:
			parts = append(parts, r.styles.PageActive.Render(fmt.Sprintf("[%d]", n)))
		default:
			parts = append(parts, r.styles.PageInactive.Render(fmt.Sprintf(" %d ", n)))
		}
	}

	if vs.CanNext {
		parts = append(parts, r.styles.PageInactive.Render("next ›"))
	} else {
		parts = append(parts, r.styles.PageDisabled.Render("next ›"))
	}

	bar := strings.Join(parts, " ")
	hint := r.styles.Help.Render("g: go to page   s: page size")
	return bar + "   " + hint
}

func truncate(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	return string(runes[:w-1]) + "…"
}
