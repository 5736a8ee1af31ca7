package views

import (
	"fmt"
	"strings"
)

// renderVerification renders the end-user code lookup page. It is the
// default view and needs no admin token.
func (r *Renderer) renderVerification(vs ViewState) string {
	var b strings.Builder

	b.WriteString(r.styles.Header.Render("Verification code lookup"))
	b.WriteString("\n\n")

	if vs.InputMode == "email" {
		b.WriteString(r.styles.Label.Render("Email: "))
		b.WriteString(vs.TextInputView)
	} else {
		email := vs.App.VerificationEmail
		if email == "" {
			email = r.styles.Dim.Render("press enter to type an email")
		}
		b.WriteString(r.styles.Label.Render("Email: "))
		b.WriteString(email)
	}
	b.WriteString("\n\n")

	switch {
	case vs.App.VerifyLoading:
		b.WriteString(r.styles.Dim.Render(spinnerFrame() + " Checking the mailbox..."))
	case vs.App.VerificationResult != nil:
		code := vs.App.VerificationResult
		b.WriteString(r.styles.PageActive.Render("  " + code.Code + "  "))
		b.WriteString("\n\n")
		if code.Sender != "" {
			b.WriteString(r.styles.Dim.Render(fmt.Sprintf("from %s", code.Sender)))
			b.WriteString("\n")
		}
		if !code.ReceivedAt.IsZero() {
			b.WriteString(r.styles.Dim.Render("received " + code.ReceivedAt.Format("15:04:05")))
			b.WriteString("\n")
		}
	default:
		b.WriteString(r.styles.Dim.Render("Enter the email address to fetch its latest verification code."))
	}

	b.WriteString("\n\n")
	b.WriteString(r.styles.Help.Render("enter: edit/fetch   L: admin login"))
	return b.String()
}

// renderLogin renders the admin password prompt.
func (r *Renderer) renderLogin(vs ViewState) string {
	var b strings.Builder

	b.WriteString(r.styles.Header.Render("Admin login"))
	b.WriteString("\n\n")

	if vs.InputMode == "login" {
		b.WriteString(r.styles.Label.Render("Password: "))
		b.WriteString(vs.TextInputView)
	} else {
		b.WriteString(r.styles.Dim.Render("Press enter to type the admin password."))
	}
	b.WriteString("\n\n")

	if vs.App.LoginLoading {
		b.WriteString(r.styles.Dim.Render(spinnerFrame() + " Signing in..."))
		b.WriteString("\n")
	}
	if vs.App.LoginAttempts > 0 {
		b.WriteString(r.styles.ToastError.Render(fmt.Sprintf("Wrong password (%d attempt(s))", vs.App.LoginAttempts)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.styles.Help.Render("enter: submit   esc: cancel   0: back to verification"))
	return b.String()
}

// renderImport renders the text import workflow: paste, parse, commit.
func (r *Renderer) renderImport(vs ViewState) string {
	var b strings.Builder

	b.WriteString(r.styles.Header.Render("Import accounts"))
	b.WriteString("\n\n")

	if vs.ImportEditor != "" {
		b.WriteString(vs.ImportEditor)
		b.WriteString("\n\n")
		b.WriteString(r.styles.Help.Render("esc: done editing"))
		return b.String()
	}

	if vs.App.ImportText == "" {
		b.WriteString(r.styles.Dim.Render("No import text. Press e to paste account lines (email----password----client_id----refresh_token)."))
	} else {
		lines := strings.Split(vs.App.ImportText, "\n")
		shown := lines
		if len(shown) > 8 {
			shown = shown[:8]
		}
		for _, line := range shown {
			b.WriteString(r.styles.Value.Render(truncate(line, 76)))
			b.WriteString("\n")
		}
		if len(lines) > 8 {
			b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("… %d more line(s)", len(lines)-8)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if vs.App.ImportLoading {
		b.WriteString(r.styles.Dim.Render(spinnerFrame() + " Working..."))
		b.WriteString("\n\n")
	}

	if p := vs.App.ImportPreview; p != nil {
		b.WriteString(r.styles.Header.Render("Preview"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  parsed: %s   errors: %s   merge: %s\n",
			r.styles.ToastSuccess.Render(fmt.Sprintf("%d", p.ParsedCount)),
			r.errorCount(p.ErrorCount),
			r.styles.Label.Render(string(vs.App.MergeMode))))
		for i, acct := range p.Accounts {
			if i >= 5 {
				b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("  … %d more", len(p.Accounts)-5)))
				b.WriteString("\n")
				break
			}
			b.WriteString("  " + r.styles.Value.Render(acct.Email) + "\n")
		}
		b.WriteString("\n")
	}

	if res := vs.App.ImportResult; res != nil {
		b.WriteString(r.styles.Header.Render("Result"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  added %d, updated %d, skipped %d, failed %d\n",
			res.AddedCount, res.UpdatedCount, res.SkippedCount, res.ErrorCount))
		b.WriteString("\n")
	}

	b.WriteString(r.styles.Help.Render("e: edit text   P: parse   m: merge mode   v: error report   enter: commit"))
	return b.String()
}

func (r *Renderer) errorCount(n int) string {
	if n > 0 {
		return r.styles.ToastError.Render(fmt.Sprintf("%d", n))
	}
	return r.styles.Value.Render("0")
}

// renderTags renders the tag index with per-tag account counts.
func (r *Renderer) renderTags(vs ViewState) string {
	var b strings.Builder

	b.WriteString(r.styles.Header.Render("Tags"))
	b.WriteString("\n\n")

	if len(vs.TagNames) == 0 {
		b.WriteString(r.styles.Dim.Render("No tags on the loaded accounts."))
		b.WriteString("\n")
	}
	for i, name := range vs.TagNames {
		cursor := " "
		style := r.styles.Row
		if i == vs.App.TagIndex {
			cursor = ">"
			style = r.styles.CursorRow
		}
		line := fmt.Sprintf("%s %-24s %d", cursor, truncate(name, 24), vs.TagCounts[name])
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.styles.Help.Render("enter: filter accounts by tag   r: reload"))
	return b.String()
}

// renderSystem renders server configuration and cache metrics.
func (r *Renderer) renderSystem(vs ViewState) string {
	var b strings.Builder

	b.WriteString(r.styles.Header.Render("System"))
	b.WriteString("\n\n")

	if vs.InputMode == "email-limit" {
		b.WriteString(r.styles.Label.Render("Email limit: "))
		b.WriteString(vs.TextInputView)
		b.WriteString("\n\n")
	}

	if cfg := vs.App.SystemConfig; cfg != nil {
		b.WriteString(r.styles.Label.Render("Email limit per account: "))
		b.WriteString(r.styles.Value.Render(fmt.Sprintf("%d", cfg.EmailLimit)))
		if vs.App.SavingConfig {
			b.WriteString("  " + r.styles.Dim.Render(spinnerFrame()+" saving"))
		}
		b.WriteString("\n\n")
	}

	if m := vs.App.Metrics; m != nil {
		b.WriteString(r.styles.Header.Render("Cache metrics"))
		b.WriteString("\n")
		rows := [][2]string{
			{"hits", fmt.Sprintf("%d", m.CacheHits)},
			{"misses", fmt.Sprintf("%d", m.CacheMisses)},
			{"clients reused", fmt.Sprintf("%d", m.ClientsReused)},
			{"clients created", fmt.Sprintf("%d", m.ClientsCreated)},
		}
		for _, row := range rows {
			b.WriteString(fmt.Sprintf("  %-16s %s\n", r.styles.Label.Render(row[0]), r.styles.Value.Render(row[1])))
		}
		if m.Warning != "" {
			b.WriteString("\n")
			b.WriteString(r.styles.Warning.Render("⚠ " + m.Warning))
			b.WriteString("\n")
		}
	} else if !vs.App.RefreshingCache {
		b.WriteString(r.styles.Dim.Render("No metrics loaded. Press r to load."))
		b.WriteString("\n")
	}

	if vs.App.RefreshingCache {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render(spinnerFrame() + " Refreshing server cache..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.styles.Help.Render("c: email limit   r: reload metrics   R: refresh server cache"))
	return b.String()
}

// renderRecovery is shown after a panic in the update loop was caught.
func (r *Renderer) renderRecovery(vs ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.ToastError.Render("The interface hit an unexpected error and was reset."))
	b.WriteString("\n\n")
	if vs.App.PanicMessage != "" {
		b.WriteString(r.styles.Dim.Render(truncate(vs.App.PanicMessage, 120)))
		b.WriteString("\n\n")
	}
	b.WriteString(r.styles.Help.Render("enter: reload the dashboard   q: quit"))
	return b.String()
}
