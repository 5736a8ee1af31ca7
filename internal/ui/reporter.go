package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"outlooker/internal/domain"
)

// Reporter shows the import parse error report in a scrollable pager.
type Reporter struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewReporter creates a new reporter instance
func NewReporter() *Reporter {
	return &Reporter{}
}

// SetProgram sets the program reference for terminal management
func (r *Reporter) SetProgram(p *tea.Program) {
	r.program = p
}

// BuildErrorReport renders the parse errors of a preview as pager content.
func (r *Reporter) BuildErrorReport(preview domain.ImportPreview) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	lineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Import parse report: %d ok, %d failed", preview.ParsedCount, preview.ErrorCount)))
	b.WriteString("\n\n")
	for i, e := range preview.Errors {
		b.WriteString(lineStyle.Render(fmt.Sprintf("%3d. ", i+1)))
		b.WriteString(errStyle.Render(e))
		b.WriteString("\n")
	}
	if len(preview.Errors) == 0 {
		b.WriteString("No errors.\n")
	}
	return b.String()
}

// ShowInPager shows the report using the ov pager
func (r *Reporter) ShowInPager(content string) error {
	if r.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := r.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = r.program.RestoreTerminal()
	}()

	reader := strings.NewReader(content)
	root, err := oviewer.NewRoot(reader)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	// Run the oviewer (this will take over the terminal)
	return root.Run()
}
