package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// RenderPopupOverlay centers a popup over greyed-out main content.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	styledPopup := popupStyle.Render(popupContent)
	if lipgloss.Width(styledPopup) > width-6 {
		styledPopup = popupStyle.Width(width - 6).Render(popupContent)
	}

	popupLines := strings.Split(styledPopup, "\n")
	popupW := lipgloss.Width(styledPopup)
	popupH := len(popupLines)

	x := (width - popupW) / 2
	if x < 0 {
		x = 0
	}
	y := (height - popupH) / 2
	if y < 0 {
		y = 0
	}

	// Base layer: strip colors so the popup reads as the only
	// interactive surface, then splice the popup lines in.
	baseLines := strings.Split(mainContent, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}

	out := make([]string, len(baseLines))
	for i, line := range baseLines {
		plain := ansiRE.ReplaceAllString(line, "")
		if i < y || i >= y+popupH {
			out[i] = dimStyle.Render(plain)
			continue
		}
		// Pad the base line so the popup lands at its column
		if len([]rune(plain)) < x {
			plain += strings.Repeat(" ", x-len([]rune(plain)))
		}
		runes := []rune(plain)
		left := string(runes[:x])
		var right string
		if len(runes) > x+popupW {
			right = string(runes[x+popupW:])
		}
		out[i] = dimStyle.Render(left) + popupLines[i-y] + dimStyle.Render(right)
	}

	return strings.Join(out, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)
