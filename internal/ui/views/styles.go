package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Tab          lipgloss.Style
	ActiveTab    lipgloss.Style
	Dim          lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
	Header       lipgloss.Style
	Row          lipgloss.Style
	CursorRow    lipgloss.Style
	SelectedRow  lipgloss.Style
	Tag          lipgloss.Style
	PageActive   lipgloss.Style
	PageInactive lipgloss.Style
	PageDisabled lipgloss.Style
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	Warning      lipgloss.Style
	Confirm      lipgloss.Style
	ModalBox     lipgloss.Style
	InfoBox      lipgloss.Style
	Label        lipgloss.Style
	Value        lipgloss.Style
	Scroll       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		ActiveTab: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Dim:       lipgloss.NewStyle().Faint(true),
		Help:      lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2).
			MaxHeight(100), // adjusted per resize
		Header:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Row:          lipgloss.NewStyle(),
		CursorRow:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		SelectedRow:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Tag:          lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		PageActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		PageInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		PageDisabled: lipgloss.NewStyle().Faint(true),
		ToastInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		ToastSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		ToastError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Warning:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Confirm:      lipgloss.NewStyle().Bold(true),
		ModalBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("203")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("241")),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Value:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Scroll: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}
