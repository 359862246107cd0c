package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Confirm        lipgloss.Style
	Dim            lipgloss.Style
	Filter         lipgloss.Style
	Toolbar        lipgloss.Style
	Help           lipgloss.Style
	Main           lipgloss.Style
	Scroll         lipgloss.Style
	Highlight      lipgloss.Style
	Cursor         lipgloss.Style
	Folder         lipgloss.Style
	Checked        lipgloss.Style
	Sidebar        lipgloss.Style
	SidebarItem    lipgloss.Style
	SidebarActive  lipgloss.Style
	Button         lipgloss.Style
	ButtonPrimary  lipgloss.Style
	ButtonDisabled lipgloss.Style
	StatusError    lipgloss.Style
	StatusWarning  lipgloss.Style
	StatusLoading  lipgloss.Style
	StatusSuccess  lipgloss.Style
	InfoBox        lipgloss.Style
	ConfirmBox     lipgloss.Style

	theme Theme
}

// NewStyles builds the styles for a theme
func NewStyles(t Theme) *Styles {
	border := lipgloss.NormalBorder()
	if t.Rounded {
		border = lipgloss.RoundedBorder()
	}
	accent := lipgloss.Color(t.Accent)
	muted := lipgloss.Color(t.Muted)

	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Confirm:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Error)),
		Dim:       lipgloss.NewStyle().Faint(true),
		Filter:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Toolbar:   lipgloss.NewStyle().Foreground(muted),
		Help:      lipgloss.NewStyle().Faint(true),
		Main:      lipgloss.NewStyle().Padding(0, 2),
		Scroll:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Highlight)).Bold(true),
		Cursor:    lipgloss.NewStyle().Background(lipgloss.Color(t.Selection)),
		Folder:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		Checked:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		Sidebar: lipgloss.NewStyle().
			Border(border, false, true, false, false).
			BorderForeground(muted).
			PaddingRight(1),
		SidebarItem:   lipgloss.NewStyle().Foreground(muted),
		SidebarActive: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Button: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("237")),
		ButtonPrimary: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(accent),
		ButtonDisabled: lipgloss.NewStyle().
			Padding(0, 1).
			Faint(true).
			Background(lipgloss.Color("236")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)),
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		StatusLoading: lipgloss.NewStyle().Foreground(muted),
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		InfoBox: lipgloss.NewStyle().
			Border(border).
			Padding(1, 2).
			BorderForeground(accent),
		ConfirmBox: lipgloss.NewStyle().
			Border(border).
			Padding(1, 2).
			BorderForeground(lipgloss.Color(t.Error)),
		theme: t,
	}
}

// Theme returns the theme the styles were built from
func (s *Styles) Theme() Theme {
	return s.theme
}

// DiskStyle colors the disk usage bar by how full it is
func (s *Styles) DiskStyle(percent float64) lipgloss.Style {
	switch {
	case percent > 90:
		return s.StatusError
	case percent > 70:
		return s.StatusWarning
	default:
		return s.StatusSuccess
	}
}
