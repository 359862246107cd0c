package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  []key.Binding
}

func bind(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}

var helpSections = []helpSection{
	{"Navigation", []key.Binding{
		bind("↑/↓, j/k", "Move up/down"),
		bind("←/→", "Move left/right in the grid"),
		bind("Enter, l", "Open folder or toggle file"),
		bind("Backspace, h", "Go to parent folder"),
		bind("PgUp/PgDn", "Page up/down"),
		bind("gg/G", "Go to top/bottom"),
		bind("Tab", "Switch between sidebar and files"),
	}},
	{"Selection", []key.Binding{
		bind("Space", "Toggle selection"),
		bind("c", "Clear selection"),
		bind("p", "Preview file link"),
		bind("y, Ctrl+S", "Confirm selection"),
		bind("Esc, q", "Cancel"),
	}},
	{"Files", []key.Binding{
		bind("u", "Upload local files"),
		bind("n", "Create folder"),
		bind("R, F2", "Rename"),
		bind("d, Delete", "Delete"),
		bind("r", "Reload folder"),
	}},
	{"View", []key.Binding{
		bind("/", "Search by name"),
		bind("type:image", "Search term for a file type"),
		bind("s", "Sort options"),
		bind("o", "Toggle sort direction"),
		bind("f", "Toggle folders first"),
		bind("v", "Toggle list/grid"),
		bind("?", "Toggle this help"),
	}},
}

// shortHelp is shown in the status line when there is no message
var shortHelp = []key.Binding{
	key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
	key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// HelpContent renders the whole help text
func (r *Renderer) HelpContent() string {
	titleStyle := r.styles.Title.MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(r.styles.theme.Accent))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render(r.styles.theme.Title + " help"))
	help.WriteString("\n")

	for i, section := range helpSections {
		if i > 0 {
			help.WriteString("\n")
		}
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, b := range section.keys {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-13s", h.Key)), descStyle.Render(h.Desc)))
		}
	}
	return strings.TrimRight(help.String(), "\n")
}

// renderHelpContent renders the part of the help that fits in height
func (r *Renderer) renderHelpContent(height int, scrollOffset int) string {
	lines := strings.Split(r.HelpContent(), "\n")
	totalLines := len(lines)

	// Calculate visible window (account for popup border and padding)
	visibleHeight := height - 6
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	if totalLines <= visibleHeight {
		return strings.Join(lines, "\n")
	}

	maxOffset := totalLines - visibleHeight
	if scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	endLine := scrollOffset + visibleHeight
	visibleLines := append([]string(nil), lines[scrollOffset:endLine]...)
	if scrollOffset > 0 {
		visibleLines[0] = r.styles.Scroll.Render("↑ (more above)")
	}
	if endLine < totalLines {
		visibleLines[len(visibleLines)-1] = r.styles.Scroll.Render("↓ (more below)")
	}
	return strings.Join(visibleLines, "\n")
}
