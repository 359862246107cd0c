package views

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SidebarWidth is the width of the shortcut column without its border
const SidebarWidth = 16

// Shortcut is a fixed sidebar entry that jumps to a folder
type Shortcut struct {
	Label string
	Icon  string
	Path  string
}

// Shortcuts are the sidebar entries, in display order
var Shortcuts = []Shortcut{
	{Label: "All files", Icon: "⌂", Path: "/"},
	{Label: "Images", Icon: "◩", Path: "/images"},
	{Label: "Documents", Icon: "≡", Path: "/documents"},
	{Label: "Videos", Icon: "▶", Path: "/videos"},
	{Label: "Audio", Icon: "♪", Path: "/audio"},
	{Label: "Trash", Icon: "✗", Path: "/trash"},
}

// ShortcutIndex returns the shortcut for dir, or -1
func ShortcutIndex(dir string) int {
	for i, s := range Shortcuts {
		if s.Path == dir {
			return i
		}
	}
	return -1
}

func (r *Renderer) renderSidebar(state ViewState, height int) string {
	active := ShortcutIndex(state.Path)
	lines := make([]string, 0, height)
	for i, s := range Shortcuts {
		label := ansi.Truncate(s.Icon+" "+s.Label, SidebarWidth-2, "…")
		prefix := "  "
		if state.SidebarFocused && i == state.SidebarIndex {
			prefix = "> "
		}

		style := r.styles.SidebarItem
		if i == active {
			style = r.styles.SidebarActive
		}
		if state.SidebarFocused && i == state.SidebarIndex {
			style = style.Inherit(r.styles.Cursor)
		}
		lines = append(lines, style.Render(prefix+label))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return r.styles.Sidebar.Width(SidebarWidth).Render(strings.Join(lines, "\n"))
}
