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

// RenderPopupOverlay draws the popup centered over a greyed out copy of the main content
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	if width <= 0 || height <= 0 {
		return styledPopup
	}

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	popupLines := strings.Split(styledPopup, "\n")
	if len(popupLines) > height {
		popupLines = popupLines[:height]
	}
	top := (height - len(popupLines)) / 2

	for i, line := range popupLines {
		base[top+i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}
	return strings.Join(base[:height], "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(s, "\n")
	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		if plain := ansiRE.ReplaceAllString(line, ""); plain != "" {
			lines[i] = gray.Render(plain)
		} else {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}
