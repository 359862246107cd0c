package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"filegrip/internal/domain"
	"filegrip/internal/logic"
)

const (
	// GridCellWidth is the width of one grid cell including its gap
	GridCellWidth = 22
	sizeColumn    = 10
	dateColumn    = 10
)

// FileRenderer renders listing entries as list rows or grid cells
type FileRenderer struct {
	styles *Styles
}

// NewFileRenderer creates a new file renderer
func NewFileRenderer(styles *Styles) *FileRenderer {
	return &FileRenderer{styles: styles}
}

// TypeIcon returns a single-cell glyph for the entry type
func TypeIcon(entry domain.FileEntry) string {
	if entry.IsDirectory {
		return "▸"
	}
	switch entry.Type {
	case domain.TypeImage:
		return "◩"
	case domain.TypeVideo:
		return "▶"
	case domain.TypeAudio:
		return "♪"
	case domain.TypeDocument:
		return "≡"
	case domain.TypeArchive:
		return "▤"
	case domain.TypeCode:
		return "λ"
	}
	return "·"
}

// RenderRow renders one list row padded to width
func (r *FileRenderer) RenderRow(entry domain.FileEntry, isCursor, isChecked, selectable bool, query string, width int) string {
	bg := lipgloss.NewStyle()
	if isCursor {
		bg = r.styles.Cursor
	}

	check := "   "
	if selectable {
		check = "[ ]"
		if isChecked {
			check = r.styles.Checked.Inherit(bg).Render("[x]")
		}
	}

	size := ""
	if !entry.IsDirectory {
		size = logic.FormatSize(entry.Size)
	}
	meta := fmt.Sprintf("%*s  %-*s", sizeColumn, size, dateColumn, logic.FormatDate(entry.ModifiedAt))

	nameWidth := width - 3 - 1 - 2 - 1 - lipgloss.Width(meta) - 1
	if nameWidth < 8 {
		// Narrow terminals drop the metadata columns
		meta = ""
		nameWidth = width - 7
	}

	name := r.renderName(entry, query, nameWidth, bg)
	line := fmt.Sprintf("%s %s %s", bg.Render(check), bg.Render(TypeIcon(entry)), name)
	pad := width - lipgloss.Width(line) - lipgloss.Width(meta)
	if pad < 1 {
		pad = 1
	}
	return line + bg.Render(strings.Repeat(" ", pad)+r.styles.Dim.Inherit(bg).Render(meta))
}

// RenderCell renders one grid cell of GridCellWidth
func (r *FileRenderer) RenderCell(entry domain.FileEntry, isCursor, isChecked, selectable bool, query string) string {
	bg := lipgloss.NewStyle()
	if isCursor {
		bg = r.styles.Cursor
	}

	mark := " "
	if selectable && isChecked {
		mark = r.styles.Checked.Inherit(bg).Render("✓")
	}

	name := r.renderName(entry, query, GridCellWidth-6, bg)
	cell := fmt.Sprintf("%s %s %s", mark, bg.Render(TypeIcon(entry)), name)
	pad := GridCellWidth - 1 - lipgloss.Width(cell)
	if pad < 0 {
		pad = 0
	}
	return cell + bg.Render(strings.Repeat(" ", pad)) + " "
}

func (r *FileRenderer) renderName(entry domain.FileEntry, query string, width int, bg lipgloss.Style) string {
	name := entry.Name
	if entry.IsDirectory {
		name += "/"
	}
	if width > 0 {
		name = ansi.Truncate(name, width, "…")
	}

	style := bg
	if entry.IsDirectory {
		style = r.styles.Folder.Inherit(bg)
	}
	if query != "" && strings.Contains(strings.ToLower(name), strings.ToLower(query)) {
		return highlightMatch(name, query, r.styles.Highlight.Inherit(bg), style)
	}
	return style.Render(name)
}

// highlightMatch renders the first case-insensitive match of query in text
func highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	index := strings.Index(strings.ToLower(text), strings.ToLower(query))
	if index == -1 || index+len(query) > len(text) {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}
	return strings.Join(result, "")
}
