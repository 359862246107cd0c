package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"filegrip/internal/domain"
	"filegrip/internal/logic"
	"filegrip/internal/ui/input/modes"
)

// chromeLines is every line around the listing: title, toolbar, two
// scroll indicators, footer and status
const chromeLines = 6

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Visible      bool
	Opening      bool
	Path         string
	Entries      []domain.FileEntry
	Selected     map[string]bool
	Selectable   func(domain.FileEntry) bool
	Cursor       int
	ViewportTop  int // first visible row
	ViewportRows int
	Columns      int
	GridView     bool

	SelectedCount  int
	MaxCount       int
	ConfirmEnabled bool
	Disk           domain.DiskSpace

	Loading         bool
	Pending         map[string]int
	LoadError       string
	SearchQuery     string
	SortDescription string
	SidebarFocused  bool
	SidebarIndex    int

	StatusMessage string
	StatusIsError bool

	InputMode       string // empty when no prompt is open
	InputPrompt     string
	TextInput       string
	DeleteTarget    *domain.FileEntry
	PreviewTarget   *domain.FileEntry
	SortOptionIndex int

	ShowHelp         bool
	HelpScrollOffset int
}

// ListRows returns how many listing rows fit in a terminal of height
func ListRows(height int, promptOpen bool) int {
	rows := height - chromeLines
	if promptOpen {
		rows -= 2
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// PaneWidth returns the width left for the listing next to the sidebar
func PaneWidth(width int) int {
	w := width - 4 - SidebarWidth - 2
	if w < 20 {
		w = 20
	}
	return w
}

// GridColumns returns how many grid cells fit in a terminal of width
func GridColumns(width int) int {
	n := PaneWidth(width) / GridCellWidth
	if n < 1 {
		n = 1
	}
	return n
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	fileRender  *FileRenderer
	popupRender *PopupRenderer
	help        help.Model
}

// NewRenderer creates a renderer for a theme
func NewRenderer(theme Theme) *Renderer {
	styles := NewStyles(theme)
	h := help.New()
	h.Styles.ShortKey = h.Styles.ShortKey.Foreground(lipgloss.Color(theme.Accent))
	return &Renderer{
		styles:      styles,
		fileRender:  NewFileRenderer(styles),
		popupRender: NewPopupRenderer(styles),
		help:        h,
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if !state.Visible {
		return ""
	}
	if state.Width <= 0 {
		state.Width = 80
	}
	if state.Height <= 0 {
		state.Height = 24
	}

	content := &strings.Builder{}
	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")
	content.WriteString(r.renderToolbar(state))
	content.WriteString("\n")

	if state.InputMode == "sort" {
		content.WriteString(r.renderSortOptions(state))
		content.WriteString("\n")
	} else if state.InputMode != "" {
		content.WriteString(state.InputPrompt + state.TextInput)
		content.WriteString("\n")
		content.WriteString(r.styles.Dim.Render("Enter to apply • Esc to cancel"))
		content.WriteString("\n")
	}

	rows := state.ViewportRows
	if rows <= 0 {
		rows = ListRows(state.Height, state.InputMode != "")
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		r.renderSidebar(state, rows+2),
		" ",
		r.renderPane(state, rows),
	)
	content.WriteString(body)
	content.WriteString("\n")
	content.WriteString(r.renderFooter(state))
	content.WriteString("\n")
	content.WriteString(r.renderStatus(state))

	finalContent := r.styles.Main.MaxHeight(state.Height).Render(content.String())

	if state.DeleteTarget != nil {
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderDeleteConfirm(*state.DeleteTarget), state.Height, state.Width, r.styles.ConfirmBox)
	}
	if state.PreviewTarget != nil {
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderPreview(*state.PreviewTarget), state.Height, state.Width, r.styles.InfoBox)
	}
	if state.ShowHelp {
		helpContent := r.renderHelpContent(state.Height, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, state.Height, state.Width, r.styles.InfoBox)
	}
	return finalContent
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render(r.styles.theme.Title)

	var indicators []string
	if state.Opening || state.Loading {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		indicators = append(indicators, fmt.Sprintf("%s Loading", spinner[frame]))
	}
	if n := state.Pending["upload"]; n > 0 {
		indicators = append(indicators, fmt.Sprintf("↑ Uploading %d", n))
	}
	if n := state.Pending["delete"]; n > 0 {
		indicators = append(indicators, fmt.Sprintf("✗ Deleting %d", n))
	}
	if n := state.Pending["rename"] + state.Pending["create"]; n > 0 {
		indicators = append(indicators, "↻ Saving")
	}
	if len(indicators) == 0 {
		return logo
	}

	right := r.styles.Dim.Render(strings.Join(indicators, " | "))
	pad := state.Width - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if pad < 2 {
		pad = 2
	}
	return logo + strings.Repeat(" ", pad) + right
}

func (r *Renderer) renderToolbar(state ViewState) string {
	left := r.styles.Folder.Render("▸ " + state.Path)
	if state.SearchQuery != "" {
		left += "  " + r.styles.Filter.Render(fmt.Sprintf("[Search: %s]", state.SearchQuery))
	}

	view := "list"
	if state.GridView {
		view = "grid"
	}
	right := r.styles.Toolbar.Render(fmt.Sprintf("%s • %s", state.SortDescription, view))

	pad := state.Width - 4 - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 2 {
		pad = 2
	}
	return left + strings.Repeat(" ", pad) + right
}

// renderPane renders the listing with one scroll indicator line above and below
func (r *Renderer) renderPane(state ViewState, rows int) string {
	width := PaneWidth(state.Width)
	lines := make([]string, 0, rows+2)

	switch {
	case state.LoadError != "" && len(state.Entries) == 0:
		lines = append(lines, "", r.styles.StatusError.Render(state.LoadError))
	case state.Loading && len(state.Entries) == 0:
		lines = append(lines, "", r.styles.Dim.Render("Loading..."))
	case len(state.Entries) == 0 && state.SearchQuery != "":
		lines = append(lines, "", r.styles.Dim.Render(fmt.Sprintf("No files match %q", state.SearchQuery)))
	case len(state.Entries) == 0:
		lines = append(lines, "", r.styles.Dim.Render("This folder is empty. Press u to upload or n to create a folder."))
	default:
		lines = append(lines, r.renderEntries(state, rows, width)...)
	}

	for len(lines) < rows+2 {
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines[:rows+2], "\n"))
}

func (r *Renderer) renderEntries(state ViewState, rows, width int) []string {
	cols := state.Columns
	if cols < 1 || !state.GridView {
		cols = 1
	}
	totalRows := (len(state.Entries) + cols - 1) / cols

	var lines []string
	if state.ViewportTop > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", state.ViewportTop*cols)))
	} else {
		lines = append(lines, "")
	}

	for row := state.ViewportTop; row < totalRows && row < state.ViewportTop+rows; row++ {
		var line strings.Builder
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(state.Entries) {
				break
			}
			entry := state.Entries[i]
			isCursor := i == state.Cursor && !state.SidebarFocused
			selectable := state.Selectable == nil || state.Selectable(entry)
			checked := state.Selected[entry.ID]
			if state.GridView {
				line.WriteString(r.fileRender.RenderCell(entry, isCursor, checked, selectable, state.SearchQuery))
			} else {
				line.WriteString(r.fileRender.RenderRow(entry, isCursor, checked, selectable, state.SearchQuery, width))
			}
		}
		lines = append(lines, line.String())
	}

	if below := totalRows - (state.ViewportTop + rows); below > 0 {
		for len(lines) < rows+1 {
			lines = append(lines, "")
		}
		items := len(state.Entries) - (state.ViewportTop+rows)*cols
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", items)))
	}
	return lines
}

func (r *Renderer) renderFooter(state ViewState) string {
	var left string
	if state.Disk.TotalSpace > 0 {
		percent := state.Disk.UsagePercent()
		const barWidth = 20
		filled := int(percent / 100 * barWidth)
		bar := r.styles.DiskStyle(percent).Render(strings.Repeat("█", filled)) +
			r.styles.Dim.Render(strings.Repeat("░", barWidth-filled))
		left = fmt.Sprintf("%s %s of %s", bar,
			logic.FormatSize(state.Disk.UsedSpace), logic.FormatSize(state.Disk.TotalSpace))
	}

	counter := fmt.Sprintf("Selected %d of %d", state.SelectedCount, state.MaxCount)
	confirm := r.styles.ButtonDisabled.Render("Select files")
	if state.ConfirmEnabled {
		confirm = r.styles.ButtonPrimary.Render("Select files")
	}
	right := counter + "  " + r.styles.Button.Render("Cancel") + " " + confirm

	pad := state.Width - 4 - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 2 {
		pad = 2
	}
	return left + strings.Repeat(" ", pad) + right
}

func (r *Renderer) renderStatus(state ViewState) string {
	if state.StatusMessage == "" {
		r.help.Width = state.Width - 4
		return r.help.ShortHelpView(shortHelp)
	}
	if state.StatusIsError {
		return r.styles.StatusError.Render(state.StatusMessage)
	}
	return r.styles.StatusSuccess.Render(state.StatusMessage)
}

// renderSortOptions renders the sort mode selection interface
func (r *Renderer) renderSortOptions(state ViewState) string {
	if state.SortOptionIndex < 0 || state.SortOptionIndex >= len(modes.SortOptions) {
		return "\n"
	}
	option := modes.SortOptions[state.SortOptionIndex]
	sortLine := fmt.Sprintf("Sort by: %s - %s (%s)", option.Name, option.Description, state.SortDescription)
	helpLine := r.styles.Dim.Render("↑/↓ or j/k to change • o direction • f folders first • Enter to accept • Esc to cancel")
	return sortLine + "\n" + helpLine
}

func (r *Renderer) renderPreview(entry domain.FileEntry) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(entry.Name))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Type:     %s\n", entry.Type)
	fmt.Fprintf(&b, "Size:     %s\n", logic.FormatSize(entry.Size))
	if !entry.ModifiedAt.IsZero() {
		fmt.Fprintf(&b, "Modified: %s\n", logic.FormatDate(entry.ModifiedAt))
	}
	fmt.Fprintf(&b, "Link:     %s\n", entry.PreviewURL())
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render("Esc or p to close"))
	return b.String()
}

func (r *Renderer) renderDeleteConfirm(entry domain.FileEntry) string {
	kind := "file"
	if entry.IsDirectory {
		kind = "folder"
	}
	return r.styles.Confirm.Render(fmt.Sprintf("Delete %s '%s'?", kind, entry.Name)) +
		"\n\n" + r.styles.Dim.Render("y to delete • n or Esc to keep")
}
