package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"filegrip/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyLeft:
		return []types.Action{types.NavigateAction{Direction: "left"}}, true

	case tea.KeyRight:
		return []types.Action{types.NavigateAction{Direction: "right"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyTab:
		return []types.Action{types.FocusSidebarAction{}}, true

	case tea.KeyBackspace:
		return []types.Action{types.GoUpAction{}}, true

	case tea.KeyEnter:
		if ctx.SidebarFocused() {
			return []types.Action{types.OpenAction{}}, true
		}
		if _, ok := ctx.CurrentEntry(); ok {
			return []types.Action{types.OpenAction{}}, true
		}
		return nil, false

	case tea.KeyCtrlS:
		return []types.Action{types.ConfirmAction{}}, true

	case tea.KeyEsc:
		// Esc clears an active search first, then closes the picker
		if ctx.SearchQuery() != "" {
			return []types.Action{types.ClearSearchAction{}}, true
		}
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "h":
		return []types.Action{types.GoUpAction{}}, true

	case "l":
		if _, ok := ctx.CurrentEntry(); ok {
			return []types.Action{types.OpenAction{}}, true
		}
		return nil, true

	case " ":
		if _, ok := ctx.CurrentEntry(); ok && !ctx.SidebarFocused() {
			return []types.Action{types.ToggleSelectAction{}}, true
		}
		return nil, true

	case "p":
		if entry, ok := ctx.CurrentEntry(); ok && !ctx.SidebarFocused() && !entry.IsDirectory {
			return []types.Action{types.PreviewAction{}}, true
		}
		return nil, true

	case "c":
		if ctx.HasSelection() {
			return []types.Action{types.ClearSelectionAction{}}, true
		}
		return nil, true

	case "y":
		return []types.Action{types.ConfirmAction{}}, true

	case "r":
		return []types.Action{types.RefreshAction{}}, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchQuery()}}, true

	case "n":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNewFolder}}, true

	case "u":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeUpload}}, true

	case "R", "f2":
		if entry, ok := ctx.CurrentEntry(); ok && !ctx.SidebarFocused() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeRename, Data: entry.Name}}, true
		}
		return nil, true

	case "d", "delete":
		if _, ok := ctx.CurrentEntry(); ok && !ctx.SidebarFocused() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeDeleteConfirm}}, true
		}
		return nil, true

	case "s":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSort}}, true

	case "o":
		return []types.Action{types.ToggleSortDirectionAction{}}, true

	case "f":
		return []types.Action{types.ToggleFoldersFirstAction{}}, true

	case "v":
		return []types.Action{types.ToggleViewAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top (within timeout)
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		// First g, wait for next key
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	default:
		// Any other key cancels the 'g' prefix
		m.lastKeyWasG = false
	}

	return nil, false
}
