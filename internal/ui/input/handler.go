package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"filegrip/internal/ui/input/modes"
	"filegrip/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 255

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeSearch] = modes.NewSearchMode(h.textInput)
	h.modes[types.ModeNewFolder] = modes.NewNewFolderMode(h.textInput)
	h.modes[types.ModeRename] = modes.NewRenameMode(h.textInput)
	h.modes[types.ModeUpload] = modes.NewUploadMode(h.textInput)
	h.modes[types.ModeDeleteConfirm] = modes.NewConfirmMode()
	h.modes[types.ModeSort] = modes.NewSortSelectMode()

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}
		allActions = append(allActions, h.switchMode(changeMode, ctx)...)
		if h.isTextMode(h.currentMode) {
			cmd = textinput.Blink
		}
	}

	// Unhandled keys in a text mode go to the text input
	if h.isTextMode(h.currentMode) && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		// Always append an update action when in text mode to keep view in sync
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

// switchMode leaves the current mode and enters the requested one
func (h *Handler) switchMode(change types.ChangeModeAction, ctx types.Context) []types.Action {
	var out []types.Action
	if cur := h.modes[h.currentMode]; cur != nil {
		out = append(out, cur.Exit(ctx)...)
	}

	oldMode := h.currentMode
	h.currentMode = change.Mode

	if h.isTextMode(h.currentMode) {
		h.textInput.Reset()
		h.textInput.SetValue(change.Data)
		h.textInput.CursorEnd()
		h.textInput.Focus()
	} else if h.isTextMode(oldMode) {
		h.textInput.Blur()
	}

	if next := h.modes[h.currentMode]; next != nil {
		out = append(out, next.Enter(ctx)...)
	}
	return out
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// ModeHandler returns the handler registered for mode
func (h *Handler) ModeHandler(mode types.Mode) types.ModeHandler {
	return h.modes[mode]
}

// TextInput returns the shared input while a text mode is active
func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeSearch, types.ModeNewFolder, types.ModeRename, types.ModeUpload:
		return true
	default:
		return false
	}
}

// IsTextMode reports whether the current mode edits text
func (h *Handler) IsTextMode() bool {
	return h.isTextMode(h.currentMode)
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
