package viewmodels

import (
	"github.com/charmbracelet/bubbles/textinput"

	"filegrip/internal/ui/input/types"
)

// InputTransformer turns the active input mode into prompt text for the view
type InputTransformer struct {
	mode      types.Mode
	textInput textinput.Model
}

// NewInputTransformer creates a new input transformer
func NewInputTransformer(textInput textinput.Model) *InputTransformer {
	return &InputTransformer{
		mode:      types.ModeNormal,
		textInput: textInput,
	}
}

// SetMode sets the current input mode
func (it *InputTransformer) SetMode(mode types.Mode) {
	it.mode = mode
}

// GetPrompt returns the label shown in front of the text input
func (it *InputTransformer) GetPrompt() string {
	switch it.mode {
	case types.ModeSearch:
		return "Search: "
	case types.ModeNewFolder:
		return "New folder name: "
	case types.ModeRename:
		return "Rename to: "
	case types.ModeUpload:
		return "Upload files (comma separated paths): "
	}
	return ""
}

// GetInputText returns the rendered text input, or "" outside text modes
func (it *InputTransformer) GetInputText() string {
	if it.GetPrompt() == "" {
		return ""
	}
	return it.textInput.View()
}

// GetInputModeString returns the mode name the renderer switches on.
// Delete confirmation is drawn as a popup, not a prompt line.
func (it *InputTransformer) GetInputModeString() string {
	switch it.mode {
	case types.ModeNormal, types.ModeDeleteConfirm:
		return ""
	}
	return it.mode.String()
}
