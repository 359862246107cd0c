package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"filegrip/internal/ui/input/types"
)

// SearchMode filters the listing by name while typing
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}
