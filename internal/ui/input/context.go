package input

import (
	"filegrip/internal/browser"
	"filegrip/internal/domain"
	"filegrip/internal/ui/modal"
	"filegrip/internal/ui/services/navigation"
	"filegrip/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State     *state.AppState
	Browser   *browser.Controller
	Navigator *navigation.Service
	Modal     *modal.Modal

	visible []domain.FileEntry
}

// NewModelContext snapshots the visible listing once per key press
func NewModelContext(st *state.AppState, b *browser.Controller, nav *navigation.Service, m *modal.Modal) *ModelContext {
	return &ModelContext{
		State:     st,
		Browser:   b,
		Navigator: nav,
		Modal:     m,
		visible:   b.Visible(),
	}
}

// CurrentIndex returns the cursor position
func (c *ModelContext) CurrentIndex() int {
	return c.Navigator.GetCursor()
}

// TotalItems returns the total number of visible items
func (c *ModelContext) TotalItems() int {
	return len(c.visible)
}

// HasSelection returns true if any files are selected
func (c *ModelContext) HasSelection() bool {
	return c.Browser.Selection().Len() > 0
}

// SelectedCount returns the number of selected files
func (c *ModelContext) SelectedCount() int {
	return c.Browser.Selection().Len()
}

// CurrentEntry returns the entry under the cursor
func (c *ModelContext) CurrentEntry() (domain.FileEntry, bool) {
	i := c.CurrentIndex()
	if i < 0 || i >= len(c.visible) {
		return domain.FileEntry{}, false
	}
	return c.visible[i], true
}

// SidebarFocused reports whether keys go to the sidebar
func (c *ModelContext) SidebarFocused() bool {
	return c.State.SidebarFocused
}

// SearchQuery returns the active name filter
func (c *ModelContext) SearchQuery() string {
	return c.Browser.Query()
}

// CurrentSort returns the active sort key
func (c *ModelContext) CurrentSort() string {
	return c.Browser.Sorting().Config().Key.String()
}

// ConfirmEnabled reports whether the dialog can be confirmed
func (c *ModelContext) ConfirmEnabled() bool {
	return c.Modal.ConfirmEnabled()
}
