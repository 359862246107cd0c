package navigation

import (
	"filegrip/internal/ui/services/events"
)

// Service moves the cursor over the visible listing and keeps it in view
type Service struct {
	state    *State
	cursor   events.Publisher[CursorMovedEvent]
	viewport events.Publisher[ViewportChangedEvent]
	countFn  func() int // number of visible items
}

// NewService creates a new navigation service. Nil publishers drop events.
func NewService(cursor events.Publisher[CursorMovedEvent], viewport events.Publisher[ViewportChangedEvent]) *Service {
	if cursor == nil {
		cursor = events.NullPublisher[CursorMovedEvent]{}
	}
	if viewport == nil {
		viewport = events.NullPublisher[ViewportChangedEvent]{}
	}
	return &Service{
		state: &State{
			ViewportHeight: 20, // Default, will be updated
			Columns:        1,
		},
		cursor:   cursor,
		viewport: viewport,
	}
}

// SetCountFunction sets the function reporting how many items are visible
func (s *Service) SetCountFunction(fn func() int) {
	s.countFn = fn
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// GetViewportOffset returns the first visible row
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns the number of visible rows
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates the number of rows the listing can show
func (s *Service) SetViewportHeight(rows int) {
	if rows < 1 {
		rows = 1
	}
	s.state.ViewportHeight = rows
	s.ensureVisible()
}

// Columns returns the items per row
func (s *Service) Columns() int {
	return s.state.Columns
}

// SetColumns switches between list (1) and grid layouts
func (s *Service) SetColumns(n int) {
	if n < 1 {
		n = 1
	}
	s.state.Columns = n
	s.ensureVisible()
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	s.refreshMax()
	oldCursor := s.state.Cursor

	switch direction {
	case DirectionUp:
		s.step(-s.state.Columns)
	case DirectionDown:
		s.step(s.state.Columns)
	case DirectionLeft:
		if s.state.Columns > 1 {
			s.step(-1)
		}
	case DirectionRight:
		if s.state.Columns > 1 {
			s.step(1)
		}
	case DirectionPageUp:
		s.pageUp()
	case DirectionPageDown:
		s.pageDown()
	case DirectionHome:
		s.moveToStart()
	case DirectionEnd:
		s.moveToEnd()
	}

	s.publishMove(oldCursor)
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	s.refreshMax()
	oldCursor := s.state.Cursor
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()
	s.publishMove(oldCursor)
}

// Reset puts the cursor back on the first item
func (s *Service) Reset() {
	oldCursor := s.state.Cursor
	s.state.Cursor = 0
	s.state.ViewportOffset = 0
	s.publishMove(oldCursor)
}

// Clamp keeps the cursor inside a listing that may have shrunk
func (s *Service) Clamp() {
	s.MoveToIndex(s.state.Cursor)
}

func (s *Service) publishMove(oldCursor int) {
	if oldCursor != s.state.Cursor {
		s.cursor.Publish(CursorMovedEvent{
			OldIndex: oldCursor,
			NewIndex: s.state.Cursor,
		})
	}
}

func (s *Service) step(delta int) {
	target := s.state.Cursor + delta
	if target < 0 || target > s.state.MaxIndex {
		return
	}
	s.state.Cursor = target
	s.ensureVisible()
}

func (s *Service) pageUp() {
	pageSize := (s.state.ViewportHeight - 1) * s.state.Columns
	if pageSize < 1 {
		pageSize = s.state.Columns
	}
	s.state.Cursor = s.clampIndex(s.state.Cursor - pageSize)

	// Also scroll viewport up
	s.state.ViewportOffset -= s.state.ViewportHeight - 1
	if s.state.ViewportOffset < 0 {
		s.state.ViewportOffset = 0
	}
	s.ensureVisible()
}

func (s *Service) pageDown() {
	pageSize := (s.state.ViewportHeight - 1) * s.state.Columns
	if pageSize < 1 {
		pageSize = s.state.Columns
	}
	s.state.Cursor = s.clampIndex(s.state.Cursor + pageSize)
	s.ensureVisible()
}

func (s *Service) moveToStart() {
	s.state.Cursor = 0
	if s.state.ViewportOffset != 0 {
		s.state.ViewportOffset = 0
		s.publishViewport()
	}
}

func (s *Service) moveToEnd() {
	s.state.Cursor = s.state.MaxIndex
	s.ensureVisible()
}

func (s *Service) refreshMax() {
	if s.countFn == nil {
		return
	}
	s.state.MaxIndex = s.countFn() - 1
	if s.state.MaxIndex < 0 {
		s.state.MaxIndex = 0
	}
}

func (s *Service) clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if index > s.state.MaxIndex {
		return s.state.MaxIndex
	}
	return index
}

func (s *Service) ensureVisible() {
	row := s.state.Cursor / s.state.Columns
	if row < s.state.ViewportOffset {
		s.state.ViewportOffset = row
		s.publishViewport()
	} else if row >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = row - s.state.ViewportHeight + 1
		s.publishViewport()
	}
}

func (s *Service) publishViewport() {
	s.viewport.Publish(ViewportChangedEvent{
		Offset: s.state.ViewportOffset,
		Height: s.state.ViewportHeight,
	})
}
