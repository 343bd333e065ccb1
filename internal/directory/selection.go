package directory

import (
	"sync"

	"localspot/internal/model"
)

// Selection tracks which single listing is active for detail display.
// It is independent of the map: opening the drawer never moves the map,
// and panning never closes the drawer.
type Selection struct {
	mu       sync.Mutex
	selected *model.Business
}

func NewSelection() *Selection { return &Selection{} }

// Select makes b the active listing.
func (s *Selection) Select(b model.Business) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &b
}

// Clear resets the selection to none.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Selected returns a copy of the active listing, or false when none.
func (s *Selection) Selected() (model.Business, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return model.Business{}, false
	}
	return *s.selected, true
}
