package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"localspot/internal/model"
)

// DefaultZoom is the zoom level applied whenever the view recenters.
const DefaultZoom = 14

// RecenterFunc is the one-directional hook into the map rendering
// collaborator. It fires only on the two recenter triggers (initial
// location fix, manual re-locate), never on user pan or zoom, so the
// anchor cannot fight the renderer's own camera handlers.
type RecenterFunc func(center model.Coordinate, zoom int)

// MapController owns the view anchor, the locating flags, and the draft
// pin used while composing a submission.
//
// The anchor (Center) is the authoritative "where the map should be
// centered", distinct from the transient camera position the rendering
// collaborator tracks during manual panning. User pans never write back
// into the anchor.
type MapController struct {
	mu      sync.Mutex
	locator Locator
	logger  Logger

	center          model.Coordinate
	zoom            int
	hasLiveLocation bool
	isLocating      bool

	draft     model.Coordinate
	draftOpen bool

	onRecenter RecenterFunc
}

// NewMapController creates a controller anchored at the given default
// center, used before any location resolves.
func NewMapController(locator Locator, defaultCenter model.Coordinate, logger Logger) *MapController {
	return &MapController{
		locator: locator,
		logger:  logger,
		center:  defaultCenter,
		zoom:    DefaultZoom,
	}
}

// SetOnRecenter registers the rendering collaborator's recenter hook.
func (m *MapController) SetOnRecenter(fn RecenterFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRecenter = fn
}

// Locate performs one position query and, on success, snaps the anchor to
// the resolved coordinate and recenters the view at the fixed zoom. This
// may recur (manual re-locate) and always recenters, overriding any manual
// pan the user had performed.
//
// On failure the last-known anchor is left unchanged, the locating flag
// resets, and the failure is logged; there is no retry loop. A call while
// a query is already pending is a no-op.
func (m *MapController) Locate(ctx context.Context) error {
	m.mu.Lock()
	if m.isLocating {
		m.mu.Unlock()
		m.logger.Debug("locate already in flight")
		return nil
	}
	m.isLocating = true
	m.mu.Unlock()

	coord, err := m.locator.CurrentPosition(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.isLocating = false

	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			m.logger.Warn("geolocation unsupported on this platform")
		} else {
			m.logger.Error("geolocation failed", "error", err)
		}
		return fmt.Errorf("locating: %w", err)
	}
	if !coord.Valid() {
		m.logger.Error("locator returned out-of-range coordinate", "latitude", coord.Latitude, "longitude", coord.Longitude)
		return fmt.Errorf("locating: coordinate out of range")
	}

	m.center = coord
	m.hasLiveLocation = true
	m.zoom = DefaultZoom
	if m.onRecenter != nil {
		m.onRecenter(m.center, m.zoom)
	}
	m.logger.Info("recentered on live location", "latitude", coord.Latitude, "longitude", coord.Longitude)
	return nil
}

// Center returns the current anchor.
func (m *MapController) Center() model.Coordinate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.center
}

// HasLiveLocation reports whether a geolocation fix has ever succeeded.
// It gates the "you are here" indicator and is never set by a pan.
func (m *MapController) HasLiveLocation() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasLiveLocation
}

// IsLocating reports whether a position query is in flight. The design
// expects the trigger control to be disabled while true.
func (m *MapController) IsLocating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isLocating
}

// OpenDraft starts the draft-pin sub-state, initialized to the current
// anchor. Active only while the submission form is open.
func (m *MapController) OpenDraft() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = m.center
	m.draftOpen = true
}

// MoveDraft overwrites the draft pin with a new coordinate. This is the
// handler for both drag-end and click-on-map events from the renderer.
// Out-of-range or draft-closed moves are ignored.
func (m *MapController) MoveDraft(c model.Coordinate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.draftOpen || !c.Valid() {
		return
	}
	m.draft = c
}

// Draft returns the draft pin coordinate and whether a draft is active.
func (m *MapController) Draft() (model.Coordinate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft, m.draftOpen
}

// CloseDraft discards the draft pin. The draft is never merged back into
// the anchor.
func (m *MapController) CloseDraft() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draftOpen = false
}
