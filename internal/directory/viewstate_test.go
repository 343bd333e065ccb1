package directory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"localspot/internal/directory"
	"localspot/internal/model"
	"localspot/internal/testutil"
)

var defaultCenter = model.Coordinate{Latitude: 40.7128, Longitude: -74.0060}

func TestMapController_Locate(t *testing.T) {
	t.Run("success snaps the anchor and recenters", func(t *testing.T) {
		resolved := model.Coordinate{Latitude: 51.5072, Longitude: -0.1276}
		locator := testutil.NewStubLocator(resolved)
		m := directory.NewMapController(locator, defaultCenter, directory.NewNopLogger())

		var recenters []model.Coordinate
		m.SetOnRecenter(func(c model.Coordinate, zoom int) {
			if zoom != directory.DefaultZoom {
				t.Errorf("recenter zoom = %d, want %d", zoom, directory.DefaultZoom)
			}
			recenters = append(recenters, c)
		})

		if err := m.Locate(context.Background()); err != nil {
			t.Fatalf("Locate() error = %v", err)
		}
		if m.Center() != resolved {
			t.Errorf("Center() = %v, want %v", m.Center(), resolved)
		}
		if !m.HasLiveLocation() {
			t.Error("HasLiveLocation() = false after successful locate")
		}
		if m.IsLocating() {
			t.Error("IsLocating() = true after Locate returned")
		}
		if len(recenters) != 1 || recenters[0] != resolved {
			t.Errorf("recenter events = %v, want exactly one at %v", recenters, resolved)
		}
	})

	t.Run("repeat locate always recenters", func(t *testing.T) {
		locator := testutil.NewStubLocator(model.Coordinate{Latitude: 1, Longitude: 2})
		m := directory.NewMapController(locator, defaultCenter, directory.NewNopLogger())

		count := 0
		m.SetOnRecenter(func(model.Coordinate, int) { count++ })

		for i := 0; i < 3; i++ {
			if err := m.Locate(context.Background()); err != nil {
				t.Fatalf("Locate() #%d error = %v", i, err)
			}
		}
		if count != 3 {
			t.Errorf("recenter events = %d, want 3", count)
		}
	})

	t.Run("failure leaves the anchor unchanged and resets the flag", func(t *testing.T) {
		locator := testutil.NewStubLocator(model.Coordinate{})
		locator.Err = errors.New("permission denied")
		m := directory.NewMapController(locator, defaultCenter, directory.NewNopLogger())

		recentered := false
		m.SetOnRecenter(func(model.Coordinate, int) { recentered = true })

		if err := m.Locate(context.Background()); err == nil {
			t.Fatal("Locate() expected error")
		}
		if m.Center() != defaultCenter {
			t.Errorf("Center() = %v, want the default center untouched", m.Center())
		}
		if m.HasLiveLocation() {
			t.Error("HasLiveLocation() = true after failure")
		}
		if m.IsLocating() {
			t.Error("IsLocating() = true after failure (stuck loading state)")
		}
		if recentered {
			t.Error("recenter fired on failure")
		}
	})

	t.Run("unsupported platform fails fast", func(t *testing.T) {
		locator := testutil.NewStubLocator(model.Coordinate{})
		locator.Err = directory.ErrUnsupported
		m := directory.NewMapController(locator, defaultCenter, directory.NewNopLogger())

		err := m.Locate(context.Background())
		if !errors.Is(err, directory.ErrUnsupported) {
			t.Fatalf("Locate() error = %v, want ErrUnsupported", err)
		}
		if m.Center() != defaultCenter {
			t.Errorf("Center() = %v, want default", m.Center())
		}
	})

	t.Run("out-of-range coordinate is rejected", func(t *testing.T) {
		locator := testutil.NewStubLocator(model.Coordinate{Latitude: 95, Longitude: 0})
		m := directory.NewMapController(locator, defaultCenter, directory.NewNopLogger())

		if err := m.Locate(context.Background()); err == nil {
			t.Fatal("Locate() expected error for out-of-range coordinate")
		}
		if m.HasLiveLocation() {
			t.Error("HasLiveLocation() = true for rejected coordinate")
		}
	})

	t.Run("second locate while one is pending is a no-op", func(t *testing.T) {
		locator := testutil.NewBlockingLocator(model.Coordinate{Latitude: 1, Longitude: 2})
		m := directory.NewMapController(locator, defaultCenter, directory.NewNopLogger())

		done := make(chan error, 1)
		go func() { done <- m.Locate(context.Background()) }()

		<-locator.Started
		if !m.IsLocating() {
			t.Fatal("IsLocating() = false while a query is in flight")
		}

		// Second invocation returns immediately without a second query.
		if err := m.Locate(context.Background()); err != nil {
			t.Fatalf("second Locate() error = %v, want no-op", err)
		}
		if locator.Calls() != 1 {
			t.Errorf("locator calls = %d, want 1", locator.Calls())
		}

		close(locator.Release)
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("first Locate() error = %v", err)
			}
		case <-time.After(time.Second):
			t.Fatal("first Locate() did not finish")
		}
	})
}

func TestMapController_DraftPin(t *testing.T) {
	newController := func(t *testing.T) *directory.MapController {
		t.Helper()
		locator := testutil.NewStubLocator(model.Coordinate{Latitude: 10, Longitude: 20})
		return directory.NewMapController(locator, defaultCenter, directory.NewNopLogger())
	}

	t.Run("opens initialized to the anchor", func(t *testing.T) {
		m := newController(t)
		m.OpenDraft()

		pin, ok := m.Draft()
		if !ok {
			t.Fatal("Draft() not active after OpenDraft")
		}
		if pin != defaultCenter {
			t.Errorf("Draft() = %v, want anchor %v", pin, defaultCenter)
		}
	})

	t.Run("diverges from the anchor on move", func(t *testing.T) {
		m := newController(t)
		m.OpenDraft()

		moved := model.Coordinate{Latitude: 41, Longitude: -73}
		m.MoveDraft(moved)

		pin, _ := m.Draft()
		if pin != moved {
			t.Errorf("Draft() = %v, want %v", pin, moved)
		}
		if m.Center() != defaultCenter {
			t.Errorf("Center() = %v; moving the draft must not move the anchor", m.Center())
		}
	})

	t.Run("ignores out-of-range moves", func(t *testing.T) {
		m := newController(t)
		m.OpenDraft()
		m.MoveDraft(model.Coordinate{Latitude: 120, Longitude: 0})

		pin, _ := m.Draft()
		if pin != defaultCenter {
			t.Errorf("Draft() = %v, want unchanged", pin)
		}
	})

	t.Run("close discards without merging into the anchor", func(t *testing.T) {
		m := newController(t)
		m.OpenDraft()
		m.MoveDraft(model.Coordinate{Latitude: 5, Longitude: 6})
		m.CloseDraft()

		if _, ok := m.Draft(); ok {
			t.Error("Draft() still active after CloseDraft")
		}
		if m.Center() != defaultCenter {
			t.Errorf("Center() = %v, want anchor untouched by discarded draft", m.Center())
		}
	})

	t.Run("moves while closed are dropped", func(t *testing.T) {
		m := newController(t)
		m.MoveDraft(model.Coordinate{Latitude: 5, Longitude: 6})
		if _, ok := m.Draft(); ok {
			t.Error("Draft() active without OpenDraft")
		}
	})
}
