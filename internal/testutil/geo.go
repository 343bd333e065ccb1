package testutil

import (
	"context"
	"sync"

	"localspot/internal/model"
)

// StubLocator resolves to a fixed coordinate or error.
// When Block is set, CurrentPosition signals Started and then waits on
// Release, letting tests observe the in-flight locating state.
type StubLocator struct {
	Coord model.Coordinate
	Err   error

	Block   bool
	Started chan struct{}
	Release chan struct{}

	mu    sync.Mutex
	calls int
}

// NewStubLocator creates a locator resolving to coord.
func NewStubLocator(coord model.Coordinate) *StubLocator {
	return &StubLocator{Coord: coord}
}

// NewBlockingLocator creates a locator that parks in CurrentPosition until
// released.
func NewBlockingLocator(coord model.Coordinate) *StubLocator {
	return &StubLocator{
		Coord:   coord,
		Block:   true,
		Started: make(chan struct{}, 1),
		Release: make(chan struct{}),
	}
}

func (l *StubLocator) CurrentPosition(ctx context.Context) (model.Coordinate, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()

	if l.Block {
		l.Started <- struct{}{}
		<-l.Release
	}
	if l.Err != nil {
		return model.Coordinate{}, l.Err
	}
	return l.Coord, nil
}

// Calls returns how many position queries were made.
func (l *StubLocator) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}
