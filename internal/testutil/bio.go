package testutil

import (
	"context"
	"sync"

	"localspot/internal/model"
)

// StubBio returns a fixed bio text or error.
type StubBio struct {
	Text string
	Err  error

	mu    sync.Mutex
	calls int
}

func NewStubBio(text string) *StubBio { return &StubBio{Text: text} }

func (b *StubBio) GenerateBio(ctx context.Context, name string, category model.Category, keywords string) (string, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	if b.Err != nil {
		return "", b.Err
	}
	return b.Text, nil
}

// Calls returns how many generations were requested.
func (b *StubBio) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}
