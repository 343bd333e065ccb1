package testutil

import (
	"context"
	"fmt"
	"sync"

	"localspot/internal/model"
)

// StubAuth is an AuthProvider whose session is set directly by tests.
// SetSession fires the registered change callbacks like a real provider.
type StubAuth struct {
	mu          sync.Mutex
	session     *model.Session
	subscribers []func(*model.Session)

	SignInErr error
	SignUpErr error
}

func NewStubAuth() *StubAuth { return &StubAuth{} }

func (a *StubAuth) Session() *model.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

func (a *StubAuth) OnSessionChange(fn func(*model.Session)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subscribers = append(a.subscribers, fn)
}

// SetSession replaces the session and notifies all subscribers.
// Pass nil to simulate sign-out.
func (a *StubAuth) SetSession(s *model.Session) {
	a.mu.Lock()
	a.session = s
	subs := make([]func(*model.Session), len(a.subscribers))
	copy(subs, a.subscribers)
	a.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

func (a *StubAuth) SignIn(ctx context.Context, email, password string) error {
	if a.SignInErr != nil {
		return a.SignInErr
	}
	a.SetSession(&model.Session{UserID: fmt.Sprintf("user-%s", email), Email: email})
	return nil
}

func (a *StubAuth) SignUp(ctx context.Context, email, password string) error {
	if a.SignUpErr != nil {
		return a.SignUpErr
	}
	a.SetSession(&model.Session{UserID: fmt.Sprintf("user-%s", email), Email: email})
	return nil
}
