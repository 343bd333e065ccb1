package directory

import "sync"

// AuthGate decides whether an "add listing" action proceeds directly or is
// routed through the auth flow first, resuming the original intent after a
// successful sign-in.
type AuthGate struct {
	auth   AuthProvider
	logger Logger

	openSubmission func()
	openAuth       func()

	mu      sync.Mutex
	pending bool
}

// NewAuthGate creates a gate that calls openSubmission to start the
// submission flow and openAuth to start the auth flow.
func NewAuthGate(auth AuthProvider, openSubmission, openAuth func(), logger Logger) *AuthGate {
	return &AuthGate{
		auth:           auth,
		logger:         logger,
		openSubmission: openSubmission,
		openAuth:       openAuth,
	}
}

// RequestAdd opens the submission flow when a session is present.
// Otherwise it opens the auth flow and remembers "resume submission on
// success" as the pending intent.
func (g *AuthGate) RequestAdd() {
	if g.auth.Session() != nil {
		g.openSubmission()
		return
	}
	g.mu.Lock()
	g.pending = true
	g.mu.Unlock()
	g.logger.Debug("add requested while anonymous, deferring to auth flow")
	g.openAuth()
}

// HandleAuthSuccess fires the pending intent exactly once and clears it.
// An auth success with no pending intent does nothing. The intent is
// claimed under the lock, so concurrent callers cannot both fire it.
func (g *AuthGate) HandleAuthSuccess() {
	g.mu.Lock()
	if !g.pending {
		g.mu.Unlock()
		return
	}
	g.pending = false
	g.mu.Unlock()
	g.openSubmission()
}

// Dismiss cancels the auth flow without a session. The pending intent is
// dropped silently: a deliberate cancel, not a failure.
func (g *AuthGate) Dismiss() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = false
}

// Pending reports whether a submission intent is waiting on auth.
func (g *AuthGate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending
}
