package directory

import (
	"context"
	"sync"

	"localspot/internal/model"
)

// Service wires the controllers together and exposes the operations the
// outer surfaces (CLI, HTTP API) drive. It owns the open/closed state of
// the submission form and the auth flow.
type Service struct {
	Directory *Store
	Map       *MapController
	Selection *Selection
	Gate      *AuthGate
	Pipeline  *Pipeline

	auth   AuthProvider
	logger Logger

	mu             sync.Mutex
	submissionOpen bool
	authOpen       bool
}

// Deps carries the collaborators a Service is built from. Clock, IDGen
// and Logger may be nil; real implementations are substituted.
type Deps struct {
	Backend       BusinessStore
	Locator       Locator
	Auth          AuthProvider
	Bio           BioGenerator
	DefaultCenter model.Coordinate
	Clock         Clock
	IDGen         IDGenerator
	Logger        Logger
	OnWriteFail   WriteFailurePolicy
}

// NewService builds the full controller graph and subscribes to auth
// change events so a pending add-listing intent resumes after sign-in.
func NewService(d Deps) *Service {
	if d.Clock == nil {
		d.Clock = RealClock{}
	}
	if d.IDGen == nil {
		d.IDGen = UUIDGenerator{}
	}
	if d.Logger == nil {
		d.Logger = NewNopLogger()
	}

	svc := &Service{
		auth:   d.Auth,
		logger: d.Logger,
	}
	svc.Directory = NewStore(d.Backend, d.Clock, d.Logger)
	svc.Map = NewMapController(d.Locator, d.DefaultCenter, d.Logger)
	svc.Selection = NewSelection()
	svc.Gate = NewAuthGate(d.Auth, svc.openSubmission, svc.openAuth, d.Logger)
	svc.Pipeline = NewPipeline(svc.Directory, svc.Selection, d.Backend, d.Auth, d.Bio, d.Clock, d.IDGen, d.Logger, d.OnWriteFail)

	// The collaborator fires on every sign-in/sign-out including the
	// initial resolution; the gate only reacts when an intent is pending.
	d.Auth.OnSessionChange(func(s *model.Session) {
		if s == nil {
			return
		}
		svc.mu.Lock()
		svc.authOpen = false
		svc.mu.Unlock()
		svc.Gate.HandleAuthSuccess()
	})

	return svc
}

func (s *Service) openSubmission() {
	s.mu.Lock()
	s.submissionOpen = true
	s.mu.Unlock()
	s.Map.OpenDraft()
}

func (s *Service) openAuth() {
	s.mu.Lock()
	s.authOpen = true
	s.mu.Unlock()
}

// Start loads the directory and performs the initial location request.
// The location failure path degrades to the default center and is not an
// error at this level.
func (s *Service) Start(ctx context.Context) error {
	if err := s.Directory.Load(ctx); err != nil {
		return err
	}
	_ = s.Map.Locate(ctx)
	return nil
}

// Visible derives the currently visible listing subset.
func (s *Service) Visible(f Filter) []model.Business {
	return Visible(s.Directory.Businesses(), f)
}

// RequestAdd runs the auth gate for the "add listing" action.
func (s *Service) RequestAdd() {
	s.Gate.RequestAdd()
}

// DismissAuth closes the auth flow without a session; any pending
// submission intent is dropped.
func (s *Service) DismissAuth() {
	s.mu.Lock()
	s.authOpen = false
	s.mu.Unlock()
	s.Gate.Dismiss()
}

// SignIn authenticates against the auth collaborator. Collaborator errors
// carry human-readable messages and are surfaced verbatim.
func (s *Service) SignIn(ctx context.Context, email, password string) error {
	return s.auth.SignIn(ctx, email, password)
}

// SignUp registers a new account.
func (s *Service) SignUp(ctx context.Context, email, password string) error {
	return s.auth.SignUp(ctx, email, password)
}

// Submit finalizes the open submission form: the listing is staged at the
// draft pin (or the anchor when no draft is active), the form closes, and
// persistence proceeds in the background.
func (s *Service) Submit(ctx context.Context, form SubmissionForm) (model.Business, error) {
	pin, ok := s.Map.Draft()
	if !ok {
		pin = s.Map.Center()
	}

	record, err := s.Pipeline.Submit(ctx, form, pin)
	if err != nil {
		return model.Business{}, err
	}

	s.CloseSubmission()
	return record, nil
}

// SubmitAt stages and persists a listing at an explicit pin, without
// reading or mutating the draft pin or the form state. Surfaces serving
// concurrent callers use this; the draft pin is single-user view state
// and interleaved requests must not share it.
func (s *Service) SubmitAt(ctx context.Context, form SubmissionForm, pin model.Coordinate) (model.Business, error) {
	return s.Pipeline.Submit(ctx, form, pin)
}

// CloseSubmission closes the form and discards the draft pin.
func (s *Service) CloseSubmission() {
	s.mu.Lock()
	s.submissionOpen = false
	s.mu.Unlock()
	s.Map.CloseDraft()
}

// SubmissionOpen reports whether the submission form is open.
func (s *Service) SubmissionOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submissionOpen
}

// AuthOpen reports whether the auth flow is open.
func (s *Service) AuthOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authOpen
}
