package directory

import (
	"context"
	"errors"

	"localspot/internal/model"
)

// ErrUnsupported is returned by a Locator when the platform has no
// position source at all. Callers degrade to the default center.
var ErrUnsupported = errors.New("geolocation not supported")

// BusinessStore is the persistence collaborator for directory listings.
// Field mapping (numeric coercion, timestamp conversion) is the
// implementation's responsibility, not the core's.
type BusinessStore interface {
	// List returns all listings ordered by creation time, newest first.
	List(ctx context.Context) ([]model.Business, error)

	// Insert persists a record and returns the server-assigned id.
	// The record's own id (a temporary one) is ignored by the store.
	// ownerID is empty for anonymous submissions.
	Insert(ctx context.Context, record model.Business, ownerID string) (string, error)
}

// Locator is the geolocation collaborator: a one-shot position query.
type Locator interface {
	// CurrentPosition resolves the caller's position once.
	// Returns ErrUnsupported immediately when no position source exists.
	CurrentPosition(ctx context.Context) (model.Coordinate, error)
}

// AuthProvider is the auth collaborator. The core only observes session
// presence and reacts to change events; credentials never pass through it
// except on explicit sign-in/sign-up.
type AuthProvider interface {
	// Session returns the current session, or nil when anonymous.
	Session() *model.Session

	// OnSessionChange registers a callback fired on every sign-in and
	// sign-out, including the initial session resolution.
	OnSessionChange(fn func(*model.Session))

	// SignIn and SignUp fail with a human-readable message suitable for
	// showing verbatim in the auth flow.
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string) error
}

// BioGenerator is the AI bio collaborator.
type BioGenerator interface {
	// GenerateBio produces a short listing description from a name,
	// category and free-form keywords.
	GenerateBio(ctx context.Context, name string, category model.Category, keywords string) (string, error)
}
