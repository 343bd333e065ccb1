package directory

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"

	"localspot/internal/model"
)

// validate checks submission forms against struct tags. The custom
// "category" rule enforces membership in the closed category set.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag name.
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseCategory(fl.Field().String())
		return ok
	})
	return v
}

// SubmissionForm carries the user-entered fields for a new listing.
// Keywords feed the bio generator only and are never persisted.
type SubmissionForm struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required,category"`
	WhatsApp    string `json:"whatsapp" validate:"required,numeric"`
	Phone       string `json:"phone" validate:"omitempty,numeric"`
	Description string `json:"description" validate:"required"`
	Keywords    string `json:"keywords"`
}

// WriteFailurePolicy decides what happens when the persistence call for an
// optimistic insert fails. The record is already visible under tempID.
type WriteFailurePolicy func(store *Store, tempID string, err error)

// KeepLocalPolicy preserves the optimistic record under its temporary id
// and only logs the failure. User input is never silently discarded, at
// the cost of a local-only, not-yet-durable entry.
func KeepLocalPolicy(logger Logger) WriteFailurePolicy {
	return func(store *Store, tempID string, err error) {
		store.MarkLocalOnly(tempID)
		logger.Error("listing not persisted, keeping local record", "temp_id", tempID, "error", err)
	}
}

// Pipeline validates and assembles new listings, inserts them
// optimistically, and reconciles them with the persistence collaborator.
type Pipeline struct {
	store     *Store
	selection *Selection
	backend   BusinessStore
	auth      AuthProvider
	bio       BioGenerator
	clock     Clock
	idgen     IDGenerator
	logger    Logger
	onFailure WriteFailurePolicy
}

// NewPipeline creates a submission pipeline. onFailure may be nil, in
// which case KeepLocalPolicy is used.
func NewPipeline(store *Store, selection *Selection, backend BusinessStore, auth AuthProvider, bio BioGenerator, clock Clock, idgen IDGenerator, logger Logger, onFailure WriteFailurePolicy) *Pipeline {
	if onFailure == nil {
		onFailure = KeepLocalPolicy(logger)
	}
	return &Pipeline{
		store:     store,
		selection: selection,
		backend:   backend,
		auth:      auth,
		bio:       bio,
		clock:     clock,
		idgen:     idgen,
		logger:    logger,
		onFailure: onFailure,
	}
}

// Validate checks the form without touching the network. A validation
// failure blocks submission entirely.
func (p *Pipeline) Validate(form SubmissionForm) error {
	if err := validate.Struct(form); err != nil {
		return fmt.Errorf("invalid submission: %w", err)
	}
	return nil
}

// Stage builds the listing from the form and pin, inserts it
// optimistically and selects it for the drawer. The caller sees the
// listing before any network call is made.
func (p *Pipeline) Stage(form SubmissionForm, pin model.Coordinate) (model.Business, error) {
	if err := p.Validate(form); err != nil {
		return model.Business{}, err
	}
	if !pin.Valid() {
		return model.Business{}, fmt.Errorf("invalid submission: pin coordinate out of range")
	}

	category, _ := model.ParseCategory(form.Category)
	phone := form.Phone
	if phone == "" {
		phone = form.WhatsApp
	}

	record := model.Business{
		ID:          TempID(p.idgen),
		Name:        form.Name,
		Category:    category,
		Location:    pin,
		WhatsApp:    form.WhatsApp,
		Phone:       phone,
		Description: form.Description,
		ImageURL:    imageFor(form.Name),
		Status:      model.StatusActive,
		CreatedAt:   p.clock.Now(),
	}

	p.store.InsertOptimistic(record)
	p.selection.Select(record)
	return record, nil
}

// Persist submits a staged listing to the persistence collaborator,
// attaching the session's user id if one is present. On success the
// temporary id is reconciled in place; on failure the write-failure policy
// runs. There is no automatic retry.
func (p *Pipeline) Persist(ctx context.Context, record model.Business) {
	var owner string
	if s := p.auth.Session(); s != nil {
		owner = s.UserID
	}

	serverID, err := p.backend.Insert(ctx, record, owner)
	if err != nil {
		p.onFailure(p.store, record.ID, err)
		return
	}
	if err := p.store.Reconcile(record.ID, serverID); err != nil {
		p.logger.Error("reconcile failed", "temp_id", record.ID, "error", err)
		return
	}
	// Keep the drawer's copy in sync if the new listing is still selected.
	if sel, ok := p.selection.Selected(); ok && sel.ID == record.ID {
		record.ID = serverID
		p.selection.Select(record)
	}
}

// Submit runs Stage and then persists asynchronously. Closing the
// submission form afterwards does not abort the in-flight call, so the
// persist context survives cancellation of ctx.
func (p *Pipeline) Submit(ctx context.Context, form SubmissionForm, pin model.Coordinate) (model.Business, error) {
	record, err := p.Stage(form, pin)
	if err != nil {
		return model.Business{}, err
	}
	go p.Persist(context.WithoutCancel(ctx), record)
	return record, nil
}

// SuggestBio asks the bio collaborator for a description. A collaborator
// failure yields no suggestion rather than an error; the caller keeps the
// prior description unchanged.
func (p *Pipeline) SuggestBio(ctx context.Context, form SubmissionForm) string {
	category, ok := model.ParseCategory(form.Category)
	if !ok || form.Name == "" {
		return ""
	}
	text, err := p.bio.GenerateBio(ctx, form.Name, category, form.Keywords)
	if err != nil {
		p.logger.Warn("bio generation failed", "name", form.Name, "error", err)
		return ""
	}
	return text
}

// imageFor synthesizes a deterministic placeholder image URL keyed by the
// business name. There is no upload path.
func imageFor(name string) string {
	return "https://picsum.photos/seed/" + url.PathEscape(name) + "/600/400"
}
