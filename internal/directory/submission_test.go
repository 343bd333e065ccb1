package directory_test

import (
	"context"
	"errors"
	"testing"

	"localspot/internal/directory"
	"localspot/internal/model"
	"localspot/internal/testutil"
)

type pipelineFixture struct {
	pipeline  *directory.Pipeline
	store     *directory.Store
	selection *directory.Selection
	backend   *testutil.StubStore
	auth      *testutil.StubAuth
	bio       *testutil.StubBio
}

func newPipelineFixture(t *testing.T, onFailure directory.WriteFailurePolicy) *pipelineFixture {
	t.Helper()
	f := &pipelineFixture{
		backend: testutil.NewStubStore(),
		auth:    testutil.NewStubAuth(),
		bio:     testutil.NewStubBio("Cozy neighborhood bakery with daily sourdough."),
	}
	logger := directory.NewNopLogger()
	f.store = directory.NewStore(f.backend, testutil.FixedClock(), logger)
	f.selection = directory.NewSelection()
	f.pipeline = directory.NewPipeline(
		f.store, f.selection, f.backend, f.auth, f.bio,
		testutil.FixedClock(), testutil.NewStubIDGenerator(), logger, onFailure,
	)
	return f
}

func validForm() directory.SubmissionForm {
	return directory.SubmissionForm{
		Name:        "The Coffee Corner",
		Category:    string(model.CategoryFoodDrink),
		WhatsApp:    "1234567890",
		Description: "Espresso and pastries.",
	}
}

var pin = model.Coordinate{Latitude: 40.71, Longitude: -74.0}

func TestPipeline_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*directory.SubmissionForm)
		wantOK bool
	}{
		{"valid form", func(f *directory.SubmissionForm) {}, true},
		{"missing name", func(f *directory.SubmissionForm) { f.Name = "" }, false},
		{"missing whatsapp", func(f *directory.SubmissionForm) { f.WhatsApp = "" }, false},
		{"whatsapp with letters", func(f *directory.SubmissionForm) { f.WhatsApp = "12ab34" }, false},
		{"missing description", func(f *directory.SubmissionForm) { f.Description = "" }, false},
		{"category outside closed set", func(f *directory.SubmissionForm) { f.Category = "Groceries" }, false},
		{"optional phone may be empty", func(f *directory.SubmissionForm) { f.Phone = "" }, true},
		{"phone with letters", func(f *directory.SubmissionForm) { f.Phone = "call-me" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPipelineFixture(t, nil)
			form := validForm()
			tt.mutate(&form)

			err := f.pipeline.Validate(form)
			if tt.wantOK && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if !tt.wantOK && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}

	t.Run("validation failure makes no network call", func(t *testing.T) {
		f := newPipelineFixture(t, nil)
		form := validForm()
		form.Name = ""

		if _, err := f.pipeline.Stage(form, pin); err == nil {
			t.Fatal("Stage() expected validation error")
		}
		if f.backend.InsertCalls() != 0 {
			t.Errorf("Insert called %d times, want 0", f.backend.InsertCalls())
		}
		if len(f.store.Businesses()) != 0 {
			t.Error("record inserted despite validation failure")
		}
	})
}

func TestPipeline_Stage(t *testing.T) {
	t.Run("builds and optimistically inserts the listing", func(t *testing.T) {
		f := newPipelineFixture(t, nil)

		record, err := f.pipeline.Stage(validForm(), pin)
		if err != nil {
			t.Fatalf("Stage() error = %v", err)
		}

		if record.ID != "tmp-id-1" {
			t.Errorf("ID = %q, want temp id %q", record.ID, "tmp-id-1")
		}
		if !directory.IsTempID(record.ID) {
			t.Errorf("IsTempID(%q) = false", record.ID)
		}
		if record.Status != model.StatusActive {
			t.Errorf("Status = %q, want %q", record.Status, model.StatusActive)
		}
		if record.CreatedAt != testutil.FixedClock().Now() {
			t.Errorf("CreatedAt = %v, want the injected clock's time", record.CreatedAt)
		}
		if record.Location != pin {
			t.Errorf("Location = %v, want the draft pin %v", record.Location, pin)
		}
		if record.ImageURL != "https://picsum.photos/seed/The%20Coffee%20Corner/600/400" {
			t.Errorf("ImageURL = %q, want placeholder keyed by name", record.ImageURL)
		}

		got := f.store.Businesses()
		if len(got) != 1 || got[0].ID != record.ID {
			t.Errorf("store contents = %v, want the staged record at position 0", names(got))
		}
		sel, ok := f.selection.Selected()
		if !ok || sel.ID != record.ID {
			t.Errorf("Selected() = %+v, %v; want the staged record", sel, ok)
		}
	})

	t.Run("phone defaults to whatsapp when blank", func(t *testing.T) {
		f := newPipelineFixture(t, nil)

		record, err := f.pipeline.Stage(validForm(), pin)
		if err != nil {
			t.Fatalf("Stage() error = %v", err)
		}
		if record.Phone != "1234567890" {
			t.Errorf("Phone = %q, want the whatsapp number", record.Phone)
		}
	})

	t.Run("explicit phone is kept", func(t *testing.T) {
		f := newPipelineFixture(t, nil)
		form := validForm()
		form.Phone = "5550001111"

		record, err := f.pipeline.Stage(form, pin)
		if err != nil {
			t.Fatalf("Stage() error = %v", err)
		}
		if record.Phone != "5550001111" {
			t.Errorf("Phone = %q, want %q", record.Phone, "5550001111")
		}
	})

	t.Run("rejects an out-of-range pin", func(t *testing.T) {
		f := newPipelineFixture(t, nil)
		if _, err := f.pipeline.Stage(validForm(), model.Coordinate{Latitude: 99, Longitude: 200}); err == nil {
			t.Error("Stage() expected error for invalid pin")
		}
	})
}

func TestPipeline_Persist(t *testing.T) {
	t.Run("success reconciles the temporary id in place", func(t *testing.T) {
		f := newPipelineFixture(t, nil)
		f.auth.SetSession(&model.Session{UserID: "user-7", Email: "o@b.c"})

		record, err := f.pipeline.Stage(validForm(), pin)
		if err != nil {
			t.Fatalf("Stage() error = %v", err)
		}
		f.pipeline.Persist(context.Background(), record)

		got := f.store.Businesses()
		if got[0].ID != "srv-1" {
			t.Errorf("Businesses()[0].ID = %q, want server id srv-1", got[0].ID)
		}
		if got[0].Name != record.Name {
			t.Errorf("reconcile changed fields: %+v", got[0])
		}
		matches := directory.Visible(got, directory.Filter{Search: "coffee corner"})
		if len(matches) != 1 {
			t.Errorf("len(Visible(search)) = %d, want exactly 1 after reconcile", len(matches))
		}
		if owners := f.backend.Owners(); len(owners) != 1 || owners[0] != "user-7" {
			t.Errorf("Insert owners = %v, want the session's user id", owners)
		}
		if sel, ok := f.selection.Selected(); !ok || sel.ID != "srv-1" {
			t.Errorf("Selected() = %+v, %v; want drawer updated to the server id", sel, ok)
		}
	})

	t.Run("anonymous submissions carry no owner", func(t *testing.T) {
		f := newPipelineFixture(t, nil)

		record, _ := f.pipeline.Stage(validForm(), pin)
		f.pipeline.Persist(context.Background(), record)

		if owners := f.backend.Owners(); len(owners) != 1 || owners[0] != "" {
			t.Errorf("Insert owners = %v, want one empty owner", owners)
		}
	})

	t.Run("failure keeps the local record under its temporary id", func(t *testing.T) {
		f := newPipelineFixture(t, nil)
		f.backend.InsertErr = errors.New("network down")

		record, _ := f.pipeline.Stage(validForm(), pin)
		f.pipeline.Persist(context.Background(), record)

		got := f.store.Businesses()
		if len(got) != 1 {
			t.Fatalf("len(Businesses()) = %d, want 1 (no rollback)", len(got))
		}
		if got[0].ID != record.ID {
			t.Errorf("Businesses()[0].ID = %q, want the temp id %q", got[0].ID, record.ID)
		}
		if f.backend.InsertCalls() != 1 {
			t.Errorf("Insert called %d times, want 1 (no automatic retry)", f.backend.InsertCalls())
		}
		if f.store.HasPendingInserts() {
			t.Error("HasPendingInserts() = true after the failed write settled")
		}
	})

	t.Run("failed write survives a later load", func(t *testing.T) {
		f := newPipelineFixture(t, nil)
		f.backend.InsertErr = errors.New("network down")

		record, _ := f.pipeline.Stage(validForm(), pin)
		f.pipeline.Persist(context.Background(), record)

		f.backend.InsertErr = nil
		if err := f.store.Load(context.Background()); err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if _, ok := f.store.Find(record.ID); !ok {
			t.Errorf("record %q discarded by Load after its write failed", record.ID)
		}
	})

	t.Run("failure runs the injected policy", func(t *testing.T) {
		var policyTempID string
		var policyErr error
		policy := func(store *directory.Store, tempID string, err error) {
			policyTempID = tempID
			policyErr = err
			store.MarkLocalOnly(tempID)
		}

		f := newPipelineFixture(t, policy)
		f.backend.InsertErr = errors.New("quota exceeded")

		record, _ := f.pipeline.Stage(validForm(), pin)
		f.pipeline.Persist(context.Background(), record)

		if policyTempID != record.ID {
			t.Errorf("policy temp id = %q, want %q", policyTempID, record.ID)
		}
		if policyErr == nil {
			t.Error("policy error = nil, want the write failure")
		}
	})
}

func TestPipeline_SuggestBio(t *testing.T) {
	t.Run("returns the collaborator's text", func(t *testing.T) {
		f := newPipelineFixture(t, nil)
		got := f.pipeline.SuggestBio(context.Background(), validForm())
		if got != "Cozy neighborhood bakery with daily sourdough." {
			t.Errorf("SuggestBio() = %q", got)
		}
	})

	t.Run("collaborator failure yields no suggestion", func(t *testing.T) {
		f := newPipelineFixture(t, nil)
		f.bio.Err = errors.New("model overloaded")

		if got := f.pipeline.SuggestBio(context.Background(), validForm()); got != "" {
			t.Errorf("SuggestBio() = %q, want empty", got)
		}
	})

	t.Run("skips the call without a name", func(t *testing.T) {
		f := newPipelineFixture(t, nil)
		form := validForm()
		form.Name = ""

		if got := f.pipeline.SuggestBio(context.Background(), form); got != "" {
			t.Errorf("SuggestBio() = %q, want empty", got)
		}
		if f.bio.Calls() != 0 {
			t.Errorf("bio calls = %d, want 0", f.bio.Calls())
		}
	})
}
