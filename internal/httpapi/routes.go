package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"localspot/internal/directory"
	"localspot/internal/model"
)

// Server exposes the directory service over HTTP.
type Server struct {
	svc    *directory.Service
	auth   directory.AuthProvider
	logger directory.Logger
}

// NewServer creates an HTTP surface over the given service.
func NewServer(svc *directory.Service, auth directory.AuthProvider, logger directory.Logger) *Server {
	if logger == nil {
		logger = directory.NewNopLogger()
	}
	return &Server{svc: svc, auth: auth, logger: logger}
}

// RegisterRoutes wires the API routes.
// gorilla/mux: Router provides method-based routing and URL pattern matching.
func (s *Server) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/businesses", s.listHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/businesses", s.submitHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/signin", s.signInHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/signup", s.signUpHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/bio", s.bioHandler).Methods(http.MethodPost)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// listHandler returns the visible listing subset. Query parameters:
// category (exact match, "All" or empty for no filtering) and q
// (case-insensitive substring over name and description).
func (s *Server) listHandler(w http.ResponseWriter, r *http.Request) {
	f := directory.Filter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
	}
	records := s.svc.Visible(f)
	if records == nil {
		records = []model.Business{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"businesses": records})
}

type submitRequest struct {
	directory.SubmissionForm
	Pin *model.Coordinate `json:"pin"`
}

// submitHandler stages a new listing. The listing appears in list results
// immediately; the write to the backing store completes in the background.
func (s *Server) submitHandler(w http.ResponseWriter, r *http.Request) {
	if s.auth.Session() == nil {
		writeError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Each request carries its own pin; the draft pin is single-user view
	// state and is never shared across requests.
	pin := s.svc.Map.Center()
	if req.Pin != nil {
		pin = *req.Pin
	}

	record, err := s.svc.SubmitAt(r.Context(), req.SubmissionForm, pin)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("listing submitted", "id", record.ID, "name", record.Name)
	writeJSON(w, http.StatusAccepted, record)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) signInHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.svc.SignIn(r.Context(), req.Email, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.auth.Session())
}

func (s *Server) signUpHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.svc.SignUp(r.Context(), req.Email, req.Password); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.auth.Session())
}

type bioRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Keywords string `json:"keywords"`
}

// bioHandler suggests a listing bio. Generator failures degrade to an
// empty suggestion rather than an error.
func (s *Server) bioHandler(w http.ResponseWriter, r *http.Request) {
	var req bioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	bio := s.svc.Pipeline.SuggestBio(r.Context(), directory.SubmissionForm{
		Name:     req.Name,
		Category: req.Category,
		Keywords: req.Keywords,
	})
	writeJSON(w, http.StatusOK, map[string]string{"bio": bio})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ListenAndServe runs the API server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	r := mux.NewRouter()
	s.RegisterRoutes(r)

	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	s.logger.Info("API listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
