// Package inspect serves a small HTTP and websocket API for watching and
// poking a running porch scene.
package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"porch/internal/scene"
	"porch/internal/state"
)

// Controller is the scene surface the inspector needs. *scene.Runner
// implements it.
type Controller interface {
	Snapshot(ctx context.Context) (scene.Snapshot, error)
	SetIdle(ctx context.Context, on *bool) (bool, error)
	Interact(ctx context.Context, id string) (scene.InteractResult, error)
	SetAvatarProp(ctx context.Context, prop, value string) (scene.AvatarResult, error)
	Subscribe(ctx context.Context) (scene.Subscription, error)
	Unsubscribe(id int)
}

const requestTimeout = 2 * time.Second

type Server struct {
	ctrl Controller
	log  *log.Logger
}

func NewServer(ctrl Controller, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{ctrl: ctrl, log: logger}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.log, NoColor: true}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/state", s.getState)
		r.Post("/idle", s.postIdle)
		r.Post("/interact/{id}", s.postInteract)
		r.Put("/avatar/{prop}", s.putAvatar)
	})
	r.Get("/ws", s.stream)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Printf("[inspect] listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	snap, err := s.ctrl.Snapshot(ctx)
	if err != nil {
		respondUnavailable(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

type idleRequest struct {
	Enabled *bool `json:"enabled"`
}

func (s *Server) postIdle(w http.ResponseWriter, r *http.Request) {
	var req idleRequest
	if err := decodeOptional(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	on, err := s.ctrl.SetIdle(ctx, req.Enabled)
	if err != nil {
		respondUnavailable(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"idle": on})
}

func (s *Server) postInteract(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	res, err := s.ctrl.Interact(ctx, id)
	if err != nil {
		respondUnavailable(w, err)
		return
	}
	if !res.OK {
		respondError(w, http.StatusNotFound, "no entity "+id)
		return
	}
	respondJSON(w, http.StatusOK, res.Interaction)
}

type avatarRequest struct {
	Value string `json:"value"`
}

func (s *Server) putAvatar(w http.ResponseWriter, r *http.Request) {
	prop := chi.URLParam(r, "prop")
	var req avatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	res, err := s.ctrl.SetAvatarProp(ctx, prop, req.Value)
	if err != nil {
		respondUnavailable(w, err)
		return
	}
	switch {
	case errors.Is(res.Err, state.ErrUnknownProp):
		respondError(w, http.StatusNotFound, res.Err.Error())
	case res.Err != nil:
		respondError(w, http.StatusBadRequest, res.Err.Error())
	default:
		respondJSON(w, http.StatusOK, res.Avatar)
	}
}

// decodeOptional decodes a JSON body, treating an empty body as no fields.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[inspect] encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondUnavailable(w http.ResponseWriter, err error) {
	respondError(w, http.StatusServiceUnavailable, err.Error())
}
