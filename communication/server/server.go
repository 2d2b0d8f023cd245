// Package server exposes the game engine over HTTP. Each session lives in a
// Store and advances one move per request.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"arcade/communication"
	"arcade/engine"
	"arcade/game"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

var errFinished = errors.New("session already finished")

type Server struct {
	r       *chi.Mux
	store   Store
	sink    engine.OutputSink
	options []game.Option
	timeout time.Duration
}

type Option func(*Server)

// WithSink forwards every session event to sink, the same way the local
// engine does.
func WithSink(sink engine.OutputSink) Option {
	return func(s *Server) {
		s.sink = sink
	}
}

// WithGameOptions applies opts to every game the server creates, before the
// per-request options.
func WithGameOptions(opts ...game.Option) Option {
	return func(s *Server) {
		s.options = append(s.options, opts...)
	}
}

// WithTimeout bounds each request. Non-positive durations keep the default.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func New(st Store, options ...Option) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		sink:    engine.Sinks{},
		timeout: 10 * time.Second,
	}
	for _, o := range options {
		o(s)
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(s.timeout))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.store.Len()})
	})
	s.r.Get("/games", s.handleGames)
	s.r.Post("/sessions", s.handleNewSession)
	s.r.Get("/sessions/{id}", s.handleGetSession)
	s.r.Post("/sessions/{id}/moves", s.handleMove)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

const shutdownGrace = 5 * time.Second

// Start serves HTTP on addr until ctx is done or the listener fails. In-flight
// requests get shutdownGrace to finish.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: s.timeout,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Router exposes the router for tests.
func (s *Server) Router() chi.Router { return s.r }

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	out := []communication.GameInfo{}
	for _, name := range game.Names() {
		def, err := game.Lookup(name, s.options...)
		if err != nil {
			continue
		}
		out = append(out, communication.GameInfo{
			Name:        def.Name,
			Title:       def.Title,
			MaxAttempts: def.MaxAttempts,
			Domain:      communication.EncodeDomain(def.Domain),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req communication.NewSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	opts := append([]game.Option{}, s.options...)
	opts = append(opts, game.WithMaxAttempts(req.Attempts))
	if req.VsComputer {
		opts = append(opts, game.WithComputerOpponent())
	}
	def, err := game.Lookup(req.Game, opts...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := game.Start(def, game.NewRandomSource(req.Seed))
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Str("session", sess.ID).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.sink.Render(sess.Started())
	log.Info().Str("game", def.Name).Str("session", sess.ID).Msg("session started")

	w.Header().Set("Location", "/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, communication.EncodeSession(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	var out communication.SessionDTO
	err := s.store.View(r.Context(), chi.URLParam(r, "id"), func(sess *game.Session) {
		out = communication.EncodeSession(sess)
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req communication.MoveDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	move, err := req.Move()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var out communication.SessionDTO
	err = s.store.Update(r.Context(), chi.URLParam(r, "id"), func(sess *game.Session) error {
		if sess.IsTerminal() {
			return errFinished
		}
		res, err := sess.Step(move)
		if err != nil {
			s.sink.Render(game.Rejection{SessionID: sess.ID, Move: move, Err: err})
			return err
		}
		s.sink.Render(res)
		if res.Outcome != nil {
			s.sink.Render(*res.Outcome)
			log.Info().Str("session", sess.ID).Stringer("status", res.Status).Msg("session finished")
		}
		out = communication.EncodeSession(sess)
		return nil
	})

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, out)
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errFinished):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrInvalidMove):
		log.Warn().Err(err).Stringer("move", move).Msg("move rejected")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Error().Err(err).Msg("apply move")
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, communication.ErrorResponse{Error: msg})
}
