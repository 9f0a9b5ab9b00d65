// Package server hosts the bridge's JSON/HTTP + WebSocket API. A
// controller posts command envelopes to /api/command and may subscribe
// to /ws/events for command and asset-change notifications.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/forgebridge/forgebridge/pkg/asset"
	"github.com/forgebridge/forgebridge/pkg/command"
	"github.com/forgebridge/forgebridge/pkg/config"
)

// Server exposes the command registry over HTTP.
type Server struct {
	cfg      config.ServerConfig
	registry *command.Registry
	hub      *Hub
	log      *slog.Logger

	// dispatchMu serializes command execution: the object graph and
	// asset store see one command at a time, matching an editor main
	// thread.
	dispatchMu sync.Mutex

	httpServer *http.Server
}

// New creates a server around a populated registry.
func New(cfg config.ServerConfig, registry *command.Registry, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		registry: registry,
		hub:      NewHub(log),
		log:      log,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Bind,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Hub returns the event hub for out-of-band broadcasts.
func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)

	router.Get("/healthz", s.handleHealthz)
	router.Get("/metrics", promhttp.Handler().ServeHTTP)
	router.Route("/api", func(r chi.Router) {
		r.Post("/command", s.handleCommand)
		r.Get("/commands", s.handleListCommands)
	})
	router.Get("/ws/events", s.handleEvents)
	return router
}

// Start runs the listener until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", slog.String("bind", s.cfg.Bind))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

type commandRequest struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params"`
}

// handleCommand routes one envelope through the registry. The HTTP
// status is 200 for every dispatched command; failures live inside the
// result envelope.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if status, err := decodeJSONBody(w, r, &req, s.cfg.MaxBodyBytes); err != nil {
		respondError(w, status, err)
		return
	}

	s.dispatchMu.Lock()
	res := s.registry.Dispatch(r.Context(), req.Name, req.Params)
	s.dispatchMu.Unlock()

	s.hub.Broadcast(Event{
		Type: EventCommand,
		Payload: map[string]any{
			"name":    req.Name,
			"success": res.Success,
			"callId":  res.CallID,
		},
	})
	respondJSON(w, res)
}

type commandDescriptor struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Parameters  command.ParameterSchema `json:"parameters"`
}

func (s *Server) handleListCommands(w http.ResponseWriter, r *http.Request) {
	handlers := s.registry.List()
	out := make([]commandDescriptor, 0, len(handlers))
	for _, h := range handlers {
		out = append(out, commandDescriptor{
			Name:        h.Name(),
			Description: h.Description(),
			Parameters:  h.Parameters(),
		})
	}
	respondJSON(w, map[string]any{"commands": out, "count": len(out)})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]any{"status": "ok"})
}

// ForwardAssetEvents pushes watcher events to subscribed controllers
// until the channel closes or ctx is canceled.
func (s *Server) ForwardAssetEvents(ctx context.Context, events <-chan asset.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.hub.Broadcast(Event{
				Type:    EventAssetChanged,
				Payload: map[string]any{"path": ev.Path, "op": ev.Op},
			})
		}
	}
}
