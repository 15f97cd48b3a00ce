// Package http serves the Telegram webhook endpoint plus health and metrics.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// UpdateSink receives decoded Telegram updates for asynchronous processing.
type UpdateSink interface {
	Enqueue(up tgbotapi.Update)
}

type Server struct {
	port     int
	botToken string
	sink     UpdateSink
	server   *http.Server
	log      *zerolog.Logger
}

func NewServer(port int, botToken string, sink UpdateSink, logger *zerolog.Logger) *Server {
	return &Server{
		port:     port,
		botToken: botToken,
		sink:     sink,
		log:      logger,
	}
}

// Router builds the HTTP handler. Split out for testing.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// The token in the path is the shared secret Telegram echoes back.
	r.Post("/bot"+s.botToken, s.handleWebhook)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info().Int("port", s.port).Msg("http server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// handleWebhook always answers 200: Telegram retries non-2xx delivery, and a
// malformed or unprocessable update is not something a retry can fix.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.log.Warn().Err(err).Msg("undecodable webhook payload")
		w.WriteHeader(http.StatusOK)
		return
	}
	s.sink.Enqueue(update)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}
