package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"kenkai/internal/chat"
	"kenkai/internal/config"
	"kenkai/internal/service"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the public JSON API: bookings, lead capture, the chat
// advisor and the admin-gated read model.
type HTTPServer struct {
	cfg      *config.Config
	bookings *service.BookingService
	leads    *service.LeadService
	advisor  *chat.Advisor
	gate     *AdminGate
	server   *http.Server
	log      zerolog.Logger
}

func NewHTTPServer(
	cfg *config.Config,
	bookings *service.BookingService,
	leads *service.LeadService,
	advisor *chat.Advisor,
	logger *zerolog.Logger,
) *HTTPServer {
	var log zerolog.Logger
	if logger != nil {
		log = logger.With().Str("component", "http").Logger()
	}

	srv := &HTTPServer{
		cfg:      cfg,
		bookings: bookings,
		leads:    leads,
		advisor:  advisor,
		gate:     NewAdminGate(cfg.Admin),
		log:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/bookings", srv.handleBookings)
	mux.HandleFunc("/api/v1/bookings/all", srv.handleAllBookings)
	mux.HandleFunc("/api/v1/bookings/export", srv.handleExportBookings)
	mux.HandleFunc("/api/v1/admin/verify", srv.handleAdminVerify)
	mux.HandleFunc("/api/v1/contact", srv.handleContact)
	mux.HandleFunc("/api/v1/resources/download", srv.handleResourceDownload)
	mux.HandleFunc("/api/v1/talent-interest", srv.handleTalentInterest)
	mux.HandleFunc("/api/v1/chat/start", srv.handleChatStart)
	mux.HandleFunc("/api/v1/chat/message", srv.handleChatMessage)
	mux.HandleFunc("/api/v1/chat/", srv.handleChatSummary)
	mux.HandleFunc("/healthz", srv.handleHealth)

	limiter := newRateLimiter(cfg.RateLimit)
	handler := srv.loggingMiddleware(limiter.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
