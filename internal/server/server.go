package server

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"

	"github.com/iamvkosarev/karaoke-server/internal/config"
	"github.com/iamvkosarev/karaoke-server/internal/handler"
	"github.com/iamvkosarev/karaoke-server/internal/middleware"
	"github.com/rs/zerolog"
)

type Server struct {
	httpServer *http.Server
	config     *config.ServerConfig
	listener   net.Listener
}

func New(cfg *config.Config, h *handler.Handler, log *zerolog.Logger) *Server {
	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           Routes(h, log),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          newErrorLog(log),
	}

	return &Server{
		httpServer: srv,
		config:     &cfg.Server,
	}
}

// Routes builds the full request pipeline: /songs first, everything else
// served from disk, every response finalized exactly once.
func Routes(h *handler.Handler, log *zerolog.Logger) http.Handler {
	router := NewRouter(h.Static())
	router.Handle(Exact(http.MethodGet, "/songs"), h.Songs())

	return middleware.RequestLogger(log)(
		middleware.Finalize(
			middleware.Recover(router),
		),
	)
}

// Listen binds the configured address. Calling it again after a successful
// bind is a no-op.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln
	return nil
}

// Addr is the bound address, which differs from the configured one when
// port 0 was requested.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.httpServer.Addr
	}
	return s.listener.Addr().String()
}

// URL is the address to open in a browser, keeping the configured host name.
func (s *Server) URL() string {
	_, port, err := net.SplitHostPort(s.Addr())
	if err != nil {
		return "http://" + s.Addr()
	}
	return "http://" + net.JoinHostPort(s.config.Host, port)
}

// Serve blocks until Shutdown. A clean shutdown returns nil.
func (s *Server) Serve() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Close drops every connection, including ones still mid-transfer.
func (s *Server) Close() error {
	return s.httpServer.Close()
}

// newErrorLog routes net/http's own connection errors into zerolog.
func newErrorLog(log *zerolog.Logger) *stdlog.Logger {
	l := log.With().Str("component", "http").Logger()
	return stdlog.New(l, "", 0)
}
