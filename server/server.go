// Package server serves an enriched document and its documentation page.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"

	"github.com/vitalvas/oasamples/errors"
	"github.com/vitalvas/oasamples/logger"
	"github.com/vitalvas/oasamples/mux"
	"github.com/vitalvas/oasamples/muxhandlers"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr string
	// MaxConns caps concurrent connections; 0 means unlimited.
	MaxConns int
}

// Server is an http.Server around a router carrying request IDs, panic
// recovery and access logging.
type Server struct {
	cfg    Config
	log    *logger.Logger
	router *mux.Router
	srv    *http.Server
}

// New returns a Server with an empty router. Register routes on Router
// before serving.
func New(cfg Config, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("server")

	r := mux.NewRouter()
	r.Use(
		muxhandlers.RequestIDMiddleware(muxhandlers.RequestIDConfig{}),
		muxhandlers.RecoveryMiddleware(muxhandlers.RecoveryConfig{
			LogFunc: func(req *http.Request, err any) {
				log.Error("handler panic",
					"panic", err,
					"method", req.Method,
					"path", req.URL.Path,
					"request_id", muxhandlers.RequestIDFromContext(req.Context()),
				)
			},
		}),
		muxhandlers.AccessLogMiddleware(muxhandlers.AccessLogConfig{
			LogFunc: func(_ *http.Request, e muxhandlers.AccessLogEntry) {
				log.Debug("request",
					"method", e.Method,
					"path", e.Path,
					"status", e.Status,
					"duration", e.Duration,
					"request_id", e.RequestID,
				)
			},
		}),
	)

	return &Server{
		cfg:    cfg,
		log:    log,
		router: r,
		srv: &http.Server{
			Handler:           r,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Router returns the router requests are dispatched through.
func (s *Server) Router() *mux.Router {
	return s.router
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return errors.IO(errors.Wrapf(err, "listen on %s", s.cfg.Addr))
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConns)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	s.log.Info("listening", "addr", ln.Addr().String(), "max_conns", s.cfg.MaxConns)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	<-errCh
	return nil
}
