package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Tmacphee13/ci-demo/internal/health"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// DefaultMessage is returned by /api/message.
const DefaultMessage = "Hello from Jenkins CI/CD Node.js app!"

const shutdownTimeout = 5 * time.Second

// MessageResponse is the body of /api/message.
type MessageResponse struct {
	Message string `json:"message"`
}

type Server struct {
	logger    log.Logger
	publicDir string
	message   string
	checkers  map[string]health.Checker
}

type Option func(*Server)

// WithLogger sets the logger used for startup, request and health logging.
func WithLogger(logger log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithPublicDir sets the directory static assets are served from.
func WithPublicDir(dir string) Option {
	return func(s *Server) { s.publicDir = dir }
}

// WithMessage overrides the greeting returned by /api/message.
func WithMessage(msg string) Option {
	return func(s *Server) { s.message = msg }
}

// WithHealthChecker registers a dependency checked by /health.
func WithHealthChecker(name string, c health.Checker) Option {
	return func(s *Server) { s.checkers[name] = c }
}

func New(opts ...Option) *Server {
	s := &Server{
		logger:    log.NewNopLogger(),
		publicDir: "public",
		message:   DefaultMessage,
		checkers:  map[string]health.Checker{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/message", s.handleMessage).Methods(http.MethodGet, http.MethodHead)
	r.Handle("/health", health.Handler(s.logger, s.checkers)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet, http.MethodHead)

	// everything else comes from the public dir
	r.PathPrefix("/").Handler(staticHandler(s.publicDir))

	return requestLogger(s.logger, r)
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	body, err := json.Marshal(MessageResponse{Message: s.message})
	if err != nil {
		http.Error(w, "encode message", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		level.Debug(s.logger).Log("msg", "write message response", "err", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.publicDir, "index.html"))
}

// Run listens on the given TCP port on all interfaces and serves until ctx
// is cancelled.
func (s *Server) Run(ctx context.Context, port int) error {
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return errors.Wrapf(err, "listen on port %d", port)
	}
	return s.Serve(ctx, ln)
}

// Serve serves requests from ln until ctx is cancelled, then shuts down
// gracefully. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	port := 0
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	level.Info(s.logger).Log("msg", "server listening", "port", port)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	<-errc
	return nil
}
