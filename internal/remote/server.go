// ABOUTME: HTTP control surface: REST commands, event websocket, monitor stream
// ABOUTME: chi router with zap request logging; trusted-LAN origin policy
package remote

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Binaural-Lab/binaural-go/internal/engine"
	"github.com/Binaural-Lab/binaural-go/internal/metrics"
	"github.com/Binaural-Lab/binaural-go/internal/stream"
)

// Config holds the control server's dependencies.
type Config struct {
	Addr        string
	Engine      *engine.Engine
	Broadcaster *stream.Broadcaster
	Logger      *zap.Logger
}

// Server exposes the engine over HTTP: REST for commands and queries, a
// websocket for live events, and a WAV stream for remote monitoring.
type Server struct {
	engine *engine.Engine
	caster *stream.Broadcaster
	logger *zap.Logger
	addr   string

	upgrader websocket.Upgrader

	httpServer *http.Server
	ln         net.Listener

	done     chan struct{}
	doneOnce sync.Once
}

// New creates a control server. The origin check admits everything: the
// server is meant for trusted local networks, the same trust model the
// LAN discovery advertises into.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	s := &Server{
		engine: cfg.Engine,
		caster: cfg.Broadcaster,
		logger: cfg.Logger,
		addr:   cfg.Addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		done: make(chan struct{}),
	}
	s.httpServer = &http.Server{
		Handler: s.Router(),
		// Only the header read is bounded: the event and monitor
		// endpoints hold their responses open indefinitely.
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the full route tree. Exposed so tests can drive the
// handlers through httptest without binding a port.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(s.logging)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)

		r.Route("/playback", func(r chi.Router) {
			r.Post("/start", s.handleStart)
			r.Post("/stop", s.handleStop)
			r.Post("/pause", s.handlePause)
			r.Post("/toggle", s.handleToggle)
		})

		r.Put("/params", s.handleParams)
		r.Put("/carrier", s.handleCarrier)
		r.Put("/beat", s.handleBeat)
		r.Put("/volume", s.handleVolume)

		r.Get("/bands", s.handleBands)
		r.Post("/band/{name}", s.handleBand)
		r.Get("/presets", s.handlePresets)
		r.Post("/preset/{name}", s.handlePreset)

		r.Get("/events", s.handleEvents)
		r.Get("/monitor.wav", s.handleMonitor)
	})
	return r
}

// Start binds the listener and serves in the background. Bind failures
// surface here; later serve errors are logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("control api listen failed: %w", err)
	}
	s.ln = ln
	s.logger.Info("control api listening", zap.String("addr", ln.Addr().String()))

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("control api server error", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the bound address, useful when Config.Addr used port 0.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// Shutdown signals streaming handlers to finish, then drains the rest.
func (s *Server) Shutdown(ctx context.Context) error {
	s.doneOnce.Do(func() { close(s.done) })
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// logging records completion status and duration per request, and feeds
// the request metrics. The matched chi route keeps label cardinality low.
func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}

		metrics.RequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
		metrics.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", elapsed))
	})
}
