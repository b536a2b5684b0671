package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/speechkit/component"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/server/endpoint"
	"github.com/kbukum/speechkit/server/middleware"
)

const (
	componentName          = "http-server"
	defaultShutdownTimeout = 5 * time.Second
	readHeaderTimeout      = 10 * time.Second
)

var (
	_ component.Component     = (*Server)(nil)
	_ component.Describable   = (*Server)(nil)
	_ component.RouteProvider = (*Server)(nil)
)

// Server serves a Gin engine over HTTP/1.1 and h2c and is registered
// directly as a lifecycle component. Middleware added with Use wraps the
// whole engine, so it also sees the 404 and 405 answers Gin writes itself.
type Server struct {
	cfg    Config
	engine *gin.Engine
	h2s    *http2.Server
	srv    *http.Server
	stack  []middleware.Middleware
	log    *logger.Logger

	mu        sync.RWMutex
	addr      string
	listening bool
}

// New creates a Server with an empty engine. Gin runs in debug mode only
// when the global log level is debug or lower.
func New(cfg Config, log *logger.Logger) *Server {
	mode := gin.ReleaseMode
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		mode = gin.DebugMode
	}
	gin.SetMode(mode)

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	seconds := func(n int) time.Duration { return time.Duration(n) * time.Second }
	return &Server{
		cfg:    cfg,
		engine: engine,
		h2s:    &http2.Server{MaxConcurrentStreams: 250, IdleTimeout: 2 * time.Minute},
		srv: &http.Server{
			Addr:              addr,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       seconds(cfg.ReadTimeout),
			WriteTimeout:      seconds(cfg.WriteTimeout),
			IdleTimeout:       seconds(cfg.IdleTimeout),
		},
		log:  log.WithComponent("server"),
		addr: addr,
	}
}

// GinEngine returns the engine for route registration.
func (s *Server) GinEngine() *gin.Engine { return s.engine }

// Use appends middleware; the first added is outermost.
func (s *Server) Use(mws ...middleware.Middleware) {
	s.stack = append(s.stack, mws...)
}

// Handler is the engine behind the middleware stack and h2c.
func (s *Server) Handler() http.Handler {
	return h2c.NewHandler(middleware.Chain(s.stack...)(s.engine), s.h2s)
}

// ApplyMiddleware installs recovery, request IDs, CORS, the body limit
// (when MaxBodySize is set) and request logging, in that order.
func (s *Server) ApplyMiddleware() {
	s.Use(middleware.Recovery(s.log), middleware.RequestID(), middleware.CORS(&s.cfg.CORS))
	if s.cfg.MaxBodySize != "" {
		s.Use(middleware.BodySizeLimit(s.cfg.MaxBodyBytes()))
	}
	s.Use(middleware.RequestLogger(s.log.WithComponent("http")))
}

// RegisterDefaultEndpoints registers /health, /info and /version.
func (s *Server) RegisterDefaultEndpoints(serviceName string, checker endpoint.HealthChecker) {
	s.engine.GET("/health", endpoint.Health(serviceName, checker))
	s.engine.GET("/info", endpoint.Info(serviceName))
	s.engine.GET("/version", endpoint.Version())
}

// ApplyDefaults is ApplyMiddleware plus RegisterDefaultEndpoints.
func (s *Server) ApplyDefaults(serviceName string, checker endpoint.HealthChecker) {
	s.ApplyMiddleware()
	s.RegisterDefaultEndpoints(serviceName, checker)
}

// Addr is the bound address once started, the configured one before.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

func (s *Server) Name() string { return componentName }

// Start binds the listener and serves in the background. It returns once
// the port is bound, so a port conflict fails startup.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.srv.Addr, err)
	}

	s.mu.Lock()
	s.addr, s.listening = ln.Addr().String(), true
	s.srv.Handler = s.Handler()
	s.mu.Unlock()

	go func() {
		err := s.srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("Server stopped unexpectedly")
		}
		s.mu.Lock()
		s.listening = false
		s.mu.Unlock()
	}()

	s.log.Info("HTTP server listening", logger.Fields("addr", s.Addr()))
	return nil
}

// Stop shuts down gracefully. In-flight transcriptions get up to the
// configured shutdown timeout to finish.
func (s *Server) Stop(ctx context.Context) error {
	timeout := time.Duration(s.cfg.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.log.Info("Shutting down HTTP server", logger.Fields("timeout", timeout.String()))
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// Health is healthy while the listener is serving.
func (s *Server) Health(context.Context) component.Health {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.listening {
		return component.Health{Name: componentName, Status: component.StatusUnhealthy, Message: "HTTP server not listening"}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

func (s *Server) Describe() component.Description {
	return component.Description{Name: "HTTP Server", Type: "server", Details: s.Addr(), Port: s.cfg.Port}
}
