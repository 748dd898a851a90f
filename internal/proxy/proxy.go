package proxy

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/five82/wpfeed/internal/config"
)

// RequestIDHeader carries the per-request id assigned by the proxy.
const RequestIDHeader = "X-Request-Id"

const shutdownTimeout = 5 * time.Second

// Server forwards a path prefix to a fixed upstream origin.
type Server struct {
	cfg    config.ProxyConfig
	target *url.URL
	engine *gin.Engine
	logger *log.Logger
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger routes proxy error logs to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New builds a proxy for cfg.
func New(cfg config.ProxyConfig, opts ...Option) (*Server, error) {
	target, err := parseTarget(cfg.Target)
	if err != nil {
		return nil, err
	}
	prefix := "/" + strings.Trim(strings.TrimSpace(cfg.PathPrefix), "/")
	if prefix == "/" {
		return nil, fmt.Errorf("proxy path prefix must not be the root")
	}
	cfg.PathPrefix = prefix

	s := &Server{cfg: cfg, target: target, logger: log.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.engine = s.routes()
	return s, nil
}

// Handler returns the HTTP handler, CORS included.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{RequestIDHeader, "X-WP-Total", "X-WP-TotalPages"},
		AllowCredentials: false,
	})
	return c.Handler(s.engine)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if strings.TrimSpace(addr) == "" {
		addr = s.cfg.Listen
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on an existing listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
		ErrorLog:          s.logger,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("proxy %s -> %s listening on %s", s.cfg.PathPrefix, s.target, listener.Addr())
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output: s.logger.Writer(),
		Formatter: func(p gin.LogFormatterParams) string {
			return fmt.Sprintf("%s %s %s %d %s id=%s\n",
				p.TimeStamp.Format(time.RFC3339), p.Method, p.Path, p.StatusCode, p.Latency,
				p.Request.Header.Get(RequestIDHeader))
		},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "target": s.target.String(), "prefix": s.cfg.PathPrefix})
	})

	forward := s.reverseProxy()
	prefix := s.cfg.PathPrefix
	r.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			forward.ServeHTTP(c.Writer, c.Request)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "proxy_no_route",
			"message": fmt.Sprintf("only %s is proxied", prefix),
			"data":    gin.H{"status": http.StatusNotFound},
		})
	})
	return r
}

func (s *Server) reverseProxy() *httputil.ReverseProxy {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !s.cfg.Secure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	target := s.target
	changeOrigin := s.cfg.ChangeOrigin
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			if changeOrigin {
				pr.Out.Host = target.Host
			} else {
				pr.Out.Host = pr.In.Host
			}
		},
		Transport: transport,
		ErrorLog:  s.logger,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			s.logger.Printf("proxy %s %s: %v", r.Method, r.URL.Path, err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = fmt.Fprintf(w, `{"code":"proxy_error","message":%q,"data":{"status":502}}`, err.Error())
		},
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
			c.Request.Header.Set(RequestIDHeader, id)
		}
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

func parseTarget(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("proxy target is empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse proxy target %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse proxy target %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse proxy target %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
