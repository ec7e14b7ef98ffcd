package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vscch/internal/router"
	"vscch/internal/system"
)

// DefaultAddr picks a free loopback port.
const DefaultAddr = "127.0.0.1:0"

// Server exposes a router's operations over loopback HTTP.
type Server struct {
	Addr   string
	Router *router.Router

	ln net.Listener
}

// Listen binds the socket so the port is known before Start. Calling it is
// optional.
func (s *Server) Listen() (*net.TCPAddr, error) {
	if s.ln != nil {
		return s.ln.Addr().(*net.TCPAddr), nil
	}
	addr := s.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	s.ln = ln
	return ln.Addr().(*net.TCPAddr), nil
}

// Handler builds the gin engine serving the registered operations.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestLogger())
	r.Use(gin.Recovery())
	r.Use(cors())
	mountAPIGin(r, s.Router)
	return r
}

// Start serves until ctx is cancelled or the router's terminal operation has
// been answered. The final response is flushed before Start returns.
func (s *Server) Start(ctx context.Context) error {
	addr, err := s.Listen()
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		select {
		case <-ctx.Done():
		case <-s.Router.Done():
		}
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()
	system.Logger.Info("request channel listening", "addr", addr.String())
	if err := srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		system.Logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start).Round(time.Millisecond))
	}
}

// cors admits the hosted front end, which calls this server from another
// origin.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Allow-Private-Network", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
