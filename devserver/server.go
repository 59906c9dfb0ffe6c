package devserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"fortio.org/log"
)

// Title is the first line of the startup banner.
const Title = "Constellation Viewer Development Server"

// DefaultShutdownTimeout is how long Serve waits for the in-flight request on cancellation.
const DefaultShutdownTimeout = 5 * time.Second

// Config is what New needs to build a Server.
type Config struct {
	// Root is the content root, see ContentRoot.
	Root string
	// Bind is the listen address, empty for all interfaces.
	Bind string
	// Port is the preferred port, the next one is used if it's taken. 0 picks any free port.
	Port int
	// MIMETypes are extra extension to content type overrides.
	MIMETypes map[string]string
	// ShutdownTimeout defaults to DefaultShutdownTimeout.
	ShutdownTimeout time.Duration
	// Out receives the banner and stop message, defaults to os.Stdout.
	Out io.Writer
}

// Server is the static development server, create with New.
type Server struct {
	cfg      Config
	mime     *MIMETypes
	handler  http.Handler
	listener net.Listener
}

// New builds the server around files, the static file serving handler.
// A nil files serves cfg.Root with http.FileServer.
func New(cfg Config, files http.Handler) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if files == nil {
		files = http.FileServer(http.Dir(cfg.Root))
	}
	s := &Server{cfg: cfg, mime: NewMIMETypes(cfg.MIMETypes)}
	s.handler = Chain(files, Serialize, s.mime.Wrap, DefaultCORS.Wrap, logRequests)
	return s
}

// Chain applies the middlewares to h, the last one ends up outermost.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, mw := range middlewares {
		h = mw(h)
	}
	return h
}

func logRequests(next http.Handler) http.Handler {
	return log.LogAndCall("devserve", next.ServeHTTP)
}

// Handler returns the full request handling chain, for use without Listen/Serve.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Listen probes the preferred port, falling back to the next one, and binds.
// A bind failure is returned as is, there is no further retry.
func (s *Server) Listen(ctx context.Context) error {
	port := ChoosePort(ctx, s.cfg.Port)
	addr := net.JoinHostPort(s.cfg.Bind, strconv.Itoa(port))
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("can't listen on %s: %w", addr, err)
	}
	s.listener = l
	log.Infof("Listening on %s - overriding content type for %v", l.Addr(), s.mime.Extensions())
	return nil
}

// Port is the port actually bound, 0 before Listen.
func (s *Server) Port() int {
	if s.listener == nil {
		return 0
	}
	return s.listener.Addr().(*net.TCPAddr).Port
}

// URL is the local address to open in a browser.
func (s *Server) URL() string {
	return "http://localhost:" + strconv.Itoa(s.Port())
}

// Serve prints the banner and serves until ctx is done. Returns nil on cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(ctx); err != nil {
			return err
		}
	}
	out := s.cfg.Out
	fmt.Fprintln(out, Title)
	fmt.Fprintf(out, "Serving at %s\n", s.URL())
	fmt.Fprintln(out, "Press Ctrl+C to stop the server")
	fmt.Fprintf(out, "Directory: %s\n", s.cfg.Root)
	srv := &http.Server{ //nolint:gosec // local development server, no timeouts wanted.
		Handler: s.handler,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(s.listener)
	}()
	select {
	case err := <-errCh:
		return fmt.Errorf("serving on %s: %w", s.listener.Addr(), err)
	case <-ctx.Done():
	}
	log.Infof("Interrupted, shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(sctx)
	if serr := <-errCh; !errors.Is(serr, http.ErrServerClosed) {
		log.Warnf("Serve returned: %v", serr)
	}
	if err != nil {
		log.Warnf("Shutdown: %v, closing remaining connections", err)
		_ = srv.Close()
	}
	fmt.Fprintln(out, "\nServer stopped.")
	return nil
}
