package devserver

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"
	"github.com/sunwei/templatehtml/bundle"
	"github.com/sunwei/templatehtml/common/loggers"
	"github.com/sunwei/templatehtml/helpers"
)

// TransformFunc turns a template read from disk into the served document.
type TransformFunc func(ctx context.Context, filename, originalURL, html string) (string, error)

// Config configures a Server.
type Config struct {
	// Fs is the project root, usually a BasePathFs. Templates are opened by
	// relative name, other files with a leading slash.
	Fs afero.Fs

	// Base is the public base path, e.g. "/" or "/app/".
	Base string

	// Transform is applied to every HTML file served. May be nil.
	Transform TransformFunc

	Logger loggers.Logger
}

// Server is the development server. Middlewares must be added with Use
// before Handler is called.
type Server struct {
	cfg         Config
	middlewares []func(http.Handler) http.Handler
	files       http.Handler
}

// New creates a new Server.
func New(cfg Config) *Server {
	cfg.Base = helpers.NormalizeBase(cfg.Base)
	if cfg.Logger == nil {
		cfg.Logger = loggers.NewDefault()
	}
	return &Server{
		cfg:   cfg,
		files: http.FileServer(afero.NewHttpFs(cfg.Fs)),
	}
}

// Use appends middlewares. They run, in order, before the request is
// served.
func (s *Server) Use(middlewares ...func(http.Handler) http.Handler) {
	s.middlewares = append(s.middlewares, middlewares...)
}

// Handler builds the HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.middlewares...)

	r.Get("/*", s.serve)
	r.Head("/*", s.serve)

	return r
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.cfg.Logger.Infof("Dev server listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	name := helpers.TrimBase(r.URL.Path, s.cfg.Base)
	if name == "" || strings.HasSuffix(r.URL.Path, "/") {
		name = path.Join(name, helpers.DefaultTemplate)
	}

	if s.cfg.Transform == nil || !bundle.IsHTML(name) {
		r2 := r.Clone(r.Context())
		r2.URL.Path = "/" + name
		s.files.ServeHTTP(w, r2)
		return
	}

	b, err := afero.ReadFile(s.cfg.Fs, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		s.cfg.Logger.Errorf("read %q: %s", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	html, err := s.cfg.Transform(r.Context(), name, OriginalURL(r), string(b))
	if err != nil {
		s.cfg.Logger.Errorf("transform %q: %s", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = io.WriteString(w, html)
}
