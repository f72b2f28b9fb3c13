// Package serve previews a built site over HTTP and rebuilds it when the
// sources change.
package serve

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/folio-blog/folio/internal/folio/build"
	"github.com/folio-blog/folio/internal/folio/config"
)

const (
	defaultDebounce = 500 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

// Server serves the output directory and keeps it up to date.
type Server struct {
	cfg      *config.Config
	builder  *build.Builder
	gatherer prometheus.Gatherer
	addr     string
	debounce time.Duration
}

// New returns a preview server listening on addr. gatherer backs /metrics
// and may be nil.
func New(cfg *config.Config, builder *build.Builder, gatherer prometheus.Gatherer, addr string) *Server {
	return &Server{
		cfg:      cfg,
		builder:  builder,
		gatherer: gatherer,
		addr:     addr,
		debounce: defaultDebounce,
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Handle("/*", noCache(siteHandler(s.cfg.Paths.Output)))
	return r
}

// Run builds the site once, then serves it and rebuilds on source changes
// until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if _, err := s.builder.Build(ctx); err != nil {
		return errors.Wrap(err, "initial build")
	}

	w, err := newWatcher(s.watchRoots(), s.cfg.Paths.Output, s.debounce)
	if err != nil {
		return err
	}
	defer w.close()
	go w.run(ctx, func() {
		if _, err := s.builder.Build(ctx); err != nil {
			log.Error().Err(err).Msg("rebuild failed")
		}
	})

	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Str("dir", s.cfg.Paths.Output).Msg("serving site")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listening")
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// watchRoots lists the source locations that trigger a rebuild.
func (s *Server) watchRoots() []string {
	p := s.cfg.Paths
	return []string{p.Content, p.Templates, p.Static, p.Changelog}
}

// siteHandler serves files from dir. Directory requests resolve to their
// index.html; anything missing gets 404.html with a 404 status.
func siteHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := path.Clean("/" + r.URL.Path)
		if strings.HasSuffix(r.URL.Path, "/") && p != "/" {
			p += "/"
		}
		target := filepath.Join(dir, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			target = filepath.Join(target, "index.html")
		}

		info, err := os.Stat(target)
		if err != nil || info.IsDir() {
			notFound(w, dir)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func notFound(w http.ResponseWriter, dir string) {
	page, err := os.ReadFile(filepath.Join(dir, "404.html"))
	if err != nil {
		http.Error(w, "404 page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(page)
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Str("request_id", chimw.GetReqID(r.Context())).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
