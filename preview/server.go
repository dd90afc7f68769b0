// Package preview serves live preview of a document source over HTTP. Source
// file is watched, bursts of changes are coalesced and layout is recomputed
// through in-memory cache.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"bylaws/cache"
	"bylaws/config"
	"bylaws/document"
	"bylaws/layout"
	"bylaws/misc"
	pages "bylaws/render/preview"
	"bylaws/render/static"
	"bylaws/validate"
)

// snapshot is immutable result of a single recomputation.
type snapshot struct {
	version int64
	source  *document.Source
	layout  *layout.Layout
	report  validate.Report
}

// Server is preview HTTP server for a single document source.
type Server struct {
	path    string
	cfg     *config.DocumentConfig
	log     *zap.Logger
	store   *cache.Memory
	metrics *metrics

	mu      sync.RWMutex
	current *snapshot
	loadErr error
	version int64
}

// NewServer prepares server for source file at path. Source is not read until
// Reload is called.
func NewServer(path string, cfg *config.DocumentConfig, log *zap.Logger) *Server {
	return &Server{
		path:    path,
		cfg:     cfg,
		log:     log.Named("preview"),
		store:   cache.NewMemory(cfg.Preview.MemoryEntries),
		metrics: newMetrics(),
	}
}

// Reload reads source file and recomputes layout. On failure previous layout
// stays in service and error is reported by every page until next successful
// reload.
func (s *Server) Reload() error {
	start := time.Now()
	defer func() {
		s.metrics.computeTime.Observe(time.Since(start).Seconds())
	}()

	src, err := document.Load(s.path)
	if err != nil {
		s.metrics.recomputes.WithLabelValues("failed").Inc()
		s.mu.Lock()
		s.loadErr = err
		s.version++
		s.mu.Unlock()
		return err
	}
	if src.Title == "" {
		src.Title = s.cfg.Title
	}

	l, hit := cache.Compute(s.store, src, s.cfg.Layout, s.log)
	report := s.check(src, l)

	outcome := "computed"
	if hit {
		outcome = "cached"
	}
	s.metrics.recomputes.WithLabelValues(outcome).Inc()
	s.metrics.pages.Set(float64(l.TotalPages))
	s.metrics.issues.WithLabelValues("error").Set(float64(len(report.Errors)))
	s.metrics.issues.WithLabelValues("warning").Set(float64(len(report.Warnings)))
	s.metrics.issues.WithLabelValues("suggestion").Set(float64(len(report.Suggestions)))

	s.mu.Lock()
	s.version++
	s.current = &snapshot{version: s.version, source: src, layout: l, report: report}
	s.loadErr = nil
	s.mu.Unlock()

	s.log.Info("Document reloaded",
		zap.Bool("cached", hit), zap.Int("pages", l.TotalPages), zap.Bool("valid", report.IsValid),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (s *Server) check(src *document.Source, l *layout.Layout) validate.Report {
	staticHTML, err := static.HTML(l, s.cfg.Typography)
	if err != nil {
		s.log.Warn("Unable to render static document for validation", zap.Error(err))
		return validate.Check(src, l, validate.WithLogger(s.log))
	}
	previewHTML, err := pages.HTML(pages.Render(l, s.cfg.Typography, pages.Options{}))
	if err != nil {
		s.log.Warn("Unable to render preview document for validation", zap.Error(err))
		return validate.Check(src, l, validate.WithLogger(s.log))
	}
	return validate.Check(src, l, validate.WithRenderers(staticHTML, previewHTML), validate.WithLogger(s.log))
}

// state returns current snapshot, its version and last load error.
func (s *Server) state() (*snapshot, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.version, s.loadErr
}

// Handler returns HTTP handler serving all preview routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.instrument("all", s.handleAll))
	mux.HandleFunc("GET /page/{n}", s.instrument("page", s.handlePage))
	mux.HandleFunc("GET /toc", s.instrument("toc", s.handleTOC))
	mux.HandleFunc("GET /report", s.instrument("report", s.handleReport))
	mux.HandleFunc("GET /version", s.instrument("version", s.handleVersion))
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	return mux
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		h(rec, r)
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
		s.log.Debug("Request served", zap.String("route", route), zap.String("path", r.URL.Path), zap.Int("code", rec.code))
	}
}

// ready returns snapshot to render or writes failure response.
func (s *Server) ready(w http.ResponseWriter) (*snapshot, bool) {
	snap, _, err := s.state()
	if snap == nil {
		msg := "document is not loaded yet"
		if err != nil {
			msg = fmt.Sprintf("unable to load document: %v", err)
		}
		http.Error(w, msg, http.StatusServiceUnavailable)
		return nil, false
	}
	if err != nil {
		// stale layout is still served, problem is visible in logs and report
		w.Header().Set("X-Preview-Error", err.Error())
	}
	return snap, true
}

func (s *Server) options() pages.Options {
	opts := pages.Options{Navigation: true}
	if s.cfg.Preview.LiveReload {
		opts.Script = liveReloadScript
	}
	return opts
}

func (s *Server) writeDocument(w http.ResponseWriter, doc *html.Node) {
	out, err := pages.HTML(doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

func (s *Server) handleAll(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.ready(w)
	if !ok {
		return
	}
	opts := s.options()
	opts.Navigation = false
	s.writeDocument(w, pages.Render(snap.layout, s.cfg.Typography, opts))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.ready(w)
	if !ok {
		return
	}
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || n < 1 || n > snap.layout.TotalPages {
		http.Error(w, fmt.Sprintf("page %q does not exist", r.PathValue("n")), http.StatusNotFound)
		return
	}
	s.writeDocument(w, pages.Pages(snap.layout, s.cfg.Typography, n, n, s.options()))
}

func (s *Server) handleTOC(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.ready(w)
	if !ok {
		return
	}
	s.writeDocument(w, pages.Pages(snap.layout, s.cfg.Typography, 2, snap.layout.TOC.ContentStart-1, s.options()))
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.ready(w)
	if !ok {
		return
	}
	writeJSON(w, snap.report)
}

type versionInfo struct {
	Version int64  `json:"version"`
	App     string `json:"app"`
	Build   string `json:"build"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	_, version, err := s.state()
	info := versionInfo{Version: version, App: misc.GetAppName(), Build: misc.GetVersion()}
	if err != nil {
		info.Error = err.Error()
	}
	writeJSON(w, info)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// Serve reloads document, starts watching source and serves requests on
// listener until context is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if err := s.Reload(); err != nil {
		s.log.Warn("Unable to load document, waiting for changes", zap.String("source", s.path), zap.Error(err))
	}

	w, err := newWatcher(s.path, s.cfg.Preview.Debounce, s.log)
	if err != nil {
		return fmt.Errorf("unable to watch document source: %w", err)
	}
	defer w.close()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(s.log),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Go(func() {
		w.run(ctx, func() {
			if err := s.Reload(); err != nil {
				s.log.Error("Unable to reload document", zap.String("source", s.path), zap.Error(err))
			}
		})
	})
	wg.Go(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	})

	s.log.Info("Preview server started", zap.String("address", ln.Addr().String()), zap.String("source", s.path))
	err = srv.Serve(ln)
	cancel()
	wg.Wait()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

const liveReloadScript = `(function () {
  var seen = null;
  function poll() {
    fetch("/version").then(function (r) { return r.json(); }).then(function (v) {
      if (seen !== null && v.version !== seen) { location.reload(); return; }
      seen = v.version;
      setTimeout(poll, 1000);
    }).catch(function () { setTimeout(poll, 2000); });
  }
  poll();
})();`
