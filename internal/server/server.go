package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/blockgrid/pkg/errors"
	"github.com/matzehuels/blockgrid/pkg/graph"
	"github.com/matzehuels/blockgrid/pkg/observability"
	"github.com/matzehuels/blockgrid/pkg/pipeline"
	"github.com/matzehuels/blockgrid/pkg/stmt"
)

// JobIDHeader carries the per-request job identifier.
const JobIDHeader = "X-Job-ID"

// maxBodyBytes limits the size of a statement document.
const maxBodyBytes = 1 << 20

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON: "application/json; charset=utf-8",
}

// Server serves the pipeline over HTTP.
type Server struct {
	Runner *pipeline.Runner
	Logger *log.Logger
	// Defaults holds the render options used when a request does not
	// override them.
	Defaults pipeline.Options
}

// New creates a server. A nil logger falls back to log.Default(). Unless
// defaults carry their own check, background images are restricted to
// relative paths below the working directory.
func New(runner *pipeline.Runner, logger *log.Logger, defaults pipeline.Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if defaults.FileExists == nil {
		defaults.FileExists = relativeFileExists
	}
	return &Server{Runner: runner, Logger: logger, Defaults: defaults}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.jobs)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(s.Logger, w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handle(s.layout))
		r.Post("/render", s.handle(s.render))
	})
	return r
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) layout(w http.ResponseWriter, r *http.Request) error {
	stmts, err := readStatements(r)
	if err != nil {
		return err
	}

	opts := s.Defaults
	opts.Logger = s.Logger.With("job", JobID(r.Context()))
	opts.Refresh = refresh(r)

	l, _, err := s.Runner.BuildWithCacheInfo(r.Context(), stmts, opts)
	if err != nil {
		return err
	}
	data, err := graph.MarshalLayout(l)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	_, err = w.Write(data)
	return err
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) error {
	opts, err := s.renderOptions(r)
	if err != nil {
		return err
	}
	stmts, err := readStatements(r)
	if err != nil {
		return err
	}

	result, err := s.Runner.Execute(r.Context(), stmts, opts)
	if err != nil {
		return err
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache-Hit", strconv.FormatBool(result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit))
	_, err = w.Write(result.Artifacts[format])
	return err
}

// renderOptions applies query parameters over the server defaults.
func (s *Server) renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := s.Defaults
	opts.Logger = s.Logger.With("job", JobID(r.Context()))
	opts.Refresh = refresh(r)

	format := pipeline.DefaultFormat
	if len(opts.Formats) > 0 {
		format = opts.Formats[0]
	}
	if f := q.Get("format"); f != "" {
		format = pipeline.NormalizeFormat(f)
	}
	opts.Formats = []string{format}

	for name, dst := range map[string]*bool{"nodoctype": &opts.NoDoctype, "antialias": &opts.Antialias} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return pipeline.Options{}, errors.New(errors.ErrCodeInvalidFormat, "invalid %s value: %s", name, v)
			}
			*dst = b
		}
	}

	if err := opts.ValidateForRender(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// relativeFileExists reports whether path is a safe relative path naming a
// regular file.
func relativeFileExists(path string) bool {
	if errors.ValidatePath(path) != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func refresh(r *http.Request) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	return b
}

// readStatements decodes the request body. TOML is selected by content type,
// anything else is decoded as JSON.
func readStatements(r *http.Request) ([]stmt.Stmt, error) {
	format := stmt.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "toml") {
		format = stmt.FormatTOML
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxBodyBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxBodyBytes)
	}
	return stmt.Unmarshal(data, format)
}

// =============================================================================
// Jobs
// =============================================================================

type jobKey struct{}

// JobID returns the job identifier attached to ctx, or "".
func JobID(ctx context.Context) string {
	id, _ := ctx.Value(jobKey{}).(string)
	return id
}

// jobs tags each request with a job ID and reports it to the HTTP hooks.
func (s *Server) jobs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		ctx := context.WithValue(r.Context(), jobKey{}, id)
		hooks := observability.HTTP()

		hooks.OnRequest(ctx, r.Method, r.URL.Path)
		s.Logger.Debug("request", "job", id, "request_id", middleware.GetReqID(ctx), "method", r.Method, "path", r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set(JobIDHeader, id)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if status >= http.StatusBadRequest {
			hooks.OnError(ctx, r.Method, r.URL.Path, fmt.Errorf("status %d", status))
		}
		hooks.OnResponse(ctx, r.Method, r.URL.Path, status, time.Since(start))
	})
}

// =============================================================================
// Serving
// =============================================================================

// NewHTTPServer wraps h in an http.Server with conservative limits.
func NewHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		MaxHeaderBytes:    1 << 18,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       time.Hour,
		Handler:           h,
	}
}

// Serve runs srv on l until ctx is cancelled, then shuts down gracefully
// within shutdownTimeout.
func Serve(ctx context.Context, shutdownTimeout time.Duration, srv *http.Server, l net.Listener) error {
	srv.BaseContext = func(net.Listener) context.Context {
		return ctx
	}

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(l)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
