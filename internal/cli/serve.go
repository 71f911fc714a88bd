package cli

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	spidererrors "github.com/matzehuels/spiderfy/pkg/errors"
	"github.com/matzehuels/spiderfy/pkg/observability"
	"github.com/matzehuels/spiderfy/pkg/render"
	"github.com/matzehuels/spiderfy/pkg/scene"
	"github.com/matzehuels/spiderfy/pkg/schedule"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

const (
	// maxZoom bounds POST /map/zoom/{level}.
	maxZoom = 22

	// stateEventLimit is how many recent events GET /state returns.
	stateEventLimit = 50
)

// serveCommand creates the serve command for driving a scene over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	addr := defaultAddr

	cmd := &cobra.Command{
		Use:   "serve [scene]",
		Short: "Drive a scene over HTTP",
		Long: `Drive a scene over HTTP.

Routes:
  GET  /                     page with the current frame and click buttons
  GET  /frame.svg            current frame
  GET  /state                frame and recent events as JSON
  POST /markers/{id}/click   click a marker
  POST /map/click            click the map background
  POST /map/zoom/{level}     change the zoom level
  GET  /metrics              Prometheus metrics

Deferred status passes run on real timers; every request and timer callback
is serialized so the engine only ever sees one caller at a time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			srv, err := newServer(ctx, args[0])
			if err != nil {
				return err
			}
			defer srv.Close()
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")

	return cmd
}

// =============================================================================
// server - HTTP surface over one scene
// =============================================================================

// server owns one scene. mu guards every call into the scene and its engine,
// including deferred work scheduled by the engine.
type server struct {
	mu      sync.Mutex
	sc      *scene.Scene
	metrics *metrics
	logger  *log.Logger
}

// newServer loads the scene with a timer scheduler bound to the server lock
// and plays its script.
func newServer(ctx context.Context, path string) (*server, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s := &server{
		metrics: newMetrics(name),
		logger:  loggerFromContext(ctx),
	}

	hooks := observability.Tee(s.metrics, observability.LogHooks{Logger: s.logger.WithPrefix("engine")})

	s.mu.Lock()
	defer s.mu.Unlock()

	sc, err := loadScene(ctx, path,
		spider.WithScheduler(schedule.NewTimer(&s.mu)),
		spider.WithHooks(hooks),
		spider.WithRegistryHooks(hooks),
	)
	if err != nil {
		return nil, err
	}
	if err := sc.Run(); err != nil {
		sc.Close()
		return nil, err
	}
	s.sc = sc
	return s, nil
}

// Close detaches the engine.
func (s *server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sc.Close()
}

// Routes returns the HTTP handler for the scene.
func (s *server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handleIndex)
	r.Get("/frame.svg", s.handleFrame)
	r.Get("/state", s.handleState)
	r.Post("/markers/{id}/click", s.handleMarkerClick)
	r.Post("/map/click", s.handleMapClick)
	r.Post("/map/zoom/{level}", s.handleZoom)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Infof("Serving %s on http://%s", s.sc.Name, addr)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// observe logs each request and counts it by route pattern.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveRequest(route, status)
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "took", time.Since(start).Round(time.Microsecond))
	})
}

// =============================================================================
// Handlers
// =============================================================================

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Name}}</title></head>
<body>
<h1>{{.Name}}</h1>
<p>{{.State}} · zoom {{.Zoom}} · {{.MapType}}</p>
<div>{{.SVG}}</div>
<form method="post" action="/map/click"><button>map click</button></form>
<form method="post" action="/map/zoom/{{.ZoomIn}}"><button>zoom in</button></form>
<form method="post" action="/map/zoom/{{.ZoomOut}}"><button>zoom out</button></form>
<ul>
{{range .Markers}}<li><form method="post" action="/markers/{{.ID}}/click"><button>{{.ID}}</button> {{.Status}}</form></li>
{{end}}</ul>
</body>
</html>
`))

type indexData struct {
	Name    string
	State   string
	Zoom    int
	ZoomIn  int
	ZoomOut int
	MapType string
	SVG     template.HTML
	Markers []scene.FrameMarker
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fr := s.sc.Frame()
	s.mu.Unlock()

	data := indexData{
		Name:    fr.Name,
		State:   fr.State,
		Zoom:    fr.Zoom,
		ZoomIn:  min(fr.Zoom+1, maxZoom),
		ZoomOut: max(fr.Zoom-1, 0),
		MapType: fr.MapType,
		SVG:     template.HTML(render.RenderSVG(fr, render.WithLabels(), render.WithTitle(fr.Name))),
		Markers: fr.Markers,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("render index", "err", err)
	}
}

func (s *server) handleFrame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fr := s.sc.Frame()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(render.RenderSVG(fr, render.WithLabels(), render.WithOrigins()))
}

func (s *server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fr := s.sc.Frame()
	evs := s.sc.Events()
	s.mu.Unlock()

	if len(evs) > stateEventLimit {
		evs = evs[len(evs)-stateEventLimit:]
	}
	data, err := render.RenderJSON(fr, render.WithEvents(evs))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// clickResponse is returned by the click and zoom endpoints.
type clickResponse struct {
	Outcome string `json:"outcome,omitempty"`
	State   string `json:"state"`
	Zoom    int    `json:"zoom"`
}

func (s *server) handleMarkerClick(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	outcome, err := s.sc.Click(id)
	resp := s.snapshot()
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	resp.Outcome = outcome.String()
	s.respond(w, r, resp)
}

func (s *server) handleMapClick(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.sc.Surface.Click()
	resp := s.snapshot()
	s.mu.Unlock()

	s.respond(w, r, resp)
}

func (s *server) handleZoom(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil || level < 0 || level > maxZoom {
		s.writeError(w, spidererrors.New(spidererrors.ErrCodeInvalidInput,
			"zoom level must be an integer between 0 and %d", maxZoom))
		return
	}

	s.mu.Lock()
	s.sc.Surface.SetZoom(level)
	resp := s.snapshot()
	s.mu.Unlock()

	s.respond(w, r, resp)
}

// snapshot must be called with mu held.
func (s *server) snapshot() clickResponse {
	return clickResponse{
		State: s.sc.Engine.State().String(),
		Zoom:  s.sc.Surface.View().Zoom,
	}
}

// respond redirects browser form posts back to the page and answers
// everything else with JSON.
func (s *server) respond(w http.ResponseWriter, r *http.Request, resp clickResponse) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// errorResponse is the body of every error reply.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	code := spidererrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case spidererrors.ErrCodeUnknownMarker:
		status = http.StatusNotFound
	case spidererrors.ErrCodeInvalidInput, spidererrors.ErrCodeInvalidScene:
		status = http.StatusBadRequest
	case spidererrors.ErrCodeProjectionNotReady:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	if code == "" {
		code = spidererrors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: spidererrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
