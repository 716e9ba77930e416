package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/searchviz/pkg/animate"
	"github.com/matzehuels/searchviz/pkg/buildinfo"
	apperrors "github.com/matzehuels/searchviz/pkg/errors"
	"github.com/matzehuels/searchviz/pkg/graph"
	"github.com/matzehuels/searchviz/pkg/pipeline"
	"github.com/matzehuels/searchviz/pkg/render"
	"github.com/matzehuels/searchviz/pkg/render/stream"
	"github.com/matzehuels/searchviz/pkg/render/svg"
	"github.com/matzehuels/searchviz/pkg/search"
)

// =============================================================================
// Server - HTTP API over one loaded graph
// =============================================================================

// server exposes the loaded graph and traversal runs over HTTP. Each run
// owns a driver and an SSE sink that buffers its events until a client
// subscribes.
type server struct {
	res     *pipeline.Result
	palette render.Palette
	delay   time.Duration
	logger  *log.Logger

	// scheduler is shared by all runs; nil gives each run a wall clock.
	scheduler animate.Scheduler

	mu   sync.Mutex
	runs map[string]*run
}

type run struct {
	id     string
	driver *animate.Driver
	sink   *stream.Sink
}

// runRequest is the body of POST /runs. Every field is optional.
type runRequest struct {
	Algorithm string `json:"algorithm"`
	From      string `json:"from"`
	To        string `json:"to"`
	Delay     string `json:"delay"`
}

// runStatus describes a run.
type runStatus struct {
	ID        string   `json:"id"`
	State     string   `json:"state"`
	Algorithm string   `json:"algorithm"`
	Source    string   `json:"source"`
	Dest      string   `json:"dest"`
	Visited   int      `json:"visited"`
	Found     bool     `json:"found"`
	Path      []string `json:"path,omitempty"`
	Events    string   `json:"events"`
}

func newServer(res *pipeline.Result, palette render.Palette, delay time.Duration, logger *log.Logger) *server {
	return &server{
		res:     res,
		palette: palette,
		delay:   delay,
		logger:  logger,
		runs:    make(map[string]*run),
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))

	r.Get("/healthz", s.handleHealth)
	r.Get("/graph.svg", s.handleGraphSVG)
	r.Get("/graph.json", s.handleGraphJSON)

	r.Post("/runs", s.handleCreateRun)
	r.Get("/runs/{id}", s.handleGetRun)
	r.Get("/runs/{id}/events", s.handleRunEvents)
	r.Delete("/runs/{id}", s.handleDeleteRun)

	return r
}

// logRequests logs each request at debug level once it completes.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

// handleGraphSVG renders the graph with no visits.
func (s *server) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	t := render.NewTrace(s.res.Normalized, s.res.Source, s.res.Dest)
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg.Render(t, svg.WithViewport(s.res.Viewport), svg.WithPalette(s.palette)))
}

func (s *server) handleGraphJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stream.GraphFrame{
		Document: graph.ToDocument(s.res.Normalized),
		Source:   s.res.Source,
		Dest:     s.res.Dest,
	})
}

func (s *server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	run, err := s.startRun(req)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", "/runs/"+run.id)
	writeJSON(w, http.StatusCreated, s.status(run))
}

func (s *server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.lookup(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.status(run))
}

func (s *server) handleRunEvents(w http.ResponseWriter, r *http.Request) {
	run, err := s.lookup(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	run.sink.ServeHTTP(w, r)
}

func (s *server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	run, ok := s.runs[id]
	delete(s.runs, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, apperrors.New(apperrors.ErrCodeRunNotFound, "no run %q", id))
		return
	}
	run.driver.Destroy()
	run.sink.Close()
	s.logger.Debug("run destroyed", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Runs
// =============================================================================

func (s *server) startRun(req runRequest) (*run, error) {
	alg := s.res.Algorithm
	if req.Algorithm != "" {
		var err error
		if alg, err = search.ParseAlgorithm(req.Algorithm); err != nil {
			return nil, err
		}
	}
	source, err := pipeline.ResolveNode(s.res.Graph, req.From, s.res.Source)
	if err != nil {
		return nil, err
	}
	dest, err := pipeline.ResolveNode(s.res.Graph, req.To, s.res.Dest)
	if err != nil {
		return nil, err
	}
	delay := s.delay
	if req.Delay != "" {
		if delay, err = time.ParseDuration(req.Delay); err != nil || delay < 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid delay %q", req.Delay)
		}
	}

	sink := stream.NewSink()
	d, err := animate.Initialize(animate.Config{
		Graph:     s.res.Normalized,
		Algorithm: alg,
		Source:    source,
		Dest:      dest,
		Delay:     delay,
		Sink:      sink,
		Scheduler: s.scheduler,
		Logger:    s.logger,
	})
	if err != nil {
		return nil, err
	}

	run := &run{id: uuid.NewString(), driver: d, sink: sink}
	s.mu.Lock()
	s.runs[run.id] = run
	s.mu.Unlock()

	d.Start()
	s.logger.Debug("run started", "id", run.id, "algorithm", alg, "source", source, "dest", dest)
	return run, nil
}

func (s *server) lookup(id string) (*run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeRunNotFound, "no run %q", id)
	}
	return run, nil
}

func (s *server) status(run *run) runStatus {
	res := run.driver.Result()
	st := runStatus{
		ID:        run.id,
		State:     run.driver.State().String(),
		Algorithm: res.Algorithm.String(),
		Source:    nodeName(s.res.Graph, res.Source),
		Dest:      nodeName(s.res.Graph, res.Dest),
		Visited:   res.Visited,
		Found:     res.Found,
		Events:    "/runs/" + run.id + "/events",
	}
	for _, id := range res.Path {
		st.Path = append(st.Path, nodeName(s.res.Graph, id))
	}
	return st
}

// close destroys every run.
func (s *server) close() {
	s.mu.Lock()
	runs := s.runs
	s.runs = make(map[string]*run)
	s.mu.Unlock()
	for _, run := range runs {
		run.driver.Destroy()
		run.sink.Close()
	}
}

// =============================================================================
// Helpers
// =============================================================================

func nodeName(g *graph.Graph, id graph.NodeID) string {
	if n, ok := g.Node(id); ok && n.Label != "" {
		return n.Label
	}
	return "#" + strconv.Itoa(int(id))
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("encode response", "error", err)
	}
}

// writeError answers with the status of err's code.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	writeJSON(w, code.HTTPStatus(), map[string]string{
		"error": apperrors.UserMessage(err),
		"code":  string(code),
	})
}

// serve runs srv until ctx is cancelled, then shuts it down.
func serve(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
