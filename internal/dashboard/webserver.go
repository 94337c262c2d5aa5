// Package dashboard serves the hospital placement dashboard: the JSON API,
// the echarts visualisations, and the SVG/PNG map exports.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gridcare-data/coverage.report/internal/httputil"
	"github.com/gridcare-data/coverage.report/internal/monitoring"
	"github.com/gridcare-data/coverage.report/internal/runstore"
	"github.com/gridcare-data/coverage.report/internal/simapi"
	"github.com/gridcare-data/coverage.report/internal/view"
)

// WebServer handles the HTTP interface of the dashboard.
type WebServer struct {
	address string
	client  *simapi.Client
	store   *runstore.Store
	session *view.Session
	server  *http.Server
}

// WebServerConfig contains configuration options for the web server.
type WebServerConfig struct {
	Address string
	Client  *simapi.Client
	Store   *runstore.Store
}

// NewWebServer creates a web server with the provided configuration.
func NewWebServer(config WebServerConfig) *WebServer {
	ws := &WebServer{
		address: config.Address,
		client:  config.Client,
		store:   config.Store,
		session: view.NewSession(),
	}

	ws.server = &http.Server{
		Addr:    ws.address,
		Handler: LoggingMiddleware(ws.ServeMux()),
	}

	return ws
}

// Session exposes the view session, mainly for tests.
func (ws *WebServer) Session() *view.Session {
	return ws.session
}

// ServeMux configures the HTTP routes and handlers.
func (ws *WebServer) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", ws.handleIndex)
	mux.HandleFunc("/health", ws.handleHealth)

	mux.HandleFunc("/api/runs", ws.handleRuns)
	mux.HandleFunc("/api/runs/latest", ws.handleLatestRun)
	mux.HandleFunc("/api/runs/", ws.handleRunByID)
	mux.HandleFunc("/api/pretrained", ws.handlePretrained)
	mux.HandleFunc("/api/session", ws.handleSession)

	mux.HandleFunc("/map.svg", ws.handleMapSVG)
	mux.HandleFunc("/charts/map", ws.handleMapChart)
	mux.HandleFunc("/charts/clusters", ws.handleClusterChart)
	mux.HandleFunc("/charts/histogram", ws.handleHistogramChart)
	mux.HandleFunc("/plots/map.png", ws.handleMapPlot)

	return mux
}

// Start begins the HTTP server and blocks until ctx is cancelled, then
// shuts down gracefully.
func (ws *WebServer) Start(ctx context.Context) error {
	go func() {
		monitoring.Logf("starting dashboard server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			monitoring.Logf("dashboard server error: %v", err)
		}
	}()

	<-ctx.Done()
	monitoring.Logf("shutting down dashboard server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("dashboard server shutdown error: %v", err)
		if err := ws.server.Close(); err != nil {
			monitoring.Logf("dashboard server force close error: %v", err)
		}
	}
	return nil
}

// RunView is the derived view-state of one simulation run, as returned to
// the dashboard front end.
type RunView struct {
	RunID         string                  `json:"run_id,omitempty"`
	Params        simapi.SimulationParams `json:"params"`
	Result        *view.EnrichedResult    `json:"result"`
	Summaries     []view.ClusterSummary   `json:"summaries"`
	ClusterRows   []view.ClusterChartRow  `json:"cluster_rows"`
	HistogramRows []view.HistogramRow     `json:"histogram_rows"`
	KPICards      []view.KPICard          `json:"kpi_cards"`
}

// deriveRunView recomputes all view models for a response. Pure; safe to
// call on every request.
func deriveRunView(params simapi.SimulationParams, resp *simapi.SimulationResponse) (*RunView, error) {
	enriched, err := view.Enrich(resp)
	if err != nil {
		return nil, err
	}
	return &RunView{
		Params:        params,
		Result:        enriched,
		Summaries:     view.Summarize(enriched),
		ClusterRows:   view.ClusterChartRows(resp.ClusterStats),
		HistogramRows: view.HistogramRows(resp.DistanceHistogram),
		KPICards:      view.KPICards(resp),
	}, nil
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{"status": "ok"})
}

// handleRuns dispatches POST (run a new simulation) and GET (list history).
func (ws *WebServer) handleRuns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		ws.handleRunSimulation(w, r)
	case http.MethodGet:
		ws.handleListRuns(w, r)
	default:
		httputil.MethodNotAllowed(w)
	}
}

// handleRunSimulation submits parameters to the computation service, derives
// the view models, records the run, and updates the session.
func (ws *WebServer) handleRunSimulation(w http.ResponseWriter, r *http.Request) {
	var params simapi.SimulationParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if params.M < 1 || params.N < 1 || params.K < 1 {
		httputil.BadRequest(w, "m, n and k must all be at least 1")
		return
	}

	gen := ws.session.Begin()

	resp, err := ws.client.Run(r.Context(), params)
	if err != nil {
		msg := userMessage(err, "simulation request failed")
		ws.session.Fail(gen, msg)
		httputil.BadGateway(w, msg)
		return
	}

	rv, err := deriveRunView(params, resp)
	if err != nil {
		msg := userMessage(err, "simulation returned an inconsistent result")
		ws.session.Fail(gen, msg)
		httputil.BadGateway(w, msg)
		return
	}

	if !ws.session.Complete(gen, rv.Result, rv.Summaries) {
		// A newer submission superseded this one; its result is no longer
		// relevant to the session but is still returned to this caller.
		monitoring.Logf("dropping stale simulation result (generation %d)", gen)
	}

	if ws.store != nil {
		runID, err := ws.store.SaveRun(params, resp)
		if err != nil {
			monitoring.Logf("failed to record run: %v", err)
		} else {
			rv.RunID = runID
		}
	}

	httputil.WriteJSONOK(w, rv)
}

func (ws *WebServer) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if ws.store == nil {
		httputil.NotFound(w, "run history not configured")
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	records, err := ws.store.ListRuns(limit)
	if err != nil {
		httputil.InternalServerError(w, "failed to list runs")
		return
	}
	if records == nil {
		records = []runstore.RunRecord{}
	}
	httputil.WriteJSONOK(w, records)
}

func (ws *WebServer) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	if ws.store == nil {
		httputil.NotFound(w, "run history not configured")
		return
	}

	record, resp, err := ws.store.LatestRun()
	if errors.Is(err, runstore.ErrRunNotFound) {
		httputil.NotFound(w, "no runs recorded yet")
		return
	}
	if err != nil {
		httputil.InternalServerError(w, "failed to load latest run")
		return
	}
	ws.writeStoredRun(w, record, resp)
}

func (ws *WebServer) handleRunByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	if ws.store == nil {
		httputil.NotFound(w, "run history not configured")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	if id == "" || strings.Contains(id, "/") {
		httputil.BadRequest(w, "invalid run id")
		return
	}

	record, resp, err := ws.store.GetRun(id)
	if errors.Is(err, runstore.ErrRunNotFound) {
		httputil.NotFound(w, "run not found")
		return
	}
	if err != nil {
		httputil.InternalServerError(w, "failed to load run")
		return
	}
	ws.writeStoredRun(w, record, resp)
}

func (ws *WebServer) writeStoredRun(w http.ResponseWriter, record *runstore.RunRecord, resp *simapi.SimulationResponse) {
	rv, err := deriveRunView(simapi.SimulationParams{M: record.M, N: record.N, K: record.K}, resp)
	if err != nil {
		httputil.InternalServerError(w, "stored run is inconsistent")
		return
	}
	rv.RunID = record.RunID
	httputil.WriteJSONOK(w, rv)
}

func (ws *WebServer) handlePretrained(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	model, err := ws.client.Pretrained(r.Context())
	if err != nil {
		httputil.BadGateway(w, userMessage(err, "no pretrained model available"))
		return
	}
	httputil.WriteJSONOK(w, model)
}

// sessionView is the JSON shape of /api/session.
type sessionView struct {
	Phase     string                `json:"phase"`
	Error     string                `json:"error,omitempty"`
	HasResult bool                  `json:"has_result"`
	Summaries []view.ClusterSummary `json:"summaries,omitempty"`
	KPICards  []view.KPICard        `json:"kpi_cards,omitempty"`
}

func (ws *WebServer) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	snap := ws.session.Snapshot()
	sv := sessionView{
		Phase:     snap.Phase.String(),
		Error:     snap.Err,
		HasResult: snap.Result != nil,
		Summaries: snap.Summaries,
	}
	if snap.Result != nil {
		sv.KPICards = view.KPICards(snap.Result.Response)
	}
	httputil.WriteJSONOK(w, sv)
}

// currentResult returns the session's result, falling back to the latest
// stored run so charts survive a restart.
func (ws *WebServer) currentResult() (*view.EnrichedResult, []view.ClusterSummary, error) {
	snap := ws.session.Snapshot()
	if snap.Result != nil {
		return snap.Result, snap.Summaries, nil
	}

	if ws.store == nil {
		return nil, nil, runstore.ErrRunNotFound
	}
	_, resp, err := ws.store.LatestRun()
	if err != nil {
		return nil, nil, err
	}
	enriched, err := view.Enrich(resp)
	if err != nil {
		return nil, nil, err
	}
	return enriched, view.Summarize(enriched), nil
}

// userMessage reduces any failure to the single string shown to the user,
// preferring the computation service's own detail message.
func userMessage(err error, generic string) string {
	var apiErr *simapi.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, view.ErrAssignmentMismatch) {
		return err.Error()
	}
	return generic
}
