// Package webserver exposes the OpenF1 catalog over HTTP for dashboards.
package webserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"openf1telemetry/pkg/model"
	"openf1telemetry/pkg/openf1"
)

const (
	DefaultAddr  = ":8080"
	helloMessage = "Hello from Project F1 backend!"
)

// Fetcher is the part of openf1.Client the server needs.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, params model.Params) (*model.ResultSet, error)
}

type Manager struct {
	r       *mux.Router
	fetcher Fetcher
	logger  zerolog.Logger
	metrics *metrics
}

func NewManager(fetcher Fetcher, logger zerolog.Logger) *Manager {
	m := &Manager{
		r:       mux.NewRouter(),
		fetcher: fetcher,
		logger:  logger,
		metrics: newMetrics(),
	}

	m.rootHandlers()
	return m
}

func (m *Manager) Handler() http.Handler {
	return m.r
}

func (m *Manager) rootHandlers() {
	m.r.HandleFunc("/", m.helloHandler).Methods(http.MethodGet)
	m.r.Handle("/metrics", promhttp.HandlerFor(m.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := m.r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/endpoints", m.endpointsHandler).Methods(http.MethodGet)
	api.HandleFunc("/{endpoint}", m.fetchHandler).Methods(http.MethodGet)
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (m *Manager) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:         addr,
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.r,
	}

	errCh := make(chan error, 1)
	go func() {
		m.logger.Info().Str("addr", addr).Msg("webserver listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	m.logger.Info().Msg("webserver shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (m *Manager) helloHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": helloMessage})
}

func (m *Manager) endpointsHandler(w http.ResponseWriter, r *http.Request) {
	type endpoint struct {
		Path        string   `json:"path"`
		Params      []string `json:"params"`
		Live        bool     `json:"live"`
		Description string   `json:"description"`
	}
	out := make([]endpoint, len(openf1.Catalog))
	for i, e := range openf1.Catalog {
		out[i] = endpoint{Path: e.Path, Params: e.Params, Live: e.Live, Description: e.Description}
	}
	writeJSON(w, http.StatusOK, out)
}

// fetchHandler passes the query string through to the catalog endpoint and
// answers with its rows. Upstream failures are reported, never hidden behind
// an empty array.
func (m *Manager) fetchHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["endpoint"]
	if _, ok := openf1.LookupEndpoint(name); !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown endpoint " + name})
		return
	}

	start := time.Now()
	rs, err := m.fetcher.Fetch(r.Context(), name, model.ParamsFromValues(r.URL.Query()))
	m.metrics.observe(name, err, time.Since(start))
	if err != nil {
		m.logger.Warn().Err(err).Str("endpoint", name).Msg("upstream fetch failed")
		status, body := errorResponse(err)
		writeJSON(w, status, body)
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

type errorBody struct {
	Error          string `json:"error"`
	Kind           string `json:"kind,omitempty"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

func errorResponse(err error) (int, errorBody) {
	kind := openf1.Kind(err)
	body := errorBody{Error: err.Error(), Kind: string(kind)}
	switch kind {
	case openf1.KindInvalidRequest:
		return http.StatusBadRequest, body
	case openf1.KindRemoteStatus:
		var statusErr *openf1.RemoteStatusError
		if errors.As(err, &statusErr) {
			body.UpstreamStatus = statusErr.StatusCode
		}
		return http.StatusBadGateway, body
	case openf1.KindTransport:
		var transErr *openf1.TransportError
		if errors.As(err, &transErr) && transErr.Timeout() {
			return http.StatusGatewayTimeout, body
		}
		return http.StatusBadGateway, body
	case openf1.KindDecode:
		return http.StatusBadGateway, body
	}
	return http.StatusInternalServerError, body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
