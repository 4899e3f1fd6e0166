// Package server exposes the TCO calculation over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/iwvelando/fleet-tco/internal/config"
	"github.com/iwvelando/fleet-tco/internal/evaluate"
	"github.com/iwvelando/fleet-tco/internal/report"
	"github.com/iwvelando/fleet-tco/pkg/constants"
	"github.com/iwvelando/fleet-tco/pkg/tco"
	"go.uber.org/zap"
)

// Catalog provides stored scenarios. *inventory.Inventory satisfies it.
type Catalog interface {
	Scenarios(ctx context.Context) ([]string, error)
	LoadScenario(ctx context.Context, name string) (tco.Inputs, error)
}

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	catalog       Catalog
}

// NewHandler constructs the HTTP handler serving the TCO API. catalog may be
// nil, in which case the inventory routes answer 404.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, catalog Catalog) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion, catalog: catalog}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)
	router.HandleFunc("/api/tco", h.handleTCO).Methods(http.MethodPost)
	router.HandleFunc("/api/scenarios", h.handleListScenarios).Methods(http.MethodGet)
	router.HandleFunc("/api/scenarios/{name}/tco", h.handleScenarioTCO).Methods(http.MethodPost)
	router.Use(h.loggingMiddleware)

	return router
}

type tcoResponse struct {
	Scenarios []report.Scenario `json:"scenarios"`
	CSV       string            `json:"csv"`
	Warnings  []string          `json:"warnings,omitempty"`
	Duration  string            `json:"duration"`
}

func (h *handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug(fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			zap.String("op", "server.loggingMiddleware"),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// handleTCO calculates the active scenarios of a configuration document sent
// as the request body, YAML unless the content type says JSON.
func (h *handler) handleTCO(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTCO"
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r.Body); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	if len(bytes.TrimSpace(buf.Bytes())) == 0 {
		h.respondError(w, http.StatusBadRequest, "missing configuration", op)
		return
	}

	cfg, err := config.ParseConfiguration(buf.Bytes(), configType(r.Header.Get("Content-Type")))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	outcomes, err := evaluate.Evaluate(r.Context(), h.logger, *cfg)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}

	h.respond(w, outcomes, cfg.ValidateConfiguration(), start, op)
}

func (h *handler) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListScenarios"
	if h.catalog == nil {
		h.respondError(w, http.StatusNotFound, "no scenario inventory configured", op)
		return
	}

	names, err := h.catalog.Scenarios(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list scenarios: %v", err), op)
		return
	}
	if names == nil {
		names = []string{}
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"scenarios": names})
}

// handleScenarioTCO calculates a scenario stored in the inventory.
func (h *handler) handleScenarioTCO(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenarioTCO"
	start := time.Now()
	if h.catalog == nil {
		h.respondError(w, http.StatusNotFound, "no scenario inventory configured", op)
		return
	}

	name := mux.Vars(r)["name"]
	in, err := h.catalog.LoadScenario(r.Context(), name)
	if err != nil {
		status := statusFor(err)
		if errors.Is(err, tco.ErrConfiguration) {
			status = http.StatusNotFound
		}
		h.respondError(w, status, err.Error(), op)
		return
	}

	result, err := tco.NewCalculator(h.logger.With(zap.String("scenario", name))).CalculateInputs(in)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}

	h.respond(w, []evaluate.Outcome{{Name: name, Result: result}}, nil, start, op)
}

func (h *handler) respond(w http.ResponseWriter, outcomes []evaluate.Outcome, warnings []string, start time.Time, op string) {
	var csvBuf bytes.Buffer
	if err := report.CsvFormat(&csvBuf, outcomes); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	response := tcoResponse{
		Scenarios: report.Build(outcomes).Scenarios,
		CSV:       csvBuf.String(),
		Warnings:  warnings,
		Duration:  elapsed.String(),
	}

	h.logger.Info("tco computed",
		zap.String("op", op),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

// statusFor maps the calculation error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tco.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, tco.ErrValidation), errors.Is(err, tco.ErrArithmetic):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func configType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil && (mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")) {
		return "json"
	}
	return "yaml"
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("tco request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func Serve(ctx context.Context, logger *zap.Logger, cfg *Config, h http.Handler) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	readTimeout, writeTimeout := cfg.Timeouts()
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      h,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("op", "server.Serve"),
			zap.String("address", cfg.Address),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down server", zap.String("op", "server.Serve"))
		return srv.Shutdown(shutdownCtx)
	}
}
