package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/mergehosts/mergehosts/src/internal/errors"
	"github.com/mergehosts/mergehosts/src/internal/hosts"
	"github.com/mergehosts/mergehosts/src/internal/log"
	"github.com/mergehosts/mergehosts/src/internal/metrics"
)

// Renderer runs one merge of the configured sources into w.
// This allows the API to merge without importing the commands package directly.
type Renderer interface {
	Render(w io.Writer) (*hosts.Result, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(w io.Writer) (*hosts.Result, error)

func (f RendererFunc) Render(w io.Writer) (*hosts.Result, error) {
	return f(w)
}

// Handler manages all API endpoints and dependencies.
type Handler struct {
	renderer Renderer
	metrics  *metrics.MergeMetrics
	logger   *log.Logger

	// Sources are re-read on every merge; one merge runs at a time.
	mu sync.Mutex
}

// NewHandler creates a new API handler.
func NewHandler(renderer Renderer, m *metrics.MergeMetrics, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Discard()
	}
	if m == nil {
		m = metrics.NewMergeMetrics(nil, metrics.Namespace)
	}
	return &Handler{
		renderer: renderer,
		metrics:  m,
		logger:   logger,
	}
}

// render merges the sources into w and records the outcome.
func (h *Handler) render(w io.Writer) (*hosts.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	res, err := h.renderer.Render(w)
	if err != nil {
		h.metrics.Failed()
		return nil, err
	}
	h.metrics.Observe(res)
	return res, nil
}

// GetHosts returns the merged hosts document.
// GET /hosts
func (h *Handler) GetHosts(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	res, err := h.render(&buf)
	if err != nil {
		h.writeMergeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Host-Entries", strconv.Itoa(res.Total))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warnf("Failed to send hosts document: %v", err)
	}
}

// GetSummary merges the sources and returns the per-source counters.
// GET /api/v1/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	res, err := h.render(io.Discard)
	if err != nil {
		h.writeMergeError(w, err)
		return
	}

	writeJSONData(w, SummaryResponse{Sources: res.Sources, Total: res.Total})
}

// Health reports that the server is up.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) writeMergeError(w http.ResponseWriter, err error) {
	h.logger.Errorf("Merge failed: %v", err)

	var details map[string]interface{}
	var domainErr *errors.Error
	if stderrors.As(err, &domainErr) {
		details = map[string]interface{}{"code": string(domainErr.Code)}
	}
	WriteMergeError(w, err.Error(), details)
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(DataResponse{Data: data})
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}
