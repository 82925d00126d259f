package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/relvacode/iso8601"
	"go.uber.org/zap"

	"vitalguard/internal/ai"
	"vitalguard/internal/metrics"
	"vitalguard/internal/monitor"
	"vitalguard/internal/render"
	"vitalguard/internal/vitals"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	session  *monitor.Session
	latest   *render.Latest
	strategy string
	rules    ai.RuleConfig
	metrics  *metrics.Registry
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(
	session *monitor.Session,
	latest *render.Latest,
	strategy string,
	rules ai.RuleConfig,
	reg *metrics.Registry,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		session:  session,
		latest:   latest,
		strategy: strategy,
		rules:    rules,
		metrics:  reg,
		logger:   logger,
		now:      time.Now,
	}
}

/* ---------------- GET /health ---------------- */

func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"session_id": h.session.ID(),
		"monitoring": h.session.Monitoring(),
		"time":       h.now().UTC().Format(time.RFC3339),
	})
}

/* ---------------- GET /metrics ---------------- */

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.metrics.Snapshot())
}

/* ---------------- GET /api/v1/vitals/frame ---------------- */

func (h *Handler) GetFrame(w http.ResponseWriter, r *http.Request) {
	frame, ok := h.latest.Frame()
	if !ok {
		respondError(w, http.StatusNotFound, "no frame rendered yet")
		return
	}
	respond(w, http.StatusOK, frame)
}

/* ---------------- /api/v1/vitals/history ---------------- */

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.session.History())
}

func (h *Handler) ResetHistory(w http.ResponseWriter, r *http.Request) {
	h.session.Reset()
	w.WriteHeader(http.StatusNoContent)
}

/* ---------------- POST /api/v1/vitals/tick ---------------- */

func (h *Handler) Tick(w http.ResponseWriter, r *http.Request) {
	frame, err := h.session.Tick(r.Context())
	switch {
	case errors.Is(err, monitor.ErrSessionClosed):
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	case frame == nil && err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	case frame == nil:
		respondError(w, http.StatusConflict, "monitoring is paused")
		return
	case err != nil:
		// the reading was recorded; only a render surface failed
		h.logger.Warn("manual tick rendered with errors", zap.Error(err))
	}
	respond(w, http.StatusOK, frame)
}

/* ---------------- /api/v1/vitals/monitoring ---------------- */

type monitoringState struct {
	Enabled *bool `json:"enabled"`
}

func (h *Handler) GetMonitoring(w http.ResponseWriter, r *http.Request) {
	enabled := h.session.Monitoring()
	respond(w, http.StatusOK, monitoringState{Enabled: &enabled})
}

func (h *Handler) SetMonitoring(w http.ResponseWriter, r *http.Request) {
	var req monitoringState
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.Enabled == nil {
		respondError(w, http.StatusBadRequest, "missing field: enabled")
		return
	}

	h.session.SetMonitoring(*req.Enabled)
	respond(w, http.StatusOK, req)
}

/* ---------------- /api/v1/vitals/patient ---------------- */

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.session.Patient())
}

func (h *Handler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	var p vitals.Patient
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.session.SetPatient(p); err != nil {
		if errors.Is(err, vitals.ErrInvalidPatient) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, h.session.Patient())
}

/* ---------------- POST /api/v1/vitals/classify ---------------- */

// classifyRequest uses pointers so a missing vital is a 400 rather
// than a silent zero.
type classifyRequest struct {
	Timestamp        string   `json:"timestamp,omitempty"`
	HeartRate        *float64 `json:"heart_rate"`
	Systolic         *float64 `json:"systolic"`
	Diastolic        *float64 `json:"diastolic"`
	Temperature      *float64 `json:"temperature"`
	OxygenSaturation *float64 `json:"oxygen_saturation"`
}

func (req classifyRequest) reading(now time.Time) (vitals.Reading, error) {
	fields := []struct {
		name string
		v    *float64
	}{
		{"heart_rate", req.HeartRate},
		{"systolic", req.Systolic},
		{"diastolic", req.Diastolic},
		{"temperature", req.Temperature},
		{"oxygen_saturation", req.OxygenSaturation},
	}
	for _, f := range fields {
		if f.v == nil {
			return vitals.Reading{}, errors.New("missing field: " + f.name)
		}
	}

	ts := now
	if req.Timestamp != "" {
		parsed, err := iso8601.ParseString(req.Timestamp)
		if err != nil {
			return vitals.Reading{}, errors.New("timestamp must be ISO 8601")
		}
		ts = parsed
	}

	return vitals.Reading{
		Timestamp:        ts,
		HeartRate:        *req.HeartRate,
		Systolic:         *req.Systolic,
		Diastolic:        *req.Diastolic,
		Temperature:      *req.Temperature,
		OxygenSaturation: *req.OxygenSaturation,
	}, nil
}

type classifyResponse struct {
	Reading        vitals.Reading `json:"reading"`
	Classification ai.Result      `json:"classification"`
}

// Classify runs one strategy over a posted reading without touching
// the session. The configured strategy is used unless ?strategy= names another.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("strategy")
	if name == "" {
		name = h.strategy
	}

	strategy, err := ai.NewStrategy(name, h.rules)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	reading, err := req.reading(h.now())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respond(w, http.StatusOK, classifyResponse{
		Reading:        reading,
		Classification: strategy.Classify(reading),
	})
}

/* ---------------- helpers ---------------- */

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}
