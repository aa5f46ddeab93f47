package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"sirlab/internal/config"
	"sirlab/internal/epi"
	"sirlab/internal/metrics"
	"sirlab/internal/scenario"
	"sirlab/internal/validate"
)

// Handler provides the HTTP boundary over the simulation engine.
type Handler struct {
	runner *scenario.Runner
}

func NewHandler(runner *scenario.Runner) *Handler {
	return &Handler{runner: runner}
}

// RegisterRoutes sets up all API routes.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.handleHealth).Methods("GET")
	r.HandleFunc("/models", h.handleListModels).Methods("GET")
	r.HandleFunc("/presets/{model}", h.handleListPresets).Methods("GET")
	r.HandleFunc("/simulate", h.handleSimulate).Methods("POST")
	r.HandleFunc("/scenarios", h.handleScenarios).Methods("POST")
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, details []string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   message,
		"details": details,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleListModels(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.runner.Registry().Kinds())
}

func (h *Handler) handleListPresets(w http.ResponseWriter, r *http.Request) {
	model := mux.Vars(r)["model"]
	presets := config.ListPresets(model)
	if presets == nil {
		respondError(w, http.StatusNotFound, "unknown model: "+model, nil)
		return
	}
	respondJSON(w, http.StatusOK, presets)
}

// SimulateRequest is one parameter set bound to a model variant.
type SimulateRequest struct {
	Model  string     `json:"model"`
	Params epi.Params `json:"params"`
}

// SimulateResponse carries the solved series and its summary record.
type SimulateResponse struct {
	Model      string          `json:"model"`
	Params     epi.Params      `json:"params"`
	Trajectory *epi.Trajectory `json:"trajectory"`
	Metrics    *metrics.Record `json:"metrics"`
}

func (h *Handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body", nil)
		return
	}

	out := h.runner.RunOne(r.Context(), scenario.Scenario{
		Name:   "api",
		Model:  req.Model,
		Params: req.Params,
	})
	if out.Err != nil {
		status, details := classify(out.Err)
		respondError(w, status, out.Err.Error(), details)
		return
	}

	respondJSON(w, http.StatusOK, SimulateResponse{
		Model:      req.Model,
		Params:     req.Params,
		Trajectory: out.Trajectory,
		Metrics:    out.Metrics,
	})
}

// ScenarioResult is the uniform per-scenario API outcome: exactly one of
// Error or Trajectory/Metrics is set.
type ScenarioResult struct {
	Name       string          `json:"name"`
	Model      string          `json:"model"`
	Error      string          `json:"error,omitempty"`
	Details    []string        `json:"details,omitempty"`
	Trajectory *epi.Trajectory `json:"trajectory,omitempty"`
	Metrics    *metrics.Record `json:"metrics,omitempty"`
}

func (h *Handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	var scenarios []scenario.Scenario
	if err := json.NewDecoder(r.Body).Decode(&scenarios); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body", nil)
		return
	}
	if len(scenarios) == 0 {
		respondError(w, http.StatusBadRequest, "no scenarios given", nil)
		return
	}

	outcomes := h.runner.Run(r.Context(), scenarios)

	results := make([]ScenarioResult, len(outcomes))
	for i, out := range outcomes {
		res := ScenarioResult{
			Name:  out.Scenario.Name,
			Model: out.Scenario.Model,
		}
		if out.Err != nil {
			res.Error = out.Err.Error()
			var verr *validate.ValidationError
			if errors.As(out.Err, &verr) {
				res.Details = verr.Violations
			}
		} else {
			res.Trajectory = out.Trajectory
			res.Metrics = out.Metrics
		}
		results[i] = res
	}

	// Batches always respond 200; per-scenario failure lives in the body.
	respondJSON(w, http.StatusOK, results)
}

// classify maps engine errors to HTTP statuses: invalid parameters are the
// caller's to fix, numerical failures are not retryable as-is.
func classify(err error) (int, []string) {
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Violations
	}
	if errors.Is(err, epi.ErrUnknownModel) {
		return http.StatusBadRequest, nil
	}
	if errors.Is(err, epi.ErrNumericalInstability) || errors.Is(err, epi.ErrStepTooSmall) {
		return http.StatusUnprocessableEntity, nil
	}
	return http.StatusInternalServerError, nil
}
