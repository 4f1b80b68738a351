package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/eugenenazirov/binpack/internal/experiment"
	"github.com/eugenenazirov/binpack/internal/instance"
	"github.com/eugenenazirov/binpack/internal/packing"
	"github.com/eugenenazirov/binpack/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires the constructors and result storage into HTTP handlers.
type Handler struct {
	storage storage.Storage

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		storage: store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleHeuristics(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, heuristicsResponse{Heuristics: packing.Names()})
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if req.Instance == nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "instance is required")
		return
	}

	inst, err := instance.Decode(req.Instance)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid instance", err.Error())
		return
	}

	if req.Heuristic == "" {
		req.Heuristic = packing.FirstFitName
	}
	constructor, err := packing.Lookup(req.Heuristic)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown heuristic", err.Error(),
			fmt.Sprintf("Use one of %v", packing.Names()))
		return
	}

	solution, result, solveErr := experiment.Solve(constructor, inst, h.clock)
	if err := h.storage.SaveResult(r.Context(), result); err != nil {
		writeInternalError(w, err)
		return
	}

	if solveErr != nil {
		switch {
		case errors.Is(solveErr, packing.ErrInfeasible):
			suggestion := fmt.Sprintf("Every weight must be at most the capacity %g", inst.Capacity)
			writeError(w, http.StatusUnprocessableEntity, "Cannot pack instance", solveErr.Error(), suggestion)
		case errors.Is(solveErr, packing.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "Invalid instance", solveErr.Error())
		default:
			writeInternalError(w, solveErr)
		}
		return
	}

	boxes := solution.Boxes()
	resp := solveResponse{
		Instance:          inst.Name,
		Heuristic:         constructor.Name(),
		BinsUsed:          solution.BoxCount(),
		BestKnown:         inst.BestKnown,
		Boxes:             boxes,
		Loads:             lo.Map(boxes, func(_ []int, box int) float64 { return solution.Load(box) }),
		CalculationTimeMs: result.Elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.storage.ListResults(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if results == nil {
		results = []experiment.Result{}
	}
	writeJSON(w, http.StatusOK, resultsResponse{
		Results: results,
		Summary: experiment.Summarize(results),
	})
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type solveRequest struct {
	Instance  map[string]any `json:"instance"`
	Heuristic string         `json:"heuristic"`
}

type solveResponse struct {
	Instance          string    `json:"instance"`
	Heuristic         string    `json:"heuristic"`
	BinsUsed          int       `json:"binsUsed"`
	BestKnown         int       `json:"bestKnown"`
	Boxes             [][]int   `json:"boxes"`
	Loads             []float64 `json:"loads"`
	CalculationTimeMs int64     `json:"calculationTimeMs"`
}

type heuristicsResponse struct {
	Heuristics []string `json:"heuristics"`
}

type resultsResponse struct {
	Results []experiment.Result  `json:"results"`
	Summary []experiment.Summary `json:"summary"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
