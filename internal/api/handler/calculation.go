package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/modeshift/modeshift/internal/api/middleware"
	"github.com/modeshift/modeshift/internal/api/models"
	"github.com/modeshift/modeshift/internal/api/response"
	"github.com/modeshift/modeshift/internal/calc"
	"github.com/modeshift/modeshift/internal/variables"
)

// CalculationHandler handles the emission calculation endpoint.
type CalculationHandler struct {
	engine  *calc.Engine
	vars    *variables.Service
	metrics *middleware.CalculationMetrics
}

// NewCalculationHandler creates a new CalculationHandler.
func NewCalculationHandler(engine *calc.Engine, vars *variables.Service, metrics *middleware.CalculationMetrics) *CalculationHandler {
	return &CalculationHandler{
		engine:  engine,
		vars:    vars,
		metrics: metrics,
	}
}

// CalculateEmissions handles POST /v1/calculations/emissions. Variable
// groups missing from the request body fall back to the stored tables.
func (h *CalculationHandler) CalculateEmissions(w http.ResponseWriter, r *http.Request) {
	var input models.EmissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "invalid input", errs)
		return
	}

	stored, err := h.vars.Snapshot(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	start := time.Now()
	result, err := h.engine.Calculate(input.ToCalcInput(stored))
	h.metrics.RecordCalculation(r.Context(), input.Country, time.Since(start), err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.EmissionsResponse{
		Country:     input.Country,
		CityName:    input.CityName,
		Inhabitants: input.Inhabitants,
		Result:      result,
	})
}
