package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/modeshift/modeshift/internal/api/middleware"
	"github.com/modeshift/modeshift/internal/api/models"
	"github.com/modeshift/modeshift/internal/api/response"
	"github.com/modeshift/modeshift/internal/calc"
	"github.com/modeshift/modeshift/internal/variables"
)

// VariablesHandler handles the dashboard variable table endpoints.
type VariablesHandler struct {
	svc     *variables.Service
	metrics *middleware.CalculationMetrics
}

// NewVariablesHandler creates a new VariablesHandler.
func NewVariablesHandler(svc *variables.Service, metrics *middleware.CalculationMetrics) *VariablesHandler {
	return &VariablesHandler{svc: svc, metrics: metrics}
}

// GetGeneral handles GET /v1/variables/general.
func (h *VariablesHandler) GetGeneral(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.General(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewVariableTable(rows))
}

// PutGeneral handles PUT /v1/variables/general.
func (h *VariablesHandler) PutGeneral(w http.ResponseWriter, r *http.Request) {
	var input models.VariableTable
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if err := h.svc.SaveGeneral(r.Context(), input.ToCalc()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.metrics.RecordTableSave(r.Context(), "general")
	response.JSON(w, r, http.StatusOK, input)
}

// ListTraditionalModes handles GET /v1/variables/traditional-modes.
func (h *VariablesHandler) ListTraditionalModes(w http.ResponseWriter, r *http.Request) {
	tables, err := h.svc.TraditionalModes(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewVariableTableSet(tables))
}

// GetTraditionalMode handles GET /v1/variables/traditional-modes/{mode}.
func (h *VariablesHandler) GetTraditionalMode(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")
	rows, err := h.svc.TraditionalMode(r.Context(), mode)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewVariableTable(rows))
}

// PutTraditionalMode handles PUT /v1/variables/traditional-modes/{mode}.
func (h *VariablesHandler) PutTraditionalMode(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")
	var input models.VariableTable
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if err := h.svc.SaveTraditionalMode(r.Context(), mode, input.ToCalc()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.metrics.RecordTableSave(r.Context(), "traditional/"+mode)
	response.JSON(w, r, http.StatusOK, input)
}

// PrivateCarDefaults handles GET
// /v1/variables/traditional-modes/private-car-defaults?country=.
func (h *VariablesHandler) PrivateCarDefaults(w http.ResponseWriter, r *http.Request) {
	countryName := r.URL.Query().Get("country")
	if countryName == "" {
		response.BadRequest(w, r, "invalid input", []models.FieldError{
			{Field: "country", Message: "query parameter is required"},
		})
		return
	}
	rows, err := h.svc.PrivateCarDefaults(r.Context(), countryName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewVariableTable(rows))
}

// ListSharedServices handles GET /v1/variables/shared-services.
func (h *VariablesHandler) ListSharedServices(w http.ResponseWriter, r *http.Request) {
	tables, err := h.svc.SharedServices(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewVariableTableSet(tables))
}

// GetSharedService handles GET /v1/variables/shared-services/{service}.
func (h *VariablesHandler) GetSharedService(w http.ResponseWriter, r *http.Request) {
	category := calc.SharedCategory(chi.URLParam(r, "service"))
	rows, err := h.svc.SharedService(r.Context(), category)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewVariableTable(rows))
}

// PutSharedService handles PUT /v1/variables/shared-services/{service}.
func (h *VariablesHandler) PutSharedService(w http.ResponseWriter, r *http.Request) {
	category := calc.SharedCategory(chi.URLParam(r, "service"))
	var input models.VariableTable
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if err := h.svc.SaveSharedService(r.Context(), category, input.ToCalc()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.metrics.RecordTableSave(r.Context(), "shared/"+string(category))
	response.JSON(w, r, http.StatusOK, input)
}
