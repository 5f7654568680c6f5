package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/modeshift/modeshift/internal/api/models"
	"github.com/modeshift/modeshift/internal/api/response"
	"github.com/modeshift/modeshift/internal/country"
)

// DataHandler serves the read-only reference data endpoints.
type DataHandler struct {
	store *country.Store
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(store *country.Store) *DataHandler {
	return &DataHandler{store: store}
}

// ListCountries handles GET /v1/data/countries.
func (h *DataHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	minYear, maxYear := h.store.YearRange()
	list := models.CountryList{
		Countries: h.store.Countries(),
		YearRange: models.YearRange{Min: minYear, Max: maxYear},
	}
	response.JSON(w, r, http.StatusOK, list)
}

// GetCountry handles GET /v1/data/countries/{country}.
func (h *DataHandler) GetCountry(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "country")
	data, err := h.store.Data(name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewCountryData(name, data))
}

// NewCarCo2Table handles GET /v1/data/reference/new-car-co2.
func (h *DataHandler) NewCarCo2Table(w http.ResponseWriter, r *http.Request) {
	table := models.NewReferenceTable("new-car-co2", h.store.NewCarCo2Table())
	response.JSON(w, r, http.StatusOK, table)
}

// ElectricityIntensityTable handles GET /v1/data/reference/electricity-intensity.
func (h *DataHandler) ElectricityIntensityTable(w http.ResponseWriter, r *http.Request) {
	table := models.NewReferenceTable("electricity-intensity", h.store.ElectricityIntensityTable())
	response.JSON(w, r, http.StatusOK, table)
}
