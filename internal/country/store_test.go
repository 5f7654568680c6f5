package country_test

import (
	"errors"
	"testing"

	"github.com/modeshift/modeshift/internal/country"
)

func TestLoad(t *testing.T) {
	store, err := country.Load()
	if err != nil {
		t.Fatalf("failed to load reference data: %v", err)
	}

	countries := store.Countries()
	if len(countries) != 28 {
		t.Errorf("expected 28 countries, got %d", len(countries))
	}
	if countries[0] != "Austria" {
		t.Errorf("expected first country Austria, got %q", countries[0])
	}

	minYear, maxYear := store.YearRange()
	if minYear != 2000 || maxYear != 2023 {
		t.Errorf("expected year range 2000-2023, got %d-%d", minYear, maxYear)
	}
}

func TestStore_Data(t *testing.T) {
	store, err := country.Load()
	if err != nil {
		t.Fatalf("failed to load reference data: %v", err)
	}

	data, err := store.Data("Austria")
	if err != nil {
		t.Fatalf("failed to get Austria data: %v", err)
	}

	if data.AverageAge != 9.3 {
		t.Errorf("expected average age 9.3, got %v", data.AverageAge)
	}
	if data.ElectricityCo2 != 96 {
		t.Errorf("expected electricity intensity 96, got %v", data.ElectricityCo2)
	}

	// Shares are converted from fractions to percentages.
	if got := data.FuelShares.Petrol; got < 42.19 || got > 42.21 {
		t.Errorf("expected petrol share 42.2, got %v", got)
	}
	if got := data.FuelShares.Diesel; got < 49.89 || got > 49.91 {
		t.Errorf("expected diesel share 49.9, got %v", got)
	}
	if got := data.FuelShares.EV; got < 7.79 || got > 7.81 {
		t.Errorf("expected EV share 7.8, got %v", got)
	}
}

func TestStore_Data_OtherShareClamped(t *testing.T) {
	store, err := country.Load()
	if err != nil {
		t.Fatalf("failed to load reference data: %v", err)
	}

	// Denmark's source shares sum slightly above 100%; the residual
	// "other" share must clamp at zero rather than go negative.
	data, err := store.Data("Denmark")
	if err != nil {
		t.Fatalf("failed to get Denmark data: %v", err)
	}
	if data.FuelShares.Other < 0 {
		t.Errorf("expected non-negative other share, got %v", data.FuelShares.Other)
	}
}

func TestStore_Data_NotFound(t *testing.T) {
	store, err := country.Load()
	if err != nil {
		t.Fatalf("failed to load reference data: %v", err)
	}

	_, err = store.Data("Atlantis")
	if !errors.Is(err, country.ErrCountryNotFound) {
		t.Errorf("expected ErrCountryNotFound, got %v", err)
	}
}

func TestStore_NewCarCo2(t *testing.T) {
	store, err := country.Load()
	if err != nil {
		t.Fatalf("failed to load reference data: %v", err)
	}

	v, err := store.NewCarCo2(2015, "Austria")
	if err != nil {
		t.Fatalf("failed to look up new-car CO2: %v", err)
	}
	if v <= 0 {
		t.Errorf("expected positive CO2 factor, got %v", v)
	}

	if _, err := store.NewCarCo2(1980, "Austria"); !errors.Is(err, country.ErrYearOutOfRange) {
		t.Errorf("expected ErrYearOutOfRange, got %v", err)
	}
	if _, err := store.NewCarCo2(2015, "Atlantis"); !errors.Is(err, country.ErrCountryNotFound) {
		t.Errorf("expected ErrCountryNotFound, got %v", err)
	}
}

func TestStore_EmissionLimit(t *testing.T) {
	store, err := country.Load()
	if err != nil {
		t.Fatalf("failed to load reference data: %v", err)
	}

	tests := []struct {
		name      string
		year      int
		fuel      country.Fuel
		pollutant country.Pollutant
		want      float64
	}{
		{"euro6 petrol nox", 2015, country.FuelPetrol, country.PollutantNOx, 0.06},
		{"euro6 diesel nox", 2015, country.FuelDiesel, country.PollutantNOx, 0.08},
		{"euro6 petrol pm", 2015, country.FuelPetrol, country.PollutantPM, 0.005},
		{"euro6 diesel pm", 2015, country.FuelDiesel, country.PollutantPM, 0.005},
		{"euro3 diesel nox", 2002, country.FuelDiesel, country.PollutantNOx, 0.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.EmissionLimit(tt.year, tt.fuel, tt.pollutant)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if _, err := store.EmissionLimit(2015, "hydrogen", country.PollutantNOx); !errors.Is(err, country.ErrUnknownFuel) {
		t.Errorf("expected ErrUnknownFuel, got %v", err)
	}
}

func TestStore_Tables(t *testing.T) {
	store, err := country.Load()
	if err != nil {
		t.Fatalf("failed to load reference data: %v", err)
	}

	co2 := store.NewCarCo2Table()
	if len(co2.Columns) != 29 {
		t.Errorf("expected 29 columns (year + 28 countries), got %d", len(co2.Columns))
	}
	if len(co2.Rows) != 24 {
		t.Errorf("expected 24 year rows, got %d", len(co2.Rows))
	}
	if co2.Rows[0][0] != 2023 {
		t.Errorf("expected first row year 2023, got %v", co2.Rows[0][0])
	}

	elec := store.ElectricityIntensityTable()
	if len(elec.Rows) != 1 || len(elec.Rows[0]) != 28 {
		t.Fatalf("expected single row of 28 values, got %dx%d", len(elec.Rows), len(elec.Rows[0]))
	}
	if elec.Rows[0][0] != 96 {
		t.Errorf("expected Austria intensity 96, got %v", elec.Rows[0][0])
	}
}
