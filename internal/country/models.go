package country

// Fuel identifies a fuel type in the emission limit tables.
type Fuel string

const (
	FuelPetrol Fuel = "petrol"
	FuelDiesel Fuel = "diesel"
)

// Pollutant identifies an air pollutant in the emission limit tables.
type Pollutant string

const (
	PollutantNOx Pollutant = "nox"
	PollutantPM  Pollutant = "pm"
)

// FuelShares holds the fuel-type distribution of a country's car fleet,
// in percent. Shares sum to roughly 100; Other absorbs source rounding.
type FuelShares struct {
	Petrol float64
	Diesel float64
	EV     float64
	Other  float64
}

// Data holds the country-level inputs the calculation engine consumes.
type Data struct {
	// AverageAge is the average age of the car fleet in years.
	AverageAge float64

	// FuelShares is the fuel-type distribution of the fleet.
	FuelShares FuelShares

	// ElectricityCo2 is the carbon intensity of electricity generation
	// in gCO2/kWh.
	ElectricityCo2 float64
}

// Table is a raw reference table exposed on the read-only data endpoints.
type Table struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}
