package models

import "github.com/modeshift/modeshift/internal/country"

// CountryList is the response shape of the country listing.
type CountryList struct {
	Countries []string  `json:"countries"`
	YearRange YearRange `json:"yearRange"`
}

// YearRange is the inclusive year span covered by the reference tables.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// CountryData is the response shape of one country's reference data.
type CountryData struct {
	Country            string  `json:"country"`
	AverageAge         float64 `json:"averageAge"`
	PetrolSharePercent float64 `json:"petrolSharePercent"`
	DieselSharePercent float64 `json:"dieselSharePercent"`
	EVSharePercent     float64 `json:"evSharePercent"`
	ElectricityCo2     float64 `json:"electricityCo2"`
}

// NewCountryData converts domain country data to the wire form.
func NewCountryData(name string, data country.Data) CountryData {
	return CountryData{
		Country:            name,
		AverageAge:         data.AverageAge,
		PetrolSharePercent: data.FuelShares.Petrol,
		DieselSharePercent: data.FuelShares.Diesel,
		EVSharePercent:     data.FuelShares.EV,
		ElectricityCo2:     data.ElectricityCo2,
	}
}

// ReferenceTable is the response shape of a raw reference table.
type ReferenceTable struct {
	Name    string      `json:"name"`
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// NewReferenceTable converts a domain table to the wire form.
func NewReferenceTable(name string, table country.Table) ReferenceTable {
	return ReferenceTable{Name: name, Columns: table.Columns, Rows: table.Rows}
}
