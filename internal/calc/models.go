// Package calc implements the emissions calculation engine: a pure
// function from a city's modal split, its shared-mobility fleets and a
// set of per-mode emission factor tables to per-mode and aggregate
// CO2/NOx/PM figures. The engine performs no I/O; country reference data
// is injected through the Reference interface and all variable tables
// arrive as snapshots owned by the caller.
package calc

import "github.com/modeshift/modeshift/internal/country"

// referenceYear anchors the conversion from fleet age to an approximate
// registration year.
const referenceYear = 2024

// TraditionalMode identifies a baseline transport mode that shared
// services can replace trips from.
type TraditionalMode string

const (
	ModePrivateCar TraditionalMode = "private_car"
	ModePTRoad     TraditionalMode = "pt_road"
	ModePTRail     TraditionalMode = "pt_rail"
	ModeCycling    TraditionalMode = "cycling"
	ModeWalking    TraditionalMode = "walking"
)

// TraditionalModes lists all traditional modes in canonical order. The
// order is load-bearing: replacement-share and trip-distance vectors are
// indexed by it.
var TraditionalModes = [5]TraditionalMode{
	ModePrivateCar, ModePTRoad, ModePTRail, ModeCycling, ModeWalking,
}

// requiredModes must be present after defaulting for a calculation to
// proceed; private_car alone may be populated from country data.
var requiredModes = [4]TraditionalMode{ModePTRoad, ModePTRail, ModeCycling, ModeWalking}

// SharedCategory identifies one of the nine internal shared-service
// fleet categories. The electric categories are the counterparts of the
// combustion ones; escooter has no combustion variant.
type SharedCategory string

const (
	CategoryICECar   SharedCategory = "ICEcar"
	CategoryICEMoped SharedCategory = "ICEmoped"
	CategoryBike     SharedCategory = "bike"
	CategoryECar     SharedCategory = "ecar"
	CategoryEBike    SharedCategory = "ebike"
	CategoryEMoped   SharedCategory = "emoped"
	CategoryEScooter SharedCategory = "escooter"
	CategoryOther    SharedCategory = "other"
	CategoryEOther   SharedCategory = "eother"
)

// SharedCategories lists all shared-service categories in canonical
// column order.
var SharedCategories = [9]SharedCategory{
	CategoryICECar, CategoryICEMoped, CategoryBike, CategoryECar, CategoryEBike,
	CategoryEMoped, CategoryEScooter, CategoryOther, CategoryEOther,
}

// FleetMode identifies a user-facing shared fleet type.
type FleetMode string

const (
	FleetCar      FleetMode = "Car"
	FleetBike     FleetMode = "Bike"
	FleetMoped    FleetMode = "Moped"
	FleetEScooter FleetMode = "e-Scooter"
	FleetOther    FleetMode = "Other"
)

// ResultCategory identifies a user-facing result grouping.
type ResultCategory string

const (
	ResultCar      ResultCategory = "Car"
	ResultBike     ResultCategory = "Bike"
	ResultMoped    ResultCategory = "Moped"
	ResultEScooter ResultCategory = "e-Scooter"
	ResultOther    ResultCategory = "Other"
)

// ResultCategories lists the user-facing categories in output order.
var ResultCategories = [5]ResultCategory{
	ResultCar, ResultBike, ResultMoped, ResultEScooter, ResultOther,
}

// resultGrouping maps each user-facing category to its internal
// shared-service columns. The mapping is static: grouping by substring
// match on column names is deliberately avoided.
var resultGrouping = map[ResultCategory][]SharedCategory{
	ResultCar:      {CategoryICECar, CategoryECar},
	ResultBike:     {CategoryBike, CategoryEBike},
	ResultMoped:    {CategoryICEMoped, CategoryEMoped},
	ResultEScooter: {CategoryEScooter},
	ResultOther:    {CategoryOther, CategoryEOther},
}

// VariableRow is a single user-editable model variable. A zero UserInput
// means "use the default": zero is not a valid explicit override, which
// is a known modeling limitation preserved from the domain model.
type VariableRow struct {
	Name         string
	UserInput    float64
	DefaultValue float64
}

// Variables carries the three raw variable table groups. Keys of
// TraditionalModes are the canonical mode names plus the combined
// "activeTransport" pseudo-mode; keys of SharedServices are the nine
// category names.
type Variables struct {
	General          []VariableRow
	TraditionalModes map[string][]VariableRow
	SharedServices   map[string][]VariableRow
}

// ModalSplitEntry is the baseline share and average trip distance of one
// traditional mode.
type ModalSplitEntry struct {
	SplitPercent  float64
	AvgDistanceKm float64
}

// ModalSplit is the baseline modal split of the scenario city.
type ModalSplit struct {
	PrivateCar ModalSplitEntry
	PTRoad     ModalSplitEntry
	PTRail     ModalSplitEntry
	Cycling    ModalSplitEntry
	Walking    ModalSplitEntry
}

// Entry returns the modal split entry for a traditional mode.
func (m ModalSplit) Entry(mode TraditionalMode) ModalSplitEntry {
	switch mode {
	case ModePrivateCar:
		return m.PrivateCar
	case ModePTRoad:
		return m.PTRoad
	case ModePTRail:
		return m.PTRail
	case ModeCycling:
		return m.Cycling
	case ModeWalking:
		return m.Walking
	}
	return ModalSplitEntry{}
}

// FleetEntry describes one configured shared-mobility fleet.
type FleetEntry struct {
	Mode               FleetMode
	NumVehicles        float64
	PercentageElectric float64
}

// Input is the full input of one calculation.
type Input struct {
	Country     string
	Inhabitants int
	ModalSplit  ModalSplit
	Fleets      []FleetEntry
	Variables   Variables
}

// Reference provides the pre-loaded country reference data. Implemented
// by country.Store; read-only during calculation.
type Reference interface {
	Data(name string) (country.Data, error)
	YearRange() (minYear, maxYear int)
	NewCarCo2(year int, name string) (float64, error)
	EmissionLimit(year int, fuel country.Fuel, pollutant country.Pollutant) (float64, error)
}

// ModeResult holds the per-category emission results. CO2 figures are in
// kg/day, NOx and PM in g/day. Total is always TTW+WTT+LCA.
type ModeResult struct {
	TTW   float64 `json:"ttw"`
	WTT   float64 `json:"wtt"`
	LCA   float64 `json:"lca"`
	Total float64 `json:"total"`
	NOx   float64 `json:"nox"`
	PM    float64 `json:"pm"`
}

// CO2Block expresses a CO2 total in the three reporting units.
type CO2Block struct {
	KgPerDay          float64 `json:"kgPerDay"`
	TonPerYear        float64 `json:"tonPerYear"`
	TonPerYearPer1000 float64 `json:"tonPerYearPer1000"`
}

// AirQualityBlock expresses an air-quality total in the three reporting
// units.
type AirQualityBlock struct {
	GPerDay          float64 `json:"gPerDay"`
	KgPerYear        float64 `json:"kgPerYear"`
	KgPerYearPer1000 float64 `json:"kgPerYearPer1000"`
}

// CO2Totals breaks the aggregate CO2 change into use-phase and
// life-cycle components.
type CO2Totals struct {
	Total       CO2Block `json:"total"`
	TankToWheel CO2Block `json:"tankToWheel"`
	WellToTank  CO2Block `json:"wellToTank"`
	LifeCycle   CO2Block `json:"lifeCycle"`
}

// AirQualityTotals holds the aggregate NOx and PM changes.
type AirQualityTotals struct {
	NOx AirQualityBlock `json:"nox"`
	PM  AirQualityBlock `json:"pm"`
}

// Totals holds all aggregate results.
type Totals struct {
	CO2        CO2Totals        `json:"co2"`
	AirQuality AirQualityTotals `json:"airQuality"`
}

// Result is the full output of one calculation.
type Result struct {
	PerMode map[ResultCategory]ModeResult `json:"perMode"`
	Totals  Totals                        `json:"totals"`
}
