package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/modeshift/modeshift/internal/calc"
)

// ModalSplitEntry is the baseline share and average trip distance of
// one traditional mode.
type ModalSplitEntry struct {
	SplitPercent  float64 `json:"splitPercent"`
	AvgDistanceKm float64 `json:"avgDistanceKm"`
}

// ModalSplit is the baseline modal split of the scenario city.
type ModalSplit struct {
	PrivateCar ModalSplitEntry `json:"privateCar"`
	PtRoad     ModalSplitEntry `json:"ptRoad"`
	PtRail     ModalSplitEntry `json:"ptRail"`
	Cycling    ModalSplitEntry `json:"cycling"`
	Walking    ModalSplitEntry `json:"walking"`
}

// FleetEntry describes one configured shared-mobility fleet.
type FleetEntry struct {
	Mode               string  `json:"mode"`
	NumVehicles        float64 `json:"numVehicles"`
	PercentageElectric float64 `json:"percentageElectric"`
}

// VariablesPayload carries inline variable table overrides on a
// calculation request. Omitted groups fall back to the stored tables.
type VariablesPayload struct {
	General          []VariableRow            `json:"general,omitempty"`
	TraditionalModes map[string][]VariableRow `json:"traditionalModes,omitempty"`
	SharedServices   map[string][]VariableRow `json:"sharedServices,omitempty"`
}

// EmissionsRequest is the request body of an emissions calculation.
type EmissionsRequest struct {
	Country     string            `json:"country"`
	CityName    string            `json:"cityName,omitempty"`
	Inhabitants int               `json:"inhabitants"`
	ModalSplit  ModalSplit        `json:"modalSplit"`
	Fleets      []FleetEntry      `json:"fleets"`
	Variables   *VariablesPayload `json:"variables,omitempty"`
}

const (
	maxCountryNameLen = 100
	maxCityNameLen    = 200
)

// placeNamePattern accepts letters in any script alongside digits,
// whitespace and the punctuation that occurs in real place names.
var placeNamePattern = regexp.MustCompile(`^[\p{L}\p{N}\s\-'.,()]+$`)

// Validate trims and checks the country and city names. It returns one
// FieldError per rejected field, or nil when the request is acceptable.
func (req *EmissionsRequest) Validate() []FieldError {
	var errs []FieldError

	req.Country = strings.TrimSpace(req.Country)
	switch {
	case req.Country == "":
		errs = append(errs, FieldError{Field: "country", Message: "is required"})
	case len(req.Country) > maxCountryNameLen:
		errs = append(errs, FieldError{Field: "country", Message: fmt.Sprintf("must be at most %d characters", maxCountryNameLen)})
	case !placeNamePattern.MatchString(req.Country):
		errs = append(errs, FieldError{Field: "country", Message: "contains invalid characters"})
	}

	req.CityName = strings.TrimSpace(req.CityName)
	switch {
	case req.CityName == "":
	case len(req.CityName) > maxCityNameLen:
		errs = append(errs, FieldError{Field: "cityName", Message: fmt.Sprintf("must be at most %d characters", maxCityNameLen)})
	case !placeNamePattern.MatchString(req.CityName):
		errs = append(errs, FieldError{Field: "cityName", Message: "contains invalid characters"})
	}

	return errs
}

// EmissionsResponse is the response body of an emissions calculation.
type EmissionsResponse struct {
	Country     string       `json:"country"`
	CityName    string       `json:"cityName,omitempty"`
	Inhabitants int          `json:"inhabitants"`
	Result      *calc.Result `json:"result"`
}

// ToCalcInput converts the request to the domain input shape. Stored
// variables fill the groups the request leaves out.
func (req *EmissionsRequest) ToCalcInput(stored calc.Variables) calc.Input {
	in := calc.Input{
		Country:     req.Country,
		Inhabitants: req.Inhabitants,
		ModalSplit: calc.ModalSplit{
			PrivateCar: calc.ModalSplitEntry(req.ModalSplit.PrivateCar),
			PTRoad:     calc.ModalSplitEntry(req.ModalSplit.PtRoad),
			PTRail:     calc.ModalSplitEntry(req.ModalSplit.PtRail),
			Cycling:    calc.ModalSplitEntry(req.ModalSplit.Cycling),
			Walking:    calc.ModalSplitEntry(req.ModalSplit.Walking),
		},
		Fleets:    make([]calc.FleetEntry, len(req.Fleets)),
		Variables: stored,
	}
	for i, f := range req.Fleets {
		in.Fleets[i] = calc.FleetEntry{
			Mode:               calc.FleetMode(f.Mode),
			NumVehicles:        f.NumVehicles,
			PercentageElectric: f.PercentageElectric,
		}
	}

	if req.Variables != nil {
		if len(req.Variables.General) > 0 {
			in.Variables.General = toCalcRows(req.Variables.General)
		}
		if len(req.Variables.TraditionalModes) > 0 {
			in.Variables.TraditionalModes = toCalcRowMap(req.Variables.TraditionalModes)
		}
		if len(req.Variables.SharedServices) > 0 {
			in.Variables.SharedServices = toCalcRowMap(req.Variables.SharedServices)
		}
	}
	return in
}

func toCalcRows(rows []VariableRow) []calc.VariableRow {
	out := make([]calc.VariableRow, len(rows))
	for i, row := range rows {
		out[i] = calc.VariableRow(row)
	}
	return out
}

func toCalcRowMap(tables map[string][]VariableRow) map[string][]calc.VariableRow {
	out := make(map[string][]calc.VariableRow, len(tables))
	for key, rows := range tables {
		out[key] = toCalcRows(rows)
	}
	return out
}
