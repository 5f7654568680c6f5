// Package country provides the read-only reference data used by the
// emissions calculation: per-country fleet statistics, new-car CO2
// factors by registration year, and tailpipe emission limits. All tables
// are embedded in the binary and loaded once at startup; the resulting
// Store is immutable and safe for concurrent use.
package country

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

//go:embed data/*.csv
var dataFS embed.FS

// Lookup errors.
var (
	ErrCountryNotFound  = errors.New("country not found in reference data")
	ErrYearOutOfRange   = errors.New("year outside reference data range")
	ErrUnknownFuel      = errors.New("unknown fuel type")
	ErrUnknownPollutant = errors.New("unknown pollutant")
)

// electricityCo2ByIndex is the carbon intensity of electricity generation
// in gCO2/kWh, per country, in the column order of new_car_co2.csv.
// Source: EEA electricity generation data.
var electricityCo2ByIndex = []float64{
	96, 145, 422, 133, 589, 400, 103, 658, 66, 68, 366, 416, 180, 310, 252,
	86, 180, 52, 347, 321, 666, 173, 247, 115, 208, 205, 7, 251,
}

// fleetStats holds one row of fleet_stats.csv. Shares are fractions.
type fleetStats struct {
	averageAge  float64
	petrolShare float64
	dieselShare float64
	evShare     float64
}

// emissionLimits holds one row of emission_limits.csv, in g/km.
type emissionLimits struct {
	petrolNOx float64
	dieselNOx float64
	petrolPM  float64
	dieselPM  float64
}

// Store is the loaded reference data set.
type Store struct {
	countries []string
	minYear   int
	maxYear   int

	// newCarCo2[year][country] in g/km.
	newCarCo2 map[int]map[string]float64

	fleet  map[string]fleetStats
	limits map[int]emissionLimits

	// electricityCo2 in gCO2/kWh, keyed by country.
	electricityCo2 map[string]float64
}

// Load parses the embedded reference tables into a Store.
func Load() (*Store, error) {
	s := &Store{
		newCarCo2:      make(map[int]map[string]float64),
		fleet:          make(map[string]fleetStats),
		limits:         make(map[int]emissionLimits),
		electricityCo2: make(map[string]float64),
	}

	if err := s.loadNewCarCo2(); err != nil {
		return nil, fmt.Errorf("load new-car CO2 table: %w", err)
	}
	if err := s.loadFleetStats(); err != nil {
		return nil, fmt.Errorf("load fleet statistics: %w", err)
	}
	if err := s.loadEmissionLimits(); err != nil {
		return nil, fmt.Errorf("load emission limits: %w", err)
	}

	if len(s.countries) != len(electricityCo2ByIndex) {
		return nil, fmt.Errorf("electricity intensity table has %d entries for %d countries",
			len(electricityCo2ByIndex), len(s.countries))
	}
	for i, name := range s.countries {
		s.electricityCo2[name] = electricityCo2ByIndex[i]
	}

	return s, nil
}

func (s *Store) readCSV(name string) ([][]string, error) {
	f, err := dataFS.Open("data/" + name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no data rows", name)
	}
	return records, nil
}

func (s *Store) loadNewCarCo2() error {
	records, err := s.readCSV("new_car_co2.csv")
	if err != nil {
		return err
	}

	header := records[0]
	if len(header) < 2 || header[0] != "year" {
		return fmt.Errorf("unexpected header %q", strings.Join(header, ","))
	}
	s.countries = append([]string(nil), header[1:]...)

	for _, rec := range records[1:] {
		year, err := strconv.Atoi(rec[0])
		if err != nil {
			return fmt.Errorf("bad year %q: %w", rec[0], err)
		}
		if len(rec) != len(header) {
			return fmt.Errorf("year %d: expected %d columns, got %d", year, len(header), len(rec))
		}

		row := make(map[string]float64, len(s.countries))
		for i, name := range s.countries {
			v, err := strconv.ParseFloat(rec[i+1], 64)
			if err != nil {
				return fmt.Errorf("year %d, %s: %w", year, name, err)
			}
			row[name] = v
		}
		s.newCarCo2[year] = row

		if s.minYear == 0 || year < s.minYear {
			s.minYear = year
		}
		if year > s.maxYear {
			s.maxYear = year
		}
	}
	return nil
}

func (s *Store) loadFleetStats() error {
	records, err := s.readCSV("fleet_stats.csv")
	if err != nil {
		return err
	}

	for _, rec := range records[1:] {
		if len(rec) != 5 {
			return fmt.Errorf("fleet row %q: expected 5 columns", strings.Join(rec, ","))
		}
		vals := make([]float64, 4)
		for i := range vals {
			v, err := strconv.ParseFloat(rec[i+1], 64)
			if err != nil {
				return fmt.Errorf("fleet row %s: %w", rec[0], err)
			}
			vals[i] = v
		}
		s.fleet[rec[0]] = fleetStats{
			averageAge:  vals[0],
			petrolShare: vals[1],
			dieselShare: vals[2],
			evShare:     vals[3],
		}
	}
	return nil
}

func (s *Store) loadEmissionLimits() error {
	records, err := s.readCSV("emission_limits.csv")
	if err != nil {
		return err
	}

	for _, rec := range records[1:] {
		if len(rec) != 5 {
			return fmt.Errorf("limit row %q: expected 5 columns", strings.Join(rec, ","))
		}
		year, err := strconv.Atoi(rec[0])
		if err != nil {
			return fmt.Errorf("bad year %q: %w", rec[0], err)
		}
		vals := make([]float64, 4)
		for i := range vals {
			v, err := strconv.ParseFloat(rec[i+1], 64)
			if err != nil {
				return fmt.Errorf("limit row %d: %w", year, err)
			}
			vals[i] = v
		}
		s.limits[year] = emissionLimits{
			petrolNOx: vals[0],
			dieselNOx: vals[1],
			petrolPM:  vals[2],
			dieselPM:  vals[3],
		}
	}
	return nil
}

// Countries returns the list of countries covered by the reference data,
// in table column order.
func (s *Store) Countries() []string {
	return append([]string(nil), s.countries...)
}

// YearRange returns the inclusive registration-year range covered by the
// new-car CO2 and emission-limit tables.
func (s *Store) YearRange() (minYear, maxYear int) {
	return s.minYear, s.maxYear
}

// Data returns the country-level inputs for a calculation. The residual
// "other" fuel share is clamped at zero: source rounding can push
// petrol+diesel+EV slightly above 100%.
func (s *Store) Data(name string) (Data, error) {
	stats, ok := s.fleet[name]
	if !ok {
		return Data{}, fmt.Errorf("%q: %w", name, ErrCountryNotFound)
	}
	elec, ok := s.electricityCo2[name]
	if !ok {
		return Data{}, fmt.Errorf("%q: %w", name, ErrCountryNotFound)
	}

	other := 1 - stats.petrolShare - stats.dieselShare - stats.evShare
	if other < 0 {
		other = 0
	}

	return Data{
		AverageAge: stats.averageAge,
		FuelShares: FuelShares{
			Petrol: stats.petrolShare * 100,
			Diesel: stats.dieselShare * 100,
			EV:     stats.evShare * 100,
			Other:  other * 100,
		},
		ElectricityCo2: elec,
	}, nil
}

// NewCarCo2 returns the average CO2 emission of new cars registered in
// the given year and country, in g/km.
func (s *Store) NewCarCo2(year int, name string) (float64, error) {
	row, ok := s.newCarCo2[year]
	if !ok {
		return 0, fmt.Errorf("year %d: %w", year, ErrYearOutOfRange)
	}
	v, ok := row[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrCountryNotFound)
	}
	return v, nil
}

// EmissionLimit returns the tailpipe emission limit in g/km for the given
// registration year, fuel and pollutant.
func (s *Store) EmissionLimit(year int, fuel Fuel, pollutant Pollutant) (float64, error) {
	row, ok := s.limits[year]
	if !ok {
		return 0, fmt.Errorf("year %d: %w", year, ErrYearOutOfRange)
	}
	switch fuel {
	case FuelPetrol:
		switch pollutant {
		case PollutantNOx:
			return row.petrolNOx, nil
		case PollutantPM:
			return row.petrolPM, nil
		}
	case FuelDiesel:
		switch pollutant {
		case PollutantNOx:
			return row.dieselNOx, nil
		case PollutantPM:
			return row.dieselPM, nil
		}
	default:
		return 0, fmt.Errorf("%q: %w", fuel, ErrUnknownFuel)
	}
	return 0, fmt.Errorf("%q: %w", pollutant, ErrUnknownPollutant)
}

// NewCarCo2Table returns the raw new-car CO2 table for the reference
// data endpoints: one row per year (descending), first column the year.
func (s *Store) NewCarCo2Table() Table {
	t := Table{Columns: append([]string{"year"}, s.countries...)}
	for year := s.maxYear; year >= s.minYear; year-- {
		row := make([]float64, 0, len(s.countries)+1)
		row = append(row, float64(year))
		for _, name := range s.countries {
			row = append(row, s.newCarCo2[year][name])
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// ElectricityIntensityTable returns the per-country electricity carbon
// intensity as a single-row table, in gCO2/kWh.
func (s *Store) ElectricityIntensityTable() Table {
	row := make([]float64, len(s.countries))
	for i, name := range s.countries {
		row[i] = s.electricityCo2[name]
	}
	return Table{Columns: append([]string(nil), s.countries...), Rows: [][]float64{row}}
}
