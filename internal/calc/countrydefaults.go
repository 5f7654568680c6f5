package calc

import (
	"errors"
	"math"

	"github.com/modeshift/modeshift/internal/country"
)

// NEDC figures understate real-world consumption more than WLTP ones,
// so type-approval CO2 is scaled up depending on which test cycle the
// fleet's median registration year used.
const (
	nedcRealWorldFactor = 1.4
	wltpRealWorldFactor = 1.14
	lastNEDCYear        = 2020
)

// applyGeneralCountryDefaults overwrites the general table defaults
// with the selected country's data. The well-to-tank fraction is a
// fuel-chain property, not a country property, and keeps its literal
// default.
func applyGeneralCountryDefaults(gen *generalTable, data country.Data) {
	gen.electricityCo2.def = data.ElectricityCo2
	gen.fleetAge.def = data.AverageAge
	gen.petrolShare.def = data.FuelShares.Petrol
	gen.dieselShare.def = data.FuelShares.Diesel
	gen.evShare.def = data.FuelShares.EV
}

// applyPrivateCarCountryDefaults derives the private-car TTW CO2, NOx
// and PM defaults from the country's fleet composition. The derived
// values land in the default slots only, so an explicit user input on
// the private-car column still wins.
//
// The representative registration year is the reference year minus the
// fleet's average age. Type-approval CO2 for that year is scaled to a
// real-world estimate and the Euro-norm NOx/PM limits are weighted by
// the petrol/diesel split.
func applyPrivateCarCountryDefaults(trad *tradTable, gen generalValues, countryName string, ref Reference) error {
	// Half years round to even, so an age putting the year exactly on
	// x.5 resolves to the even neighbor. 2020.5 lands on 2020 and
	// keeps the NEDC scaling.
	carYear := int(math.RoundToEven(referenceYear - gen.fleetAge))

	typeApproval, err := ref.NewCarCo2(carYear, countryName)
	if err != nil {
		if errors.Is(err, country.ErrYearOutOfRange) {
			return newValidationError("variables.general",
				"average fleet age %v puts the registration year %d outside the reference data range",
				gen.fleetAge, carYear)
		}
		return err
	}
	factor := wltpRealWorldFactor
	if carYear <= lastNEDCYear {
		factor = nedcRealWorldFactor
	}

	var limits [2][2]float64
	fuels := [2]country.Fuel{country.FuelPetrol, country.FuelDiesel}
	pollutants := [2]country.Pollutant{country.PollutantNOx, country.PollutantPM}
	for i, fuel := range fuels {
		for j, pollutant := range pollutants {
			limit, err := ref.EmissionLimit(carYear, fuel, pollutant)
			if err != nil {
				if errors.Is(err, country.ErrYearOutOfRange) {
					return newValidationError("variables.general",
						"average fleet age %v puts the registration year %d outside the reference data range",
						gen.fleetAge, carYear)
				}
				return err
			}
			limits[i][j] = limit
		}
	}

	col := &trad.cols[0] // private_car
	col.ttwCo2.def = typeApproval * factor
	// Fleet-weighted Euro limits, g/km to mg/km.
	col.nox.def = (gen.petrolShare/100*limits[0][0] + gen.dieselShare/100*limits[1][0]) * 1000
	col.pm.def = (gen.petrolShare/100*limits[0][1] + gen.dieselShare/100*limits[1][1]) * 1000
	return nil
}

// PrivateCarCountryDefaults returns the private-car variable rows with
// their defaults derived from the given country's fleet data, as shown
// on the dashboard before any user override.
func PrivateCarCountryDefaults(ref Reference, countryName string) ([]VariableRow, error) {
	data, err := ref.Data(countryName)
	if err != nil {
		if errors.Is(err, country.ErrCountryNotFound) {
			return nil, newValidationError("country", "unknown country %q", countryName)
		}
		return nil, err
	}

	gen, err := normalizeGeneral(nil)
	if err != nil {
		return nil, err
	}
	applyGeneralCountryDefaults(gen, data)

	trad, err := normalizeTraditional(fillTraditionalDefaults(nil))
	if err != nil {
		return nil, err
	}
	if err := applyPrivateCarCountryDefaults(trad, gen.resolve(), countryName, ref); err != nil {
		return nil, err
	}

	col := trad.cols[0]
	return []VariableRow{
		{Name: varTradTTW, DefaultValue: col.ttwCo2.def},
		{Name: varNOx, DefaultValue: col.nox.def},
		{Name: varPM, DefaultValue: col.pm.def},
		{Name: varLCA, DefaultValue: col.lca.def},
	}, nil
}

// applyModalSplitDefaults seeds every shared category's replacement
// shares and trip distances with the city's baseline modal split, so a
// category left at defaults replaces trips in proportion to how the
// city currently travels.
func applyModalSplitDefaults(shared *sharedTable, split ModalSplit) {
	for i := range shared.cols {
		col := &shared.cols[i]
		for j, mode := range TraditionalModes {
			entry := split.Entry(mode)
			col.shares[j].def = entry.SplitPercent
			col.distances[j].def = entry.AvgDistanceKm
		}
	}
}
