package calc

import (
	"fmt"
	"strings"
)

// cell is one variable slot in a normalized table: the raw user input
// and the (possibly country-updated) default, kept separate until the
// final resolution step.
type cell struct {
	user float64
	def  float64
}

// resolve applies the all-or-nothing fallback decision of the owning
// category: when the category fell back to defaults every cell yields
// its default, otherwise the raw user input is used verbatim (zeros
// included).
func (c cell) resolve(useDefaults bool) float64 {
	if useDefaults {
		return c.def
	}
	return c.user
}

// resolvePerRow is the per-row policy used by the general table: a
// non-zero user input wins, zero falls back to the default.
func (c cell) resolvePerRow() float64 {
	if c.user != 0 {
		return c.user
	}
	return c.def
}

// generalTable is the normalized general variable table.
type generalTable struct {
	electricityCo2 cell
	wttFraction    cell
	fleetAge       cell
	petrolShare    cell
	dieselShare    cell
	evShare        cell
}

// generalValues holds the resolved general variables.
type generalValues struct {
	electricityCo2 float64
	wttFraction    float64
	fleetAge       float64
	petrolShare    float64
	dieselShare    float64
	evShare        float64
}

// normalizeGeneral builds the general table from the six-row input. Row
// order is part of the contract: electricity intensity, WTT fraction,
// fleet age, petrol share, diesel share, EV share.
func normalizeGeneral(rows []VariableRow) (*generalTable, error) {
	if len(rows) == 0 {
		rows = DefaultGeneralVariables()
	}
	if len(rows) != 6 {
		return nil, newValidationError("variables.general",
			"expected 6 rows, got %d", len(rows))
	}
	return &generalTable{
		electricityCo2: cell{user: rows[0].UserInput, def: rows[0].DefaultValue},
		wttFraction:    cell{user: rows[1].UserInput, def: rows[1].DefaultValue},
		fleetAge:       cell{user: rows[2].UserInput, def: rows[2].DefaultValue},
		petrolShare:    cell{user: rows[3].UserInput, def: rows[3].DefaultValue},
		dieselShare:    cell{user: rows[4].UserInput, def: rows[4].DefaultValue},
		evShare:        cell{user: rows[5].UserInput, def: rows[5].DefaultValue},
	}, nil
}

// resolve produces the effective general values (per-row fallback).
func (t *generalTable) resolve() generalValues {
	return generalValues{
		electricityCo2: t.electricityCo2.resolvePerRow(),
		wttFraction:    t.wttFraction.resolvePerRow(),
		fleetAge:       t.fleetAge.resolvePerRow(),
		petrolShare:    t.petrolShare.resolvePerRow(),
		dieselShare:    t.dieselShare.resolvePerRow(),
		evShare:        t.evShare.resolvePerRow(),
	}
}

// tradColumn is the normalized variable column of one traditional mode.
type tradColumn struct {
	ttwCo2         cell
	nox            cell
	pm             cell
	railEfficiency cell
	lca            cell

	// useDefaults is set when every supplied user input in the column
	// was zero (the all-or-nothing fallback).
	useDefaults bool
}

// tradTable holds one column per traditional mode, in TraditionalModes
// order.
type tradTable struct {
	cols [5]tradColumn
}

// tradValues is one resolved traditional-mode factor column.
type tradValues struct {
	ttwCo2         float64
	nox            float64
	pm             float64
	railEfficiency float64
	lca            float64
}

// splitActiveTransport expands the combined cycling+walking input into
// separate per-mode row lists: the first row maps to cycling, the
// second to walking. A single supplied row serves both modes; this is
// an explicit fallback policy of the domain model, not an accident to
// correct here.
func splitActiveTransport(vars map[string][]VariableRow) map[TraditionalMode][]VariableRow {
	out := make(map[TraditionalMode][]VariableRow, len(vars))
	for key, rows := range vars {
		if len(rows) == 0 {
			continue
		}
		switch key {
		case "activeTransport":
			out[ModeCycling] = rows[:1]
			if len(rows) >= 2 {
				out[ModeWalking] = rows[1:2]
			} else {
				out[ModeWalking] = rows[:1]
			}
		case string(ModePrivateCar), string(ModePTRoad), string(ModePTRail),
			string(ModeCycling), string(ModeWalking):
			out[TraditionalMode(key)] = rows
		}
		// Unknown keys are dropped.
	}
	return out
}

// fillTraditionalDefaults completes a sparse traditional-mode map with
// the literal default rows for every absent or empty mode.
func fillTraditionalDefaults(vars map[TraditionalMode][]VariableRow) map[TraditionalMode][]VariableRow {
	defaults := DefaultTraditionalModeVariables()
	out := make(map[TraditionalMode][]VariableRow, len(TraditionalModes))
	for _, mode := range TraditionalModes {
		if rows := vars[mode]; len(rows) > 0 {
			out[mode] = rows
			continue
		}
		out[mode] = defaults[mode]
	}
	return out
}

// normalizeTraditional joins the per-mode row lists onto the canonical
// five-row template. pt_road, pt_rail, cycling and walking must all be
// present; private_car may be absent and later populated from country
// data.
func normalizeTraditional(vars map[TraditionalMode][]VariableRow) (*tradTable, error) {
	present := 0
	for _, mode := range TraditionalModes {
		if len(vars[mode]) > 0 {
			present++
		}
	}
	if present == 0 {
		return nil, newValidationError("variables.traditionalModes",
			"no traditional mode variables provided")
	}

	var missing []string
	for _, mode := range requiredModes {
		if len(vars[mode]) == 0 {
			missing = append(missing, string(mode))
		}
	}
	if len(missing) > 0 {
		return nil, newValidationError("variables.traditionalModes",
			"missing required traditional modes: %s", strings.Join(missing, ", "))
	}

	t := &tradTable{}
	for i, mode := range TraditionalModes {
		rows := vars[mode]
		col := &t.cols[i]
		col.useDefaults = allUserInputsZero(rows)

		for _, row := range rows {
			c := cell{user: row.UserInput, def: row.DefaultValue}
			switch strings.TrimSpace(row.Name) {
			case varTradTTW:
				col.ttwCo2 = c
			case varNOx:
				col.nox = c
			case varPM:
				col.pm = c
			case varRailEfficiency:
				col.railEfficiency = c
			case varLCA:
				col.lca = c
			}
			// Rows outside the canonical template are dropped.
		}
	}
	return t, nil
}

// resolve produces the effective factor column for one mode.
func (t *tradTable) resolve() [5]tradValues {
	var out [5]tradValues
	for i := range t.cols {
		col := &t.cols[i]
		out[i] = tradValues{
			ttwCo2:         col.ttwCo2.resolve(col.useDefaults),
			nox:            col.nox.resolve(col.useDefaults),
			pm:             col.pm.resolve(col.useDefaults),
			railEfficiency: col.railEfficiency.resolve(col.useDefaults),
			lca:            col.lca.resolve(col.useDefaults),
		}
	}
	return out
}

// sharedColumn is the normalized variable column of one shared-service
// category, plus its synthesized vehicle count.
type sharedColumn struct {
	vehicles float64

	tripsPerDay  cell
	ttwCo2       cell
	nox          cell
	pm           cell
	evEfficiency cell
	lca          cell
	shares       [5]cell
	distances    [5]cell

	useDefaults bool
}

// sharedTable holds one column per shared-service category, in
// SharedCategories order.
type sharedTable struct {
	cols [9]sharedColumn
}

// sharedValues is one resolved shared-category column.
type sharedValues struct {
	vehicles     float64
	tripsPerDay  float64
	ttwCo2       float64
	nox          float64
	pm           float64
	evEfficiency float64
	lca          float64
	shares       [5]float64
	distances    [5]float64
}

// normalizeShared joins the per-category rows onto the canonical
// sixteen-row template and synthesizes the vehicle-count row from the
// fleet configuration. Absent or empty categories are seeded with the
// literal default rows.
func normalizeShared(vars map[string][]VariableRow, fleets []FleetEntry) (*sharedTable, error) {
	counts, err := fleetCounts(fleets)
	if err != nil {
		return nil, err
	}

	defaults := DefaultSharedServiceVariables()
	t := &sharedTable{}
	for i, cat := range SharedCategories {
		rows := vars[string(cat)]
		if len(rows) == 0 {
			rows = defaults[cat]
		}
		col := &t.cols[i]
		col.vehicles = counts[cat]
		col.useDefaults = allUserInputsZero(rows)

		for _, row := range rows {
			name := strings.TrimSpace(row.Name)
			c := cell{user: row.UserInput, def: row.DefaultValue}
			switch name {
			case varTripsPerDay:
				col.tripsPerDay = c
			case varSharedTTW:
				col.ttwCo2 = c
			case varNOx:
				col.nox = c
			case varPM:
				col.pm = c
			case varEVEfficiency:
				col.evEfficiency = c
			case varLCA:
				col.lca = c
			default:
				matched := false
				for j := range replaceShareNames {
					if name == replaceShareNames[j] {
						if row.UserInput < 0 || row.UserInput > 100 {
							return nil, newValidationError(
								fmt.Sprintf("variables.sharedServices.%s", cat),
								"%s must be between 0 and 100, got %v", name, row.UserInput)
						}
						col.shares[j] = c
						matched = true
						break
					}
				}
				if matched {
					break
				}
				for j := range replaceDistanceNames {
					if name == replaceDistanceNames[j] {
						if row.UserInput < 0 {
							return nil, newValidationError(
								fmt.Sprintf("variables.sharedServices.%s", cat),
								"%s must not be negative, got %v", name, row.UserInput)
						}
						col.distances[j] = c
						break
					}
				}
				// Rows outside the canonical template are dropped.
			}
		}
	}
	return t, nil
}

// resolve produces the effective shared-category columns.
func (t *sharedTable) resolve() [9]sharedValues {
	var out [9]sharedValues
	for i := range t.cols {
		col := &t.cols[i]
		v := sharedValues{
			vehicles:     col.vehicles,
			tripsPerDay:  col.tripsPerDay.resolve(col.useDefaults),
			ttwCo2:       col.ttwCo2.resolve(col.useDefaults),
			nox:          col.nox.resolve(col.useDefaults),
			pm:           col.pm.resolve(col.useDefaults),
			evEfficiency: col.evEfficiency.resolve(col.useDefaults),
			lca:          col.lca.resolve(col.useDefaults),
		}
		for j := range v.shares {
			v.shares[j] = col.shares[j].resolve(col.useDefaults)
			v.distances[j] = col.distances[j].resolve(col.useDefaults)
		}
		out[i] = v
	}
	return out
}

// fleetCounts derives the per-category vehicle counts from the fleet
// configuration. Car, Bike, Moped and Other split between a combustion
// and an electric category by percentageElectric; e-scooter fleets are
// always fully electric.
func fleetCounts(fleets []FleetEntry) (map[SharedCategory]float64, error) {
	counts := make(map[SharedCategory]float64, len(SharedCategories))
	for _, cat := range SharedCategories {
		counts[cat] = 0
	}

	for i, f := range fleets {
		if f.NumVehicles < 0 {
			return nil, newValidationError(fmt.Sprintf("fleets[%d].numVehicles", i),
				"must not be negative, got %v", f.NumVehicles)
		}
		if f.PercentageElectric < 0 || f.PercentageElectric > 100 {
			return nil, newValidationError(fmt.Sprintf("fleets[%d].percentageElectric", i),
				"must be between 0 and 100, got %v", f.PercentageElectric)
		}

		ice := f.NumVehicles * (100 - f.PercentageElectric) / 100
		ev := f.NumVehicles * f.PercentageElectric / 100

		switch f.Mode {
		case FleetCar:
			counts[CategoryICECar] += ice
			counts[CategoryECar] += ev
		case FleetBike:
			counts[CategoryBike] += ice
			counts[CategoryEBike] += ev
		case FleetMoped:
			counts[CategoryICEMoped] += ice
			counts[CategoryEMoped] += ev
		case FleetEScooter:
			counts[CategoryEScooter] += f.NumVehicles
		case FleetOther:
			counts[CategoryOther] += ice
			counts[CategoryEOther] += ev
		default:
			return nil, newValidationError(fmt.Sprintf("fleets[%d].mode", i),
				"unknown fleet mode %q", f.Mode)
		}
	}
	return counts, nil
}

// allUserInputsZero reports whether every supplied row has a zero user
// input, which triggers the category-wide fallback to defaults.
func allUserInputsZero(rows []VariableRow) bool {
	for _, row := range rows {
		if row.UserInput != 0 {
			return false
		}
	}
	return true
}
