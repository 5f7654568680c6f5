package calc

// Canonical variable names. Normalization joins user-supplied rows onto
// these templates by name; rows with other names are dropped.
const (
	varTripsPerDay    = "Average number of trips per day"
	varSharedTTW      = "Average Tank-to-Wheel CO2 emissions (g/km)"
	varNOx            = "Average NOx emissions (mg/km)"
	varPM             = "Average PM emissions (mg/km)"
	varEVEfficiency   = "Average efficiency of the electric vehicle (kWh/km)"
	varLCA            = "Emission factor for life-cycle phases excluding use phase (gCO2/km)"
	varTradTTW        = "CO2 emission factors Tank-to-Wheel (gr/km)"
	varRailEfficiency = "Average efficiency of public transport rail (kWh/km)"

	varElectricityCo2 = "Average CO2 emission intensity for electricity generation (gCO2/kWh)"
	varWTTFraction    = "Well-to-Tank emissions fraction of Well-to-Wheel emissions ICE cars (%)"
	varFleetAge       = "Average age of the car fleet (years)"
	varPetrolShare    = "Percentage of petrol cars in the current fleet (%)"
	varDieselShare    = "Percentage of diesel cars in the current fleet (%)"
	varEVShare        = "Percentage of electric cars in the current fleet (%)"
)

// replaceShareNames and replaceDistanceNames are indexed by the
// TraditionalModes order.
var replaceShareNames = [5]string{
	"Replaces private car by (%)",
	"Replaces PT road by (%)",
	"Replaces PT rail by (%)",
	"Replaces cycling by (%)",
	"Replaces walking by (%)",
}

var replaceDistanceNames = [5]string{
	"Average trip distance of the shared mode when replacing car (km)",
	"Average trip distance of the shared mode when replacing PT road (km)",
	"Average trip distance of the shared mode when replacing PT rail (km)",
	"Average trip distance of the shared mode when replacing cycling (km)",
	"Average trip distance of the shared mode when replacing walking (km)",
}

// DefaultGeneralVariables returns the literal default general variable
// table. The electricity, fleet-age and fuel-share defaults are later
// replaced with country-specific values; the WTT fraction never is.
func DefaultGeneralVariables() []VariableRow {
	return []VariableRow{
		{Name: varElectricityCo2, DefaultValue: 96.0},
		{Name: varWTTFraction, DefaultValue: 20.0},
		{Name: varFleetAge, DefaultValue: 9.3},
		{Name: varPetrolShare, DefaultValue: 42.2},
		{Name: varDieselShare, DefaultValue: 49.9},
		{Name: varEVShare, DefaultValue: 7.8},
	}
}

// DefaultTraditionalModeVariables returns the literal default rows per
// traditional mode. Cycling and walking carry only a life-cycle factor;
// rail has no direct CO2 factor, its use-phase emissions derive from
// electricity intensity and efficiency.
func DefaultTraditionalModeVariables() map[TraditionalMode][]VariableRow {
	return map[TraditionalMode][]VariableRow{
		ModePrivateCar: {
			{Name: varTradTTW, DefaultValue: 118.6},
			{Name: varNOx, DefaultValue: 69.0},
			{Name: varPM, DefaultValue: 4.5},
			{Name: varLCA, DefaultValue: 55.0},
		},
		ModePTRoad: {
			{Name: varTradTTW, DefaultValue: 63.0},
			{Name: varNOx, DefaultValue: 30.67},
			{Name: varPM, DefaultValue: 0.67},
			{Name: varLCA, DefaultValue: 20.0},
		},
		ModePTRail: {
			{Name: varRailEfficiency, DefaultValue: 0.09},
			{Name: varLCA, DefaultValue: 13.0},
		},
		ModeCycling: {
			{Name: varLCA, DefaultValue: 17.0},
		},
		ModeWalking: {
			{Name: varLCA, DefaultValue: 0.0},
		},
	}
}

// DefaultSharedServiceVariables returns the literal default rows per
// shared-service category. Replacement shares and trip distances default
// to zero here and pick up modal-split values during the country/default
// update step.
func DefaultSharedServiceVariables() map[SharedCategory][]VariableRow {
	return map[SharedCategory][]VariableRow{
		CategoryICECar:   sharedDefaultRows(5.00, ptr(133.38), ptr(60.00), ptr(4.50), nil, 55.00),
		CategoryICEMoped: sharedDefaultRows(5.00, ptr(37.00), ptr(60.00), ptr(4.50), nil, 31.00),
		CategoryBike:     sharedDefaultRows(4.00, nil, nil, nil, nil, 58.00),
		CategoryECar:     sharedDefaultRows(5.00, nil, nil, nil, ptr(0.17), 81.00),
		CategoryEBike:    sharedDefaultRows(4.00, nil, nil, nil, ptr(0.0103), 71.00),
		CategoryEMoped:   sharedDefaultRows(5.00, ptr(0.0), ptr(0.0), ptr(0.0), ptr(0.033), 59.00),
		CategoryEScooter: sharedDefaultRows(5.00, nil, ptr(0.0), ptr(0.0), ptr(0.016), 100.00),
		CategoryOther:    sharedDefaultRows(0.0, ptr(0.0), ptr(0.0), ptr(0.0), nil, 0.0),
		CategoryEOther:   sharedDefaultRows(0.0, nil, nil, nil, ptr(0.0), 0.0),
	}
}

// sharedDefaultRows assembles the default row list of one shared
// category. Nil pointers mean the row is absent from the category, not
// zero: bikes have no tailpipe rows, combustion vehicles no electric
// efficiency.
func sharedDefaultRows(trips float64, ttw, nox, pm, efficiency *float64, lca float64) []VariableRow {
	rows := []VariableRow{{Name: varTripsPerDay, DefaultValue: trips}}
	if ttw != nil {
		rows = append(rows, VariableRow{Name: varSharedTTW, DefaultValue: *ttw})
	}
	if nox != nil {
		rows = append(rows, VariableRow{Name: varNOx, DefaultValue: *nox})
	}
	if pm != nil {
		rows = append(rows, VariableRow{Name: varPM, DefaultValue: *pm})
	}
	if efficiency != nil {
		rows = append(rows, VariableRow{Name: varEVEfficiency, DefaultValue: *efficiency})
	}
	rows = append(rows, VariableRow{Name: varLCA, DefaultValue: lca})
	for _, name := range replaceShareNames {
		rows = append(rows, VariableRow{Name: name})
	}
	for _, name := range replaceDistanceNames {
		rows = append(rows, VariableRow{Name: name})
	}
	return rows
}

func ptr(v float64) *float64 { return &v }
