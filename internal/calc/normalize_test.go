package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellResolve(t *testing.T) {
	c := cell{user: 3, def: 7}

	assert.Equal(t, 3.0, c.resolve(false))
	assert.Equal(t, 7.0, c.resolve(true))
	assert.Equal(t, 3.0, c.resolvePerRow())
	assert.Equal(t, 7.0, cell{user: 0, def: 7}.resolvePerRow())
}

func TestNormalizeGeneral(t *testing.T) {
	t.Run("empty input falls back to defaults", func(t *testing.T) {
		tab, err := normalizeGeneral(nil)
		require.NoError(t, err)

		v := tab.resolve()
		assert.Equal(t, 96.0, v.electricityCo2)
		assert.Equal(t, 20.0, v.wttFraction)
	})

	t.Run("wrong row count is rejected", func(t *testing.T) {
		_, err := normalizeGeneral(make([]VariableRow, 4))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "variables.general", verr.Errors[0].Field)
	})

	t.Run("user input wins per row", func(t *testing.T) {
		rows := DefaultGeneralVariables()
		rows[1].UserInput = 25

		tab, err := normalizeGeneral(rows)
		require.NoError(t, err)

		v := tab.resolve()
		assert.Equal(t, 25.0, v.wttFraction)
		assert.Equal(t, 96.0, v.electricityCo2)
	})
}

func TestSplitActiveTransport(t *testing.T) {
	cyclingRow := VariableRow{Name: varLCA, UserInput: 17}
	walkingRow := VariableRow{Name: varLCA, UserInput: 1}

	t.Run("two rows split into cycling and walking", func(t *testing.T) {
		out := splitActiveTransport(map[string][]VariableRow{
			"activeTransport": {cyclingRow, walkingRow},
		})

		require.Len(t, out[ModeCycling], 1)
		require.Len(t, out[ModeWalking], 1)
		assert.Equal(t, 17.0, out[ModeCycling][0].UserInput)
		assert.Equal(t, 1.0, out[ModeWalking][0].UserInput)
	})

	t.Run("single row serves both modes", func(t *testing.T) {
		out := splitActiveTransport(map[string][]VariableRow{
			"activeTransport": {cyclingRow},
		})

		assert.Equal(t, out[ModeCycling], out[ModeWalking])
	})

	t.Run("canonical keys pass through, unknown keys are dropped", func(t *testing.T) {
		out := splitActiveTransport(map[string][]VariableRow{
			"pt_rail":   {{Name: varRailEfficiency, UserInput: 0.1}},
			"hyperloop": {{Name: varLCA, UserInput: 1}},
		})

		require.Len(t, out, 1)
		assert.Len(t, out[ModePTRail], 1)
	})
}

func TestNormalizeTraditional(t *testing.T) {
	t.Run("missing required mode is rejected", func(t *testing.T) {
		vars := fillTraditionalDefaults(nil)
		delete(vars, ModePTRail)

		_, err := normalizeTraditional(vars)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Errors[0].Message, "pt_rail")
	})

	t.Run("all-zero user inputs fall back to defaults as a block", func(t *testing.T) {
		vars := fillTraditionalDefaults(nil)
		tab, err := normalizeTraditional(vars)
		require.NoError(t, err)

		v := tab.resolve()
		assert.Equal(t, 63.0, v[1].ttwCo2)
		assert.Equal(t, 0.09, v[2].railEfficiency)
		assert.Equal(t, 17.0, v[3].lca)
	})

	t.Run("one non-zero input keeps the whole column literal", func(t *testing.T) {
		vars := fillTraditionalDefaults(nil)
		vars[ModePTRoad] = []VariableRow{
			{Name: varTradTTW, UserInput: 80, DefaultValue: 63.0},
			{Name: varNOx, UserInput: 0, DefaultValue: 30.67},
			{Name: varLCA, UserInput: 0, DefaultValue: 20.0},
		}

		tab, err := normalizeTraditional(vars)
		require.NoError(t, err)

		v := tab.resolve()
		assert.Equal(t, 80.0, v[1].ttwCo2)
		// Sibling zeros are taken literally, not defaulted.
		assert.Equal(t, 0.0, v[1].nox)
		assert.Equal(t, 0.0, v[1].lca)
	})
}

func TestNormalizeShared(t *testing.T) {
	fleets := []FleetEntry{{Mode: FleetCar, NumVehicles: 1000, PercentageElectric: 30}}

	t.Run("missing categories are seeded from defaults", func(t *testing.T) {
		tab, err := normalizeShared(nil, fleets)
		require.NoError(t, err)

		v := tab.resolve()
		assert.Equal(t, 133.38, v[0].ttwCo2)
		assert.Equal(t, 0.17, v[3].evEfficiency)
		assert.True(t, tab.cols[0].useDefaults)
	})

	t.Run("share out of range is rejected", func(t *testing.T) {
		_, err := normalizeShared(map[string][]VariableRow{
			"ICEcar": {{Name: replaceShareNames[0], UserInput: 120}},
		}, fleets)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "variables.sharedServices.ICEcar", verr.Errors[0].Field)
	})

	t.Run("negative distance is rejected", func(t *testing.T) {
		_, err := normalizeShared(map[string][]VariableRow{
			"ICEcar": {{Name: replaceDistanceNames[0], UserInput: -2}},
		}, fleets)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("non-zero input disables the category fallback", func(t *testing.T) {
		tab, err := normalizeShared(map[string][]VariableRow{
			"ICEcar": {
				{Name: varTripsPerDay, UserInput: 6, DefaultValue: 5},
				{Name: varSharedTTW, UserInput: 0, DefaultValue: 133.38},
			},
		}, fleets)
		require.NoError(t, err)

		require.False(t, tab.cols[0].useDefaults)
		v := tab.resolve()
		assert.Equal(t, 6.0, v[0].tripsPerDay)
		assert.Equal(t, 0.0, v[0].ttwCo2)
	})
}

func TestFleetCounts(t *testing.T) {
	t.Run("electric percentage splits the fleet", func(t *testing.T) {
		counts, err := fleetCounts([]FleetEntry{
			{Mode: FleetCar, NumVehicles: 1000, PercentageElectric: 30},
			{Mode: FleetBike, NumVehicles: 200, PercentageElectric: 100},
			{Mode: FleetEScooter, NumVehicles: 150, PercentageElectric: 0},
		})
		require.NoError(t, err)

		assert.Equal(t, 700.0, counts[CategoryICECar])
		assert.Equal(t, 300.0, counts[CategoryECar])
		assert.Equal(t, 0.0, counts[CategoryBike])
		assert.Equal(t, 200.0, counts[CategoryEBike])
		// Scooters are electric regardless of the configured percentage.
		assert.Equal(t, 150.0, counts[CategoryEScooter])
	})

	t.Run("repeated fleets accumulate", func(t *testing.T) {
		counts, err := fleetCounts([]FleetEntry{
			{Mode: FleetMoped, NumVehicles: 50},
			{Mode: FleetMoped, NumVehicles: 30, PercentageElectric: 100},
		})
		require.NoError(t, err)

		assert.Equal(t, 50.0, counts[CategoryICEMoped])
		assert.Equal(t, 30.0, counts[CategoryEMoped])
	})

	t.Run("invalid entries are rejected", func(t *testing.T) {
		cases := []struct {
			name  string
			entry FleetEntry
		}{
			{"negative vehicles", FleetEntry{Mode: FleetCar, NumVehicles: -1}},
			{"percentage above 100", FleetEntry{Mode: FleetCar, NumVehicles: 10, PercentageElectric: 150}},
			{"unknown mode", FleetEntry{Mode: "Skateboard", NumVehicles: 10}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := fleetCounts([]FleetEntry{tc.entry})
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
			})
		}
	})
}
