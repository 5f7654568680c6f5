package variables_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeshift/modeshift/internal/calc"
	"github.com/modeshift/modeshift/internal/country"
	"github.com/modeshift/modeshift/internal/variables"
)

type stubReference struct{}

func (stubReference) Data(name string) (country.Data, error) {
	if name != "Austria" {
		return country.Data{}, country.ErrCountryNotFound
	}
	return country.Data{
		AverageAge:     9.3,
		FuelShares:     country.FuelShares{Petrol: 42.2, Diesel: 49.9, EV: 7.8},
		ElectricityCo2: 96,
	}, nil
}

func (stubReference) YearRange() (int, int) { return 2000, 2023 }

func (stubReference) NewCarCo2(year int, name string) (float64, error) {
	return 122.4, nil
}

func (stubReference) EmissionLimit(year int, fuel country.Fuel, pollutant country.Pollutant) (float64, error) {
	if pollutant == country.PollutantPM {
		return 0.005, nil
	}
	if fuel == country.FuelDiesel {
		return 0.08, nil
	}
	return 0.06, nil
}

func newService() *variables.Service {
	return variables.NewService(variables.ServiceConfig{
		Repository: variables.NewInMemoryRepository(),
		Reference:  stubReference{},
		Logger:     zerolog.Nop(),
	})
}

func TestGeneralDefaultsWhenUnset(t *testing.T) {
	svc := newService()

	rows, err := svc.General(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, 96.0, rows[0].DefaultValue)
	assert.Zero(t, rows[0].UserInput)
}

func TestSaveGeneralRoundTrip(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	rows := calc.DefaultGeneralVariables()
	rows[1].UserInput = 25

	require.NoError(t, svc.SaveGeneral(ctx, rows))

	got, err := svc.General(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25.0, got[1].UserInput)
}

func TestSaveGeneralRejectsWrongShape(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	var verr *calc.ValidationError
	err := svc.SaveGeneral(ctx, make([]calc.VariableRow, 3))
	require.ErrorAs(t, err, &verr)

	rows := calc.DefaultGeneralVariables()
	rows[0].Name = "Average banana throughput"
	err = svc.SaveGeneral(ctx, rows)
	require.ErrorAs(t, err, &verr)
}

func TestTraditionalModes(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	t.Run("unknown mode is rejected", func(t *testing.T) {
		_, err := svc.TraditionalMode(ctx, "hyperloop")
		var verr *calc.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("saved table overrides the default", func(t *testing.T) {
		rows := calc.DefaultTraditionalModeVariables()[calc.ModePTRoad]
		rows[0].UserInput = 70
		require.NoError(t, svc.SaveTraditionalMode(ctx, "pt_road", rows))

		got, err := svc.TraditionalMode(ctx, "pt_road")
		require.NoError(t, err)
		assert.Equal(t, 70.0, got[0].UserInput)

		all, err := svc.TraditionalModes(ctx)
		require.NoError(t, err)
		assert.Equal(t, 70.0, all["pt_road"][0].UserInput)
		// Unsaved modes still come back as defaults.
		assert.Zero(t, all[variables.ModeActiveTransport][0].UserInput)
	})

	t.Run("active transport combines cycling and walking", func(t *testing.T) {
		got, err := svc.TraditionalMode(ctx, variables.ModeActiveTransport)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 17.0, got[0].DefaultValue)
		assert.Equal(t, 0.0, got[1].DefaultValue)
	})

	t.Run("incomplete active transport table falls back to defaults", func(t *testing.T) {
		err := svc.SaveTraditionalMode(ctx, variables.ModeActiveTransport, []calc.VariableRow{
			{Name: "Emission factor for life-cycle phases excluding use phase (gCO2/km)", UserInput: 20},
		})
		require.NoError(t, err)

		got, err := svc.TraditionalMode(ctx, variables.ModeActiveTransport)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Zero(t, got[0].UserInput)
	})

	t.Run("rows outside the template are rejected", func(t *testing.T) {
		err := svc.SaveTraditionalMode(ctx, variables.ModeActiveTransport, []calc.VariableRow{
			{Name: "Average NOx emissions (mg/km)", UserInput: 3},
		})
		var verr *calc.ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestSharedServices(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	rows := []calc.VariableRow{
		{Name: "Average number of trips per day", UserInput: 7},
		{Name: "Replaces private car by (%)", UserInput: 40},
	}
	require.NoError(t, svc.SaveSharedService(ctx, calc.CategoryEScooter, rows))

	got, err := svc.SharedService(ctx, calc.CategoryEScooter)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 7.0, got[0].UserInput)

	_, err = svc.SharedService(ctx, "hoverboard")
	var verr *calc.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestPrivateCarDefaults(t *testing.T) {
	svc := newService()

	rows, err := svc.PrivateCarDefaults(context.Background(), "Austria")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// 122.4 g/km type approval for 2015, NEDC-scaled by 1.4.
	assert.InDelta(t, 171.36, rows[0].DefaultValue, 1e-9)
	// Fleet-weighted Euro 6 NOx limit in mg/km.
	assert.InDelta(t, 65.24, rows[1].DefaultValue, 1e-9)
	assert.InDelta(t, 5.0*0.921, rows[2].DefaultValue, 1e-9)

	_, err = svc.PrivateCarDefaults(context.Background(), "Atlantis")
	var verr *calc.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSnapshotAssemblesAllTables(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	rows := calc.DefaultGeneralVariables()
	rows[0].UserInput = 120
	require.NoError(t, svc.SaveGeneral(ctx, rows))

	vars, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, 120.0, vars.General[0].UserInput)
	assert.Len(t, vars.TraditionalModes, 4)
	assert.Contains(t, vars.TraditionalModes, "activeTransport")
	assert.Len(t, vars.SharedServices, 9)
}
