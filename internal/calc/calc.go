package calc

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/modeshift/modeshift/internal/country"
)

// maxInhabitants bounds the scenario population; larger values are
// almost certainly unit mistakes.
const maxInhabitants = 100_000_000

// EngineConfig holds configuration for the calculation engine.
type EngineConfig struct {
	// Reference provides the country reference data.
	Reference Reference

	// Logger for engine operations.
	Logger zerolog.Logger
}

// Engine runs emission calculations against a fixed set of reference
// data. It is stateless and safe for concurrent use.
type Engine struct {
	ref    Reference
	logger zerolog.Logger
}

// NewEngine creates a new calculation engine.
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		ref:    cfg.Reference,
		logger: cfg.Logger,
	}
}

// Calculate runs the full emission pipeline for one scenario: variable
// normalization, country default updates, activity derivation, emission
// factors and result aggregation. The input is not mutated and repeated
// calls with equal input produce equal results.
func (e *Engine) Calculate(in Input) (*Result, error) {
	if in.Inhabitants < 1 || in.Inhabitants > maxInhabitants {
		return nil, newValidationError("inhabitants",
			"must be between 1 and %d, got %d", maxInhabitants, in.Inhabitants)
	}
	if err := validateModalSplit(in.ModalSplit); err != nil {
		return nil, err
	}

	data, err := e.ref.Data(in.Country)
	if err != nil {
		if errors.Is(err, country.ErrCountryNotFound) {
			return nil, newValidationError("country",
				"unknown country %q", in.Country)
		}
		return nil, err
	}

	gen, err := normalizeGeneral(in.Variables.General)
	if err != nil {
		return nil, err
	}
	applyGeneralCountryDefaults(gen, data)
	genVals := gen.resolve()
	if genVals.wttFraction < 0 || genVals.wttFraction >= 100 {
		return nil, newValidationError("variables.general",
			"well-to-tank fraction must be in [0, 100), got %v", genVals.wttFraction)
	}

	tradInput := splitActiveTransport(in.Variables.TraditionalModes)
	if len(tradInput) == 0 {
		// Callers resolve stored tables before calling; an empty map
		// means the variables were lost, not left at defaults.
		return nil, newValidationError("variables.traditionalModes",
			"no traditional mode variables provided")
	}
	if len(tradInput[ModePrivateCar]) == 0 {
		// The private-car column may be omitted; its factors come from
		// the country data below.
		tradInput[ModePrivateCar] = DefaultTraditionalModeVariables()[ModePrivateCar]
	}
	trad, err := normalizeTraditional(tradInput)
	if err != nil {
		return nil, err
	}
	if err := applyPrivateCarCountryDefaults(trad, genVals, in.Country, e.ref); err != nil {
		return nil, err
	}

	shared, err := normalizeShared(in.Variables.SharedServices, in.Fleets)
	if err != nil {
		return nil, err
	}
	applyModalSplitDefaults(shared, in.ModalSplit)

	sharedVals := shared.resolve()
	a := deriveActivity(sharedVals)
	emissions := applyEmissionFactors(a, genVals, trad.resolve(), sharedVals)

	result, err := aggregateResult(emissions, in.Inhabitants)
	if err != nil {
		e.logger.Error().Err(err).Str("country", in.Country).Msg("emission calculation failed")
		return nil, err
	}

	e.logger.Debug().
		Str("country", in.Country).
		Int("inhabitants", in.Inhabitants).
		Float64("co2_kg_per_day", result.Totals.CO2.Total.KgPerDay).
		Msg("emission calculation complete")

	return result, nil
}

// validateModalSplit checks the baseline modal split for out-of-range
// shares and negative distances.
func validateModalSplit(split ModalSplit) error {
	for _, mode := range TraditionalModes {
		entry := split.Entry(mode)
		if entry.SplitPercent < 0 || entry.SplitPercent > 100 {
			return newValidationError(fmt.Sprintf("modalSplit.%s.splitPercent", mode),
				"must be between 0 and 100, got %v", entry.SplitPercent)
		}
		if entry.AvgDistanceKm < 0 {
			return newValidationError(fmt.Sprintf("modalSplit.%s.avgDistanceKm", mode),
				"must not be negative, got %v", entry.AvgDistanceKm)
		}
	}
	return nil
}
