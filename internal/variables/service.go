package variables

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/modeshift/modeshift/internal/calc"
)

// ServiceConfig holds configuration for the variables service.
type ServiceConfig struct {
	// Repository is the variable table store.
	Repository Repository

	// Reference provides country data for the derived private-car
	// defaults.
	Reference calc.Reference

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service manages the stored variable tables. Reads fall back to the
// literal defaults when no table was ever saved; writes validate row
// names against the canonical templates.
type Service struct {
	repo   Repository
	ref    calc.Reference
	logger zerolog.Logger
}

// NewService creates a new variables service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:   cfg.Repository,
		ref:    cfg.Reference,
		logger: cfg.Logger,
	}
}

// General returns the general variable table.
func (s *Service) General(ctx context.Context) ([]calc.VariableRow, error) {
	rows, err := s.repo.Get(ctx, keyGeneral)
	if errors.Is(err, ErrTableNotFound) {
		return calc.DefaultGeneralVariables(), nil
	}
	return rows, err
}

// SaveGeneral replaces the general variable table. Rows must match the
// canonical table in count, names and order.
func (s *Service) SaveGeneral(ctx context.Context, rows []calc.VariableRow) error {
	template := calc.DefaultGeneralVariables()
	if len(rows) != len(template) {
		return validationError("general", "expected %d rows, got %d", len(template), len(rows))
	}
	for i, row := range rows {
		if row.Name != template[i].Name {
			return validationError("general",
				"row %d: expected %q, got %q", i, template[i].Name, row.Name)
		}
	}
	if err := s.repo.Save(ctx, keyGeneral, rows); err != nil {
		return err
	}
	s.logger.Info().Msg("general variable table saved")
	return nil
}

// ModeActiveTransport is the combined cycling+walking table key. The
// dashboard edits both modes as one table: the first row is cycling,
// the second walking.
const ModeActiveTransport = "active_transport"

// traditionalTemplates returns the canonical row templates per saveable
// traditional-mode table.
func traditionalTemplates() map[string][]calc.VariableRow {
	defaults := calc.DefaultTraditionalModeVariables()
	return map[string][]calc.VariableRow{
		string(calc.ModePrivateCar): defaults[calc.ModePrivateCar],
		string(calc.ModePTRoad):     defaults[calc.ModePTRoad],
		string(calc.ModePTRail):     defaults[calc.ModePTRail],
		ModeActiveTransport: append(append([]calc.VariableRow(nil),
			defaults[calc.ModeCycling]...), defaults[calc.ModeWalking]...),
	}
}

// TraditionalModes returns the variable tables of all traditional
// modes, stored or default.
func (s *Service) TraditionalModes(ctx context.Context) (map[string][]calc.VariableRow, error) {
	stored, err := s.repo.ListPrefix(ctx, keyTraditionalPrefix)
	if err != nil {
		return nil, err
	}

	out := traditionalTemplates()
	for name, rows := range stored {
		if _, ok := out[name]; !ok {
			continue
		}
		// A saved active-transport table needs both the cycling and the
		// walking row to be usable.
		if name == ModeActiveTransport && len(rows) < 2 {
			continue
		}
		out[name] = rows
	}
	return out, nil
}

// TraditionalMode returns the variable table of one traditional mode.
func (s *Service) TraditionalMode(ctx context.Context, mode string) ([]calc.VariableRow, error) {
	defaults, ok := traditionalTemplates()[mode]
	if !ok {
		return nil, validationError("mode", "unknown traditional mode %q", mode)
	}

	rows, err := s.repo.Get(ctx, keyTraditionalPrefix+mode)
	if errors.Is(err, ErrTableNotFound) {
		return defaults, nil
	}
	if err == nil && mode == ModeActiveTransport && len(rows) < 2 {
		return defaults, nil
	}
	return rows, err
}

// SaveTraditionalMode replaces the variable table of one traditional
// mode. Row names must belong to the mode's canonical template.
func (s *Service) SaveTraditionalMode(ctx context.Context, mode string, rows []calc.VariableRow) error {
	template, ok := traditionalTemplates()[mode]
	if !ok {
		return validationError("mode", "unknown traditional mode %q", mode)
	}
	if err := validateNames(mode, rows, template); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, keyTraditionalPrefix+mode, rows); err != nil {
		return err
	}
	s.logger.Info().Str("mode", mode).Msg("traditional mode variable table saved")
	return nil
}

// SharedServices returns the variable tables of all shared-service
// categories, stored or default.
func (s *Service) SharedServices(ctx context.Context) (map[calc.SharedCategory][]calc.VariableRow, error) {
	stored, err := s.repo.ListPrefix(ctx, keySharedPrefix)
	if err != nil {
		return nil, err
	}

	out := calc.DefaultSharedServiceVariables()
	for name, rows := range stored {
		out[calc.SharedCategory(name)] = rows
	}
	return out, nil
}

// SharedService returns the variable table of one shared-service
// category.
func (s *Service) SharedService(ctx context.Context, category calc.SharedCategory) ([]calc.VariableRow, error) {
	defaults, ok := calc.DefaultSharedServiceVariables()[category]
	if !ok {
		return nil, validationError("category", "unknown shared category %q", category)
	}

	rows, err := s.repo.Get(ctx, keySharedPrefix+string(category))
	if errors.Is(err, ErrTableNotFound) {
		return defaults, nil
	}
	return rows, err
}

// SaveSharedService replaces the variable table of one shared-service
// category.
func (s *Service) SaveSharedService(ctx context.Context, category calc.SharedCategory, rows []calc.VariableRow) error {
	template, ok := calc.DefaultSharedServiceVariables()[category]
	if !ok {
		return validationError("category", "unknown shared category %q", category)
	}
	if err := validateNames(string(category), rows, template); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, keySharedPrefix+string(category), rows); err != nil {
		return err
	}
	s.logger.Info().Str("category", string(category)).Msg("shared service variable table saved")
	return nil
}

// PrivateCarDefaults returns the private-car variable rows with their
// defaults derived from the given country's fleet data.
func (s *Service) PrivateCarDefaults(_ context.Context, countryName string) ([]calc.VariableRow, error) {
	return calc.PrivateCarCountryDefaults(s.ref, countryName)
}

// Snapshot assembles the stored tables into the calculation input
// shape. Unsaved tables arrive as their defaults.
func (s *Service) Snapshot(ctx context.Context) (calc.Variables, error) {
	general, err := s.General(ctx)
	if err != nil {
		return calc.Variables{}, err
	}
	traditional, err := s.TraditionalModes(ctx)
	if err != nil {
		return calc.Variables{}, err
	}
	shared, err := s.SharedServices(ctx)
	if err != nil {
		return calc.Variables{}, err
	}

	vars := calc.Variables{
		General:          general,
		TraditionalModes: make(map[string][]calc.VariableRow, len(traditional)),
		SharedServices:   make(map[string][]calc.VariableRow, len(shared)),
	}
	for mode, rows := range traditional {
		if mode == ModeActiveTransport {
			mode = "activeTransport"
		}
		vars.TraditionalModes[mode] = rows
	}
	for category, rows := range shared {
		vars.SharedServices[string(category)] = rows
	}
	return vars, nil
}

// validateNames checks that every submitted row name belongs to the
// table's canonical template. Missing rows are allowed; the calculation
// treats them as zero.
func validateNames(table string, rows, template []calc.VariableRow) error {
	allowed := make(map[string]struct{}, len(template))
	for _, row := range template {
		allowed[row.Name] = struct{}{}
	}
	for _, row := range rows {
		if _, ok := allowed[row.Name]; !ok {
			return validationError(table, "unknown variable %q", row.Name)
		}
	}
	return nil
}

func validationError(field, format string, args ...interface{}) *calc.ValidationError {
	return &calc.ValidationError{Errors: []calc.FieldError{{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}}}
}
