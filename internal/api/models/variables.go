package models

import "github.com/modeshift/modeshift/internal/calc"

// VariableRow is the wire form of one dashboard variable row.
type VariableRow struct {
	Name         string  `json:"name"`
	UserInput    float64 `json:"userInput"`
	DefaultValue float64 `json:"defaultValue"`
}

// VariableTable wraps a row list for single-table requests and
// responses.
type VariableTable struct {
	Rows []VariableRow `json:"rows"`
}

// VariableTableSet is the response shape for grouped table listings,
// keyed by mode or category name.
type VariableTableSet struct {
	Tables map[string]VariableTable `json:"tables"`
}

// ToCalc converts the wire rows to their domain form.
func (t VariableTable) ToCalc() []calc.VariableRow {
	rows := make([]calc.VariableRow, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = calc.VariableRow(row)
	}
	return rows
}

// NewVariableTable converts domain rows to the wire form.
func NewVariableTable(rows []calc.VariableRow) VariableTable {
	out := VariableTable{Rows: make([]VariableRow, len(rows))}
	for i, row := range rows {
		out.Rows[i] = VariableRow(row)
	}
	return out
}

// NewVariableTableSet converts a group of domain tables to the wire
// form.
func NewVariableTableSet[K ~string](tables map[K][]calc.VariableRow) VariableTableSet {
	out := VariableTableSet{Tables: make(map[string]VariableTable, len(tables))}
	for key, rows := range tables {
		out.Tables[string(key)] = NewVariableTable(rows)
	}
	return out
}
