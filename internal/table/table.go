// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package table

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrColumnNotFound reports a reference to a column name that the table does not contain.
	ErrColumnNotFound = errors.New("column not found")
	// ErrDuplicateColumn reports two columns sharing the same name inside a table.
	ErrDuplicateColumn = errors.New("duplicate column")
	// ErrRowCountMismatch reports columns with different value counts inside a table.
	ErrRowCountMismatch = errors.New("row count mismatch")
	// ErrInvalidCast reports a value that cannot be converted to the requested column type.
	ErrInvalidCast = errors.New("invalid cast")
	// ErrUnknownType reports a type name that does not map to a column type.
	ErrUnknownType = errors.New("unknown column type")
)

// Type identifies the declared value type of a column.
type Type int

const (
	// TypeString marks a column of string values.
	TypeString Type = iota
	// TypeNumber marks a column of float64 values.
	TypeNumber
	// TypeInteger marks a column of int64 values.
	TypeInteger
	// TypeBool marks a column of bool values.
	TypeBool
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeInteger:
		return "integer"
	case TypeBool:
		return "bool"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// TypeFromString maps a configured type name to a column type.
func TypeFromString(name string) (Type, error) {
	switch strings.ToLower(name) {
	case "string", "str":
		return TypeString, nil
	case "number", "float", "float64":
		return TypeNumber, nil
	case "integer", "int", "int64":
		return TypeInteger, nil
	case "bool", "boolean":
		return TypeBool, nil
	default:
		return TypeString, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// Column is a named sequence of uniformly typed values. A nil value marks a
// missing cell.
type Column struct {
	Name   string
	Type   Type
	Values []any
}

// Table is an in-memory tabular dataset: an ordered set of named columns
// sharing the same row count. Operations never mutate their receiver, they
// return a new Table instead.
type Table struct {
	columns []Column
	index   map[string]int
}

// New builds a table from the given columns, validating that names are
// unique and every column holds the same number of values.
func New(columns ...Column) (*Table, error) {
	index := make(map[string]int, len(columns))
	rows := -1
	for i, column := range columns {
		if _, found := index[column.Name]; found {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, column.Name)
		}
		index[column.Name] = i

		if rows == -1 {
			rows = len(column.Values)
			continue
		}
		if len(column.Values) != rows {
			return nil, fmt.Errorf("%w: column %q has %d values, expected %d", ErrRowCountMismatch, column.Name, len(column.Values), rows)
		}
	}

	return &Table{columns: columns, index: index}, nil
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns[0].Values)
}

// NumColumns returns the number of columns in the table.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, column := range t.columns {
		names[i] = column.Name
	}
	return names
}

// Column returns the named column, or false if the table does not contain it.
func (t *Table) Column(name string) (Column, bool) {
	i, found := t.index[name]
	if !found {
		return Column{}, false
	}
	return t.columns[i], true
}

// Row returns the values of row i keyed by column name.
func (t *Table) Row(i int) map[string]any {
	row := make(map[string]any, len(t.columns))
	for _, column := range t.columns {
		row[column.Name] = column.Values[i]
	}
	return row
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	columns := make([]Column, len(t.columns))
	for i, column := range t.columns {
		columns[i] = Column{
			Name:   column.Name,
			Type:   column.Type,
			Values: slices.Clone(column.Values),
		}
	}

	cloned, _ := New(columns...) // invariants already hold on the receiver
	return cloned
}

// RenameColumn returns a copy of the table with the old column renamed.
// It reports ErrColumnNotFound if old is absent and ErrDuplicateColumn if
// the new name is already taken by another column.
func (t *Table) RenameColumn(oldName, newName string) (*Table, error) {
	i, found := t.index[oldName]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, oldName)
	}
	if j, taken := t.index[newName]; taken && j != i {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, newName)
	}

	renamed := t.Clone()
	renamed.columns[i].Name = newName
	delete(renamed.index, oldName)
	renamed.index[newName] = i
	return renamed, nil
}

// CastColumn returns a copy of the table with the named column converted to
// the target type. Missing cells stay missing; a value that cannot be
// converted reports ErrInvalidCast.
func (t *Table) CastColumn(name string, target Type) (*Table, error) {
	i, found := t.index[name]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}

	cast := t.Clone()
	column := &cast.columns[i]
	for row, value := range column.Values {
		if value == nil {
			continue
		}

		converted, err := convertValue(value, target)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, row, err)
		}
		column.Values[row] = converted
	}

	column.Type = target
	return cast, nil
}

// CoerceNumeric returns a copy of the table with the named column converted
// to numbers, replacing values that cannot be parsed with missing cells.
func (t *Table) CoerceNumeric(name string) (*Table, error) {
	i, found := t.index[name]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}

	coerced := t.Clone()
	column := &coerced.columns[i]
	for row, value := range column.Values {
		if value == nil {
			continue
		}

		number, ok := toFloat(value)
		if !ok {
			column.Values[row] = nil
			continue
		}
		column.Values[row] = number
	}

	column.Type = TypeNumber
	return coerced, nil
}

// DropMissing returns a copy of the table without the rows where the named
// column has a missing cell.
func (t *Table) DropMissing(name string) (*Table, error) {
	i, found := t.index[name]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}

	keep := make([]int, 0, t.NumRows())
	for row, value := range t.columns[i].Values {
		if value != nil {
			keep = append(keep, row)
		}
	}

	return t.selectRows(keep), nil
}

// DropDuplicates returns a copy of the table without fully identical rows,
// keeping the first occurrence of each.
func (t *Table) DropDuplicates() *Table {
	seen := make(map[string]struct{}, t.NumRows())
	keep := make([]int, 0, t.NumRows())
	for row := range t.NumRows() {
		key := t.rowKey(row)
		if _, found := seen[key]; found {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, row)
	}

	return t.selectRows(keep)
}

// Concat unions the rows of the given tables. Columns are aligned by name,
// missing cells fill columns a table does not have; column order follows the
// first appearance of each name.
func Concat(tables ...*Table) (*Table, error) {
	var names []string
	types := make(map[string]Type)
	rows := 0
	for _, t := range tables {
		rows += t.NumRows()
		for _, column := range t.columns {
			if _, found := types[column.Name]; !found {
				names = append(names, column.Name)
				types[column.Name] = column.Type
			}
		}
	}

	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = Column{
			Name:   name,
			Type:   types[name],
			Values: make([]any, 0, rows),
		}
	}

	for _, t := range tables {
		for i, name := range names {
			column, found := t.Column(name)
			if !found {
				for range t.NumRows() {
					columns[i].Values = append(columns[i].Values, nil)
				}
				continue
			}
			columns[i].Values = append(columns[i].Values, column.Values...)
		}
	}

	return New(columns...)
}

// selectRows builds a new table containing only the given row indices, in order.
func (t *Table) selectRows(rows []int) *Table {
	columns := make([]Column, len(t.columns))
	for i, column := range t.columns {
		values := make([]any, len(rows))
		for j, row := range rows {
			values[j] = column.Values[row]
		}
		columns[i] = Column{Name: column.Name, Type: column.Type, Values: values}
	}

	selected, _ := New(columns...) // invariants already hold on the receiver
	return selected
}

// rowKey encodes a full row into a comparable string.
func (t *Table) rowKey(row int) string {
	builder := new(strings.Builder)
	for _, column := range t.columns {
		builder.WriteString(encodeValue(column.Values[row]))
		builder.WriteByte(0x1f)
	}
	return builder.String()
}

// encodeValue encodes a single cell, keeping values of different types distinct.
func encodeValue(value any) string {
	if value == nil {
		return "\x00"
	}
	return fmt.Sprintf("%T:%v", value, value)
}

// convertValue converts a single non-nil cell to the target type.
func convertValue(value any, target Type) (any, error) {
	switch target {
	case TypeString:
		return fmt.Sprintf("%v", value), nil
	case TypeNumber:
		if number, ok := toFloat(value); ok {
			return number, nil
		}
	case TypeInteger:
		switch v := value.(type) {
		case int64:
			return v, nil
		case float64:
			return int64(v), nil
		case string:
			if parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return parsed, nil
			}
		case bool:
			if v {
				return int64(1), nil
			}
			return int64(0), nil
		}
	case TypeBool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return parsed, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %v (%T) to %s", ErrInvalidCast, value, value, target)
}

// toFloat parses a cell as a number.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
