// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package table

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownJoinKind reports a join kind name outside inner/left/right/outer.
var ErrUnknownJoinKind = errors.New("unknown join kind")

// JoinKind selects the inclusion semantics of a relational join.
type JoinKind int

const (
	// JoinInner keeps only rows with a key match on both sides.
	JoinInner JoinKind = iota
	// JoinLeft keeps every left row, filling missing right cells.
	JoinLeft
	// JoinRight keeps every right row, filling missing left cells.
	JoinRight
	// JoinOuter keeps every row from both sides.
	JoinOuter
)

func (k JoinKind) String() string {
	switch k {
	case JoinInner:
		return "inner"
	case JoinLeft:
		return "left"
	case JoinRight:
		return "right"
	case JoinOuter:
		return "outer"
	default:
		return fmt.Sprintf("JoinKind(%d)", int(k))
	}
}

// JoinKindFromString maps a configured join kind name to a JoinKind.
func JoinKindFromString(name string) (JoinKind, error) {
	switch strings.ToLower(name) {
	case "inner":
		return JoinInner, nil
	case "left":
		return JoinLeft, nil
	case "right":
		return JoinRight, nil
	case "outer":
		return JoinOuter, nil
	default:
		return JoinInner, fmt.Errorf("%w: %q", ErrUnknownJoinKind, name)
	}
}

// Join merges left and right on the given key columns with standard
// relational row multiplication. Non-matching rows are kept or discarded
// according to kind, with missing cells filling the absent side. Non-key
// columns sharing a name on both sides are disambiguated with the _x and _y
// suffixes. Rows with a missing cell in any key column never match.
func Join(left, right *Table, on []string, kind JoinKind) (*Table, error) {
	for _, key := range on {
		if _, found := left.Column(key); !found {
			return nil, fmt.Errorf("%w: join key %q in left table", ErrColumnNotFound, key)
		}
		if _, found := right.Column(key); !found {
			return nil, fmt.Errorf("%w: join key %q in right table", ErrColumnNotFound, key)
		}
	}

	leftValueColumns := nonKeyColumns(left, on)
	rightValueColumns := nonKeyColumns(right, on)

	output := newJoinOutput(left, right, on, leftValueColumns, rightValueColumns)

	rightIndex := buildKeyIndex(right, on)
	matchedRight := make([]bool, right.NumRows())

	for leftRow := range left.NumRows() {
		var matches []int
		if key := joinKey(left, on, leftRow); key != "" {
			matches = rightIndex[key]
		}

		if len(matches) == 0 {
			if kind == JoinLeft || kind == JoinOuter {
				output.appendLeftOnly(leftRow)
			}
			continue
		}

		for _, rightRow := range matches {
			matchedRight[rightRow] = true
			output.appendMatch(leftRow, rightRow)
		}
	}

	if kind == JoinRight || kind == JoinOuter {
		for rightRow := range right.NumRows() {
			if !matchedRight[rightRow] {
				output.appendRightOnly(rightRow)
			}
		}
	}

	if kind == JoinRight {
		return output.buildRightOrdered(matchedRight)
	}
	return output.build()
}

// nonKeyColumns returns the names of the table's columns outside the join key.
func nonKeyColumns(t *Table, on []string) []string {
	names := make([]string, 0, t.NumColumns())
	for _, name := range t.ColumnNames() {
		if !slices.Contains(on, name) {
			names = append(names, name)
		}
	}
	return names
}

// buildKeyIndex maps each encoded key tuple to the row indices carrying it.
// Rows with missing key cells are skipped.
func buildKeyIndex(t *Table, on []string) map[string][]int {
	index := make(map[string][]int, t.NumRows())
	for row := range t.NumRows() {
		key := joinKey(t, on, row)
		if key == "" {
			continue
		}
		index[key] = append(index[key], row)
	}
	return index
}

// joinKey encodes the key tuple of a row, or "" when any key cell is missing.
func joinKey(t *Table, on []string, row int) string {
	builder := new(strings.Builder)
	for _, name := range on {
		column, _ := t.Column(name)
		value := column.Values[row]
		if value == nil {
			return ""
		}
		builder.WriteString(encodeValue(value))
		builder.WriteByte(0x1f)
	}
	return builder.String()
}

// joinOutput accumulates the merged rows of a join while it runs.
type joinOutput struct {
	left, right *Table
	on          []string

	leftValueColumns  []string
	rightValueColumns []string

	// one output slot per key column, left value column, right value column
	keyValues   [][]any
	leftValues  [][]any
	rightValues [][]any

	// provenance of each output row, used to rebuild right-ordered output
	leftRows  []int // -1 for right-only rows
	rightRows []int // -1 for left-only rows
}

func newJoinOutput(left, right *Table, on, leftValueColumns, rightValueColumns []string) *joinOutput {
	return &joinOutput{
		left:              left,
		right:             right,
		on:                on,
		leftValueColumns:  leftValueColumns,
		rightValueColumns: rightValueColumns,
		keyValues:         make([][]any, len(on)),
		leftValues:        make([][]any, len(leftValueColumns)),
		rightValues:       make([][]any, len(rightValueColumns)),
	}
}

func (o *joinOutput) appendMatch(leftRow, rightRow int) {
	o.appendKeys(o.left, leftRow)
	o.appendSide(o.left, o.leftValueColumns, o.leftValues, leftRow)
	o.appendSide(o.right, o.rightValueColumns, o.rightValues, rightRow)
	o.leftRows = append(o.leftRows, leftRow)
	o.rightRows = append(o.rightRows, rightRow)
}

func (o *joinOutput) appendLeftOnly(leftRow int) {
	o.appendKeys(o.left, leftRow)
	o.appendSide(o.left, o.leftValueColumns, o.leftValues, leftRow)
	o.appendSide(o.right, o.rightValueColumns, o.rightValues, -1)
	o.leftRows = append(o.leftRows, leftRow)
	o.rightRows = append(o.rightRows, -1)
}

func (o *joinOutput) appendRightOnly(rightRow int) {
	o.appendKeys(o.right, rightRow)
	o.appendSide(o.left, o.leftValueColumns, o.leftValues, -1)
	o.appendSide(o.right, o.rightValueColumns, o.rightValues, rightRow)
	o.leftRows = append(o.leftRows, -1)
	o.rightRows = append(o.rightRows, rightRow)
}

func (o *joinOutput) appendKeys(side *Table, row int) {
	for i, name := range o.on {
		column, _ := side.Column(name)
		o.keyValues[i] = append(o.keyValues[i], column.Values[row])
	}
}

func (o *joinOutput) appendSide(side *Table, names []string, values [][]any, row int) {
	for i, name := range names {
		if row < 0 {
			values[i] = append(values[i], nil)
			continue
		}
		column, _ := side.Column(name)
		values[i] = append(values[i], column.Values[row])
	}
}

// build assembles the output table: key columns first, then the left side
// value columns, then the right side ones.
func (o *joinOutput) build() (*Table, error) {
	columns := make([]Column, 0, len(o.on)+len(o.leftValueColumns)+len(o.rightValueColumns))

	for i, name := range o.on {
		keyColumn, _ := o.left.Column(name)
		columns = append(columns, Column{Name: name, Type: keyColumn.Type, Values: o.keyValues[i]})
	}
	for i, name := range o.leftValueColumns {
		column, _ := o.left.Column(name)
		columns = append(columns, Column{Name: o.outputName(name, "_x", o.rightValueColumns), Type: column.Type, Values: o.leftValues[i]})
	}
	for i, name := range o.rightValueColumns {
		column, _ := o.right.Column(name)
		columns = append(columns, Column{Name: o.outputName(name, "_y", o.leftValueColumns), Type: column.Type, Values: o.rightValues[i]})
	}

	return New(columns...)
}

// buildRightOrdered reorders the accumulated rows so the output follows the
// right table's row order, as a right join must.
func (o *joinOutput) buildRightOrdered(matchedRight []bool) (*Table, error) {
	order := make([]int, 0, len(o.rightRows))
	for rightRow := range matchedRight {
		for i, r := range o.rightRows {
			if r == rightRow {
				order = append(order, i)
			}
		}
	}

	built, err := o.build()
	if err != nil {
		return nil, err
	}
	return built.selectRows(order), nil
}

// outputName suffixes a column name when the other side carries it too.
func (o *joinOutput) outputName(name, suffix string, otherSide []string) string {
	if slices.Contains(otherSide, name) {
		return name + suffix
	}
	return name
}
