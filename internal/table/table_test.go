// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid columns", func(t *testing.T) {
		t.Parallel()

		tbl, err := New(
			Column{Name: "id", Type: TypeInteger, Values: []any{int64(1), int64(2)}},
			Column{Name: "name", Type: TypeString, Values: []any{"Ann", "Bo"}},
		)
		require.NoError(t, err)
		assert.Equal(t, 2, tbl.NumRows())
		assert.Equal(t, 2, tbl.NumColumns())
		assert.Equal(t, []string{"id", "name"}, tbl.ColumnNames())
	})

	t.Run("duplicate column name", func(t *testing.T) {
		t.Parallel()

		_, err := New(
			Column{Name: "id", Type: TypeString, Values: []any{"a"}},
			Column{Name: "id", Type: TypeString, Values: []any{"b"}},
		)
		assert.ErrorIs(t, err, ErrDuplicateColumn)
	})

	t.Run("mismatched row counts", func(t *testing.T) {
		t.Parallel()

		_, err := New(
			Column{Name: "id", Type: TypeString, Values: []any{"a"}},
			Column{Name: "name", Type: TypeString, Values: []any{"b", "c"}},
		)
		assert.ErrorIs(t, err, ErrRowCountMismatch)
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()

		tbl, err := New()
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.NumRows())
		assert.Equal(t, 0, tbl.NumColumns())
	})
}

func TestRenameColumn(t *testing.T) {
	t.Parallel()

	tbl, err := New(
		Column{Name: "order_id", Type: TypeString, Values: []any{"1", "2"}},
		Column{Name: "cust_id", Type: TypeString, Values: []any{"10", "20"}},
	)
	require.NoError(t, err)

	t.Run("rename keeps order and values", func(t *testing.T) {
		t.Parallel()

		renamed, err := tbl.RenameColumn("order_id", "id")
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "cust_id"}, renamed.ColumnNames())

		column, found := renamed.Column("id")
		require.True(t, found)
		assert.Equal(t, []any{"1", "2"}, column.Values)

		// the receiver is untouched
		assert.Equal(t, []string{"order_id", "cust_id"}, tbl.ColumnNames())
	})

	t.Run("missing column", func(t *testing.T) {
		t.Parallel()

		_, err := tbl.RenameColumn("missing", "id")
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})

	t.Run("name already taken", func(t *testing.T) {
		t.Parallel()

		_, err := tbl.RenameColumn("order_id", "cust_id")
		assert.ErrorIs(t, err, ErrDuplicateColumn)
	})
}

func TestCastColumn(t *testing.T) {
	t.Parallel()

	tbl, err := New(
		Column{Name: "count", Type: TypeString, Values: []any{"1", "2", nil}},
		Column{Name: "flag", Type: TypeString, Values: []any{"true", "false", "true"}},
	)
	require.NoError(t, err)

	t.Run("to integer", func(t *testing.T) {
		t.Parallel()

		cast, err := tbl.CastColumn("count", TypeInteger)
		require.NoError(t, err)
		column, _ := cast.Column("count")
		assert.Equal(t, TypeInteger, column.Type)
		assert.Equal(t, []any{int64(1), int64(2), nil}, column.Values)
	})

	t.Run("to bool", func(t *testing.T) {
		t.Parallel()

		cast, err := tbl.CastColumn("flag", TypeBool)
		require.NoError(t, err)
		column, _ := cast.Column("flag")
		assert.Equal(t, []any{true, false, true}, column.Values)
	})

	t.Run("invalid cast", func(t *testing.T) {
		t.Parallel()

		_, err := tbl.CastColumn("flag", TypeInteger)
		assert.ErrorIs(t, err, ErrInvalidCast)
	})

	t.Run("missing column", func(t *testing.T) {
		t.Parallel()

		_, err := tbl.CastColumn("missing", TypeString)
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})
}

func TestCoerceNumericAndDropMissing(t *testing.T) {
	t.Parallel()

	tbl, err := New(
		Column{Name: "amount", Type: TypeString, Values: []any{"10.5", "oops", "3", ""}},
		Column{Name: "label", Type: TypeString, Values: []any{"a", "b", "c", "d"}},
	)
	require.NoError(t, err)

	coerced, err := tbl.CoerceNumeric("amount")
	require.NoError(t, err)

	column, _ := coerced.Column("amount")
	assert.Equal(t, TypeNumber, column.Type)
	assert.Equal(t, []any{10.5, nil, 3.0, nil}, column.Values)

	dropped, err := coerced.DropMissing("amount")
	require.NoError(t, err)
	assert.Equal(t, 2, dropped.NumRows())

	labels, _ := dropped.Column("label")
	assert.Equal(t, []any{"a", "c"}, labels.Values)
}

func TestDropDuplicates(t *testing.T) {
	t.Parallel()

	tbl, err := New(
		Column{Name: "id", Type: TypeString, Values: []any{"1", "2", "1", "1"}},
		Column{Name: "v", Type: TypeString, Values: []any{"a", "b", "a", "c"}},
	)
	require.NoError(t, err)

	deduped := tbl.DropDuplicates()
	assert.Equal(t, 3, deduped.NumRows())

	ids, _ := deduped.Column("id")
	assert.Equal(t, []any{"1", "2", "1"}, ids.Values)
	values, _ := deduped.Column("v")
	assert.Equal(t, []any{"a", "b", "c"}, values.Values)
}

func TestConcat(t *testing.T) {
	t.Parallel()

	first, err := New(
		Column{Name: "id", Type: TypeString, Values: []any{"1"}},
		Column{Name: "v", Type: TypeString, Values: []any{"a"}},
	)
	require.NoError(t, err)

	second, err := New(
		Column{Name: "id", Type: TypeString, Values: []any{"2"}},
		Column{Name: "w", Type: TypeString, Values: []any{"x"}},
	)
	require.NoError(t, err)

	merged, err := Concat(first, second)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "v", "w"}, merged.ColumnNames())
	assert.Equal(t, 2, merged.NumRows())

	v, _ := merged.Column("v")
	assert.Equal(t, []any{"a", nil}, v.Values)
	w, _ := merged.Column("w")
	assert.Equal(t, []any{nil, "x"}, w.Values)
}

func TestTypeFromString(t *testing.T) {
	t.Parallel()

	testCases := map[string]Type{
		"string":  TypeString,
		"str":     TypeString,
		"float":   TypeNumber,
		"number":  TypeNumber,
		"int":     TypeInteger,
		"integer": TypeInteger,
		"bool":    TypeBool,
	}

	for name, expected := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			parsed, err := TypeFromString(name)
			require.NoError(t, err)
			assert.Equal(t, expected, parsed)
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := TypeFromString("decimal128")
		assert.ErrorIs(t, err, ErrUnknownType)
	})
}
