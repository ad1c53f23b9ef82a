// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinFixtures(t *testing.T) (*Table, *Table) {
	t.Helper()

	left, err := New(
		Column{Name: "id", Type: TypeInteger, Values: []any{int64(1), int64(2)}},
		Column{Name: "v", Type: TypeString, Values: []any{"a", "b"}},
	)
	require.NoError(t, err)

	right, err := New(
		Column{Name: "id", Type: TypeInteger, Values: []any{int64(2), int64(3)}},
		Column{Name: "w", Type: TypeString, Values: []any{"x", "y"}},
	)
	require.NoError(t, err)

	return left, right
}

func TestJoin(t *testing.T) {
	t.Parallel()

	t.Run("inner", func(t *testing.T) {
		t.Parallel()

		left, right := joinFixtures(t)
		joined, err := Join(left, right, []string{"id"}, JoinInner)
		require.NoError(t, err)

		assert.Equal(t, []string{"id", "v", "w"}, joined.ColumnNames())
		require.Equal(t, 1, joined.NumRows())
		assert.Equal(t, map[string]any{"id": int64(2), "v": "b", "w": "x"}, joined.Row(0))
	})

	t.Run("left", func(t *testing.T) {
		t.Parallel()

		left, right := joinFixtures(t)
		joined, err := Join(left, right, []string{"id"}, JoinLeft)
		require.NoError(t, err)

		require.Equal(t, 2, joined.NumRows())
		assert.Equal(t, map[string]any{"id": int64(1), "v": "a", "w": nil}, joined.Row(0))
		assert.Equal(t, map[string]any{"id": int64(2), "v": "b", "w": "x"}, joined.Row(1))
	})

	t.Run("right", func(t *testing.T) {
		t.Parallel()

		left, right := joinFixtures(t)
		joined, err := Join(left, right, []string{"id"}, JoinRight)
		require.NoError(t, err)

		require.Equal(t, 2, joined.NumRows())
		assert.Equal(t, map[string]any{"id": int64(2), "v": "b", "w": "x"}, joined.Row(0))
		assert.Equal(t, map[string]any{"id": int64(3), "v": nil, "w": "y"}, joined.Row(1))
	})

	t.Run("outer", func(t *testing.T) {
		t.Parallel()

		left, right := joinFixtures(t)
		joined, err := Join(left, right, []string{"id"}, JoinOuter)
		require.NoError(t, err)

		require.Equal(t, 3, joined.NumRows())
		assert.Equal(t, map[string]any{"id": int64(1), "v": "a", "w": nil}, joined.Row(0))
		assert.Equal(t, map[string]any{"id": int64(2), "v": "b", "w": "x"}, joined.Row(1))
		assert.Equal(t, map[string]any{"id": int64(3), "v": nil, "w": "y"}, joined.Row(2))
	})

	t.Run("row multiplication", func(t *testing.T) {
		t.Parallel()

		left, err := New(
			Column{Name: "k", Type: TypeString, Values: []any{"a", "a"}},
			Column{Name: "l", Type: TypeString, Values: []any{"l1", "l2"}},
		)
		require.NoError(t, err)

		right, err := New(
			Column{Name: "k", Type: TypeString, Values: []any{"a", "a"}},
			Column{Name: "r", Type: TypeString, Values: []any{"r1", "r2"}},
		)
		require.NoError(t, err)

		joined, err := Join(left, right, []string{"k"}, JoinInner)
		require.NoError(t, err)
		assert.Equal(t, 4, joined.NumRows())
	})

	t.Run("multi column key", func(t *testing.T) {
		t.Parallel()

		left, err := New(
			Column{Name: "a", Type: TypeString, Values: []any{"1", "1"}},
			Column{Name: "b", Type: TypeString, Values: []any{"x", "y"}},
			Column{Name: "l", Type: TypeString, Values: []any{"l1", "l2"}},
		)
		require.NoError(t, err)

		right, err := New(
			Column{Name: "a", Type: TypeString, Values: []any{"1"}},
			Column{Name: "b", Type: TypeString, Values: []any{"y"}},
			Column{Name: "r", Type: TypeString, Values: []any{"r1"}},
		)
		require.NoError(t, err)

		joined, err := Join(left, right, []string{"a", "b"}, JoinInner)
		require.NoError(t, err)
		require.Equal(t, 1, joined.NumRows())
		assert.Equal(t, map[string]any{"a": "1", "b": "y", "l": "l2", "r": "r1"}, joined.Row(0))
	})

	t.Run("colliding value columns are suffixed", func(t *testing.T) {
		t.Parallel()

		left, err := New(
			Column{Name: "id", Type: TypeString, Values: []any{"1"}},
			Column{Name: "name", Type: TypeString, Values: []any{"left"}},
		)
		require.NoError(t, err)

		right, err := New(
			Column{Name: "id", Type: TypeString, Values: []any{"1"}},
			Column{Name: "name", Type: TypeString, Values: []any{"right"}},
		)
		require.NoError(t, err)

		joined, err := Join(left, right, []string{"id"}, JoinInner)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name_x", "name_y"}, joined.ColumnNames())
	})

	t.Run("missing key cells never match", func(t *testing.T) {
		t.Parallel()

		left, err := New(
			Column{Name: "id", Type: TypeString, Values: []any{nil, "1"}},
			Column{Name: "v", Type: TypeString, Values: []any{"a", "b"}},
		)
		require.NoError(t, err)

		right, err := New(
			Column{Name: "id", Type: TypeString, Values: []any{nil, "1"}},
			Column{Name: "w", Type: TypeString, Values: []any{"x", "y"}},
		)
		require.NoError(t, err)

		joined, err := Join(left, right, []string{"id"}, JoinInner)
		require.NoError(t, err)
		require.Equal(t, 1, joined.NumRows())
		assert.Equal(t, map[string]any{"id": "1", "v": "b", "w": "y"}, joined.Row(0))
	})

	t.Run("unknown key column", func(t *testing.T) {
		t.Parallel()

		left, right := joinFixtures(t)
		_, err := Join(left, right, []string{"missing"}, JoinInner)
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})
}

func TestJoinKindFromString(t *testing.T) {
	t.Parallel()

	testCases := map[string]JoinKind{
		"inner": JoinInner,
		"left":  JoinLeft,
		"right": JoinRight,
		"outer": JoinOuter,
		"INNER": JoinInner,
	}

	for name, expected := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			parsed, err := JoinKindFromString(name)
			require.NoError(t, err)
			assert.Equal(t, expected, parsed)
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := JoinKindFromString("cross")
		assert.ErrorIs(t, err, ErrUnknownJoinKind)
	})
}
