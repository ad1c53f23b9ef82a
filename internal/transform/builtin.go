// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package transform

import (
	"fmt"

	"github.com/mia-platform/tetl/internal/table"
)

// toNumericType is the set_types parameter value selecting numeric coercion
// instead of a plain cast.
const toNumericType = "to_numeric"

// Rename renames the columns named by the parameter keys to the parameter
// values. It reports table.ErrColumnNotFound when any old name is absent.
func Rename(t *table.Table, params Parameters) (*table.Table, error) {
	renamed := t
	for _, param := range params {
		newName, ok := param.Value.(string)
		if !ok {
			return nil, fmt.Errorf("rename target for column %q must be a string, got %T", param.Key, param.Value)
		}

		var err error
		renamed, err = renamed.RenameColumn(param.Key, newName)
		if err != nil {
			return nil, err
		}
	}

	return renamed, nil
}

// SetTypes converts columns to the types named by the parameter values,
// processing columns in parameter order. The special value "to_numeric"
// coerces values to numbers, turns non-convertible values into missing cells
// and then drops the rows missing in that column, so later columns see the
// reduced table.
func SetTypes(t *table.Table, params Parameters) (*table.Table, error) {
	result := t
	for _, param := range params {
		typeName, ok := param.Value.(string)
		if !ok {
			return nil, fmt.Errorf("type for column %q must be a string, got %T", param.Key, param.Value)
		}

		if typeName == toNumericType {
			coerced, err := result.CoerceNumeric(param.Key)
			if err != nil {
				return nil, err
			}
			result, err = coerced.DropMissing(param.Key)
			if err != nil {
				return nil, err
			}
			continue
		}

		target, err := table.TypeFromString(typeName)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", param.Key, err)
		}
		result, err = result.CastColumn(param.Key, target)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}
