// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"context"

	"github.com/mia-platform/tetl/internal/table"
)

// Source produces the tabular dataset of one named source entry.
type Source interface {
	// GetData loads and returns the source table. It is called once per
	// pipeline run, before any transformation executes.
	GetData(ctx context.Context) (*table.Table, error)
}
