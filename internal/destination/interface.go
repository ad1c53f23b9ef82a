// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"context"

	"github.com/mia-platform/tetl/internal/table"
)

// Writer persists the final pipeline table to a destination store.
type Writer interface {
	// WriteData writes the table. Connections or other resources must be
	// scoped to the call and released on every exit path.
	WriteData(ctx context.Context, data *table.Table) error
}
