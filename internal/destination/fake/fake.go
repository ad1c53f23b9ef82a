// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"testing"

	"github.com/mia-platform/tetl/internal/destination"
	"github.com/mia-platform/tetl/internal/table"
)

var _ destination.Writer = &FakeDestination{}

// FakeDestination records every table written to it.
type FakeDestination struct {
	tb testing.TB

	WrittenData []*table.Table
	Err         error
}

func NewFakeDestination(tb testing.TB) *FakeDestination {
	tb.Helper()
	return &FakeDestination{tb: tb}
}

func (f *FakeDestination) WriteData(_ context.Context, data *table.Table) error {
	f.tb.Helper()
	if f.Err != nil {
		return f.Err
	}
	f.WrittenData = append(f.WrittenData, data)
	return nil
}
