// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"testing"

	"github.com/mia-platform/tetl/internal/source"
	"github.com/mia-platform/tetl/internal/table"
)

var _ source.Source = &FakeSource{}

// FakeSource returns a preconfigured table, or an error, and counts calls.
type FakeSource struct {
	tb testing.TB

	Table *table.Table
	Err   error

	Calls int
}

func NewFakeSource(tb testing.TB, t *table.Table) *FakeSource {
	tb.Helper()
	return &FakeSource{tb: tb, Table: t}
}

func (f *FakeSource) GetData(_ context.Context) (*table.Table, error) {
	f.tb.Helper()
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Table, nil
}
