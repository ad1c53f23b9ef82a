// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package writer

import (
	"context"
	"fmt"
	"io"
	"sync"

	prettytable "github.com/jedib0t/go-pretty/v6/table"

	"github.com/mia-platform/tetl/internal/destination"
	"github.com/mia-platform/tetl/internal/table"
)

var _ destination.Writer = &writerDestination{}

// writerDestination renders the pipeline result to an io.Writer instead of a
// persistent store, for local runs and dry runs.
type writerDestination struct {
	writer io.Writer

	lock sync.Mutex
}

func NewDestination(w io.Writer) destination.Writer {
	return &writerDestination{
		writer: w,
	}
}

func (d *writerDestination) WriteData(_ context.Context, data *table.Table) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	names := data.ColumnNames()
	header := make(prettytable.Row, len(names))
	for i, name := range names {
		header[i] = name
	}

	rendered := prettytable.NewWriter()
	rendered.SetOutputMirror(d.writer)
	rendered.SetStyle(prettytable.StyleLight)
	rendered.AppendHeader(header)

	for row := range data.NumRows() {
		values := data.Row(row)
		cells := make(prettytable.Row, len(names))
		for i, name := range names {
			if values[name] == nil {
				cells[i] = ""
				continue
			}
			cells[i] = values[name]
		}
		rendered.AppendRow(cells)
	}

	rendered.Render()
	_, err := fmt.Fprintf(d.writer, "(%d rows)\n", data.NumRows())
	return err
}
