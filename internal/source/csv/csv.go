// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package csv implements the source adapter reading every CSV file found in
// a configured directory into a single table.
package csv

import (
	"context"
	encodingcsv "encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mia-platform/tetl/internal/table"
)

const fileExtension = ".csv"

// ErrNoFiles reports a source directory containing no CSV files.
var ErrNoFiles = errors.New("no csv files found")

// Source reads all CSV files in a directory. The files are concatenated in
// file name order, aligning columns by header name, and fully identical rows
// are dropped.
type Source struct {
	path string
}

// New builds a csv source from the adapter params of one source entry.
// The only supported param is "path", the directory to read.
func New(params map[string]any) (*Source, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return nil, errors.New("csv source requires a non empty path parameter")
	}

	return &Source{path: path}, nil
}

// GetData implements the source capability.
func (s *Source) GetData(ctx context.Context) (*table.Table, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	frames := make([]*table.Table, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExtension) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		frame, err := readFile(filepath.Join(s.path, entry.Name()))
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoFiles, s.path)
	}

	merged, err := table.Concat(frames...)
	if err != nil {
		return nil, err
	}
	return merged.DropDuplicates(), nil
}

// readFile parses one CSV file into a table of string columns. The first
// record is the header.
func readFile(path string) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv file: %w", err)
	}
	defer file.Close()

	reader := encodingcsv.NewReader(file)
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv file %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file %q has no header row", path)
	}

	header := records[0]
	columns := make([]table.Column, len(header))
	for i, name := range header {
		columns[i] = table.Column{
			Name:   strings.TrimSpace(name),
			Type:   table.TypeString,
			Values: make([]any, 0, len(records)-1),
		}
	}

	for _, record := range records[1:] {
		for i := range columns {
			columns[i].Values = append(columns[i].Values, record[i])
		}
	}

	parsed, err := table.New(columns...)
	if err != nil {
		return nil, fmt.Errorf("csv file %q: %w", path, err)
	}
	return parsed, nil
}
