// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mia-platform/tetl/internal/source/csv"
)

// ErrUnknownSourceType reports a source type discriminator with no adapter.
var ErrUnknownSourceType = errors.New("unknown source type")

// New returns the source adapter selected by sourceType, configured with the
// adapter-specific params of one named source entry.
func New(sourceType string, params map[string]any) (Source, error) {
	switch strings.ToLower(sourceType) {
	case "csv":
		return csv.New(params)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSourceType, sourceType)
	}
}
