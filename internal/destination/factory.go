// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mia-platform/tetl/internal/destination/postgres"
	"github.com/mia-platform/tetl/internal/destination/sqlite"
)

// ErrUnknownDestinationType reports a destination type discriminator with no
// adapter.
var ErrUnknownDestinationType = errors.New("unknown destination type")

// New returns the destination adapter selected by destinationType,
// configured with the credentials mapping and the name of the target store
// object.
func New(destinationType string, credentials map[string]any, destinationName string) (Writer, error) {
	switch strings.ToLower(destinationType) {
	case "postgres":
		return postgres.NewDestination(credentials, destinationName)
	case "sqlite":
		return sqlite.NewDestination(credentials, destinationName)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDestinationType, destinationType)
	}
}
