// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import "errors"

var (
	// ErrTableNotFound reports a table spec or join referencing a table name
	// absent from the table set.
	ErrTableNotFound = errors.New("table not found")
	// ErrNoJoinConfigured reports a pipeline without join operations: no
	// merged result exists to return or write.
	ErrNoJoinConfigured = errors.New("no join configured")
)
