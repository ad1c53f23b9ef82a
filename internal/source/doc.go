// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package source defines the capability a pipeline needs from a data source
// and the factory resolving the configured adapter by its type discriminator.
package source
