// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package destination defines the capability a pipeline needs to persist its
// result and the factory resolving the configured adapter by its type
// discriminator.
package destination
