// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package table implements the in-memory tabular dataset shared by sources,
// transformations and destinations: ordered named columns of uniformly typed
// values, plus the relational operations the pipeline needs on them.
package table
