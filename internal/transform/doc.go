// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package transform provides the registry of named table transformations and
// the built-in ones. The registry is closed: the configuration may only name
// transformations registered at startup.
package transform
