// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package pipeline provides the core building blocks to create and run batch
// ETL pipelines. A pipeline is composed of named sources, a transformation
// engine interpreting the declarative configuration, and a destination.
package pipeline
