// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package config defines the pipeline configuration document and its loader.
package config
