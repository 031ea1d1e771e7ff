// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package pipeline provides the common load and normalize flow shared by every dataset.
// A pipeline is composed of a source, a normalizer and a set of hooks: the hooks filter,
// enrich and extend the normalized table and are never called when it is empty.
package pipeline
