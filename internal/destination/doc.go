// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package destination defines the primitives used to implement solar data destinations.
// A destination receives the final table of every dataset under its name and decides how
// to persist or display it.
package destination
