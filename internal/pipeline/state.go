// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

//go:generate ${TOOLS_BIN}/stringer -type=State
type State int

const (
	// Unloaded is the state before and at the start of every Process call.
	Unloaded State = iota
	// Loaded is reached once the source has produced the raw table.
	Loaded
	// Normalized is reached once columns are renamed, restricted and coerced.
	Normalized
	// Finalized is reached once every hook has run.
	Finalized
)
