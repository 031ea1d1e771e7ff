// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package writer implements a destination that renders the received tables on the given
// io.Writer instance, as a boxed table or as markdown.
// It is primarily useful for inspecting the results of a run without exporting them.
package writer
