// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package dataset wires the generic pipeline to the three datasets of the outbound report:
// the product master, the warehouse master and the outbound transactions. Each dataset
// contributes its own hooks; Run processes them in dependency order, reference datasets
// first, so that outbound rows can be enriched with their attributes.
package dataset
