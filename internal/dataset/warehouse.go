// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package dataset

import (
	"github.com/mia-platform/solar/internal/pipeline"
)

// WarehouseHooks returns the hooks of the warehouse master, which is used as loaded.
func WarehouseHooks() pipeline.Hooks {
	return pipeline.Hooks{}
}
