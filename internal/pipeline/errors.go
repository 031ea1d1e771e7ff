// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import "fmt"

// hookError signals that a hook has failed or has broken its contract.
type hookError struct {
	Hook string
	Err  error
}

func (e *hookError) Error() string {
	return fmt.Sprintf("%s hook: %s", e.Hook, e.Err)
}

func (e *hookError) Unwrap() error {
	return e.Err
}
