// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"errors"
	"fmt"

	"github.com/mia-platform/solar/internal/diagnostic"
)

var (
	errMissingHeader = errors.New("no header record found")
	errTooManyFields = errors.New("record has more fields than the header")
)

// Ensure FileError implements the error interface.
var _ error = &FileError{}

// FileError is returned when a single file cannot be decoded.
type FileError struct {
	Path string
	// Line is the line where the problem was found, zero when unknown.
	Line int
	Err  error
}

func (e *FileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s %q: line %d: %s", diagnostic.ErrUnparsableFile, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s %q: %s", diagnostic.ErrUnparsableFile, e.Path, e.Err)
}

func (e *FileError) Unwrap() []error {
	return []error{diagnostic.ErrUnparsableFile, e.Err}
}
