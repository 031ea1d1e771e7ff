// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package diagnostic defines the non fatal problems reported while loading and transforming
// datasets. Each Diagnostic carries a Kind so that callers and tests can tell them apart
// without parsing messages.
package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mia-platform/solar/internal/logger"
)

//go:generate ${TOOLS_BIN}/stringer -type=Kind
type Kind int

const (
	// MissingSource is reported when a configured path does not exist or a directory has no files.
	MissingSource Kind = iota
	// UnparsableFile is reported when a single file cannot be decoded and is skipped.
	UnparsableFile
	// SchemaMismatch is reported when no declared column survives normalization.
	SchemaMismatch
	// CoercionFailure is reported when cells of a typed column cannot be parsed.
	CoercionFailure
	// ReferenceKeyMissing is reported when a merge cannot run because its key column is absent.
	ReferenceKeyMissing
)

var (
	ErrMissingSource       = errors.New("missing source")
	ErrUnparsableFile      = errors.New("unparsable file")
	ErrSchemaMismatch      = errors.New("schema mismatch")
	ErrCoercionFailure     = errors.New("coercion failure")
	ErrReferenceKeyMissing = errors.New("reference key missing")
)

// Sentinel returns the sentinel error matching kind.
func (k Kind) Sentinel() error {
	switch k {
	case MissingSource:
		return ErrMissingSource
	case UnparsableFile:
		return ErrUnparsableFile
	case SchemaMismatch:
		return ErrSchemaMismatch
	case CoercionFailure:
		return ErrCoercionFailure
	case ReferenceKeyMissing:
		return ErrReferenceKeyMissing
	default:
		return nil
	}
}

// Ensure Diagnostic implements the error interface.
var _ error = &Diagnostic{}

// Diagnostic describes one non fatal problem.
type Diagnostic struct {
	Kind    Kind
	Dataset string
	Path    string
	Column  string
	Message string
	Err     error
}

func (d *Diagnostic) Error() string {
	msg := d.Kind.String()
	if d.Dataset != "" {
		msg += " [" + d.Dataset + "]"
	}
	if d.Path != "" {
		msg += " " + d.Path
	}
	if d.Column != "" {
		msg += fmt.Sprintf(" column %q", d.Column)
	}
	if d.Message != "" {
		msg += ": " + d.Message
	}
	if d.Err != nil {
		msg += ": " + d.Err.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel of the kind and the underlying cause.
func (d *Diagnostic) Unwrap() []error {
	errs := make([]error, 0, 2)
	if sentinel := d.Kind.Sentinel(); sentinel != nil {
		errs = append(errs, sentinel)
	}
	if d.Err != nil {
		errs = append(errs, d.Err)
	}
	return errs
}

// Reporter collects diagnostics and mirrors them on the logger found in the context.
// It is safe for concurrent use.
type Reporter struct {
	dataset string

	lock        sync.Mutex
	diagnostics []Diagnostic
}

// NewReporter returns a Reporter that tags every diagnostic with dataset.
func NewReporter(dataset string) *Reporter {
	return &Reporter{dataset: dataset}
}

// Report records d and logs it as a warning.
func (r *Reporter) Report(ctx context.Context, d Diagnostic) {
	if d.Dataset == "" {
		d.Dataset = r.dataset
	}

	logger.FromContext(ctx).WithName("solar:diagnostic").Warn("diagnostic reported",
		"kind", d.Kind.String(),
		"message", d.Message,
		"dataset", d.Dataset,
		"path", d.Path,
		"column", d.Column,
		"error", d.Err,
	)

	r.lock.Lock()
	defer r.lock.Unlock()
	r.diagnostics = append(r.diagnostics, d)
}

// Diagnostics returns a copy of what has been reported so far.
func (r *Reporter) Diagnostics() []Diagnostic {
	r.lock.Lock()
	defer r.lock.Unlock()

	out := make([]Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

// OfKind filters diagnostics by kind.
func OfKind(diagnostics []Diagnostic, kind Kind) []Diagnostic {
	out := make([]Diagnostic, 0)
	for _, d := range diagnostics {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
