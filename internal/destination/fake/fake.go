// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"sync"
	"testing"

	"github.com/mia-platform/solar/internal/destination"
	"github.com/mia-platform/solar/internal/table"
)

var _ destination.Sink = &FakeDestination{}

// FakeDestination keeps every table it receives, or fails with the configured error.
type FakeDestination struct {
	tb  testing.TB
	err error

	lock    sync.Mutex
	Written map[string]table.Table
	Order   []string
}

func NewFakeDestination(tb testing.TB) *FakeDestination {
	tb.Helper()
	return &FakeDestination{tb: tb, Written: make(map[string]table.Table)}
}

func NewFakeDestinationWithError(tb testing.TB, err error) *FakeDestination {
	tb.Helper()
	return &FakeDestination{tb: tb, err: err, Written: make(map[string]table.Table)}
}

func (f *FakeDestination) WriteTable(_ context.Context, name string, t table.Table) error {
	f.tb.Helper()
	if f.err != nil {
		return f.err
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	f.Written[name] = t
	f.Order = append(f.Order, name)
	return nil
}
