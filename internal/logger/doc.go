// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger wraps hclog behind the small Logger interface used by every solar package.
// Loggers travel inside a context.Context so that the pipeline stages never need a global one.
package logger
