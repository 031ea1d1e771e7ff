// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package table holds the in-memory tabular model shared by every stage of the ETL.
// A Table is an ordered list of columns and a list of rows; every cell is a typed Value
// whose missing state is explicit. All the operations return a new Table and never
// modify their input, so each stage can be tested on its own.
package table
