// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package source reads comma separated files into raw tables.
//
// A dataset is either a single file or every .csv file found directly inside a directory.
// Each file may start with a number of records to ignore before the header record. Files
// of a directory are parsed concurrently and their rows concatenated by column name, so a
// column missing from one file reads as missing for that file's rows.
//
// Problems never abort the load: a missing path or an unreadable file is reported as a
// diagnostic and the affected data is left out of the returned table.
package source
