/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package schedule extracts one employee's work shifts from a tabular
// month grid. The grid is scanned for anchor cells carrying the
// employee's name; the row beneath an anchor is read as a day-of-month
// header, and the two rows below that supply the start and end time for
// each day. Raw intervals are normalized into concrete timestamps with
// midnight, overnight and month-boundary rollover applied.
//
// The package is pure computation: it never touches files or the
// network, and a Parser may be shared across goroutines since Parse
// only reads its receiver.
package schedule

import "time"

// Grid is a read-only view over spreadsheet cells, rows by columns,
// 0-indexed. Rows may be ragged; positions outside a row read as empty.
type Grid [][]string

// Cell returns the value at (row, col), or the empty string when the
// position lies outside the grid.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int { return len(g) }

// Width returns the length of the widest row.
func (g Grid) Width() int {
	w := 0
	for _, r := range g {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// DayColumn associates a day-of-month from an anchor's header row with
// the grid column it was found in.
type DayColumn struct {
	Day int
	Col int
}

// AnchorMatch is one located anchor cell together with every valid day
// column on its header row. Day columns keep header order; duplicate
// day numbers are all retained.
type AnchorMatch struct {
	Row  int
	Col  int
	Days []DayColumn
}

// Shift is a normalized work interval. End is always strictly after
// Start.
type Shift struct {
	Label string
	Start time.Time
	End   time.Time
}

// Result is the ordered outcome of one parse pass. Shifts keep scan
// order (anchors row-major, columns ascending) and are not deduplicated.
// Anchors counts the accepted anchor cells so callers can tell a marker
// that was never found apart from a schedule with no usable entries.
// Rejected counts intervals dropped for degenerate or unparseable
// content; day columns whose cells were simply empty are not counted.
type Result struct {
	Shifts   []Shift
	Anchors  int
	Rejected int
}

// Empty reports whether the pass produced no shifts.
func (r Result) Empty() bool { return len(r.Shifts) == 0 }
