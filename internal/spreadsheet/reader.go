/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package spreadsheet turns uploaded workbooks into plain cell grids.
// Two formats are supported, chosen by file extension: .xlsx and .ods.
// Whatever the source library reports for a cell is reduced to its
// display text, so the parser downstream never sees library-specific
// value types.
package spreadsheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/polemicos/dzin-schedule/internal/schedule"
)

var (
	// ErrUnsupportedFormat marks files that are neither .xlsx nor .ods.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

	// ErrSheetNotFound marks workbooks missing the requested sheet.
	ErrSheetNotFound = errors.New("sheet not found")
)

// ReadSheet loads one sheet from the workbook at path and returns it as
// a rectangular grid. An empty sheet name selects the workbook's first
// sheet.
func ReadSheet(path, sheet string) (schedule.Grid, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return readXLSX(path, sheet)
	case ".ods":
		return readODS(path, sheet)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// padGrid copies raw rows into a rectangular grid, trimming every cell
// and padding ragged rows to the widest row.
func padGrid(rows [][]string) schedule.Grid {
	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	grid := make(schedule.Grid, len(rows))
	for i := range grid {
		grid[i] = make([]string, maxCol)
		for j, cell := range rows[i] {
			grid[i][j] = strings.TrimSpace(cell)
		}
	}
	return grid
}

// fillRegion writes val into every cell of the inclusive region,
// ignoring coordinates outside the grid.
func fillRegion(grid schedule.Grid, r1, c1, r2, c2 int, val string) {
	for r := r1; r <= r2; r++ {
		if r < 0 || r >= len(grid) {
			continue
		}
		for c := c1; c <= c2; c++ {
			if c < 0 || c >= len(grid[r]) {
				continue
			}
			grid[r][c] = val
		}
	}
}
