/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/polemicos/dzin-schedule/internal/schedule"
)

func readXLSX(path, sheet string) (schedule.Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
		}
		sheet = sheets[0]
	} else if !hasSheet(sheets, sheet) {
		return nil, fmt.Errorf("%w: %q (workbook has: %s)", ErrSheetNotFound, sheet, strings.Join(sheets, ", "))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	grid := padGrid(rows)

	// Merged regions carry their value only in the top-left cell;
	// propagate it so anchors and headers hidden under a merge stay
	// visible to the scanner.
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("read merged cells: %w", err)
	}
	for _, merge := range merges {
		val := strings.TrimSpace(merge[0])
		parts := strings.Split(merge[1], ":")
		if len(parts) != 2 {
			continue
		}
		c1, r1, err := excelize.CellNameToCoordinates(parts[0])
		if err != nil {
			continue
		}
		c2, r2, err := excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			continue
		}
		fillRegion(grid, r1-1, c1-1, r2-1, c2-1, val)
	}

	return grid, nil
}

func hasSheet(sheets []string, name string) bool {
	for _, s := range sheets {
		if s == name {
			return true
		}
	}
	return false
}
