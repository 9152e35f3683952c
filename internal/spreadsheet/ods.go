/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/knieriem/odf/ods"

	"github.com/polemicos/dzin-schedule/internal/schedule"
)

func readODS(path, sheet string) (schedule.Grid, error) {
	f, err := ods.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var doc ods.Doc
	if err := f.ParseContent(&doc); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}

	if sheet == "" {
		if len(doc.Table) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
		}
		return padGrid(doc.Table[0].Strings()), nil
	}

	names := make([]string, 0, len(doc.Table))
	for i := range doc.Table {
		if doc.Table[i].Name == sheet {
			return padGrid(doc.Table[i].Strings()), nil
		}
		names = append(names, doc.Table[i].Name)
	}
	return nil, fmt.Errorf("%w: %q (workbook has: %s)", ErrSheetNotFound, sheet, strings.Join(names, ", "))
}
