/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultHeaderMarker is the cell text expected one row below an anchor.
// Schedules produced by the upstream planning sheet label the day-number
// row "dzień".
const DefaultHeaderMarker = "dzień"

// DefaultLabel names emitted shifts when no summary option is given.
const DefaultLabel = "Work"

// Parser locates anchors for a single employee marker and turns the
// cells beneath them into shifts.
type Parser struct {
	marker string
	header string
	label  string
	loc    *time.Location
	norm   func(string) string
	logger zerolog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithHeaderMarker overrides the day-header cell text.
func WithHeaderMarker(m string) Option {
	return func(p *Parser) { p.header = strings.TrimSpace(m) }
}

// WithLabel sets the summary applied to every emitted shift.
func WithLabel(label string) Option {
	return func(p *Parser) { p.label = label }
}

// WithLocation sets the location the schedule's wall-clock times are
// composed in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithCellNormalizer replaces the cell pre-processing step. Every cell
// value passes through it before comparison or parsing, which keeps
// spreadsheet-library quirks out of the scan itself. The default trims
// surrounding whitespace.
func WithCellNormalizer(fn func(string) string) Option {
	return func(p *Parser) {
		if fn != nil {
			p.norm = fn
		}
	}
}

// WithLogger attaches a logger for per-interval rejection diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger.With().Str("component", "schedule_parser").Logger()
	}
}

// NewParser creates a parser for the given employee marker.
func NewParser(marker string, opts ...Option) *Parser {
	p := &Parser{
		marker: strings.TrimSpace(marker),
		header: DefaultHeaderMarker,
		label:  DefaultLabel,
		loc:    time.UTC,
		norm:   strings.TrimSpace,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Scan walks the grid in row-major order and returns every accepted
// anchor with its day columns. A cell is an anchor when its normalized
// value equals the marker case-insensitively and the cell one row below
// equals the header marker. From an accepted anchor the header row is
// scanned to the grid's right edge; empty, non-numeric and out-of-range
// cells are skipped without ending the walk.
func (p *Parser) Scan(g Grid) []AnchorMatch {
	var matches []AnchorMatch
	width := g.Width()
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < width; c++ {
			if !strings.EqualFold(p.cell(g, r, c), p.marker) {
				continue
			}
			if !strings.EqualFold(p.cell(g, r+1, c), p.header) {
				continue
			}
			m := AnchorMatch{Row: r, Col: c}
			for dc := c + 1; dc < width; dc++ {
				day, err := strconv.Atoi(p.cell(g, r+1, dc))
				if err != nil || day < 1 || day > 31 {
					continue
				}
				m.Days = append(m.Days, DayColumn{Day: day, Col: dc})
			}
			matches = append(matches, m)
		}
	}
	return matches
}

// Parse runs a full pass over the grid for the given month and returns
// the ordered shifts. Interval cells sit two (start) and three (end)
// rows below each anchor. Unusable intervals are skipped, never fatal;
// parse failures are logged with the offending day and raw values.
func (p *Parser) Parse(g Grid, year int, month time.Month) Result {
	var res Result
	for _, m := range p.Scan(g) {
		res.Anchors++
		for _, d := range m.Days {
			startRaw := p.cell(g, m.Row+2, d.Col)
			endRaw := p.cell(g, m.Row+3, d.Col)
			if startRaw == "" || endRaw == "" {
				continue
			}
			if startRaw == endRaw {
				res.Rejected++
				continue
			}
			start, end, err := composeInterval(year, month, d.Day, startRaw, endRaw, p.loc)
			if err != nil {
				res.Rejected++
				p.logger.Warn().
					Int("day", d.Day).
					Str("start", startRaw).
					Str("end", endRaw).
					Err(err).
					Msg("skipping interval")
				continue
			}
			res.Shifts = append(res.Shifts, Shift{Label: p.label, Start: start, End: end})
		}
	}
	return res
}

func (p *Parser) cell(g Grid, row, col int) string {
	return p.norm(g.Cell(row, col))
}
