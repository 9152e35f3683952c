/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// planGrid lays out a minimal month sheet: a title row, the employee
// anchor, the day-header row and the start/end rows beneath it.
func planGrid() Grid {
	return Grid{
		{"Grafik pracy", "", "", "", ""},
		{"Diana", "", "", "", ""},
		{"dzień", "1", "2", "3", "4"},
		{"", "08:00:00", "", "22:00:00", "10:00"},
		{"", "16:00:00", "", "06:00:00", "10:00"},
	}
}

func TestParseEmitsShiftsInScanOrder(t *testing.T) {
	p := NewParser("diana", WithLabel("Работа"))
	res := p.Parse(planGrid(), 2024, time.March)

	if res.Anchors != 1 {
		t.Fatalf("anchors = %d, want 1", res.Anchors)
	}
	if len(res.Shifts) != 2 {
		t.Fatalf("shifts = %d, want 2", len(res.Shifts))
	}

	first := res.Shifts[0]
	if first.Label != "Работа" {
		t.Fatalf("label = %q, want %q", first.Label, "Работа")
	}
	if want := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC); !first.Start.Equal(want) {
		t.Fatalf("first start = %v, want %v", first.Start, want)
	}
	if want := time.Date(2024, time.March, 1, 16, 0, 0, 0, time.UTC); !first.End.Equal(want) {
		t.Fatalf("first end = %v, want %v", first.End, want)
	}

	overnight := res.Shifts[1]
	if want := time.Date(2024, time.March, 3, 22, 0, 0, 0, time.UTC); !overnight.Start.Equal(want) {
		t.Fatalf("overnight start = %v, want %v", overnight.Start, want)
	}
	if want := time.Date(2024, time.March, 4, 6, 0, 0, 0, time.UTC); !overnight.End.Equal(want) {
		t.Fatalf("overnight end = %v, want %v", overnight.End, want)
	}
}

func TestParseDropsDegenerateInterval(t *testing.T) {
	// Day 4 carries identical start and end text and must be dropped.
	res := NewParser("diana").Parse(planGrid(), 2024, time.March)
	for _, s := range res.Shifts {
		if s.Start.Day() == 4 {
			t.Fatalf("degenerate interval on day 4 was emitted: %+v", s)
		}
	}
	if res.Rejected != 1 {
		t.Fatalf("rejected = %d, want 1", res.Rejected)
	}
}

func TestParseWithoutAnchorReturnsEmptyResult(t *testing.T) {
	res := NewParser("nobody").Parse(planGrid(), 2024, time.March)
	if !res.Empty() {
		t.Fatalf("expected empty result, got %d shifts", len(res.Shifts))
	}
	if res.Anchors != 0 {
		t.Fatalf("anchors = %d, want 0", res.Anchors)
	}
}

func TestParseRequiresHeaderMarkerBelowAnchor(t *testing.T) {
	g := Grid{
		{"Diana", "", ""},
		{"not-a-header", "1", "2"},
		{"", "08:00", "08:00"},
		{"", "16:00", "16:00"},
	}
	res := NewParser("diana").Parse(g, 2024, time.March)
	if res.Anchors != 0 {
		t.Fatalf("anchors = %d, want 0", res.Anchors)
	}
}

func TestScanSkipsGapsInHeaderRow(t *testing.T) {
	g := Grid{
		{"diana", "", "5", "x", "12"},
		{"dzień", "", "5", "x", "12"},
	}
	// Anchor on row 0 needs the header marker on row 1; day cells come
	// from the header row to the right of the anchor column.
	matches := NewParser("diana").Scan(g)
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	want := []DayColumn{{Day: 5, Col: 2}, {Day: 12, Col: 4}}
	if !reflect.DeepEqual(matches[0].Days, want) {
		t.Fatalf("days = %+v, want %+v", matches[0].Days, want)
	}
}

func TestScanKeepsDuplicateDayNumbers(t *testing.T) {
	g := Grid{
		{"diana", "", "", ""},
		{"dzień", "7", "7", "33"},
	}
	matches := NewParser("diana").Scan(g)
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	want := []DayColumn{{Day: 7, Col: 1}, {Day: 7, Col: 2}}
	if !reflect.DeepEqual(matches[0].Days, want) {
		t.Fatalf("days = %+v, want %+v", matches[0].Days, want)
	}
}

func TestParseHandlesAnchorAtGridBottom(t *testing.T) {
	// No start/end rows exist below the header; every interval reads as
	// empty and is skipped silently.
	g := Grid{
		{"diana", "", ""},
		{"dzień", "1", "2"},
	}
	res := NewParser("diana").Parse(g, 2024, time.March)
	if res.Anchors != 1 {
		t.Fatalf("anchors = %d, want 1", res.Anchors)
	}
	if !res.Empty() {
		t.Fatalf("expected no shifts, got %d", len(res.Shifts))
	}
	if res.Rejected != 0 {
		t.Fatalf("rejected = %d, want 0", res.Rejected)
	}
}

func TestParseCollectsEveryAnchorIndependently(t *testing.T) {
	g := Grid{
		{"Diana", "", ""},
		{"dzień", "1", ""},
		{"", "08:00", ""},
		{"", "12:00", ""},
		{"DIANA", "", ""},
		{"dzień", "1", ""},
		{"", "08:00", ""},
		{"", "12:00", ""},
	}
	res := NewParser("diana").Parse(g, 2024, time.March)
	if res.Anchors != 2 {
		t.Fatalf("anchors = %d, want 2", res.Anchors)
	}
	// Identical shifts from separate anchors are both retained.
	if len(res.Shifts) != 2 {
		t.Fatalf("shifts = %d, want 2", len(res.Shifts))
	}
	if !res.Shifts[0].Start.Equal(res.Shifts[1].Start) {
		t.Fatalf("expected duplicate shifts, got %v and %v", res.Shifts[0].Start, res.Shifts[1].Start)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	p := NewParser("diana", WithLogger(zerolog.Nop()))
	g := planGrid()
	first := p.Parse(g, 2024, time.March)
	second := p.Parse(g, 2024, time.March)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parse is not idempotent: %+v vs %+v", first, second)
	}
}

func TestParseComposesInConfiguredLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	p := NewParser("diana", WithLocation(loc))
	res := p.Parse(planGrid(), 2024, time.March)
	if res.Empty() {
		t.Fatal("expected shifts")
	}
	if got := res.Shifts[0].Start.Location(); got != loc {
		t.Fatalf("location = %v, want %v", got, loc)
	}
	if h := res.Shifts[0].Start.Hour(); h != 8 {
		t.Fatalf("wall-clock hour = %d, want 8", h)
	}
}

func TestParseAppliesCellNormalizer(t *testing.T) {
	g := Grid{
		{" diana  ", "", ""},
		{" dzień", "1", ""},
		{"", "08:00 ", ""},
		{"", "16:00", ""},
	}
	strip := func(s string) string {
		return strings.TrimSpace(strings.ReplaceAll(s, " ", " "))
	}
	res := NewParser("diana", WithCellNormalizer(strip)).Parse(g, 2024, time.March)
	if len(res.Shifts) != 1 {
		t.Fatalf("shifts = %d, want 1", len(res.Shifts))
	}
}

func TestParseLogsAndSkipsUnparseableInterval(t *testing.T) {
	g := Grid{
		{"diana", "", ""},
		{"dzień", "1", "2"},
		{"", "bogus", "08:00"},
		{"", "16:00", "16:00:00"},
	}
	var buf strings.Builder
	logger := zerolog.New(&buf)
	res := NewParser("diana", WithLogger(logger)).Parse(g, 2024, time.March)
	if len(res.Shifts) != 1 {
		t.Fatalf("shifts = %d, want 1", len(res.Shifts))
	}
	if res.Rejected != 1 {
		t.Fatalf("rejected = %d, want 1", res.Rejected)
	}
	out := buf.String()
	if !strings.Contains(out, "bogus") || !strings.Contains(out, "\"day\":1") {
		t.Fatalf("rejection log missing day or raw value: %s", out)
	}
}
