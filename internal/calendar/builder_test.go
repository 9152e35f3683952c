/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/polemicos/dzin-schedule/internal/schedule"
)

func TestBuildExportEmitsOneEventPerShift(t *testing.T) {
	shifts := []schedule.Shift{
		{
			Label: "Работа",
			Start: time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			Label: "Работа",
			Start: time.Date(2024, time.March, 20, 22, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.March, 21, 6, 0, 0, 0, time.UTC),
		},
	}

	export := BuildExport(shifts)
	if export.Filename != "work_schedule.ics" {
		t.Fatalf("filename = %q, want %q", export.Filename, "work_schedule.ics")
	}
	if !strings.HasPrefix(export.ContentType, "text/calendar") {
		t.Fatalf("content type = %q", export.ContentType)
	}

	data := string(export.Data)
	if got := strings.Count(data, "BEGIN:VEVENT"); got != 2 {
		t.Fatalf("events = %d, want 2", got)
	}
	if !strings.Contains(data, "METHOD:PUBLISH") {
		t.Fatal("calendar is missing METHOD:PUBLISH")
	}
	if !strings.Contains(data, "DTSTART:20240315T080000Z") {
		t.Fatalf("calendar is missing first DTSTART:\n%s", data)
	}
	if !strings.Contains(data, "DTEND:20240316T000000Z") {
		t.Fatalf("calendar is missing first DTEND:\n%s", data)
	}
	if !strings.Contains(data, "SUMMARY:Работа") {
		t.Fatalf("calendar is missing summary:\n%s", data)
	}
}

func TestBuildExportUniqueEventIDs(t *testing.T) {
	shifts := []schedule.Shift{
		{Label: "Work", Start: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC)},
		{Label: "Work", Start: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC)},
	}
	data := string(BuildExport(shifts).Data)

	var uids []string
	for _, line := range strings.Split(data, "\r\n") {
		if strings.HasPrefix(line, "UID:") {
			uids = append(uids, line)
		}
	}
	if len(uids) != 2 {
		t.Fatalf("uids = %d, want 2", len(uids))
	}
	if uids[0] == uids[1] {
		t.Fatalf("duplicate event UID: %s", uids[0])
	}
}

func TestBuildExportEmptyShiftsStillValidCalendar(t *testing.T) {
	data := string(BuildExport(nil).Data)
	if !strings.Contains(data, "BEGIN:VCALENDAR") || !strings.Contains(data, "END:VCALENDAR") {
		t.Fatalf("not a calendar:\n%s", data)
	}
	if strings.Contains(data, "BEGIN:VEVENT") {
		t.Fatal("unexpected event in empty calendar")
	}
}
