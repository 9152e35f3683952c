/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package calendar renders parsed shifts as an iCalendar document.
package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/polemicos/dzin-schedule/internal/schedule"
)

// DownloadFilename is the attachment name served to clients regardless
// of the staged artifact's unique name.
const DownloadFilename = "work_schedule.ics"

const prodID = "-//Polemicos//dzin-schedule//EN"

// Export bundles a rendered calendar for download.
type Export struct {
	Data        []byte
	Filename    string
	ContentType string
}

// BuildExport renders shifts into a downloadable iCalendar document.
// One VEVENT is emitted per shift, in input order; timestamps are
// serialized in UTC, which preserves the instants composed by the
// parser.
func BuildExport(shifts []schedule.Shift) *Export {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRCalName("Work schedule")

	stamp := time.Now().UTC()
	for _, shift := range shifts {
		event := cal.AddEvent(fmt.Sprintf("%s@dzin-schedule", uuid.NewString()))
		event.SetDtStampTime(stamp)
		event.SetStartAt(shift.Start)
		event.SetEndAt(shift.End)
		event.SetSummary(shift.Label)
	}

	return &Export{
		Data:        []byte(cal.Serialize()),
		Filename:    DownloadFilename,
		ContentType: "text/calendar; charset=utf-8",
	}
}
