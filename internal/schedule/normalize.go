/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

// End-of-day sentinels. Planning sheets write the end of a closing
// shift as 24:00 rather than 00:00 of the next day.
const (
	endOfDay    = "24:00"
	endOfDaySec = "24:00:00"
)

// composeInterval turns a raw start/end pair on the given calendar day
// into concrete timestamps. The end sentinel "24:00" maps to midnight of
// the following day; any end at or before the start is moved one
// calendar day forward, which covers overnight shifts such as
// 22:00-06:00. Month and year boundaries roll over through calendar
// arithmetic. The returned end is strictly after the returned start.
func composeInterval(year int, month time.Month, day int, startRaw, endRaw string, loc *time.Location) (time.Time, time.Time, error) {
	if last := daysIn(year, month); day > last {
		return time.Time{}, time.Time{}, fmt.Errorf("day %d out of range for %04d-%02d", day, year, month)
	}

	start, err := composeAt(year, month, day, startRaw, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start %q: %w", startRaw, err)
	}

	var end time.Time
	if endRaw == endOfDay || endRaw == endOfDaySec {
		end = time.Date(year, month, day+1, 0, 0, 0, 0, loc)
	} else {
		end, err = composeAt(year, month, day, endRaw, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end %q: %w", endRaw, err)
		}
	}

	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

// composeAt places a wall-clock value on a calendar day. Hours past 23
// normalize forward into the next day, so duration-style cells like
// "25:30" remain usable.
func composeAt(year int, month time.Month, day int, raw string, loc *time.Location) (time.Time, error) {
	hh, mm, ss, err := parseClock(raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, month, day, hh, mm, ss, 0, loc), nil
}

// parseClock reads a time-of-day string in either HH:MM[:SS] form or as
// an ISO-8601 duration. Durations are first re-rendered to an HH:MM:SS
// clock string from their total seconds, then parsed like any other
// clock value, so both forms share one code path.
func parseClock(raw string) (hh, mm, ss int, err error) {
	if raw == "" {
		return 0, 0, 0, fmt.Errorf("empty time value")
	}
	if raw[0] == 'P' || raw[0] == 'p' {
		raw, err = clockFromDuration(raw)
		if err != nil {
			return 0, 0, 0, err
		}
	}

	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("malformed time %q", raw)
	}
	hh, err = clockField(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("malformed time %q: %w", raw, err)
	}
	mm, err = clockField(parts[1])
	if err != nil || mm > 59 {
		return 0, 0, 0, fmt.Errorf("malformed time %q", raw)
	}
	if len(parts) == 3 {
		ss, err = clockField(parts[2])
		if err != nil || ss > 59 {
			return 0, 0, 0, fmt.Errorf("malformed time %q", raw)
		}
	}
	return hh, mm, ss, nil
}

func clockField(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative field %d", n)
	}
	return n, nil
}

// clockFromDuration renders an ISO-8601 duration such as PT7H30M as a
// zero-padded clock string, lossless to the second.
func clockFromDuration(raw string) (string, error) {
	d, err := duration.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("duration %q: %w", raw, err)
	}
	td := d.ToTimeDuration()
	if td < 0 {
		return "", fmt.Errorf("negative duration %q", raw)
	}
	total := int(td / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60), nil
}

// daysIn returns the number of days in the month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
