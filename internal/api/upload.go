/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/polemicos/dzin-schedule/internal/calendar"
	"github.com/polemicos/dzin-schedule/internal/schedule"
	"github.com/polemicos/dzin-schedule/internal/spreadsheet"
	"github.com/polemicos/dzin-schedule/internal/telemetry"
)

// handleUploadSchedule accepts a monthly schedule workbook plus month/year
// form fields and streams back the employee's shifts as an iCalendar
// attachment.
func (a *API) handleUploadSchedule(w http.ResponseWriter, r *http.Request) {
	_, span := telemetry.StartSpan(r.Context(), "api", "upload_schedule")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes)
	if err := r.ParseMultipartForm(a.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			telemetry.UploadsTotal.WithLabelValues(telemetry.OutcomeInvalidRequest).Inc()
			writeError(w, http.StatusRequestEntityTooLarge, "file_too_large")
			return
		}
		telemetry.UploadsTotal.WithLabelValues(telemetry.OutcomeInvalidRequest).Inc()
		writeError(w, http.StatusBadRequest, "invalid_multipart")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		telemetry.UploadsTotal.WithLabelValues(telemetry.OutcomeInvalidRequest).Inc()
		writeError(w, http.StatusBadRequest, "file_required")
		return
	}
	defer file.Close()

	month, err := strconv.Atoi(strings.TrimSpace(r.FormValue("month")))
	if err != nil || month < 1 || month > 12 {
		telemetry.UploadsTotal.WithLabelValues(telemetry.OutcomeInvalidRequest).Inc()
		writeError(w, http.StatusBadRequest, "invalid_month")
		return
	}

	year, err := strconv.Atoi(strings.TrimSpace(r.FormValue("year")))
	if err != nil || year < 1000 || year > 9999 {
		telemetry.UploadsTotal.WithLabelValues(telemetry.OutcomeInvalidRequest).Inc()
		writeError(w, http.StatusBadRequest, "invalid_year")
		return
	}

	employee := strings.TrimSpace(r.FormValue("employee"))
	if employee == "" {
		employee = a.cfg.Employee
	}
	if employee == "" {
		telemetry.UploadsTotal.WithLabelValues(telemetry.OutcomeInvalidRequest).Inc()
		writeError(w, http.StatusBadRequest, "employee_required")
		return
	}

	telemetry.AddSpanAttributes(span, map[string]any{
		"schedule.month": month,
		"schedule.year":  year,
		"schedule.sheet": a.cfg.Sheet,
	})

	stagedPath, err := a.staging.StageUpload(header.Filename, file)
	if err != nil {
		a.logger.Error().Err(err).Str("filename", header.Filename).Msg("failed to stage upload")
		telemetry.RecordError(span, err)
		telemetry.UploadsTotal.WithLabelValues(telemetry.OutcomeError).Inc()
		writeError(w, http.StatusInternalServerError, "staging_failed")
		return
	}
	defer a.staging.Discard(stagedPath)

	parseStart := time.Now()
	grid, err := spreadsheet.ReadSheet(stagedPath, a.cfg.Sheet)
	if err != nil {
		telemetry.RecordError(span, err)
		switch {
		case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
			telemetry.UploadsTotal.WithLabelValues(telemetry.OutcomeInvalidRequest).Inc()
			writeError(w, http.StatusBadRequest, "unsupported_file_type")
		case errors.Is(err, spreadsheet.ErrSheetNotFound):
			a.logger.Warn().Err(err).Str("sheet", a.cfg.Sheet).Msg("sheet not found in upload")
			telemetry.UploadsTotal.WithLabelValues(telemetry.OutcomeUnreadable).Inc()
			writeError(w, http.StatusBadRequest, "sheet_not_found")
		default:
			a.logger.Warn().Err(err).Str("filename", header.Filename).Msg("unreadable workbook")
			telemetry.UploadsTotal.WithLabelValues(telemetry.OutcomeUnreadable).Inc()
			writeError(w, http.StatusBadRequest, "unreadable_workbook")
		}
		return
	}

	parser := schedule.NewParser(employee,
		schedule.WithHeaderMarker(a.cfg.DayMarker),
		schedule.WithLabel(a.cfg.EventSummary),
		schedule.WithLocation(a.cfg.Location()),
		schedule.WithLogger(a.logger),
	)
	result := parser.Parse(grid, year, time.Month(month))
	telemetry.ParseDuration.Observe(time.Since(parseStart).Seconds())
	if result.Rejected > 0 {
		telemetry.IntervalsRejectedTotal.Add(float64(result.Rejected))
	}

	if result.Anchors == 0 {
		a.logger.Info().
			Str("employee", employee).
			Int("month", month).
			Int("year", year).
			Msg("employee not found in schedule")
		telemetry.UploadsTotal.WithLabelValues(telemetry.OutcomeEmployeeNotFound).Inc()
		writeError(w, http.StatusNotFound, "employee_not_found")
		return
	}
	if result.Empty() {
		a.logger.Info().
			Str("employee", employee).
			Int("month", month).
			Int("year", year).
			Int("rejected", result.Rejected).
			Msg("no shifts extracted from schedule")
		telemetry.UploadsTotal.WithLabelValues(telemetry.OutcomeNoShifts).Inc()
		writeError(w, http.StatusBadRequest, "no_shifts_extracted")
		return
	}

	export := calendar.BuildExport(result.Shifts)

	// An on-disk copy aids diagnostics; losing it should not fail the
	// request that already has the calendar in memory.
	if _, err := a.staging.WriteArtifact(year, time.Month(month), export.Data); err != nil {
		a.logger.Warn().Err(err).Msg("failed to write calendar artifact")
	}

	a.logger.Info().
		Str("employee", employee).
		Int("month", month).
		Int("year", year).
		Int("shifts", len(result.Shifts)).
		Int("rejected", result.Rejected).
		Msg("schedule converted")
	telemetry.ShiftsExtracted.Observe(float64(len(result.Shifts)))
	telemetry.UploadsTotal.WithLabelValues(telemetry.OutcomeSuccess).Inc()

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", export.Filename))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Data)
}
