/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/polemicos/dzin-schedule/internal/calendar"
	"github.com/polemicos/dzin-schedule/internal/schedule"
	"github.com/polemicos/dzin-schedule/internal/spreadsheet"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a schedule workbook to an iCalendar file",
	Long:  "Extract one employee's shifts from a schedule workbook (.xlsx or .ods) and write them to an .ics file",
	RunE:  runConvert,
}

var (
	convertFile     string
	convertMonth    int
	convertYear     int
	convertEmployee string
	convertSheet    string
	convertOut      string
)

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertFile, "file", "", "Path to the schedule workbook (.xlsx or .ods) (required)")
	convertCmd.Flags().IntVar(&convertMonth, "month", 0, "Month of the schedule, 1-12 (required)")
	convertCmd.Flags().IntVar(&convertYear, "year", 0, "Year of the schedule (required)")
	convertCmd.Flags().StringVar(&convertEmployee, "employee", "", "Employee name as written in the sheet (default: DZIN_EMPLOYEE)")
	convertCmd.Flags().StringVar(&convertSheet, "sheet", "", "Sheet name to read (default: DZIN_SHEET)")
	convertCmd.Flags().StringVar(&convertOut, "out", calendar.DownloadFilename, "Output .ics path")
	convertCmd.MarkFlagRequired("file")
	convertCmd.MarkFlagRequired("month")
	convertCmd.MarkFlagRequired("year")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	if convertMonth < 1 || convertMonth > 12 {
		return fmt.Errorf("month %d out of range 1-12", convertMonth)
	}
	if convertYear < 1000 || convertYear > 9999 {
		return fmt.Errorf("year %d is not a 4-digit calendar year", convertYear)
	}

	employee := convertEmployee
	if employee == "" {
		employee = cfg.Employee
	}
	if employee == "" {
		return fmt.Errorf("employee name required: pass --employee or set DZIN_EMPLOYEE")
	}
	sheet := convertSheet
	if sheet == "" {
		sheet = cfg.Sheet
	}

	grid, err := spreadsheet.ReadSheet(convertFile, sheet)
	if err != nil {
		return fmt.Errorf("read %s: %w", convertFile, err)
	}

	parser := schedule.NewParser(employee,
		schedule.WithHeaderMarker(cfg.DayMarker),
		schedule.WithLabel(cfg.EventSummary),
		schedule.WithLocation(cfg.Location()),
		schedule.WithLogger(logger),
	)
	result := parser.Parse(grid, convertYear, time.Month(convertMonth))

	if result.Anchors == 0 {
		return fmt.Errorf("employee %q not found in sheet %q", employee, sheet)
	}
	if result.Empty() {
		return fmt.Errorf("no shifts extracted for %q (%d intervals rejected)", employee, result.Rejected)
	}

	export := calendar.BuildExport(result.Shifts)
	if err := os.WriteFile(convertOut, export.Data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", convertOut, err)
	}

	logger.Info().
		Int("shifts", len(result.Shifts)).
		Int("rejected", result.Rejected).
		Str("out", convertOut).
		Msg("conversion complete")
	fmt.Printf("Wrote %d shifts to %s\n", len(result.Shifts), convertOut)
	return nil
}
