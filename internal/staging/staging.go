/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package staging keeps uploaded workbooks and generated calendars on
// local disk for the duration of a request, plus a retention window for
// diagnostics. A cron-driven janitor retires aged files.
package staging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	uploadsDir  = "uploads"
	calendarDir = "ics"
)

// Service stages files under a root directory.
type Service struct {
	root      string
	retention time.Duration
	logger    zerolog.Logger
	cron      *cron.Cron
}

// New creates a staging service rooted at dir.
func New(dir string, retention time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		root:      dir,
		retention: retention,
		logger:    logger.With().Str("component", "staging").Logger(),
	}
}

// StageUpload copies an upload into the staging area. The original
// filename is kept as a suffix so extension sniffing still works on the
// staged path.
func (s *Service) StageUpload(name string, r io.Reader) (string, error) {
	dir := filepath.Join(s.root, uploadsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(name)))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("write staged file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close staged file: %w", err)
	}
	return path, nil
}

// Discard removes a staged file once the request is done with it.
func (s *Service) Discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to discard staged file")
	}
}

// WriteArtifact keeps an on-disk copy of a generated calendar under a
// unique name before it is streamed back to the client.
func (s *Service) WriteArtifact(year int, month time.Month, data []byte) (string, error) {
	dir := filepath.Join(s.root, calendarDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	name := fmt.Sprintf("work_schedule_%04d%02d_%d.ics", year, int(month), time.Now().UnixNano())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}

// StartJanitor sweeps once and then schedules periodic sweeps with the
// given cron spec.
func (s *Service) StartJanitor(spec string) error {
	s.sweep()

	c := cron.New()
	if _, err := c.AddFunc(spec, s.sweep); err != nil {
		return fmt.Errorf("schedule cleanup %q: %w", spec, err)
	}
	c.Start()
	s.cron = c
	return nil
}

// Close stops the janitor. Pending sweeps finish on their own goroutine.
func (s *Service) Close() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}

// sweep removes staged files older than the retention window. Errors
// are logged and never fatal.
func (s *Service) sweep() {
	cutoff := time.Now().Add(-s.retention)
	removed := 0
	for _, sub := range []string{uploadsDir, calendarDir} {
		dir := filepath.Join(s.root, sub)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				s.logger.Warn().Err(err).Str("dir", dir).Msg("cleanup scan failed")
			}
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.ModTime().Before(cutoff) {
				path := filepath.Join(dir, entry.Name())
				if err := os.Remove(path); err != nil {
					s.logger.Warn().Err(err).Str("path", path).Msg("cleanup remove failed")
					continue
				}
				removed++
			}
		}
	}
	if removed > 0 {
		s.logger.Info().Int("files", removed).Msg("removed aged staging files")
	}
}
