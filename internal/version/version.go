/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package version exposes the build version.
package version

// Version is the current version of dzin-schedule.
// This is set at build time via ldflags:
//
//	-X github.com/polemicos/dzin-schedule/internal/version.Version=X.Y.Z
var Version = "dev"
