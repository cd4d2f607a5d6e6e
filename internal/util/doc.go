// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across bookchat.
//
//   - AtomicWriteFile: crash-safe file writing with fsync, used for config
//   - StringWidth, TruncateWidth, PadRight: terminal-cell aware string sizing
package util
