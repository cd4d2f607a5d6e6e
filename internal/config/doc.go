// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for bookchat.
//
// Configuration is a single TOML file, by default ~/.bookchat/config.toml.
// A missing file means built-in defaults; no environment variables are read.
//
// # Sections
//
//	[backend]  url, timeout_secs
//	[chat]     default_mode
//	[ui]       smooth_scroll, show_timestamps, mouse
//	[log]      path, level
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err // config.ValidateErrors lists every bad field
//	}
//	client := backend.NewClientWithConfig(cfg.ClientConfig(logger))
//
// A Watcher reloads the file after edits and publishes valid results on
// its Updates channel.
package config
