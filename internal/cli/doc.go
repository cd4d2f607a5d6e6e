// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the bookchat command line.
//
//	bookchat [--config path] [--mode short|detailed]   full-screen chat
//	bookchat ask QUESTION [--markdown]                  one exchange
//	bookchat repl                                       line-based chat
//	bookchat ping                                       service status
//	bookchat config init|path                           config file
//	bookchat version
//
// Commands return errors; Execute prints them to stderr and maps them to exit
// codes with ExitCode.
package cli
