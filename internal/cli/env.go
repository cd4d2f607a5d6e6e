// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/jeranaias/bookchat-tui/internal/backend"
	"github.com/jeranaias/bookchat-tui/internal/config"
	"github.com/jeranaias/bookchat-tui/internal/logging"
	"github.com/jeranaias/bookchat-tui/internal/model"
)

// env is everything a command needs after startup.
type env struct {
	cfg     *config.Config
	cfgPath string
	mode    model.Mode
	log     *logging.Logger
	client  *backend.Client
}

// setup loads the configuration, opens the log file and builds the backend
// client. Config errors are fatal here and nowhere else.
func setup(opts *rootOptions) (*env, error) {
	path := opts.configPath
	if path == "" {
		if p, err := config.ConfigPath(); err == nil {
			path = p
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, configError(path, err)
	}

	mode := cfg.Mode()
	if opts.mode != "" {
		mode, err = model.ParseMode(opts.mode)
		if err != nil {
			return nil, usageError(err)
		}
	}

	logger, err := openLog(cfg)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	logger.Info().
		Str("config", path).
		Str("url", cfg.Backend.URL).
		Int("timeout_secs", cfg.Backend.TimeoutSecs).
		Str("mode", mode.String()).
		Msg("bookchat starting")

	return &env{
		cfg:     cfg,
		cfgPath: path,
		mode:    mode,
		log:     logger,
		client:  backend.NewClientWithConfig(cfg.ClientConfig(logger.Logger)),
	}, nil
}

func openLog(cfg *config.Config) (*logging.Logger, error) {
	opts := logging.Options{Path: cfg.Log.Path, Level: cfg.Log.Level}
	if opts.Path == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			return nil, err
		}
		opts.Dir = dir
	}
	return logging.Open(opts)
}

// Close releases the log file.
func (e *env) Close() {
	if e == nil {
		return
	}
	e.log.Close()
}
