// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/bookchat-tui/internal/ui/styles"
)

// pingTimeout bounds the status check.
const pingTimeout = 5 * time.Second

// newPingCmd handles "bookchat ping": query the service root.
func newPingCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check whether the chat service is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(root)
			if err != nil {
				return err
			}
			defer e.Close()
			configureOutput(cmd.OutOrStdout())

			ctx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
			defer cancel()

			url := e.client.BaseURL()
			status, err := e.client.Health(ctx)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s unreachable: %v\n",
					errorStyle.Render(styles.StatusIndicators.Offline), url, err)
				return reported(err)
			}
			if !status.Online() {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s reports status %q\n",
					errorStyle.Render(styles.StatusIndicators.Offline), url, status.Status)
				return reported(fmt.Errorf("service status %q", status.Status))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s online (%s)\n",
				successStyle.Render(styles.StatusIndicators.Online), url, status.System)
			return nil
		},
	}
}
