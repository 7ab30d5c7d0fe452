// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telekom/hopwatch/internal/logger"
	"github.com/telekom/hopwatch/pkg/config"
	"github.com/telekom/hopwatch/pkg/hopwatch"
)

// NewCmdRun creates a new run command
func NewCmdRun() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run hopwatch",
		RunE:  run(),
	}
}

// run is the entry point to start the hopwatch
func run() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		log := logger.NewLogger()
		ctx := logger.IntoContext(cmd.Context(), log)
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var cfg config.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}

		if err := cfg.Validate(ctx); err != nil {
			return fmt.Errorf("error while validating the config: %w", err)
		}

		h, err := hopwatch.New(&cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize hopwatch: %w", err)
		}
		log.InfoContext(ctx, "Running hopwatch")
		if err := h.Run(ctx); err != nil && !errors.Is(err, hopwatch.ErrFinalShutdown) {
			return fmt.Errorf("error while running hopwatch: %w", err)
		}
		return nil
	}
}
