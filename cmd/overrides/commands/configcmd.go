// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"errors"
	"fmt"
	"os"

	cfg "github.com/ChainSafe/chain-overrides/config"
	"github.com/spf13/cobra"
)

var errConfigExists = errors.New("configuration file already exists")

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write the effective configuration to a toml file",
		Long: `The config init command writes the configuration resulting from the defaults,
the environment and the command line flags to PATH, defaulting to ` + cfg.DefaultConfigPath() + `.
Example:
	overrides config init --rpc-port 9944 ./config.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execConfigInit(cmd, args)
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")

	cmd.AddCommand(initCmd)
	return cmd
}

func execConfigInit(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get --force: %s", err)
	}

	path := cfg.DefaultConfigPath()
	if len(args) == 1 {
		path = args[0]
	}

	_, err = os.Stat(path)
	switch {
	case err == nil && !force:
		return fmt.Errorf("%w: %s", errConfigExists, path)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("checking configuration file: %w", err)
	}

	if err := config.Export(path); err != nil {
		return err
	}

	logger.Info("configuration written to " + path)
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
