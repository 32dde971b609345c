// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ChainSafe/chain-overrides/lib/overrides"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate chain definition documents",
		Long: `The validate command loads each JSON or YAML chain definition document
and reports the first error found in each of them.
Example:
	overrides validate peerplays.json kusama.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execValidate(cmd, args)
		},
	}
}

func execValidate(cmd *cobra.Command, paths []string) error {
	out := cmd.OutOrStdout()

	failed := 0
	for _, path := range paths {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		definition, err := overrides.Load(data)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s: %s\n", path, err)
			continue
		}

		fmt.Fprintf(out, "%s: ok, %d namespaces, %d version scopes\n",
			path, len(definition.Namespaces()), len(definition.Scopes()))
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidDefinitions, failed, len(paths))
	}
	return nil
}
