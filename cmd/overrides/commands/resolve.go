// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/ChainSafe/chain-overrides/chain/peerplays"
	"github.com/spf13/cobra"
)

func newResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve TYPE...",
		Short: "Resolve type expressions of a chain at a runtime spec version",
		Long: `The resolve command resolves type expressions against the overrides of a
chain in force at a runtime spec version and prints their structure.
Example:
	overrides resolve --chain peerplays --spec-version 12 "Option<TreeNode<AccountId>>"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execResolve(cmd, args)
		},
	}
	cmd.Flags().String("chain", peerplays.Name, "the chain to resolve the types of")
	cmd.Flags().Uint32("spec-version", 0, "the runtime spec version")
	cmd.Flags().Bool("json", false, "print the resolved types as JSON")
	return cmd
}

func execResolve(cmd *cobra.Command, typeNames []string) error {
	chain, err := cmd.Flags().GetString("chain")
	if err != nil {
		return fmt.Errorf("failed to get --chain: %s", err)
	}
	version, err := cmd.Flags().GetUint32("spec-version")
	if err != nil {
		return fmt.Errorf("failed to get --spec-version: %s", err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get --json: %s", err)
	}

	registry, err := newRegistry(config, nil)
	if err != nil {
		return err
	}
	defer registry.Close()

	out := cmd.OutOrStdout()
	for _, typeName := range typeNames {
		resolved, err := registry.ResolveType(chain, typeName, version)
		if err != nil {
			return err
		}

		if asJSON {
			data, err := json.Marshal(resolved)
			if err != nil {
				return fmt.Errorf("encoding %s: %w", typeName, err)
			}
			fmt.Fprintln(out, string(data))
			continue
		}
		fmt.Fprint(out, resolved.Tree())
	}
	return nil
}

func newFingerprintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the hash of the overrides of a chain at a runtime spec version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := cmd.Flags().GetString("chain")
			if err != nil {
				return fmt.Errorf("failed to get --chain: %s", err)
			}
			version, err := cmd.Flags().GetUint32("spec-version")
			if err != nil {
				return fmt.Errorf("failed to get --spec-version: %s", err)
			}

			registry, err := newRegistry(config, nil)
			if err != nil {
				return err
			}
			defer registry.Close()

			fingerprint, err := registry.Fingerprint(chain, version)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fingerprint)
			return nil
		},
	}
	cmd.Flags().String("chain", peerplays.Name, "the chain to fingerprint")
	cmd.Flags().Uint32("spec-version", 0, "the runtime spec version")
	return cmd
}
