// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"
	"strings"

	"github.com/ChainSafe/chain-overrides/chain/peerplays"
	"github.com/ChainSafe/chain-overrides/lib/overrides"
	"github.com/spf13/cobra"
)

func newMethodsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "methods [NAMESPACE...]",
		Short: "List the custom RPC methods of a chain",
		Long: `The methods command lists the custom RPC methods of a registered chain,
for the given namespaces or for all of them.
Example:
	overrides methods --chain peerplays rewardPool referral`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execMethods(cmd, args)
		},
	}
	cmd.Flags().String("chain", peerplays.Name, "the chain to list the methods of")
	return cmd
}

func execMethods(cmd *cobra.Command, namespaces []string) error {
	chain, err := cmd.Flags().GetString("chain")
	if err != nil {
		return fmt.Errorf("failed to get --chain: %s", err)
	}

	registry, err := newRegistry(config, nil)
	if err != nil {
		return err
	}
	defer registry.Close()

	if len(namespaces) == 0 {
		definition, err := registry.Definition(chain)
		if err != nil {
			return err
		}
		namespaces = definition.Namespaces()
	}

	out := cmd.OutOrStdout()
	for _, namespace := range namespaces {
		methods, err := registry.ListMethods(chain, namespace)
		if err != nil {
			return err
		}
		for _, method := range methods {
			fmt.Fprintln(out, formatMethod(method))
		}
	}
	return nil
}

func formatMethod(method overrides.MethodDescriptor) string {
	params := make([]string, len(method.Params))
	for i, param := range method.Params {
		params[i] = param.Name + ": " + param.TypeName()
	}
	return fmt.Sprintf("%s(%s): %s", method.RPCName(), strings.Join(params, ", "), method.ReturnTypeName())
}
