// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"github.com/ChainSafe/chain-overrides/cmd/overrides/commands"
	"github.com/spf13/cobra"
)

// configureCobraCmd configures the cobra command with the given environment prefix.
func configureCobraCmd(cmd *cobra.Command, envPrefix string) {
	cobra.OnInitialize(func() { commands.InitEnv(envPrefix) })
}
