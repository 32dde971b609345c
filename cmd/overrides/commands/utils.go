// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/ChainSafe/chain-overrides/chain/peerplays"
	cfg "github.com/ChainSafe/chain-overrides/config"
	"github.com/ChainSafe/chain-overrides/lib/overrides"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// InitEnv makes viper read OVERRIDES_RPC_PORT style environment variables,
// accepting OVERRIDESRPC_PORT as well.
func InitEnv(prefix string) {
	copyEnvVars(prefix)

	viper.SetEnvPrefix(prefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// copyEnvVars copies all envs like OVERRIDESLOG to OVERRIDES_LOG,
// so we can support both formats.
func copyEnvVars(prefix string) {
	prefix = strings.ToUpper(prefix)
	ps := prefix + "_"
	for _, e := range os.Environ() {
		k, v, ok := strings.Cut(e, "=")
		if !ok {
			continue
		}
		if strings.HasPrefix(k, prefix) && !strings.HasPrefix(k, ps) {
			_ = os.Setenv(strings.Replace(k, prefix, ps, 1), v)
		}
	}
}

// addStringFlagBindViper adds a string flag to the given command and binds it to the given viper name
func addStringFlagBindViper(cmd *cobra.Command,
	name,
	defaultValue,
	usage,
	viperBindName string,
) error {
	cmd.PersistentFlags().String(name, defaultValue, usage)
	return viper.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// addStringSliceFlagBindViper adds a string slice flag to the given command and binds it to the given viper name
func addStringSliceFlagBindViper(cmd *cobra.Command,
	name string,
	defaultValue []string,
	usage,
	viperBindName string,
) error {
	cmd.PersistentFlags().StringSlice(name, defaultValue, usage)
	return viper.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// addBoolFlagBindViper adds a bool flag to the given command and binds it to the given viper name
func addBoolFlagBindViper(
	cmd *cobra.Command,
	name string,
	defaultValue bool,
	usage string,
	viperBindName string,
) error {
	cmd.PersistentFlags().Bool(name, defaultValue, usage)
	return viper.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// addInt64FlagBindViper adds an int64 flag to the given command and binds it to the given viper name
func addInt64FlagBindViper(
	cmd *cobra.Command,
	name string,
	defaultValue int64,
	usage string,
	viperBindName string,
) error {
	cmd.PersistentFlags().Int64(name, defaultValue, usage)
	return viper.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// addUint32FlagBindViper adds a uint32 flag to the given command and binds it to the given viper name
func addUint32FlagBindViper(
	cmd *cobra.Command,
	name string,
	defaultValue uint32,
	usage string,
	viperBindName string,
) error {
	cmd.PersistentFlags().Uint32(name, defaultValue, usage)
	return viper.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// newRegistry creates a registry holding the built-in definitions and the
// definition files of the configuration. A configured chain replaces the
// built-in definition of the same name.
func newRegistry(config *cfg.Config, metrics overrides.Metrics) (*overrides.Registry, error) {
	registry, err := overrides.NewRegistry(overrides.Config{
		CacheSize: config.Registry.CacheSize,
		Metrics:   metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("creating registry: %w", err)
	}

	configured := make(map[string]struct{}, len(config.Registry.Chains))
	for _, chain := range config.Registry.Chains {
		configured[chain.Name] = struct{}{}
	}

	if _, ok := configured[peerplays.Name]; config.Registry.Builtin && !ok {
		if _, err := peerplays.Register(registry); err != nil {
			registry.Close()
			return nil, err
		}
	}

	for _, chain := range config.Registry.Chains {
		path := config.ChainPath(chain)
		data, err := os.ReadFile(path)
		if err != nil {
			registry.Close()
			return nil, fmt.Errorf("reading definition of chain %s: %w", chain.Name, err)
		}

		if _, err := registry.Load(chain.Name, data); err != nil {
			registry.Close()
			return nil, err
		}
		logger.Debugf("loaded definition of chain %s from %s", chain.Name, path)
	}

	return registry, nil
}
