// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	cfg "github.com/ChainSafe/chain-overrides/config"
	"github.com/ChainSafe/chain-overrides/internal/log"
	"github.com/ChainSafe/chain-overrides/internal/metrics"
	"github.com/ChainSafe/chain-overrides/lib/overrides"
	"github.com/ChainSafe/chain-overrides/rpc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigFlag is the flag of the configuration file path
const ConfigFlag = "config"

var (
	config = cfg.DefaultConfig()
	logger = log.NewFromGlobal(log.AddContext("pkg", "cmd"))
)

// ParseConfig parses the config from the configuration file, the
// environment and the command line flags, in increasing precedence
func ParseConfig(cmd *cobra.Command) (*cfg.Config, error) {
	configPath, err := cmd.Flags().GetString(ConfigFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to get --%s: %s", ConfigFlag, err)
	}

	con := cfg.DefaultConfig()
	if configPath == "" {
		if _, err := os.Stat(cfg.DefaultConfigPath()); err == nil {
			configPath = cfg.DefaultConfigPath()
		}
	}
	if configPath != "" {
		con, err = cfg.Load(configPath)
		if err != nil {
			return nil, err
		}
		logger.Debugf("loaded configuration file %s", configPath)
	}

	raw, err := con.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	viper.SetConfigType("toml")
	if err := viper.ReadConfig(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := viper.Unmarshal(con); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := con.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("error in config file: %w", err)
	}

	return con, nil
}

// NewRootCommand creates the root command
func NewRootCommand() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Chain override registry command-line interface",
		Long: `overrides validates and serves the custom RPC methods and type
definitions of substrate chains, scoped by runtime spec version.
Usage:
	overrides validate peerplays.json
	overrides methods --chain peerplays validatormanager
	overrides resolve --chain peerplays --spec-version 12 "BTreeSet<CollectionId>"
	overrides serve --rpc-port 8545 --ws`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := ParseConfig(cmd)
			if err != nil {
				return err
			}
			config = parsed

			return setupLogger(config.Log)
		},
	}

	if err := addRootFlags(cmd); err != nil {
		return nil, err
	}

	serveCmd, err := newServeCommand()
	if err != nil {
		return nil, err
	}

	cmd.AddCommand(
		newValidateCommand(),
		newMethodsCommand(),
		newResolveCommand(),
		newFingerprintCommand(),
		serveCmd,
		newConfigCommand(),
	)

	return cmd, nil
}

// addRootFlags adds the root flags to the command
func addRootFlags(cmd *cobra.Command) error {
	cmd.PersistentFlags().String(ConfigFlag,
		"",
		"Path to the toml configuration file, defaults to "+cfg.DefaultConfigPath())

	if err := addStringFlagBindViper(cmd,
		"base-path",
		config.BasePath,
		"Directory relative chain definition paths are resolved against",
		"base-path"); err != nil {
		return fmt.Errorf("failed to add --base-path flag: %s", err)
	}
	if err := addStringFlagBindViper(cmd,
		"log",
		config.Log.Level,
		"Global log level. Supports levels critical (silent), error, warn, info, debug and trace",
		"log.level"); err != nil {
		return fmt.Errorf("failed to add --log flag: %s", err)
	}
	if err := addStringFlagBindViper(cmd,
		"log-format",
		config.Log.Format,
		"Log format, console or json",
		"log.format"); err != nil {
		return fmt.Errorf("failed to add --log-format flag: %s", err)
	}
	if err := addBoolFlagBindViper(cmd,
		"log-caller",
		config.Log.Caller,
		"Add the caller file and line to log lines",
		"log.caller"); err != nil {
		return fmt.Errorf("failed to add --log-caller flag: %s", err)
	}
	if err := addInt64FlagBindViper(cmd,
		"cache-size",
		config.Registry.CacheSize,
		"Number of resolved types kept in the resolution cache, 0 disables the cache",
		"registry.cache-size"); err != nil {
		return fmt.Errorf("failed to add --cache-size flag: %s", err)
	}
	if err := addBoolFlagBindViper(cmd,
		"builtin",
		config.Registry.Builtin,
		"Register the built-in chain definitions",
		"registry.builtin"); err != nil {
		return fmt.Errorf("failed to add --builtin flag: %s", err)
	}

	return nil
}

func setupLogger(logConfig cfg.LogConfig) error {
	global, packages, err := logConfig.Levels()
	if err != nil {
		return fmt.Errorf("parsing log levels: %w", err)
	}

	format, err := log.ParseFormat(logConfig.Format)
	if err != nil {
		return fmt.Errorf("parsing log format: %w", err)
	}

	log.Patch(log.SetLevel(global), log.SetFormat(format), log.SetCaller(logConfig.Caller))
	overrides.SetLogLevel(packages["overrides"])
	rpc.SetLogLevel(packages["rpc"])
	metrics.SetLogLevel(packages["metrics"])

	return nil
}

var errInvalidDefinitions = errors.New("invalid chain definitions")
