// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ChainSafe/chain-overrides/internal/metrics"
	"github.com/ChainSafe/chain-overrides/rpc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newServeCommand() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chain override registry over JSON-RPC",
		Long: `The serve command loads the configured chain definitions and serves them
over JSON-RPC on HTTP and optionally WebSocket, until interrupted.
Example:
	overrides serve --rpc-port 8545 --ws --ws-port 8546 --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execServe(cmd)
		},
	}

	if err := addServeFlags(cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

// addServeFlags adds the rpc and metrics flags to the serve command
func addServeFlags(cmd *cobra.Command) error {
	if err := addBoolFlagBindViper(cmd,
		"rpc",
		config.RPC.Enabled,
		"Enable the HTTP-RPC server",
		"rpc.enabled"); err != nil {
		return fmt.Errorf("failed to add --rpc flag: %s", err)
	}
	if err := addBoolFlagBindViper(cmd,
		"rpc-external",
		config.RPC.External,
		"Accept RPC requests from other hosts than localhost",
		"rpc.external"); err != nil {
		return fmt.Errorf("failed to add --rpc-external flag: %s", err)
	}
	if err := addStringFlagBindViper(cmd,
		"rpc-host",
		config.RPC.Host,
		"HTTP-RPC server listening hostname",
		"rpc.host"); err != nil {
		return fmt.Errorf("failed to add --rpc-host flag: %s", err)
	}
	if err := addUint32FlagBindViper(cmd,
		"rpc-port",
		config.RPC.Port,
		"HTTP-RPC server listening port",
		"rpc.port"); err != nil {
		return fmt.Errorf("failed to add --rpc-port flag: %s", err)
	}
	if err := addStringSliceFlagBindViper(cmd,
		"rpc-modules",
		config.RPC.Modules,
		"API modules to enable via HTTP-RPC, comma separated list",
		"rpc.modules"); err != nil {
		return fmt.Errorf("failed to add --rpc-modules flag: %s", err)
	}
	if err := addBoolFlagBindViper(cmd,
		"ws",
		config.RPC.WS,
		"Enable the websockets server",
		"rpc.ws"); err != nil {
		return fmt.Errorf("failed to add --ws flag: %s", err)
	}
	if err := addUint32FlagBindViper(cmd,
		"ws-port",
		config.RPC.WSPort,
		"Websockets server listening port",
		"rpc.ws-port"); err != nil {
		return fmt.Errorf("failed to add --ws-port flag: %s", err)
	}
	if err := addBoolFlagBindViper(cmd,
		"metrics",
		config.Metrics.Enabled,
		"Enable the prometheus metrics server",
		"metrics.enabled"); err != nil {
		return fmt.Errorf("failed to add --metrics flag: %s", err)
	}
	if err := addStringFlagBindViper(cmd,
		"metrics-address",
		config.Metrics.Address,
		"Address of the prometheus metrics server",
		"metrics.address"); err != nil {
		return fmt.Errorf("failed to add --metrics-address flag: %s", err)
	}
	return nil
}

func execServe(cmd *cobra.Command) (err error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gatherer := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(gatherer)
	if err != nil {
		return fmt.Errorf("creating metrics collector: %w", err)
	}

	registry, err := newRegistry(config, collector)
	if err != nil {
		return err
	}
	defer registry.Close()
	logger.Infof("serving chains %v", registry.Chains())

	if config.Metrics.Enabled {
		metricsServer := metrics.NewServer(config.Metrics.Address, gatherer)
		if err := metricsServer.Start(); err != nil {
			return fmt.Errorf("starting metrics server: %w", err)
		}
		defer func() {
			stopErr := metricsServer.Stop()
			if err == nil && stopErr != nil {
				err = fmt.Errorf("stopping metrics server: %w", stopErr)
			}
		}()
	}

	if config.RPC.Enabled {
		rpcServer := rpc.NewHTTPServer(&rpc.HTTPServerConfig{
			RegistryAPI: registry,
			RPCExternal: config.RPC.External,
			Host:        config.RPC.Host,
			RPCPort:     config.RPC.Port,
			WS:          config.RPC.WS,
			WSExternal:  config.RPC.External,
			WSPort:      config.RPC.WSPort,
			Modules:     config.RPC.Modules,
		})
		if err := rpcServer.Start(); err != nil {
			return fmt.Errorf("starting rpc server: %w", err)
		}
		defer func() {
			stopErr := rpcServer.Stop()
			if err == nil && stopErr != nil {
				err = fmt.Errorf("stopping rpc server: %w", stopErr)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}
