// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/rpc/v2"
	"github.com/jpillora/ipfilter"
)

var (
	errUnparsableIP           = errors.New("unable to parse IP")
	errExternalRequestRefused = errors.New("external HTTP request refused")
)

// LocalhostFilter creates a ipfilter object for localhost
func LocalhostFilter() *ipfilter.IPFilter {
	return ipfilter.New(ipfilter.Options{
		BlockByDefault: true,
		AllowedIPs:     []string{"127.0.0.1", "::1"},
	})
}

// LocalRequestOnly HTTP handler to restrict to only local connections
func LocalRequestOnly(r *rpc.RequestInfo, _ interface{}) error {
	ip, _, err := net.SplitHostPort(r.Request.RemoteAddr)
	if err != nil {
		return errUnparsableIP
	}

	if LocalhostFilter().Allowed(ip) {
		return nil
	}
	return errExternalRequestRefused
}

func snakeCaseFormat(method string) (string, error) {
	service, funcName, ok := strings.Cut(method, ".")
	if !ok || funcName == "" {
		return "", fmt.Errorf("%w: %s, should be 'module.FunctionName'", errInvalidMethodFormat, method)
	}

	funcName = strings.ToLower(funcName[:1]) + funcName[1:]
	return service + "_" + funcName, nil
}

func rpcValidator(cfg *HTTPServerConfig, validate *validator.Validate) func(r *rpc.RequestInfo, i interface{}) error {
	return func(r *rpc.RequestInfo, v interface{}) error {
		rpcmethod, err := snakeCaseFormat(r.Method)
		if err != nil {
			return err
		}

		if err = validate.Struct(v); err != nil {
			return fmt.Errorf("invalid params for %s: %w", rpcmethod, err)
		}

		if !cfg.RPCExternal {
			return LocalRequestOnly(r, v)
		}

		return nil
	}
}
