// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package modules

import (
	"net/http"
)

// MethodsResponse struct representing methods
type MethodsResponse struct {
	Version int      `json:"version"`
	Methods []string `json:"methods"`
}

// RPCModule is a RPC module providing access to RPC methods
type RPCModule struct {
	rpcAPI RPCAPI
}

// NewRPCModule creates a new RPC api module
func NewRPCModule(rpcapi RPCAPI) *RPCModule {
	return &RPCModule{
		rpcAPI: rpcapi,
	}
}

// Methods returns a response with the names of the served RPC methods
func (rm *RPCModule) Methods(_ *http.Request, _ *EmptyRequest, res *MethodsResponse) error {
	var r MethodsResponse
	r.Methods = rm.rpcAPI.Methods()
	*res = r

	return nil
}
