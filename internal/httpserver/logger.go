// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package httpserver

// Logger logs the lifecycle of a server.
type Logger interface {
	Info(msg string)
	Error(msg string)
}
