// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package httpserver

import (
	"time"
)

const (
	defaultReadTimeout       = 10 * time.Second
	defaultReadHeaderTimeout = time.Second
	defaultShutdownTimeout   = 3 * time.Second
)

// Option is a functional option for the HTTP server.
type Option func(s *settings)

type settings struct {
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration
}

func newSettings(options []Option) settings {
	s := settings{
		readTimeout:       defaultReadTimeout,
		readHeaderTimeout: defaultReadHeaderTimeout,
		shutdownTimeout:   defaultShutdownTimeout,
	}
	for _, option := range options {
		option(&s)
	}
	return s
}

// ReadTimeout sets the request read timeout and the header read
// timeout of the server, which default to 10 seconds and 1 second.
func ReadTimeout(body, header time.Duration) Option {
	return func(s *settings) {
		s.readTimeout = body
		s.readHeaderTimeout = header
	}
}

// ShutdownTimeout sets how long in-flight requests are given to
// complete once the server is stopped. It defaults to 3 seconds.
func ShutdownTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.shutdownTimeout = timeout
	}
}
