// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
)

// Server is an HTTP server implementation, which uses
// the HTTP handler provided.
type Server struct {
	name         string
	address      string
	addressMutex sync.RWMutex
	addressSet   chan struct{}
	handler      http.Handler
	logger       Logger
	settings     settings
}

// New creates a new HTTP server with a name, listening on
// the address specified and using the HTTP handler provided.
// Use ":0" as address to listen on a random available port.
func New(name, address string, handler http.Handler,
	logger Logger, options ...Option) *Server {
	return &Server{
		name:       name,
		address:    address,
		addressSet: make(chan struct{}),
		handler:    handler,
		logger:     logger,
		settings:   newSettings(options),
	}
}

// Address blocks until the server is listening and returns
// its listening address.
func (s *Server) Address() (address string) {
	<-s.addressSet
	s.addressMutex.RLock()
	defer s.addressMutex.RUnlock()
	return s.address
}

// Run runs the HTTP server until ctx is canceled.
// The ready channel is closed once the server listens,
// and the done channel receives a nil error once the server
// has shut down, or the error that made it fail.
func (s *Server) Run(ctx context.Context, ready chan<- struct{}, done chan<- error) {
	server := http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadTimeout:       s.settings.readTimeout,
		ReadHeaderTimeout: s.settings.readHeaderTimeout,
	}

	crashed := make(chan struct{})
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		select {
		case <-ctx.Done():
		case <-crashed:
			return
		}

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), s.settings.shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(s.name + " http server failed shutting down: " + err.Error())
		}
	}()

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		close(crashed)
		<-shutdownDone
		done <- err
		return
	}

	s.addressMutex.Lock()
	s.address = listener.Addr().String()
	s.addressMutex.Unlock()
	close(s.addressSet)

	close(ready)

	s.logger.Info(s.name + " http server listening on " + listener.Addr().String())
	err = server.Serve(listener)

	if !errors.Is(err, http.ErrServerClosed) {
		close(crashed)
	} else {
		err = nil
	}

	<-shutdownDone
	done <- err
}
