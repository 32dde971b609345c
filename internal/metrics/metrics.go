// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ChainSafe/chain-overrides/internal/httpserver"
	"github.com/ChainSafe/chain-overrides/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "metrics"))

// SetLogLevel sets the log level of the metrics package
func SetLogLevel(level log.Level) {
	logger.PatchLevel(level)
}

var errServerExited = errors.New("metrics server exited unexpectedly")

// Server is a metrics http server
type Server struct {
	cancel context.CancelFunc
	server *httpserver.Server
	done   chan error
}

// NewServer is a constructor for a metrics server serving
// the metrics of the gatherer on /metrics.
func NewServer(address string, gatherer prometheus.Gatherer) (s *Server) {
	m := http.NewServeMux()
	m.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return &Server{
		server: httpserver.New("metrics", address, m, logger,
			httpserver.ShutdownTimeout(time.Second)),
	}
}

// Start will start a dedicated metrics server.
func (s *Server) Start() (err error) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	ready := make(chan struct{})
	s.done = make(chan error)

	go s.server.Run(ctx, ready, s.done)

	select {
	case <-ready:
		logger.Infof("metrics available at http://%s/metrics", s.server.Address())
		return nil
	case err := <-s.done:
		close(s.done)
		cancel()
		if err != nil {
			return err
		}
		return errServerExited
	}
}

// Address returns the listening address of a started server.
func (s *Server) Address() string {
	return s.server.Address()
}

// Stop will stop the metrics server
func (s *Server) Stop() (err error) {
	s.cancel()
	timer := time.NewTimer(5 * time.Second)
	defer timer.Stop()

	select {
	case err := <-s.done:
		close(s.done)
		return err
	case <-timer.C:
		return fmt.Errorf("metrics server exit timeout")
	}
}
