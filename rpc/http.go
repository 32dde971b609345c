// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ChainSafe/chain-overrides/internal/httpserver"
	"github.com/ChainSafe/chain-overrides/internal/log"
	"github.com/ChainSafe/chain-overrides/rpc/modules"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/slices"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "rpc"))

// SetLogLevel sets the log level of the rpc package
func SetLogLevel(level log.Level) {
	logger.PatchLevel(level)
}

var errServerExited = errors.New("rpc server exited unexpectedly")

const (
	shutdownTimeout = 5 * time.Second
	stopTimeout     = 2 * shutdownTimeout
)

// HTTPServer gateway for RPC server
type HTTPServer struct {
	rpcServer    *rpc.Server // Actual RPC call handler
	serverConfig *HTTPServerConfig

	httpServer *httpserver.Server
	wsServer   *httpserver.Server
	cancel     context.CancelFunc
	done       []chan error

	wsMutex sync.Mutex
	wsConns []*WSConn
}

// HTTPServerConfig configures the HTTPServer
type HTTPServerConfig struct {
	RegistryAPI modules.RegistryAPI
	RPCAPI      modules.RPCAPI
	RPCExternal bool
	Host        string
	RPCPort     uint32
	WS          bool
	WSExternal  bool
	WSPort      uint32
	Modules     []string
}

// NewHTTPServer creates a new http server and registers an associated rpc server
func NewHTTPServer(cfg *HTTPServerConfig) *HTTPServer {
	if cfg.RPCAPI == nil {
		cfg.RPCAPI = NewService()
	}

	server := &HTTPServer{
		rpcServer:    rpc.NewServer(),
		serverConfig: cfg,
	}

	mods := cfg.Modules
	if !slices.Contains(mods, "rpc") {
		mods = append(slices.Clone(mods), "rpc")
	}
	server.RegisterModules(mods)
	return server
}

// RegisterModules registers the RPC services associated with the given API modules
func (h *HTTPServer) RegisterModules(mods []string) {
	for _, mod := range mods {
		logger.Debugf("enabling rpc module %s", mod)
		var srvc interface{}
		switch mod {
		case "overrides":
			srvc = modules.NewOverridesModule(h.serverConfig.RegistryAPI)
		case "rpc":
			srvc = modules.NewRPCModule(h.serverConfig.RPCAPI)
		default:
			logger.Warnf("unrecognised rpc module %s", mod)
			continue
		}

		err := h.rpcServer.RegisterService(srvc, mod)
		if err != nil {
			logger.Warnf("failed to register module %s: %s", mod, err)
			continue
		}

		h.serverConfig.RPCAPI.BuildMethodNames(srvc, mod)
	}
}

// Start registers the rpc handler function and starts the rpc http and websocket server
func (h *HTTPServer) Start() error {
	// the DotUpCodec maps methods sent as namespace_methodName, instead of the
	// gorilla default of Service.Method
	h.rpcServer.RegisterCodec(NewDotUpCodec(), "application/json")
	h.rpcServer.RegisterCodec(NewDotUpCodec(), "application/json;charset=UTF-8")

	validate := validator.New()
	h.rpcServer.RegisterValidateRequestFunc(rpcValidator(h.serverConfig, validate))

	r := mux.NewRouter()
	r.Handle("/", h.rpcServer).Methods(http.MethodPost)

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel

	address := net.JoinHostPort(h.serverConfig.Host, strconv.FormatUint(uint64(h.serverConfig.RPCPort), 10))
	h.httpServer = httpserver.New("rpc", address, r, logger,
		httpserver.ShutdownTimeout(shutdownTimeout))
	if err := h.run(ctx, h.httpServer); err != nil {
		cancel()
		return fmt.Errorf("starting http server: %w", err)
	}

	if !h.serverConfig.WS {
		return nil
	}

	ws := mux.NewRouter()
	ws.Handle("/", h)
	address = net.JoinHostPort(h.serverConfig.Host, strconv.FormatUint(uint64(h.serverConfig.WSPort), 10))
	h.wsServer = httpserver.New("websocket", address, ws, logger,
		httpserver.ShutdownTimeout(shutdownTimeout))
	if err := h.run(ctx, h.wsServer); err != nil {
		_ = h.Stop()
		return fmt.Errorf("starting websocket server: %w", err)
	}

	return nil
}

func (h *HTTPServer) run(ctx context.Context, server *httpserver.Server) error {
	ready := make(chan struct{})
	done := make(chan error, 1)

	go server.Run(ctx, ready, done)

	select {
	case <-ready:
		h.done = append(h.done, done)
		return nil
	case err := <-done:
		if err != nil {
			return err
		}
		return errServerExited
	}
}

// HTTPAddress returns the listening address of the http server
func (h *HTTPServer) HTTPAddress() string {
	return h.httpServer.Address()
}

// WSAddress returns the listening address of the websocket server
func (h *HTTPServer) WSAddress() string {
	return h.wsServer.Address()
}

// Stop closes the websocket connections and stops the servers
func (h *HTTPServer) Stop() error {
	h.wsMutex.Lock()
	for _, conn := range h.wsConns {
		err := conn.Close()
		if err != nil {
			logger.Errorf("error closing websocket connection: %s", err)
		}
	}
	h.wsConns = nil
	h.wsMutex.Unlock()

	if h.cancel == nil {
		return nil
	}
	h.cancel()

	timer := time.NewTimer(stopTimeout)
	defer timer.Stop()

	var errs []error
	for _, done := range h.done {
		select {
		case err := <-done:
			if err != nil {
				errs = append(errs, err)
			}
		case <-timer.C:
			return fmt.Errorf("rpc server exit timeout")
		}
	}
	h.done = nil

	return errors.Join(errs...)
}

// ServeHTTP implemented to handle WebSocket connections
func (h *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upg := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if h.serverConfig.WSExternal {
				return true
			}

			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				logger.Errorf("unable to parse IP: %s", err)
				return false
			}

			if LocalhostFilter().Allowed(ip) {
				return true
			}

			logger.Debugf("external websocket request refused from %s", ip)
			return false
		},
	}

	ws, err := upg.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("websocket upgrade failed: %s", err)
		return
	}

	wsc := NewWSConn(ws, fmt.Sprintf("http://%s/", h.httpServer.Address()))
	h.wsMutex.Lock()
	h.wsConns = append(h.wsConns, wsc)
	h.wsMutex.Unlock()

	go func() {
		wsc.HandleConn()
		h.removeConn(wsc)
	}()
}

func (h *HTTPServer) removeConn(wsc *WSConn) {
	h.wsMutex.Lock()
	defer h.wsMutex.Unlock()

	i := slices.Index(h.wsConns, wsc)
	if i == -1 {
		return
	}
	h.wsConns = slices.Delete(h.wsConns, i, i+1)
	_ = wsc.Close()
}

// NewWSConn to create new WebSocket Connection struct
func NewWSConn(conn *websocket.Conn, rpcHost string) *WSConn {
	return &WSConn{
		Wsconn:  conn,
		RPCHost: rpcHost,
		HTTP: &http.Client{
			Timeout: time.Second * 30,
		},
	}
}
