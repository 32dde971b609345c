// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	// InvalidRequestCode error code returned for invalid request parameters, value derived from Substrate node output
	InvalidRequestCode = -32600
	// InvalidRequestMessage error message for invalid request parameters
	InvalidRequestMessage = "Invalid request"
	// InternalErrorCode error code returned when the http backend fails
	InternalErrorCode = -32603
	// InternalErrorMessage error message for http backend failures
	InternalErrorMessage = "Internal error"
)

var errCannotReadFromWebsocket = errors.New("cannot read message from websocket")

type websocketMessage struct {
	ID     float64     `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

type httpclient interface {
	Do(*http.Request) (*http.Response, error)
}

// ErrorResponseJSON json for error responses
type ErrorResponseJSON struct {
	Jsonrpc string            `json:"jsonrpc"`
	Error   *ErrorMessageJSON `json:"error"`
	ID      float64           `json:"id"`
}

// ErrorMessageJSON json for error messages
type ErrorMessageJSON struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WSConn is a websocket connection forwarding its rpc calls
// to the http rpc handler
type WSConn struct {
	Wsconn  *websocket.Conn
	mu      sync.Mutex
	RPCHost string
	HTTP    httpclient
}

func (c *WSConn) readWebsocketMessage() (data []byte, err error) {
	_, data, err = c.Wsconn.ReadMessage()
	if err != nil {
		logger.Debugf("websocket failed to read message: %s", err)
		return nil, errCannotReadFromWebsocket
	}

	logger.Tracef("websocket message received: %s", string(data))
	return data, nil
}

// HandleConn handles messages received on the websocket connection
// until it is closed
func (c *WSConn) HandleConn() {
	for {
		data, err := c.readWebsocketMessage()
		if err != nil {
			return
		}

		msg := new(websocketMessage)
		err = json.Unmarshal(data, msg)
		if err != nil {
			logger.Debugf("failed to unmarshal websocket request message: %s", err)
			c.safeSendError(0, InvalidRequestCode, InvalidRequestMessage)
			continue
		}

		if msg.Method == "" {
			c.safeSendError(msg.ID, InvalidRequestCode, InvalidRequestMessage)
			continue
		}

		logger.Debugf("ws method %s called with params %v", msg.Method, msg.Params)
		c.executeRPCCall(msg.ID, data)
	}
}

func (c *WSConn) executeRPCCall(id float64, data []byte) {
	request, err := c.prepareRequest(data)
	if err != nil {
		logger.Warnf("failed while preparing the request: %s", err)
		c.safeSendError(id, InternalErrorCode, InternalErrorMessage)
		return
	}

	var wsresponse interface{}
	err = c.executeRequest(request, &wsresponse)
	if err != nil {
		logger.Warnf("problems while executing the request: %s", err)
		c.safeSendError(id, InternalErrorCode, InternalErrorMessage)
		return
	}

	c.safeSend(wsresponse)
}

func (c *WSConn) safeSend(msg interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.Wsconn.WriteJSON(msg)
	if err != nil {
		logger.Debugf("error sending websocket message: %s", err)
	}
}

func (c *WSConn) safeSendError(reqID float64, errorCode int, message string) {
	c.safeSend(&ErrorResponseJSON{
		Jsonrpc: "2.0",
		Error: &ErrorMessageJSON{
			Code:    errorCode,
			Message: message,
		},
		ID: reqID,
	})
}

func (c *WSConn) prepareRequest(b []byte) (*http.Request, error) {
	req, err := http.NewRequest(http.MethodPost, c.RPCHost, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("creating request to rpc service: %w", err)
	}

	req.Header.Set("Content-Type", "application/json;")
	return req, nil
}

func (c *WSConn) executeRequest(r *http.Request, d interface{}) error {
	res, err := c.HTTP.Do(r)
	if err != nil {
		return fmt.Errorf("calling rpc: %w", err)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		_ = res.Body.Close()
		return fmt.Errorf("reading response body: %w", err)
	}

	err = res.Body.Close()
	if err != nil {
		return fmt.Errorf("closing response body: %w", err)
	}

	err = json.Unmarshal(body, d)
	if err != nil {
		return fmt.Errorf("decoding rpc response: %w", err)
	}

	return nil
}

// Close closes the websocket connection
func (c *WSConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Wsconn.Close()
}
