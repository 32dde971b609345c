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
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
)

var (
	errInvalidMethodFormat = errors.New("invalid rpc method format")
	errTooManyParams       = errors.New("too many params")
)

// DotUpCodec for overwriting default gorilla RPC codec
type DotUpCodec struct {
	codec *json2.Codec
}

// NewDotUpCodec returns DotUpCodec
func NewDotUpCodec() *DotUpCodec {
	return &DotUpCodec{
		codec: json2.NewCodec(),
	}
}

// NewRequest is overwrite of json2.NewRequest to replace CodecRequest
func (c *DotUpCodec) NewRequest(r *http.Request) rpc.CodecRequest {
	outerCR := &DotUpCodecRequest{}

	body, err := io.ReadAll(r.Body)
	if err == nil {
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))
		var envelope struct {
			Params json.RawMessage `json:"params"`
		}
		if json.Unmarshal(body, &envelope) == nil {
			outerCR.params = bytes.TrimSpace(envelope.Params)
		}
	}

	outerCR.CodecRequest = c.codec.NewRequest(r).(*json2.CodecRequest)
	return outerCR
}

// DotUpCodecRequest decodes and encodes a single request. It maps
// namespace_methodName calls to the namespace.MethodName services and
// accepts positional params.
type DotUpCodecRequest struct {
	*json2.CodecRequest
	params json.RawMessage
}

// Method returns the decoded method as a string of the form "Service.Method"
func (c *DotUpCodecRequest) Method() (string, error) {
	m, err := c.CodecRequest.Method()
	if err != nil {
		return "", err
	}

	if strings.Contains(m, ".") {
		return m, nil
	}

	service, method, ok := strings.Cut(m, "_")
	if !ok || service == "" || method == "" {
		return "", fmt.Errorf("%w: %s, should be 'namespace_methodName'", errInvalidMethodFormat, m)
	}

	r, n := utf8.DecodeRuneInString(method)
	return service + "." + string(unicode.ToUpper(r)) + method[n:], nil
}

// ReadRequest fills the request object for the RPC method. Positional
// params fill the exported fields of the request struct in order.
func (c *DotUpCodecRequest) ReadRequest(args interface{}) error {
	if !c.positional() {
		return c.CodecRequest.ReadRequest(args)
	}

	err := decodePositional(c.params, args)
	if err != nil {
		return &json2.Error{
			Code:    json2.E_BAD_PARAMS,
			Message: err.Error(),
		}
	}
	return nil
}

// positional returns true for params given as an array, except for the
// single object array json2 already decodes.
func (c *DotUpCodecRequest) positional() bool {
	if len(c.params) == 0 || c.params[0] != '[' {
		return false
	}

	var values []json.RawMessage
	if err := json.Unmarshal(c.params, &values); err != nil {
		return false
	}
	if len(values) == 1 {
		value := bytes.TrimSpace(values[0])
		return len(value) == 0 || value[0] != '{'
	}
	return true
}

func decodePositional(params json.RawMessage, args interface{}) error {
	var values []json.RawMessage
	err := json.Unmarshal(params, &values)
	if err != nil {
		return err
	}

	value := reflect.ValueOf(args)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		if len(values) == 0 {
			return nil
		}
		return json.Unmarshal(values[0], args)
	}

	request := value.Elem()
	var fields []int
	for i := 0; i < request.NumField(); i++ {
		if request.Type().Field(i).IsExported() {
			fields = append(fields, i)
		}
	}

	if len(values) > len(fields) {
		return fmt.Errorf("%w: got %d, expected at most %d", errTooManyParams, len(values), len(fields))
	}

	for i, raw := range values {
		field := request.Field(fields[i]).Addr().Interface()
		err = json.Unmarshal(raw, field)
		if err != nil {
			return fmt.Errorf("decoding param %d: %w", i, err)
		}
	}
	return nil
}
