// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"net/http"
	"strings"
	"testing"

	"github.com/ChainSafe/chain-overrides/rpc/modules"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodecRequest(t *testing.T, body string) *DotUpCodecRequest {
	t.Helper()

	request, err := http.NewRequest(http.MethodPost, "http://fake_url", strings.NewReader(body))
	require.NoError(t, err)

	codecRequest, ok := NewDotUpCodec().NewRequest(request).(*DotUpCodecRequest)
	require.True(t, ok)
	return codecRequest
}

func TestDotUpCodecRequest_Method(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		method     string
		expected   string
		errWrapped error
	}{
		"namespace_method": {
			method:   "overrides_listMethods",
			expected: "overrides.ListMethods",
		},
		"single_letter_method": {
			method:   "rpc_x",
			expected: "rpc.X",
		},
		"service_method": {
			method:   "overrides.Chains",
			expected: "overrides.Chains",
		},
		"no_namespace": {
			method:     "chains",
			errWrapped: errInvalidMethodFormat,
		},
		"empty_method": {
			method:     "overrides_",
			errWrapped: errInvalidMethodFormat,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			body := `{"jsonrpc":"2.0","method":"` + testCase.method + `","params":[],"id":1}`
			method, err := newCodecRequest(t, body).Method()

			assert.ErrorIs(t, err, testCase.errWrapped)
			assert.Equal(t, testCase.expected, method)
		})
	}
}

func TestDotUpCodecRequest_ReadRequest(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		params   string
		expected modules.ResolveTypeRequest
		errCode  json2.ErrorCode
	}{
		"positional": {
			params:   `["peerplays", "BTreeSet<CollectionId>", 12]`,
			expected: modules.ResolveTypeRequest{Chain: "peerplays", Type: "BTreeSet<CollectionId>", SpecVersion: 12},
		},
		"positional_partial": {
			params:   `["peerplays", "Balance"]`,
			expected: modules.ResolveTypeRequest{Chain: "peerplays", Type: "Balance"},
		},
		"named": {
			params:   `{"chain": "peerplays", "type": "Balance", "specVersion": 3}`,
			expected: modules.ResolveTypeRequest{Chain: "peerplays", Type: "Balance", SpecVersion: 3},
		},
		"wrapped_object": {
			params:   `[{"chain": "peerplays", "type": "Balance"}]`,
			expected: modules.ResolveTypeRequest{Chain: "peerplays", Type: "Balance"},
		},
		"too_many_params": {
			params:  `["peerplays", "Balance", 3, 4]`,
			errCode: json2.E_BAD_PARAMS,
		},
		"wrong_param_type": {
			params:  `["peerplays", "Balance", "three"]`,
			errCode: json2.E_BAD_PARAMS,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			body := `{"jsonrpc":"2.0","method":"overrides_resolveType","params":` + testCase.params + `,"id":1}`
			var request modules.ResolveTypeRequest
			err := newCodecRequest(t, body).ReadRequest(&request)

			if testCase.errCode != 0 {
				var jsonErr *json2.Error
				require.ErrorAs(t, err, &jsonErr)
				assert.Equal(t, testCase.errCode, jsonErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, request)
		})
	}
}

func TestDotUpCodecRequest_ReadRequest_noParams(t *testing.T) {
	t.Parallel()

	var request modules.EmptyRequest
	err := newCodecRequest(t, `{"jsonrpc":"2.0","method":"overrides_chains","id":1}`).ReadRequest(&request)
	require.NoError(t, err)
}
