// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aderrors "github.com/NVIDIA/asset-discovery/pkg/errors"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code          aderrors.ErrorCode
		wantStatus    int
		wantRetryable bool
	}{
		{aderrors.ErrCodeInvalidRequest, http.StatusBadRequest, false},
		{aderrors.ErrCodeUnauthorized, http.StatusUnauthorized, false},
		{aderrors.ErrCodeNotFound, http.StatusNotFound, false},
		{aderrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed, false},
		{aderrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests, true},
		{aderrors.ErrCodeUnavailable, http.StatusServiceUnavailable, true},
		{aderrors.ErrCodeTimeout, http.StatusGatewayTimeout, true},
		{aderrors.ErrCodeCollectorFailed, http.StatusBadGateway, true},
		{aderrors.ErrCodeBulkRejected, http.StatusBadGateway, false},
		{aderrors.ErrCodeInternal, http.StatusInternalServerError, true},
		{aderrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, HTTPStatusFromCode(tt.code))
			assert.Equal(t, tt.wantRetryable, retryableFromCode(tt.code))
		})
	}
}

func TestMergeDetails(t *testing.T) {
	assert.Nil(t, mergeDetails(nil, map[string]any{}))

	got := mergeDetails(
		map[string]any{"collector": "pods", "runID": "old"},
		map[string]any{"runID": "run-2"},
	)
	assert.Equal(t, map[string]any{"collector": "pods", "runID": "run-2"}, got)
}

// TestCollectErrorResponses covers every error path of POST /v1/collect.
func TestCollectErrorResponses(t *testing.T) {
	storeDown := aderrors.WrapWithContext(aderrors.ErrCodeUnavailable, "inventory store unreachable",
		fmt.Errorf("dial tcp: connection refused"), map[string]any{"store": "output"})

	tests := []struct {
		name          string
		opts          []Option
		wantStatus    int
		wantCode      aderrors.ErrorCode
		wantRetryable bool
		wantDetails   map[string]any
	}{
		{
			name:       "collection disabled",
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   aderrors.ErrCodeUnavailable,
		},
		{
			name:          "follower replica",
			opts:          []Option{WithTrigger(&fakeTrigger{report: testReport()}), WithLeader(fakeLeader{})},
			wantStatus:    http.StatusServiceUnavailable,
			wantCode:      aderrors.ErrCodeUnavailable,
			wantRetryable: true,
			wantDetails:   map[string]any{"identity": "assetd-0"},
		},
		{
			name:          "structured trigger error",
			opts:          []Option{WithTrigger(&fakeTrigger{err: storeDown})},
			wantStatus:    http.StatusServiceUnavailable,
			wantCode:      aderrors.ErrCodeUnavailable,
			wantRetryable: true,
			wantDetails:   map[string]any{"store": "output", "error": "dial tcp: connection refused"},
		},
		{
			name:          "bulk rejection",
			opts:          []Option{WithTrigger(&fakeTrigger{err: aderrors.New(aderrors.ErrCodeBulkRejected, "2 of 5 assets rejected")})},
			wantStatus:    http.StatusBadGateway,
			wantCode:      aderrors.ErrCodeBulkRejected,
			wantRetryable: false,
		},
		{
			name:          "plain trigger error",
			opts:          []Option{WithTrigger(&fakeTrigger{err: fmt.Errorf("boom")})},
			wantStatus:    http.StatusInternalServerError,
			wantCode:      aderrors.ErrCodeInternal,
			wantRetryable: true,
			wantDetails:   map[string]any{"error": "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(New(tt.opts...), http.MethodPost, "/v1/collect")
			require.Equal(t, tt.wantStatus, w.Code)

			resp := decodeError(t, w)
			assert.Equal(t, string(tt.wantCode), resp.Code)
			assert.Equal(t, tt.wantRetryable, resp.Retryable)
			assert.NotEmpty(t, resp.RequestID)
			assert.Equal(t, w.Header().Get("X-Request-Id"), resp.RequestID)
			if tt.wantDetails == nil {
				assert.Empty(t, resp.Details)
			} else {
				assert.Equal(t, tt.wantDetails, resp.Details)
			}
		})
	}
}

func TestWriteError_UsesContextRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/collect/last", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusNotFound, aderrors.ErrCodeNotFound, "no collection has completed yet", true, nil)

	resp := decodeError(t, w)
	assert.Equal(t, "req-123", resp.RequestID)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestWriteError_GeneratesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, httptest.NewRequest(http.MethodPost, "/v1/collect", nil),
		http.StatusServiceUnavailable, aderrors.ErrCodeUnavailable, "not leader", true, nil)

	assert.NotEmpty(t, decodeError(t, w).RequestID)
}
