package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/medsync/pkg/api"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		pingErr        error
		name           string
		expectedStatus string
		expectedDB     string
		expectedCode   int
	}{
		{
			name:           "database available",
			expectedCode:   http.StatusOK,
			expectedStatus: "ok",
			expectedDB:     "ok",
		},
		{
			name:           "database unavailable",
			pingErr:        errors.New("connection refused"),
			expectedCode:   http.StatusServiceUnavailable,
			expectedStatus: "degraded",
			expectedDB:     "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(setupTestLogger(), pingerFunc(func(ctx context.Context) error {
				return tt.pingErr
			}), "1.2.3")

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()

			handler.Health(w, req)

			resp := w.Result()
			defer func() {
				err := resp.Body.Close()
				assert.NoError(t, err)
			}()

			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			var healthResp api.HealthResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&healthResp))

			assert.Equal(t, tt.expectedStatus, healthResp.Status)
			assert.Equal(t, tt.expectedDB, healthResp.Database)
			assert.Equal(t, "1.2.3", healthResp.Version)
		})
	}
}
