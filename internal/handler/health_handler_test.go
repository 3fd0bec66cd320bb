package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		checks map[string]Pinger
		status int
		want   map[string]string
	}{
		{
			name:   "all up",
			checks: map[string]Pinger{"mongo": up, "redis": up},
			status: http.StatusOK,
			want:   map[string]string{"mongo": "up", "redis": "up"},
		},
		{
			name:   "redis down",
			checks: map[string]Pinger{"mongo": up, "redis": down},
			status: http.StatusServiceUnavailable,
			want:   map[string]string{"mongo": "up", "redis": "down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.checks, time.Second, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			require.Equal(t, tt.status, rec.Code)
			var body healthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body.Checks)
		})
	}
}
