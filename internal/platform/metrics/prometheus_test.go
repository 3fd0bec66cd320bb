package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsManager_Counters(t *testing.T) {
	m := NewMetricsManager("campus-service")

	m.ObserveRequest(http.MethodGet, "/api/v1/book", 200, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/book", 201, 10*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/login", 401, time.Millisecond)
	m.AuthEvent("login", nil)
	m.AuthEvent("login", errors.New("bad password"))
	m.OTPIssuedTotal.Inc()
	m.RecordOp("book", "created")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/book", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/login", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthEventsTotal.WithLabelValues("login", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OTPIssuedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordOpsTotal.WithLabelValues("book", "created")))
}

func TestMetricsManager_Handler(t *testing.T) {
	m := NewMetricsManager("campus-service")
	m.RecordOp("shelf", "deleted")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `campus_service_record_operations_total{action="deleted",entity="shelf"} 1`)
}

func TestNewMetricsServer(t *testing.T) {
	m := NewMetricsManager("campus-service")

	assert.Nil(t, NewMetricsServer("", logger.NewNop(), m))

	srv := NewMetricsServer("9100", logger.NewNop(), m)
	require.NotNil(t, srv)
	assert.Equal(t, ":9100", srv.Addr)
}
