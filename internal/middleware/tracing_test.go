package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func spanAttrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := map[attribute.Key]attribute.Value{}
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestTracing_NamesSpanByRoute(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	var handlerSpan trace.SpanContext
	r := chi.NewRouter()
	r.Use(Tracing(tp))
	r.Get("/api/v1/book/{id}", func(w http.ResponseWriter, req *http.Request) {
		handlerSpan = trace.SpanContextFromContext(req.Context())
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/api/v1/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/book/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/broken", nil))

	ended := recorder.Ended()
	require.Len(t, ended, 2)

	ok := ended[0]
	assert.Equal(t, "GET /api/v1/book/{id}", ok.Name())
	assert.Equal(t, trace.SpanKindServer, ok.SpanKind())
	assert.Equal(t, ok.SpanContext().SpanID(), handlerSpan.SpanID())
	attrs := spanAttrs(ok)
	assert.Equal(t, "/api/v1/book/{id}", attrs["http.route"].AsString())
	assert.Equal(t, "/api/v1/book/42", attrs["url.path"].AsString())
	assert.EqualValues(t, http.StatusOK, attrs["http.response.status_code"].AsInt64())
	assert.Equal(t, codes.Unset, ok.Status().Code)

	failed := ended[1]
	assert.Equal(t, "GET /api/v1/broken", failed.Name())
	assert.Equal(t, codes.Error, failed.Status().Code)
}

func TestTracing_ContinuesIncomingTrace(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	r := chi.NewRouter()
	r.Use(Tracing(tp))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("traceparent", "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01")
	r.ServeHTTP(httptest.NewRecorder(), req)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "0af7651916cd43dd8448eb211c80319c", ended[0].SpanContext().TraceID().String())
	assert.Equal(t, "b7ad6b7169203331", ended[0].Parent().SpanID().String())
}

func TestTracing_UnmatchedRoute(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	r := chi.NewRouter()
	r.Use(Tracing(tp))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "GET unmatched", ended[0].Name())
	assert.EqualValues(t, http.StatusNotFound, spanAttrs(ended[0])["http.response.status_code"].AsInt64())
}
