package handler

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/adapter/memory"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/service"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShelf() *entity.Shelf { return &entity.Shelf{} }

func newShelfRouter(t *testing.T, gated bool) (http.Handler, *metrics.MetricsManager) {
	t.Helper()
	store := memory.NewEntityStore("Shelf_ID", newShelf)

	var gate service.Gate[*entity.Shelf]
	if gated {
		gate = validation.For[*entity.Shelf]()
	}
	ctrl := service.NewResourceController("shelf", store, gate, nil, time.Second, logger.NewNop())
	m := metrics.NewMetricsManager("campus-service")
	h := NewResourceHandler(ctrl, newShelf, m, logger.NewNop())

	r := chi.NewRouter()
	r.Route("/shelf", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r, m
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const validShelf = `{"Shelf_ID":1,"Shelf_Name":"A1","Category_ID":3,"Location":"Floor 2"}`

func TestResourceHandler_CRUD(t *testing.T) {
	h, m := newShelfRouter(t, true)

	rec := do(t, h, http.MethodPost, "/shelf/", validShelf)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created entity.Shelf
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "A1", created.ShelfName)

	rec = do(t, h, http.MethodGet, "/shelf/"+created.ID.Hex(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/shelf/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPut, "/shelf/1", `{"Location":"Basement"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated entity.Shelf
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Basement", updated.Location)
	assert.Equal(t, "A1", updated.ShelfName)
	assert.Equal(t, created.ID, updated.ID)

	rec = do(t, h, http.MethodDelete, "/shelf/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/shelf/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordOpsTotal.WithLabelValues("shelf", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordOpsTotal.WithLabelValues("shelf", "deleted")))
}

func TestResourceHandler_ValidationErrors(t *testing.T) {
	h, _ := newShelfRouter(t, true)

	rec := do(t, h, http.MethodPost, "/shelf/", `{"Shelf_Name":"A1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Validation error", body.Message)
	fields := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"Shelf_ID", "Category_ID", "Location"}, fields)
}

func TestResourceHandler_UngatedAcceptsPartialRecords(t *testing.T) {
	h, _ := newShelfRouter(t, false)

	rec := do(t, h, http.MethodPost, "/shelf/", `{"Shelf_Name":"A1"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestResourceHandler_BadJSON(t *testing.T) {
	h, _ := newShelfRouter(t, false)

	rec := do(t, h, http.MethodPost, "/shelf/", `{"Shelf_Name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/shelf/", validShelf)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPut, "/shelf/1", `{"Shelf_ID":"one"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResourceHandler_DuplicateKey(t *testing.T) {
	h, _ := newShelfRouter(t, false)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/shelf/", validShelf).Code)
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, "/shelf/", validShelf).Code)
}

func TestResourceHandler_ListPagination(t *testing.T) {
	h, _ := newShelfRouter(t, false)
	for i := 1; i <= 25; i++ {
		body := fmt.Sprintf(`{"Shelf_ID":%d,"Shelf_Name":"S%d"}`, i, i)
		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/shelf/", body).Code)
	}

	tests := []struct {
		query                    string
		wantPage, wantLimit      int64
		wantPages, wantDataCount int
	}{
		{query: "", wantPage: 1, wantLimit: 10, wantPages: 3, wantDataCount: 10},
		{query: "?page=3", wantPage: 3, wantLimit: 10, wantPages: 3, wantDataCount: 5},
		{query: "?page=0&limit=1000", wantPage: 1, wantLimit: 100, wantPages: 1, wantDataCount: 25},
		{query: "?page=abc&limit=xyz", wantPage: 1, wantLimit: 10, wantPages: 3, wantDataCount: 10},
		{query: "?page=2&limit=-4", wantPage: 2, wantLimit: 1, wantPages: 25, wantDataCount: 1},
		{query: "?page=9223372036854775807&limit=100", wantPage: math.MaxInt64 / 100, wantLimit: 100, wantPages: 1, wantDataCount: 0},
		{query: "?page=100000000000000000&limit=100", wantPage: math.MaxInt64 / 100, wantLimit: 100, wantPages: 1, wantDataCount: 0},
		{query: "?page=9223372036854775807", wantPage: math.MaxInt64 / 10, wantLimit: 10, wantPages: 3, wantDataCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/shelf/"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Data       []entity.Shelf `json:"data"`
				Pagination pagination     `json:"pagination"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Len(t, body.Data, tt.wantDataCount)
			assert.Equal(t, int64(25), body.Pagination.Total)
			assert.Equal(t, tt.wantPage, body.Pagination.Page)
			assert.Equal(t, tt.wantLimit, body.Pagination.Limit)
			assert.Equal(t, int64(tt.wantPages), body.Pagination.Pages)
		})
	}
}

func TestResourceHandler_EmptyListIsArray(t *testing.T) {
	h, _ := newShelfRouter(t, false)

	rec := do(t, h, http.MethodGet, "/shelf/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}
