package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/service"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

type pagination struct {
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

type listResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination pagination `json:"pagination"`
}

// ResourceHandler exposes one ResourceController over HTTP.
type ResourceHandler[T entity.Entity] struct {
	ctrl      *service.ResourceController[T]
	newRecord func() T
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

func NewResourceHandler[T entity.Entity](ctrl *service.ResourceController[T], newRecord func() T, m *metrics.MetricsManager, log *logger.Logger) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		ctrl:      ctrl,
		newRecord: newRecord,
		metrics:   m,
		logger:    log.Named("ResourceHTTPHandler"),
	}
}

func (h *ResourceHandler[T]) recordOp(action string) {
	if h.metrics != nil {
		h.metrics.RecordOp(h.ctrl.Name(), action)
	}
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, errors.Join(domain.ErrBadRequest, err)
	}
	if len(body) > maxBodyBytes {
		return nil, errors.Join(domain.ErrBadRequest, errors.New("request body too large"))
	}
	return bytes.TrimSpace(body), nil
}

func mergeJSON(body []byte, dst any) error {
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errors.Join(domain.ErrBadRequest, err)
	}
	return nil
}

func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	rec := h.newRecord()
	if err := mergeJSON(body, rec); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.ctrl.Create(r.Context(), rec)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.recordOp("created")
	writeJSON(w, http.StatusCreated, created)
}

// queryInt parses a positive query value, falling back to def when the
// value is absent or not a number.
func queryInt(r *http.Request, key string, def int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", service.DefaultPageSize)

	result, err := h.ctrl.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[T]{
		Data: result.Data,
		Pagination: pagination{
			Total: result.Total,
			Pages: result.Pages,
			Page:  result.Page,
			Limit: result.Limit,
		},
	})
}

func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.ctrl.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Update merges the request body onto the stored record; fields absent
// from the body keep their stored values.
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	updated, err := h.ctrl.Update(r.Context(), chi.URLParam(r, "id"), func(rec T) error {
		return mergeJSON(body, rec)
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.recordOp("updated")
	writeJSON(w, http.StatusOK, updated)
}

func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.recordOp("deleted")
	w.WriteHeader(http.StatusNoContent)
}
