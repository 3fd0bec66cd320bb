package service

import (
	"context"
	"math"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	DefaultPageSize int64 = 10
	MaxPageSize     int64 = 100
)

// Gate checks a record before it is written. A nil gate accepts everything.
type Gate[T any] func(T) error

type Page[T any] struct {
	Data  []T
	Total int64
	Pages int64
	Page  int64
	Limit int64
}

// ClampPage forces pageSize into [1, MaxPageSize] and page into the range
// whose offset (page-1)*pageSize still fits in an int64.
func ClampPage(page, pageSize int64) (int64, int64) {
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	if maxPage := math.MaxInt64 / pageSize; page > maxPage {
		page = maxPage
	}
	return page, pageSize
}

// ResourceController implements CRUD for one campus resource. Everything
// entity-specific comes in through the store and the gate.
type ResourceController[T entity.Entity] struct {
	name    string
	store   repository.EntityStore[T]
	gate    Gate[T]
	events  EventPublisher
	timeout time.Duration
	logger  *logger.Logger
	now     func() time.Time
}

func NewResourceController[T entity.Entity](name string, store repository.EntityStore[T], gate Gate[T], events EventPublisher, timeout time.Duration, log *logger.Logger) *ResourceController[T] {
	return &ResourceController[T]{
		name:    name,
		store:   store,
		gate:    gate,
		events:  events,
		timeout: timeout,
		logger:  log.Named("ResourceController").With(zap.String("entity", name)),
		now:     time.Now,
	}
}

func (c *ResourceController[T]) Name() string { return c.name }

// Validates reports whether writes go through a gate.
func (c *ResourceController[T]) Validates() bool { return c.gate != nil }

func (c *ResourceController[T]) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, "ResourceController."+op)
	span.SetAttributes(attribute.String("entity", c.name))
	return ctx, span
}

// stamp matches the millisecond precision records have once stored.
func (c *ResourceController[T]) stamp() time.Time {
	return c.now().UTC().Truncate(time.Millisecond)
}

func (c *ResourceController[T]) check(rec T) error {
	if c.gate == nil {
		return nil
	}
	return c.gate(rec)
}

func (c *ResourceController[T]) Create(ctx context.Context, rec T) (T, error) {
	ctx, span := c.startSpan(ctx, "Create")
	defer span.End()

	var zero T
	if err := c.check(rec); err != nil {
		return zero, err
	}

	base := rec.GetBase()
	base.CreatedAt = time.Time{}
	base.Stamp(c.stamp())

	storeCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.store.Insert(storeCtx, rec); err != nil {
		return zero, err
	}

	id := base.ID.Hex()
	c.logger.Info("Record created", zap.String("id", id))
	c.publish(ctx, "created", id)
	return rec, nil
}

func (c *ResourceController[T]) List(ctx context.Context, page, pageSize int64) (*Page[T], error) {
	ctx, span := c.startSpan(ctx, "List")
	defer span.End()

	page, pageSize = ClampPage(page, pageSize)

	storeCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()
	items, total, err := c.store.List(storeCtx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	return &Page[T]{
		Data:  items,
		Total: total,
		Pages: (total + pageSize - 1) / pageSize,
		Page:  page,
		Limit: pageSize,
	}, nil
}

func (c *ResourceController[T]) GetByID(ctx context.Context, id string) (T, error) {
	ctx, span := c.startSpan(ctx, "GetByID")
	defer span.End()

	storeCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()
	return c.store.FindByID(storeCtx, id)
}

// Update loads the record, lets apply merge the partial payload onto it,
// and writes the merged record back. Identity and creation time cannot be
// changed by apply.
func (c *ResourceController[T]) Update(ctx context.Context, id string, apply func(T) error) (T, error) {
	ctx, span := c.startSpan(ctx, "Update")
	defer span.End()

	var zero T
	storeCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	rec, err := c.store.FindByID(storeCtx, id)
	if err != nil {
		return zero, err
	}

	original := *rec.GetBase()
	if err := apply(rec); err != nil {
		return zero, err
	}
	base := rec.GetBase()
	base.ID = original.ID
	base.CreatedAt = original.CreatedAt
	base.Stamp(c.stamp())

	if err := c.check(rec); err != nil {
		return zero, err
	}
	if err := c.store.Replace(storeCtx, rec); err != nil {
		return zero, err
	}

	c.logger.Info("Record updated", zap.String("id", base.ID.Hex()))
	c.publish(ctx, "updated", base.ID.Hex())
	return rec, nil
}

func (c *ResourceController[T]) Remove(ctx context.Context, id string) error {
	ctx, span := c.startSpan(ctx, "Remove")
	defer span.End()

	storeCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()
	oid, err := c.store.Delete(storeCtx, id)
	if err != nil {
		return err
	}

	c.logger.Info("Record deleted", zap.String("id", oid.Hex()))
	c.publish(ctx, "deleted", oid.Hex())
	return nil
}

func (c *ResourceController[T]) publish(ctx context.Context, action, id string) {
	if c.events == nil {
		return
	}
	event := domain.EntityEvent{Entity: c.name, ID: id, Action: action, OccurredAt: c.now().UTC()}
	if err := c.events.Publish(ctx, domain.EntitySubject(c.name, action), event); err != nil {
		c.logger.Warn("Failed to publish entity event", zap.String("action", action), zap.Error(err))
	}
}
