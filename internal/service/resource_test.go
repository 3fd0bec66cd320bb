package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/adapter/memory"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/repository/repotest"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryController(gate Gate[*entity.Category]) (*ResourceController[*entity.Category], *memory.EntityStore[*entity.Category], *repotest.Publisher) {
	store := memory.NewEntityStore("Category_ID", func() *entity.Category { return &entity.Category{} })
	events := &repotest.Publisher{}
	return NewResourceController("category", store, gate, events, time.Second, logger.NewNop()), store, events
}

func category(id int64, name string) *entity.Category {
	return &entity.Category{CategoryID: id, CategoryName: name}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, size         int64
		wantPage, wantSize int64
	}{
		{1, 10, 1, 10},
		{0, 0, 1, 1},
		{-3, 5, 1, 5},
		{2, 1000, 2, 100},
		{4, 100, 4, 100},
		{math.MaxInt64, 100, math.MaxInt64 / 100, 100},
		{math.MaxInt64, 1, math.MaxInt64, 1},
		{100_000_000_000_000_000, 100, math.MaxInt64 / 100, 100},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.page, tt.size), func(t *testing.T) {
			page, size := ClampPage(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestResourceController_CreateThenGet(t *testing.T) {
	ctrl, _, events := newCategoryController(nil)
	ctx := context.Background()

	created, err := ctrl.Create(ctx, category(7, "Fiction"))
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.False(t, created.CreatedAt.IsZero())

	byObjectID, err := ctrl.GetByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created, byObjectID)

	byKey, err := ctrl.GetByID(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, created, byKey)

	assert.Equal(t, []string{"campus.category.created"}, events.Published())
}

func TestResourceController_CreateDuplicateKey(t *testing.T) {
	ctrl, store, _ := newCategoryController(nil)
	ctx := context.Background()

	_, err := ctrl.Create(ctx, category(1, "A"))
	require.NoError(t, err)
	_, err = ctrl.Create(ctx, category(1, "B"))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, store.Len())
}

func TestResourceController_CreateGated(t *testing.T) {
	ctrl, store, events := newCategoryController(validation.For[*entity.Category]())

	_, err := ctrl.Create(context.Background(), &entity.Category{})
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Fields, 2)
	assert.Zero(t, store.Len())
	assert.Empty(t, events.Published())
	assert.True(t, ctrl.Validates())
}

func TestResourceController_CreateUngatedAcceptsAnything(t *testing.T) {
	ctrl, _, _ := newCategoryController(nil)

	created, err := ctrl.Create(context.Background(), &entity.Category{})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.False(t, ctrl.Validates())
}

func TestResourceController_ListPaging(t *testing.T) {
	ctrl, _, _ := newCategoryController(nil)
	ctx := context.Background()
	for i := 1; i <= 25; i++ {
		_, err := ctrl.Create(ctx, category(int64(i), fmt.Sprintf("c%d", i)))
		require.NoError(t, err)
	}

	page, err := ctrl.List(ctx, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Page)
	assert.Equal(t, int64(100), page.Limit)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, int64(1), page.Pages)
	assert.Len(t, page.Data, 25)

	page, err = ctrl.List(ctx, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Pages)
	require.Len(t, page.Data, 5)
	assert.Equal(t, int64(21), page.Data[0].CategoryID)

	page, err = ctrl.List(ctx, 9, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(25), page.Total)

	for _, huge := range []int64{math.MaxInt64, 100_000_000_000_000_000} {
		page, err = ctrl.List(ctx, huge, 100)
		require.NoError(t, err)
		assert.NotNil(t, page.Data)
		assert.Empty(t, page.Data)
		assert.Equal(t, int64(25), page.Total)
		assert.Equal(t, int64(math.MaxInt64/100), page.Page)
	}
}

func TestResourceController_ListEmpty(t *testing.T) {
	ctrl, _, _ := newCategoryController(nil)

	page, err := ctrl.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Zero(t, page.Pages)
	assert.NotNil(t, page.Data)
}

func TestResourceController_UpdateMerges(t *testing.T) {
	ctrl, _, events := newCategoryController(validation.For[*entity.Category]())
	ctx := context.Background()

	created, err := ctrl.Create(ctx, category(3, "Old"))
	require.NoError(t, err)

	updated, err := ctrl.Update(ctx, "3", func(c *entity.Category) error {
		return json.Unmarshal([]byte(`{"Category_Name":"New","_id":"000000000000000000000000"}`), c)
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.CategoryName)
	assert.Equal(t, int64(3), updated.CategoryID)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	fetched, err := ctrl.GetByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "New", fetched.CategoryName)
	assert.Contains(t, events.Published(), "campus.category.updated")
}

func TestResourceController_UpdateGateSeesMergedRecord(t *testing.T) {
	ctrl, _, _ := newCategoryController(validation.For[*entity.Category]())
	ctx := context.Background()

	_, err := ctrl.Create(ctx, category(4, "Keep"))
	require.NoError(t, err)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}
	_, err = ctrl.Update(ctx, "4", func(c *entity.Category) error {
		c.CategoryName = string(long)
		return nil
	})
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))

	fetched, err := ctrl.GetByID(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, "Keep", fetched.CategoryName)
}

func TestResourceController_UpdateErrors(t *testing.T) {
	ctrl, _, _ := newCategoryController(nil)
	ctx := context.Background()

	_, err := ctrl.Update(ctx, "404", func(*entity.Category) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = ctrl.Create(ctx, category(1, "a"))
	require.NoError(t, err)
	_, err = ctrl.Create(ctx, category(2, "b"))
	require.NoError(t, err)

	_, err = ctrl.Update(ctx, "2", func(c *entity.Category) error {
		c.CategoryID = 1
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = ctrl.Update(ctx, "2", func(*entity.Category) error { return domain.ErrBadRequest })
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestResourceController_Remove(t *testing.T) {
	ctrl, _, events := newCategoryController(nil)
	ctx := context.Background()

	created, err := ctrl.Create(ctx, category(9, "Gone"))
	require.NoError(t, err)

	require.NoError(t, ctrl.Remove(ctx, created.ID.Hex()))
	_, err = ctrl.GetByID(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, ctrl.Remove(ctx, created.ID.Hex()), domain.ErrNotFound)
	assert.Contains(t, events.Published(), "campus.category.deleted")
}

func TestResourceController_RemoveByKeyPublishesObjectID(t *testing.T) {
	ctrl, _, events := newCategoryController(nil)
	ctx := context.Background()

	created, err := ctrl.Create(ctx, category(7, "Keyed"))
	require.NoError(t, err)
	require.NoError(t, ctrl.Remove(ctx, "7"))

	createdEvent, ok := events.Last("campus.category.created")
	require.True(t, ok)
	deletedEvent, ok := events.Last("campus.category.deleted")
	require.True(t, ok)

	assert.Equal(t, created.ID.Hex(), deletedEvent.(domain.EntityEvent).ID)
	assert.Equal(t, createdEvent.(domain.EntityEvent).ID, deletedEvent.(domain.EntityEvent).ID)
	assert.Equal(t, "deleted", deletedEvent.(domain.EntityEvent).Action)
}

func TestResourceController_GetUnknownIDShapes(t *testing.T) {
	ctrl, _, _ := newCategoryController(nil)
	ctx := context.Background()

	for _, id := range []string{"abc", "65f000000000000000000000", "12"} {
		_, err := ctrl.GetByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, id)
	}
}
