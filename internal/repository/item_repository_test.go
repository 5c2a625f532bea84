package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(id string) *model.Item {
	return &model.Item{
		ID:            id,
		UPC:           "0123456789012",
		Category:      "Hoodie",
		Brand:         "Essentials",
		Size:          "M",
		Color:         "Black",
		Cost:          decimal.NewFromInt(40),
		DatePurchased: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Status:        model.ItemStatusInStock,
		Location:      "Zach's garage",
	}
}

func TestItemRepository_MarkSold(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewItemRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, testItem("Hoodie-Essentials-M-Black-1"))
	require.NoError(t, err)

	t.Run("marks in-stock item sold", func(t *testing.T) {
		err := repo.MarkSold(ctx, "Hoodie-Essentials-M-Black-1")
		require.NoError(t, err)

		got, err := repo.Get(ctx, "Hoodie-Essentials-M-Black-1")
		require.NoError(t, err)
		assert.Equal(t, model.ItemStatusSold, got.Status)
	})

	t.Run("selling twice is rejected", func(t *testing.T) {
		err := repo.MarkSold(ctx, "Hoodie-Essentials-M-Black-1")
		assert.ErrorIs(t, err, ErrItemNotInStock)
	})

	t.Run("unknown item", func(t *testing.T) {
		err := repo.MarkSold(ctx, "missing")
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestItemRepository_GetByUPC(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewItemRepository(db)
	ctx := context.Background()

	first := testItem("Hoodie-Essentials-M-Black-1")
	second := testItem("Hoodie-Essentials-M-Black-2")
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	t.Run("returns an in-stock unit", func(t *testing.T) {
		got, err := repo.GetByUPC(ctx, "0123456789012")
		require.NoError(t, err)
		assert.Equal(t, model.ItemStatusInStock, got.Status)
	})

	t.Run("skips sold units", func(t *testing.T) {
		require.NoError(t, repo.MarkSold(ctx, second.ID))
		got, err := repo.GetByUPC(ctx, "0123456789012")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
	})

	t.Run("unknown upc", func(t *testing.T) {
		_, err := repo.GetByUPC(ctx, "nope")
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestItemRepository_List(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewItemRepository(db)
	ctx := context.Background()

	items := []*model.Item{
		testItem("Hoodie-Essentials-M-Black-1"),
		testItem("Hoodie-Essentials-L-Black-2"),
		testItem("Sneaker-Nike-10-White-3"),
	}
	items[1].Size = "L"
	items[2].Category = "Sneaker"
	items[2].Brand = "Nike"
	for _, it := range items {
		_, err := repo.Create(ctx, it)
		require.NoError(t, err)
	}
	require.NoError(t, repo.MarkSold(ctx, items[2].ID))

	t.Run("filter by status", func(t *testing.T) {
		status := model.ItemStatusInStock
		got, total, err := repo.List(ctx, model.ItemFilter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, got, 2)
	})

	t.Run("filter by category", func(t *testing.T) {
		cat := "Sneaker"
		_, total, err := repo.List(ctx, model.ItemFilter{Category: &cat})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("pagination", func(t *testing.T) {
		got, total, err := repo.List(ctx, model.ItemFilter{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, got, 2)
	})
}
