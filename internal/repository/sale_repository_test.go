package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSale(itemID string) *model.Sale {
	return &model.Sale{
		ID:             uuid.NewString(),
		ItemID:         itemID,
		Amount:         decimal.NewFromInt(100),
		Date:           time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		SoldBy:         "Zach",
		Platform:       "Depop",
		PaymentMethod:  "Depop",
		ShippingStatus: model.ShippingNeedsToShip,
	}
}

func TestSaleRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewSaleRepository(db)
	ctx := context.Background()

	sale := testSale("Hoodie-Essentials-M-Black-1")
	created, err := repo.Create(ctx, sale)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, created.ID)
	assert.NotZero(t, created.CreatedAt)

	got, err := repo.Get(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.ItemID, got.ItemID)
	assert.True(t, sale.Amount.Equal(got.Amount))

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestSaleRepository_List(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewSaleRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s := testSale("item")
		if i == 2 {
			s.SoldBy = "Adi"
			s.ShippingStatus = model.ShippingShipped
		}
		_, err := repo.Create(ctx, s)
		require.NoError(t, err)
	}

	t.Run("filter by seller", func(t *testing.T) {
		seller := "Adi"
		_, total, err := repo.List(ctx, model.SaleFilter{SoldBy: &seller})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("filter by shipping status", func(t *testing.T) {
		st := model.ShippingNeedsToShip
		_, total, err := repo.List(ctx, model.SaleFilter{ShippingStatus: &st})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("pagination", func(t *testing.T) {
		got, total, err := repo.List(ctx, model.SaleFilter{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, got, 2)
	})
}
