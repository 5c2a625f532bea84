package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/sjsneakers/resale-gateway/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockItemStore struct {
	mock.Mock
}

func (m *MockItemStore) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		if args.Error(1) == nil {
			return item, nil
		}
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemStore) Get(ctx context.Context, id string) (*model.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemStore) GetByUPC(ctx context.Context, upc string) (*model.Item, error) {
	args := m.Called(ctx, upc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemStore) Update(ctx context.Context, id string, p model.ItemUpdateRequest) (*model.Item, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemStore) NextSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemStore) List(ctx context.Context, f model.ItemFilter) ([]*model.Item, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Item), args.Get(1).(int64), args.Error(2)
}

func TestInventoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("derives the spreadsheet-style id", func(t *testing.T) {
		items := new(MockItemStore)
		svc := NewInventoryService(items)

		items.On("NextSequence", ctx).Return(int64(7), nil)
		items.On("Create", ctx, mock.AnythingOfType("*model.Item")).Return(nil, nil)

		item, err := svc.Create(ctx, model.ItemCreateRequest{
			Category: "Shoes",
			Brand:    "Nike",
			Size:     "10",
			Color:    "Red",
			Cost:     decimal.NewFromInt(40),
			UPC:      " 012345678905 ",
		})
		require.NoError(t, err)
		assert.Equal(t, "Shoes-Nike-10-Red-7", item.ID)
		assert.Equal(t, model.ItemStatusInStock, item.Status)
		assert.Equal(t, "012345678905", item.UPC)
		assert.False(t, item.DatePurchased.IsZero())
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewInventoryService(new(MockItemStore))

		_, err := svc.Create(ctx, model.ItemCreateRequest{Brand: "Nike", Size: "10", Color: "Red"})
		assert.Error(t, err)
	})
}

func TestInventoryService_LookupByUPC(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		items := new(MockItemStore)
		svc := NewInventoryService(items)

		want := &model.Item{ID: "Shoes-Nike-10-Red-7", UPC: "012345678905"}
		items.On("GetByUPC", ctx, "012345678905").Return(want, nil)

		got, err := svc.LookupByUPC(ctx, "012345678905")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("unknown upc", func(t *testing.T) {
		items := new(MockItemStore)
		svc := NewInventoryService(items)

		items.On("GetByUPC", ctx, "000000000000").Return(nil, repository.ErrItemNotFound)

		_, err := svc.LookupByUPC(ctx, "000000000000")
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("blank upc", func(t *testing.T) {
		svc := NewInventoryService(new(MockItemStore))

		_, err := svc.LookupByUPC(ctx, "   ")
		assert.Error(t, err)
	})
}
