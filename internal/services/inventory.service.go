package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/sjsneakers/resale-gateway/internal/repository"
)

type ItemStore interface {
	Create(ctx context.Context, item *model.Item) (*model.Item, error)
	Get(ctx context.Context, id string) (*model.Item, error)
	GetByUPC(ctx context.Context, upc string) (*model.Item, error)
	Update(ctx context.Context, id string, p model.ItemUpdateRequest) (*model.Item, error)
	NextSequence(ctx context.Context) (int64, error)
	List(ctx context.Context, f model.ItemFilter) ([]*model.Item, int64, error)
}

// InventoryService owns the item catalogue.
type InventoryService struct {
	items ItemStore
}

func NewInventoryService(items ItemStore) *InventoryService {
	return &InventoryService{items: items}
}

func (s *InventoryService) Create(ctx context.Context, p model.ItemCreateRequest) (*model.Item, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	seq, err := s.items.NextSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}

	purchased := p.DatePurchased
	if purchased.IsZero() {
		purchased = time.Now().UTC()
	}

	item := &model.Item{
		ID:            model.ItemID(p.Category, p.Brand, p.Size, p.Color, seq),
		UPC:           strings.TrimSpace(p.UPC),
		Category:      p.Category,
		Brand:         p.Brand,
		Size:          p.Size,
		Color:         p.Color,
		Cost:          p.Cost,
		DatePurchased: purchased,
		Status:        model.ItemStatusInStock,
		Location:      p.Location,
		Notes:         p.Notes,
	}
	return s.items.Create(ctx, item)
}

func (s *InventoryService) Get(ctx context.Context, id string) (*model.Item, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// LookupByUPC resolves a scanned barcode to the most recent in-stock item.
func (s *InventoryService) LookupByUPC(ctx context.Context, upc string) (*model.Item, error) {
	upc = strings.TrimSpace(upc)
	if upc == "" {
		return nil, errors.New("upc is required")
	}
	item, err := s.items.GetByUPC(ctx, upc)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *InventoryService) Update(ctx context.Context, id string, p model.ItemUpdateRequest) (*model.Item, error) {
	item, err := s.items.Update(ctx, id, p)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *InventoryService) List(ctx context.Context, f model.ItemFilter) ([]*model.Item, int64, error) {
	return s.items.List(ctx, f)
}
