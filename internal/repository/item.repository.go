package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/sjsneakers/resale-gateway/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrItemNotFound is returned when an item does not exist.
	ErrItemNotFound = errors.New("item not found")
	// ErrItemNotInStock is returned when selling an item that is already
	// sold.
	ErrItemNotInStock = errors.New("item is not in stock")
)

type ItemEntity struct {
	ID            string          `db:"id"             gorm:"primaryKey;column:id"`
	UPC           string          `db:"upc"            gorm:"column:upc;index"`
	Category      string          `db:"category"       gorm:"column:category;not null"`
	Brand         string          `db:"brand"          gorm:"column:brand;not null"`
	Size          string          `db:"size"           gorm:"column:size;not null"`
	Color         string          `db:"color"          gorm:"column:color;not null"`
	Cost          decimal.Decimal `db:"cost"           gorm:"column:cost;type:numeric(12,2)"`
	DatePurchased time.Time       `db:"date_purchased" gorm:"column:date_purchased"`
	Status        string          `db:"status"         gorm:"column:status;not null;index"`
	Location      string          `db:"location"       gorm:"column:location"`
	Notes         string          `db:"notes"          gorm:"column:notes"`
	CreatedAt     time.Time       `db:"created_at"     gorm:"column:created_at;autoCreateTime"`
}

func (ItemEntity) TableName() string { return "items" }

func toItemEntity(m *model.Item) *ItemEntity {
	if m == nil {
		return nil
	}
	return &ItemEntity{
		ID:            m.ID,
		UPC:           m.UPC,
		Category:      m.Category,
		Brand:         m.Brand,
		Size:          m.Size,
		Color:         m.Color,
		Cost:          m.Cost,
		DatePurchased: m.DatePurchased,
		Status:        string(m.Status),
		Location:      m.Location,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
	}
}

func toItemModel(e *ItemEntity) *model.Item {
	if e == nil {
		return nil
	}
	return &model.Item{
		ID:            e.ID,
		UPC:           e.UPC,
		Category:      e.Category,
		Brand:         e.Brand,
		Size:          e.Size,
		Color:         e.Color,
		Cost:          e.Cost,
		DatePurchased: e.DatePurchased,
		Status:        model.ItemStatus(e.Status),
		Location:      e.Location,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
	}
}

type ItemRepository struct {
	*pg.DB
}

func NewItemRepository(db *pg.DB) *ItemRepository {
	return &ItemRepository{
		db,
	}
}

func (r *ItemRepository) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	entity := toItemEntity(item)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toItemModel(entity), nil
}

func (r *ItemRepository) Get(ctx context.Context, id string) (*model.Item, error) {
	var entity ItemEntity
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return toItemModel(&entity), nil
}

// GetByUPC returns the most recently added in-stock item carrying the UPC.
// The barcode flow scans a code and wants the sellable unit, not history.
func (r *ItemRepository) GetByUPC(ctx context.Context, upc string) (*model.Item, error) {
	var entity ItemEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("upc = ? AND status = ?", upc, string(model.ItemStatusInStock)).
		Order("created_at DESC").
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return toItemModel(&entity), nil
}

func (r *ItemRepository) Update(ctx context.Context, id string, p model.ItemUpdateRequest) (*model.Item, error) {
	updates := map[string]interface{}{}
	if p.UPC != nil {
		updates["upc"] = *p.UPC
	}
	if p.Cost != nil {
		updates["cost"] = *p.Cost
	}
	if p.Location != nil {
		updates["location"] = *p.Location
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}

	if len(updates) > 0 {
		result := r.Write(ctx).WithContext(ctx).
			Model(&ItemEntity{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrItemNotFound
		}
	}

	return r.Get(ctx, id)
}

// MarkSold flips an in-stock item to Sold. Conditional on the current status
// so double-selling the same unit is rejected.
func (r *ItemRepository) MarkSold(ctx context.Context, id string) error {
	var entity ItemEntity
	err := r.Write(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	if entity.Status != string(model.ItemStatusInStock) {
		return ErrItemNotInStock
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&ItemEntity{}).
		Where("id = ? AND status = ?", id, string(model.ItemStatusInStock)).
		Update("status", string(model.ItemStatusSold))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotInStock
	}
	return nil
}

// NextSequence returns the next row number for item id generation.
func (r *ItemRepository) NextSequence(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Read(ctx).WithContext(ctx).Model(&ItemEntity{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count + 1, nil
}

func (r *ItemRepository) List(ctx context.Context, f model.ItemFilter) ([]*model.Item, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&ItemEntity{})

	if f.Status != nil && *f.Status != "" {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.Category != nil && *f.Category != "" {
		q = q.Where("category = ?", *f.Category)
	}
	if f.Brand != nil && *f.Brand != "" {
		q = q.Where("brand = ?", *f.Brand)
	}
	if f.UPC != nil && *f.UPC != "" {
		q = q.Where("upc = ?", *f.UPC)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at"
	if f.Desc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var entities []*ItemEntity
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*model.Item, len(entities))
	for i, e := range entities {
		items[i] = toItemModel(e)
	}
	return items, total, nil
}
