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
	// ErrSaleNotFound is returned when a sale does not exist.
	ErrSaleNotFound = errors.New("sale not found")
)

type SaleEntity struct {
	ID             string          `db:"id"              gorm:"primaryKey;column:id"`
	ItemID         string          `db:"item_id"         gorm:"column:item_id;not null;index"`
	Amount         decimal.Decimal `db:"amount"          gorm:"column:amount;type:numeric(12,2);not null"`
	Date           time.Time       `db:"date"            gorm:"column:date;not null"`
	SoldBy         string          `db:"sold_by"         gorm:"column:sold_by;not null"`
	Buyer          string          `db:"buyer"           gorm:"column:buyer"`
	Platform       string          `db:"platform"        gorm:"column:platform"`
	PaymentMethod  string          `db:"payment_method"  gorm:"column:payment_method;not null"`
	ShippingStatus string          `db:"shipping_status" gorm:"column:shipping_status"`
	TrackingNumber string          `db:"tracking_number" gorm:"column:tracking_number"`
	Notes          string          `db:"notes"           gorm:"column:notes"`
	CreatedAt      time.Time       `db:"created_at"      gorm:"column:created_at;autoCreateTime"`
}

func (SaleEntity) TableName() string { return "sales" }

func toSaleEntity(s *model.Sale) *SaleEntity {
	if s == nil {
		return nil
	}
	return &SaleEntity{
		ID:             s.ID,
		ItemID:         s.ItemID,
		Amount:         s.Amount,
		Date:           s.Date,
		SoldBy:         s.SoldBy,
		Buyer:          s.Buyer,
		Platform:       s.Platform,
		PaymentMethod:  s.PaymentMethod,
		ShippingStatus: s.ShippingStatus,
		TrackingNumber: s.TrackingNumber,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
	}
}

func toSaleModel(e *SaleEntity) *model.Sale {
	if e == nil {
		return nil
	}
	return &model.Sale{
		ID:             e.ID,
		ItemID:         e.ItemID,
		Amount:         e.Amount,
		Date:           e.Date,
		SoldBy:         e.SoldBy,
		Buyer:          e.Buyer,
		Platform:       e.Platform,
		PaymentMethod:  e.PaymentMethod,
		ShippingStatus: e.ShippingStatus,
		TrackingNumber: e.TrackingNumber,
		Notes:          e.Notes,
		CreatedAt:      e.CreatedAt,
	}
}

type SaleRepository struct {
	*pg.DB
}

func NewSaleRepository(db *pg.DB) *SaleRepository {
	return &SaleRepository{
		db,
	}
}

func (r *SaleRepository) Create(ctx context.Context, sale *model.Sale) (*model.Sale, error) {
	entity := toSaleEntity(sale)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toSaleModel(entity), nil
}

func (r *SaleRepository) Get(ctx context.Context, id string) (*model.Sale, error) {
	var entity SaleEntity
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return toSaleModel(&entity), nil
}

func (r *SaleRepository) List(ctx context.Context, f model.SaleFilter) ([]*model.Sale, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&SaleEntity{})

	if f.ItemID != nil && *f.ItemID != "" {
		q = q.Where("item_id = ?", *f.ItemID)
	}
	if f.SoldBy != nil && *f.SoldBy != "" {
		q = q.Where("sold_by = ?", *f.SoldBy)
	}
	if f.Platform != nil && *f.Platform != "" {
		q = q.Where("platform = ?", *f.Platform)
	}
	if f.ShippingStatus != nil && *f.ShippingStatus != "" {
		q = q.Where("shipping_status = ?", *f.ShippingStatus)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "date"
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

	var entities []*SaleEntity
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	sales := make([]*model.Sale, len(entities))
	for i, e := range entities {
		sales[i] = toSaleModel(e)
	}
	return sales, total, nil
}
