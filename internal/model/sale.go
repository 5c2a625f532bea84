package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID             string          `json:"id"              db:"id"              gorm:"primaryKey;column:id"`
	ItemID         string          `json:"item_id"         db:"item_id"         gorm:"column:item_id;not null;index"`
	Amount         decimal.Decimal `json:"amount"          db:"amount"          gorm:"column:amount;type:numeric(12,2);not null"`
	Date           time.Time       `json:"date"            db:"date"            gorm:"column:date;not null"`
	SoldBy         string          `json:"sold_by"         db:"sold_by"         gorm:"column:sold_by;not null"`
	Buyer          string          `json:"buyer"           db:"buyer"           gorm:"column:buyer"`
	Platform       string          `json:"platform"        db:"platform"        gorm:"column:platform"`
	PaymentMethod  string          `json:"payment_method"  db:"payment_method"  gorm:"column:payment_method;not null"`
	ShippingStatus string          `json:"shipping_status" db:"shipping_status" gorm:"column:shipping_status"`
	TrackingNumber string          `json:"tracking_number" db:"tracking_number" gorm:"column:tracking_number"`
	Notes          string          `json:"notes"           db:"notes"           gorm:"column:notes"`
	CreatedAt      time.Time       `json:"created_at"      db:"created_at"      gorm:"column:created_at;autoCreateTime"`
}

func (Sale) TableName() string { return "sales" }

// Shipping states mirror the sheet's dropdown.
const (
	ShippingNeedsToShip = "needs to ship"
	ShippingShipped     = "shipped"
	ShippingDelivered   = "delivered"
	ShippingLocalPickup = "local pickup (no shipping)"
)

// SaleCreateRequest is the input for recording a sale.
type SaleCreateRequest struct {
	ItemID         string
	Amount         decimal.Decimal
	Date           time.Time
	SoldBy         string
	Buyer          string
	Platform       string
	PaymentMethod  string
	ShippingStatus string
	TrackingNumber string
	Notes          string
}

func (p SaleCreateRequest) Validate() error {
	if p.ItemID == "" {
		return errors.New("item_id is required")
	}
	if !p.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	if p.SoldBy == "" {
		return errors.New("sold_by is required")
	}
	if p.PaymentMethod == "" {
		return errors.New("payment_method is required")
	}
	return nil
}

// SaleFilter controls sale list queries.
type SaleFilter struct {
	ItemID         *string
	SoldBy         *string
	Platform       *string
	ShippingStatus *string
	From           *time.Time
	To             *time.Time
	Limit          int
	Offset         int
	Desc           bool
}
