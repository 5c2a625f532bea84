package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus tracks whether an inventory item is still for sale.
type ItemStatus string

const (
	ItemStatusInStock ItemStatus = "In Stock"
	ItemStatusSold    ItemStatus = "Sold"
)

type Item struct {
	ID            string          `json:"id"             db:"id"             gorm:"primaryKey;column:id"`
	UPC           string          `json:"upc"            db:"upc"            gorm:"column:upc;index"`
	Category      string          `json:"category"       db:"category"       gorm:"column:category;not null"`
	Brand         string          `json:"brand"          db:"brand"          gorm:"column:brand;not null"`
	Size          string          `json:"size"           db:"size"           gorm:"column:size;not null"`
	Color         string          `json:"color"          db:"color"          gorm:"column:color;not null"`
	Cost          decimal.Decimal `json:"cost"           db:"cost"           gorm:"column:cost;type:numeric(12,2)"`
	DatePurchased time.Time       `json:"date_purchased" db:"date_purchased" gorm:"column:date_purchased"`
	Status        ItemStatus      `json:"status"         db:"status"         gorm:"column:status;not null;index"`
	Location      string          `json:"location"       db:"location"       gorm:"column:location"`
	Notes         string          `json:"notes"          db:"notes"          gorm:"column:notes"`
	CreatedAt     time.Time       `json:"created_at"     db:"created_at"     gorm:"column:created_at;autoCreateTime"`
}

func (Item) TableName() string { return "items" }

// ItemID builds the human-readable id the spreadsheet used:
// Category-Brand-Size-Color-<seq>.
func ItemID(category, brand, size, color string, seq int64) string {
	clean := func(s string) string { return strings.ReplaceAll(strings.TrimSpace(s), "-", " ") }
	return fmt.Sprintf("%s-%s-%s-%s-%d", clean(category), clean(brand), clean(size), clean(color), seq)
}

// ItemCreateRequest is the input for adding an inventory item.
type ItemCreateRequest struct {
	UPC           string
	Category      string
	Brand         string
	Size          string
	Color         string
	Cost          decimal.Decimal
	DatePurchased time.Time
	Location      string
	Notes         string
}

func (p ItemCreateRequest) Validate() error {
	if p.Category == "" {
		return errors.New("category is required")
	}
	if p.Brand == "" {
		return errors.New("brand is required")
	}
	if p.Size == "" {
		return errors.New("size is required")
	}
	if p.Color == "" {
		return errors.New("color is required")
	}
	if p.Cost.IsNegative() {
		return errors.New("cost cannot be negative")
	}
	return nil
}

// ItemUpdateRequest carries the editable item fields. Nil means unchanged.
type ItemUpdateRequest struct {
	UPC      *string
	Cost     *decimal.Decimal
	Location *string
	Notes    *string
}

// ItemFilter controls inventory list queries. Mirrors the sheet's filter
// views (In Stock / Sold / All Statuses).
type ItemFilter struct {
	Status   *ItemStatus
	Category *string
	Brand    *string
	UPC      *string
	Limit    int
	Offset   int
	Desc     bool
}
