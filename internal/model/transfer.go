package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus is the lifecycle state of a money-flow transfer.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "Pending"
	TransferStatusCompleted TransferStatus = "Completed"
)

// Transfer is one hop of a sale's settlement path. A sale with an N-hop
// route produces N transfers, each carrying the full sale amount (the same
// money moving one step, not a split). The only permitted mutation is the
// one-way Pending -> Completed transition.
type Transfer struct {
	ID          string          `json:"id"           db:"id"            gorm:"primaryKey;column:id"`
	SaleID      string          `json:"sale_id"      db:"sale_id"       gorm:"column:sale_id;not null;index"`
	Amount      decimal.Decimal `json:"amount"       db:"amount"        gorm:"column:amount;type:numeric(12,2);not null"`
	Date        time.Time       `json:"date"         db:"date"          gorm:"column:date;not null"`
	Source      string          `json:"source"       db:"source"        gorm:"column:source;not null"`
	Destination string          `json:"destination"  db:"destination"   gorm:"column:destination;not null;index"`
	Status      TransferStatus  `json:"status"       db:"status"        gorm:"column:status;not null;index"`
	CompletedAt *time.Time      `json:"completed_at" db:"completed_at"  gorm:"column:completed_at"` // nullable
	CompletedBy *string         `json:"completed_by" db:"completed_by"  gorm:"column:completed_by"` // nullable
	Notes       string          `json:"notes"        db:"notes"         gorm:"column:notes"`
	CreatedAt   time.Time       `json:"created_at"   db:"created_at"    gorm:"column:created_at;autoCreateTime"`
}

func (Transfer) TableName() string { return "transfers" }

// TransferID derives the stored id for the n-th hop (1-based) of a sale.
func TransferID(saleID string, hop int) string {
	return fmt.Sprintf("%s-T%d", saleID, hop)
}

// TransferCompleteRequest is the input for completing a pending transfer.
type TransferCompleteRequest struct {
	TransferID  string
	CompletedBy string
}

func (p TransferCompleteRequest) Validate() error {
	if p.TransferID == "" {
		return errors.New("transfer_id is required")
	}
	if p.CompletedBy == "" {
		return errors.New("completed_by is required")
	}
	return nil
}

// TransferFilter controls history queries.
type TransferFilter struct {
	SaleID   *string          // equals
	Statuses []TransferStatus // IN (...)
	Location *string          // matches source OR destination
	From     *time.Time
	To       *time.Time
	Limit    int  // default 50
	Offset   int  // for pagination
	Desc     bool // order by created_at
}
