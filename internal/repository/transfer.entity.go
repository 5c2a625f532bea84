package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjsneakers/resale-gateway/internal/model"
)

type TransferEntity struct {
	ID          string          `db:"id"           gorm:"primaryKey;column:id"`
	SaleID      string          `db:"sale_id"      gorm:"column:sale_id;not null;index"`
	Amount      decimal.Decimal `db:"amount"       gorm:"column:amount;type:numeric(12,2);not null"`
	Date        time.Time       `db:"date"         gorm:"column:date;not null"`
	Source      string          `db:"source"       gorm:"column:source;not null"`
	Destination string          `db:"destination"  gorm:"column:destination;not null;index"`
	Status      string          `db:"status"       gorm:"column:status;not null;index"`
	CompletedAt *time.Time      `db:"completed_at" gorm:"column:completed_at"`
	CompletedBy *string         `db:"completed_by" gorm:"column:completed_by"`
	Notes       string          `db:"notes"        gorm:"column:notes"`
	CreatedAt   time.Time       `db:"created_at"   gorm:"column:created_at;autoCreateTime"`
}

func (TransferEntity) TableName() string { return "transfers" }

func toTransferEntity(t *model.Transfer) *TransferEntity {
	if t == nil {
		return nil
	}
	return &TransferEntity{
		ID:          t.ID,
		SaleID:      t.SaleID,
		Amount:      t.Amount,
		Date:        t.Date,
		Source:      t.Source,
		Destination: t.Destination,
		Status:      string(t.Status),
		CompletedAt: t.CompletedAt,
		CompletedBy: t.CompletedBy,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
	}
}

func toTransferModel(e *TransferEntity) *model.Transfer {
	if e == nil {
		return nil
	}
	return &model.Transfer{
		ID:          e.ID,
		SaleID:      e.SaleID,
		Amount:      e.Amount,
		Date:        e.Date,
		Source:      e.Source,
		Destination: e.Destination,
		Status:      model.TransferStatus(e.Status),
		CompletedAt: e.CompletedAt,
		CompletedBy: e.CompletedBy,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
	}
}

func toTransferModels(entities []*TransferEntity) []*model.Transfer {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transfer, len(entities))
	for i, e := range entities {
		models[i] = toTransferModel(e)
	}
	return models
}
