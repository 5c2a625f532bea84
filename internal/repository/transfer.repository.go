package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/sjsneakers/resale-gateway/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrTransferNotFound is returned when a transfer does not exist.
	ErrTransferNotFound = errors.New("transfer not found")
	// ErrTransferCompleted is returned when completing an already-completed
	// transfer.
	ErrTransferCompleted = errors.New("transfer already completed")
)

type TransferRepository struct {
	*pg.DB
}

func NewTransferRepository(db *pg.DB) *TransferRepository {
	return &TransferRepository{
		db,
	}
}

// CreateBatch appends all transfers of one sale in a single insert. A sale's
// hops must land all-or-nothing; a partial batch would corrupt the
// first-pending-hop computation.
func (r *TransferRepository) CreateBatch(ctx context.Context, transfers []*model.Transfer) ([]*model.Transfer, error) {
	if len(transfers) == 0 {
		return nil, nil
	}

	entities := make([]*TransferEntity, len(transfers))
	for i, t := range transfers {
		entities[i] = toTransferEntity(t)
	}

	if err := r.Write(ctx).WithContext(ctx).Create(entities).Error; err != nil {
		return nil, err
	}

	return toTransferModels(entities), nil
}

func (r *TransferRepository) Get(ctx context.Context, id string) (*model.Transfer, error) {
	var entity TransferEntity
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransferNotFound
		}
		return nil, err
	}
	return toTransferModel(&entity), nil
}

// ListAll returns the complete transfer log in creation order. The dashboard
// recomputes everything from this; order must be stable so the lowest-step
// pending hop per sale is well defined.
func (r *TransferRepository) ListAll(ctx context.Context) ([]*model.Transfer, error) {
	var entities []*TransferEntity
	err := r.Read(ctx).WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toTransferModels(entities), nil
}

func (r *TransferRepository) List(ctx context.Context, f model.TransferFilter) ([]*model.Transfer, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&TransferEntity{})

	if f.SaleID != nil && *f.SaleID != "" {
		q = q.Where("sale_id = ?", *f.SaleID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.Location != nil && *f.Location != "" {
		q = q.Where("source = ? OR destination = ?", *f.Location, *f.Location)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date < ?", *f.To)
	}

	// Count before pagination
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at ASC, id ASC"
	if f.Desc {
		order = "created_at DESC, id DESC"
	}

	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var entities []*TransferEntity
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toTransferModels(entities), total, nil
}

// MarkCompleted performs the one-way Pending -> Completed transition. The
// update is conditional on the current status so a second completion attempt
// loses: RowsAffected == 0 on an existing row means it was already completed.
func (r *TransferRepository) MarkCompleted(ctx context.Context, id string, completedBy string, completedAt time.Time) (*model.Transfer, error) {
	var entity TransferEntity
	err := r.Write(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransferNotFound
		}
		return nil, err
	}

	if entity.Status == string(model.TransferStatusCompleted) {
		return nil, ErrTransferCompleted
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&TransferEntity{}).
		Where("id = ? AND status = ?", id, string(model.TransferStatusPending)).
		Updates(map[string]interface{}{
			"status":       string(model.TransferStatusCompleted),
			"completed_at": completedAt,
			"completed_by": completedBy,
		})

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Lost the race against a concurrent completion.
		return nil, ErrTransferCompleted
	}

	entity.Status = string(model.TransferStatusCompleted)
	entity.CompletedAt = &completedAt
	entity.CompletedBy = &completedBy
	return toTransferModel(&entity), nil
}
