package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/sjsneakers/resale-gateway/internal/repository"
	"github.com/sjsneakers/resale-gateway/pkg/logger"
	"github.com/sjsneakers/resale-gateway/pkg/prom"
	"github.com/sjsneakers/resale-gateway/pkg/redis"
)

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrItemNotInStock = errors.New("item is not in stock")
	ErrSaleNotFound   = errors.New("sale not found")
)

type SaleStore interface {
	Create(ctx context.Context, sale *model.Sale) (*model.Sale, error)
	Get(ctx context.Context, id string) (*model.Sale, error)
	List(ctx context.Context, f model.SaleFilter) ([]*model.Sale, int64, error)
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type SoldItemStore interface {
	Get(ctx context.Context, id string) (*model.Item, error)
	MarkSold(ctx context.Context, id string) error
}

type TransferWriter interface {
	CreateBatch(ctx context.Context, transfers []*model.Transfer) ([]*model.Transfer, error)
}

// SaleService records sales and expands each one into its settlement chain.
type SaleService struct {
	sales     SaleStore
	items     SoldItemStore
	transfers TransferWriter
	routes    RouteStore
	cache     redis.RedisAdapter
	events    EventPublisher
}

func NewSaleService(sales SaleStore, items SoldItemStore, transfers TransferWriter, routes RouteStore, cache redis.RedisAdapter, events EventPublisher) *SaleService {
	return &SaleService{
		sales:     sales,
		items:     items,
		transfers: transfers,
		routes:    routes,
		cache:     cache,
		events:    events,
	}
}

// Record marks the item sold, writes the sale row and its transfers in one
// transaction. A payment method with no configured route is tolerated: the
// sale still commits with zero transfers and a warning, so a mistyped method
// never loses the sale itself.
func (s *SaleService) Record(ctx context.Context, p model.SaleCreateRequest) (*model.Sale, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	hops, err := s.routes.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read routes: %w", err)
	}
	table := model.NewRouteTable(hops)

	date := p.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	shipping := p.ShippingStatus
	if shipping == "" {
		shipping = model.ShippingNeedsToShip
	}

	sale := &model.Sale{
		ID:             uuid.NewString(),
		ItemID:         p.ItemID,
		Amount:         p.Amount,
		Date:           date,
		SoldBy:         p.SoldBy,
		Buyer:          p.Buyer,
		Platform:       p.Platform,
		PaymentMethod:  p.PaymentMethod,
		ShippingStatus: shipping,
		TrackingNumber: p.TrackingNumber,
		Notes:          p.Notes,
	}

	var createdSale *model.Sale
	var createdTransfers []*model.Transfer
	err = s.sales.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.items.MarkSold(ctx, p.ItemID); err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return ErrItemNotFound
			}
			if errors.Is(err, repository.ErrItemNotInStock) {
				return ErrItemNotInStock
			}
			return fmt.Errorf("mark item sold: %w", err)
		}

		created, err := s.sales.Create(ctx, sale)
		if err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		createdSale = created

		routeHops, err := table.HopsFor(sale.PaymentMethod)
		if err != nil {
			logger.Warn("sale recorded without transfers",
				"sale_id", sale.ID,
				"payment_method", sale.PaymentMethod,
				"error", err)
			return nil
		}

		createdTransfers, err = s.transfers.CreateBatch(ctx, expandTransfers(sale, routeHops))
		if err != nil {
			return fmt.Errorf("create transfers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateDashboard()
	s.publish(ctx, model.LedgerEvent{
		Type:       model.LedgerEventSaleRecorded,
		OccurredAt: time.Now().UTC(),
		Sale:       createdSale,
		Transfers:  createdTransfers,
	})
	prom.IncCounter(prom.SystemLedger, prom.MetricSalesRecorded)
	return createdSale, nil
}

// expandTransfers derives one transfer per route hop, all carrying the full
// sale amount. Auto hops are born completed; the rest wait for a person.
func expandTransfers(sale *model.Sale, hops []model.RouteHop) []*model.Transfer {
	transfers := make([]*model.Transfer, 0, len(hops))
	for i, hop := range hops {
		t := &model.Transfer{
			ID:          model.TransferID(sale.ID, i+1),
			SaleID:      sale.ID,
			Amount:      sale.Amount,
			Date:        sale.Date,
			Source:      hop.From,
			Destination: hop.To,
			Status:      model.TransferStatusPending,
		}
		if hop.ResponsibleParty == model.ResponsibleAuto {
			completedAt := sale.Date
			completedBy := model.ResponsibleAuto
			t.Status = model.TransferStatusCompleted
			t.CompletedAt = &completedAt
			t.CompletedBy = &completedBy
		}
		transfers = append(transfers, t)
	}
	return transfers
}

func (s *SaleService) Get(ctx context.Context, id string) (*model.Sale, error) {
	sale, err := s.sales.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}

func (s *SaleService) List(ctx context.Context, f model.SaleFilter) ([]*model.Sale, int64, error) {
	return s.sales.List(ctx, f)
}

func (s *SaleService) invalidateDashboard() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(dashboardCacheKey); err != nil {
		logger.Warn("dashboard cache invalidation failed", "error", err)
	}
}

func (s *SaleService) publish(ctx context.Context, e model.LedgerEvent) {
	if s.events == nil {
		return
	}
	if _, err := s.events.PublishJSON(ctx, e, nil); err != nil {
		logger.Error("ledger event publish failed", "type", string(e.Type), "error", err)
	}
}
