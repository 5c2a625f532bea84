package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/sjsneakers/resale-gateway/internal/repository"
	"github.com/sjsneakers/resale-gateway/pkg/logger"
	"github.com/sjsneakers/resale-gateway/pkg/prom"
	"github.com/sjsneakers/resale-gateway/pkg/redis"
)

var (
	ErrTransferNotFound = errors.New("transfer not found")
	ErrAlreadyCompleted = errors.New("transfer already completed")
)

// ResponsibleUnknown annotates a transfer whose source/destination edge is
// missing from the route table and that carries no completed-by name.
const ResponsibleUnknown = "Unknown"

const dashboardCacheKey = "dashboard:snapshot"

type TransferStore interface {
	ListAll(ctx context.Context) ([]*model.Transfer, error)
	List(ctx context.Context, f model.TransferFilter) ([]*model.Transfer, int64, error)
	MarkCompleted(ctx context.Context, id string, completedBy string, completedAt time.Time) (*model.Transfer, error)
}

type RouteStore interface {
	ReadAll(ctx context.Context) ([]model.RouteHop, error)
}

// EventPublisher is the slice of queue.Queue the services need.
type EventPublisher interface {
	PublishJSON(ctx context.Context, data interface{}, metadata map[string]string) (string, error)
}

// SettlementService derives the money-flow dashboard from the transfer log
// and owns the only transfer mutation, Pending -> Completed.
type SettlementService struct {
	transfers TransferStore
	routes    RouteStore
	cache     redis.RedisAdapter
	events    EventPublisher
	cacheTTL  time.Duration
}

func NewSettlementService(transfers TransferStore, routes RouteStore, cache redis.RedisAdapter, events EventPublisher, cacheTTL time.Duration) *SettlementService {
	return &SettlementService{
		transfers: transfers,
		routes:    routes,
		cache:     cache,
		events:    events,
		cacheTTL:  cacheTTL,
	}
}

// ComputeDashboard rebuilds the dashboard from the full transfer log. The
// result is cached as a JSON snapshot; cache trouble degrades to a recompute,
// never to an error.
func (s *SettlementService) ComputeDashboard(ctx context.Context) (*model.Dashboard, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(dashboardCacheKey); err == nil && len(raw) > 0 {
			d := model.EmptyDashboard()
			if err := json.Unmarshal(raw, d); err != nil {
				logger.Warn("dashboard cache snapshot unreadable, recomputing", "error", err)
			} else {
				return d, nil
			}
		}
	}

	start := time.Now()
	hops, err := s.routes.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read routes: %w", err)
	}
	table := model.NewRouteTable(hops)

	transfers, err := s.transfers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}

	d := buildDashboard(table, transfers)
	prom.AddHistogram(prom.SystemLedger, prom.MetricDashboardComputeDuration, time.Since(start).Seconds())

	if s.cache != nil {
		if raw, err := json.Marshal(d); err == nil {
			if err := s.cache.Set(dashboardCacheKey, raw, s.cacheTTL); err != nil {
				logger.Warn("dashboard cache write failed", "error", err)
			}
		}
	}
	return d, nil
}

// buildDashboard is the pure two-pass computation. Pass 1 finds, per sale,
// the earliest pending transfer in creation order (that is the only
// actionable hop of its chain). Pass 2 classifies each transfer and
// accumulates balances from completed transfers only.
func buildDashboard(table *model.RouteTable, transfers []*model.Transfer) *model.Dashboard {
	d := model.EmptyDashboard()
	if len(transfers) == 0 {
		return d
	}

	actionable := make(map[string]string)
	for _, t := range transfers {
		if t.Status != model.TransferStatusPending {
			continue
		}
		if _, seen := actionable[t.SaleID]; !seen {
			actionable[t.SaleID] = t.ID
		}
	}

	for _, t := range transfers {
		row := model.DashboardTransfer{
			Transfer:         *t,
			ResponsibleParty: responsibleFor(table, t),
			Actionable:       actionable[t.SaleID] == t.ID,
		}

		if t.Status == model.TransferStatusCompleted {
			d.Balances[t.Destination] = d.Balances[t.Destination].Add(t.Amount)
			if !model.IsSentinelSource(t.Source) {
				d.Balances[t.Source] = d.Balances[t.Source].Sub(t.Amount)
			}
			if t.Destination == model.VaultLocation {
				d.TotalInVault = d.TotalInVault.Add(t.Amount)
			}
			d.CompletedTransfers = append(d.CompletedTransfers, row)
			continue
		}

		d.TotalInTransit = d.TotalInTransit.Add(t.Amount)
		d.PendingTransfers = append(d.PendingTransfers, row)
	}
	return d
}

func responsibleFor(table *model.RouteTable, t *model.Transfer) string {
	if p, ok := table.ResponsibleFor(t.Source, t.Destination); ok {
		return p
	}
	if t.CompletedBy != nil && *t.CompletedBy != "" {
		return *t.CompletedBy
	}
	return ResponsibleUnknown
}

// GroupActionable buckets pending rows by responsible party. "Auto" rows are
// dropped outright (an auto hop left pending is a data anomaly, not a task
// for anyone). actionableOnly selects the to-do view; false selects the
// upcoming-hops view.
func GroupActionable(rows []model.DashboardTransfer, actionableOnly bool) map[string][]model.DashboardTransfer {
	out := make(map[string][]model.DashboardTransfer)
	for _, row := range rows {
		if row.ResponsibleParty == model.ResponsibleAuto {
			continue
		}
		if row.Actionable != actionableOnly {
			continue
		}
		out[row.ResponsibleParty] = append(out[row.ResponsibleParty], row)
	}
	return out
}

// History returns a filtered page of the transfer log annotated with
// responsible parties. The responsibleParty filter runs after route
// annotation, so when it is set the returned total counts the filtered rows,
// not the underlying page.
func (s *SettlementService) History(ctx context.Context, f model.TransferFilter, responsibleParty string) ([]model.DashboardTransfer, int64, error) {
	hops, err := s.routes.ReadAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("read routes: %w", err)
	}
	table := model.NewRouteTable(hops)

	transfers, total, err := s.transfers.List(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list transfers: %w", err)
	}

	rows := make([]model.DashboardTransfer, 0, len(transfers))
	for _, t := range transfers {
		party := responsibleFor(table, t)
		if responsibleParty != "" && party != responsibleParty {
			continue
		}
		rows = append(rows, model.DashboardTransfer{Transfer: *t, ResponsibleParty: party})
	}
	if responsibleParty != "" {
		total = int64(len(rows))
	}
	return rows, total, nil
}

// Complete marks a pending transfer completed. It does not require the
// transfer to be the actionable hop of its sale; completing out of order is
// allowed.
func (s *SettlementService) Complete(ctx context.Context, p model.TransferCompleteRequest) (*model.Transfer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.transfers.MarkCompleted(ctx, p.TransferID, p.CompletedBy, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrTransferNotFound) {
			return nil, ErrTransferNotFound
		}
		if errors.Is(err, repository.ErrTransferCompleted) {
			return nil, ErrAlreadyCompleted
		}
		return nil, fmt.Errorf("mark completed: %w", err)
	}

	s.invalidateDashboard()
	s.publish(ctx, model.LedgerEvent{
		Type:       model.LedgerEventTransferCompleted,
		OccurredAt: time.Now().UTC(),
		Transfer:   updated,
	})
	prom.IncCounter(prom.SystemLedger, prom.MetricTransfersCompleted)
	return updated, nil
}

func (s *SettlementService) invalidateDashboard() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(dashboardCacheKey); err != nil {
		logger.Warn("dashboard cache invalidation failed", "error", err)
	}
}

func (s *SettlementService) publish(ctx context.Context, e model.LedgerEvent) {
	if s.events == nil {
		return
	}
	if _, err := s.events.PublishJSON(ctx, e, nil); err != nil {
		logger.Error("ledger event publish failed", "type", string(e.Type), "error", err)
	}
}
