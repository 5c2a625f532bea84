package repository

import (
	"context"

	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/sjsneakers/resale-gateway/pkg/pg"
)

type RouteHopEntity struct {
	Method           string `db:"method"            gorm:"column:method;not null;index;primaryKey"`
	Step             int    `db:"step"              gorm:"column:step;not null;primaryKey"`
	FromLocation     string `db:"from_location"     gorm:"column:from_location;not null"`
	ToLocation       string `db:"to_location"       gorm:"column:to_location;not null"`
	ResponsibleParty string `db:"responsible_party" gorm:"column:responsible_party;not null"`
}

func (RouteHopEntity) TableName() string { return "route_hops" }

type RouteRepository struct {
	*pg.DB
}

func NewRouteRepository(db *pg.DB) *RouteRepository {
	return &RouteRepository{
		db,
	}
}

// ReadAll loads the full routing table. The table is static configuration
// seeded by migration; callers build a model.RouteTable from it once.
func (r *RouteRepository) ReadAll(ctx context.Context) ([]model.RouteHop, error) {
	var entities []RouteHopEntity
	err := r.Read(ctx).WithContext(ctx).
		Order("method ASC, step ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}

	hops := make([]model.RouteHop, len(entities))
	for i, e := range entities {
		hops[i] = model.RouteHop{
			Method:           e.Method,
			Step:             e.Step,
			From:             e.FromLocation,
			To:               e.ToLocation,
			ResponsibleParty: e.ResponsibleParty,
		}
	}
	return hops, nil
}
