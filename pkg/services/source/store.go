package source

import (
	"context"

	"github.com/de-tools/defect-atlas/pkg/adapters"
	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/de-tools/defect-atlas/pkg/store/duckdb/inspection"
)

const LocalOrigin = "local"

// StoreSource serves the records held in the embedded store, pushing the
// date bounds down into the query.
type StoreSource struct {
	store inspection.Store
}

func NewStoreSource(store inspection.Store) *StoreSource {
	return &StoreSource{store: store}
}

func (s *StoreSource) Fetch(ctx context.Context, criteria domain.FilterCriteria) (*domain.Dataset, error) {
	rows, err := s.store.List(ctx, criteria.StartDate, criteria.EndDate)
	if err != nil {
		return nil, err
	}
	vehicleTypes, colors, err := s.store.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Dataset{
		Records: adapters.MapInspectionsStoreToDomain(rows),
		Options: domain.FilterOptions{VehicleTypes: vehicleTypes, Colors: colors},
		Origin:  LocalOrigin,
	}, nil
}
