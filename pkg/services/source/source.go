// Package source loads inspection datasets from the places a plant keeps
// them: the dashboard backend, SQL warehouses, S3 file drops, the local
// store and generated fixture data.
package source

import (
	"context"
	"errors"
	"sort"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
)

var (
	ErrUnsuccessful    = errors.New("backend reported an unsuccessful response")
	ErrUnsupportedType = errors.New("unsupported source type")
)

// Source fetches a dataset. Implementations may use the date bounds of the
// criteria to narrow what they load; callers still apply the full filter.
type Source interface {
	Fetch(ctx context.Context, criteria domain.FilterCriteria) (*domain.Dataset, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, criteria domain.FilterCriteria) (*domain.Dataset, error)

func (f SourceFunc) Fetch(ctx context.Context, criteria domain.FilterCriteria) (*domain.Dataset, error) {
	return f(ctx, criteria)
}

// optionsOf derives the selection vocabulary from the records themselves.
func optionsOf(records []domain.InspectionRecord) domain.FilterOptions {
	vehicleTypes := make(map[string]struct{})
	colors := make(map[string]struct{})
	for _, r := range records {
		if r.VehicleType != "" {
			vehicleTypes[r.VehicleType] = struct{}{}
		}
		if r.Color != "" {
			colors[r.Color] = struct{}{}
		}
	}
	return domain.FilterOptions{
		VehicleTypes: sortedKeys(vehicleTypes),
		Colors:       sortedKeys(colors),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
