package source

import (
	"context"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// WithFallback serves from fallback whenever primary fails. The substitution
// is logged, and the dataset Origin tells callers which one answered.
func WithFallback(primary, fallback Source) Source {
	return SourceFunc(func(ctx context.Context, criteria domain.FilterCriteria) (*domain.Dataset, error) {
		ds, err := primary.Fetch(ctx, criteria)
		if err == nil {
			return ds, nil
		}
		zerolog.Ctx(ctx).Warn().Err(err).Msg("primary source failed, serving fallback data")
		return fallback.Fetch(ctx, criteria)
	})
}
