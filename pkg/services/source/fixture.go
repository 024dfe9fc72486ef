package source

import (
	"context"
	"sync"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/de-tools/defect-atlas/pkg/services/fixture"
)

// FixtureSource serves one generated dataset for the lifetime of the process.
type FixtureSource struct {
	gen  *fixture.Generator
	once sync.Once
	ds   *domain.Dataset
}

func NewFixtureSource(gen *fixture.Generator) *FixtureSource {
	return &FixtureSource{gen: gen}
}

func (s *FixtureSource) Fetch(_ context.Context, _ domain.FilterCriteria) (*domain.Dataset, error) {
	s.once.Do(func() {
		s.ds = s.gen.Generate()
	})
	return s.ds, nil
}
