package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/de-tools/defect-atlas/pkg/services/importer"
)

// FileSource reads a local CSV or XLSX export on every fetch.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(_ context.Context, _ domain.FilterCriteria) (*domain.Dataset, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := importer.Parse(s.Path, f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return &domain.Dataset{
		Records: records,
		Options: optionsOf(records),
		Origin:  "file:" + filepath.Base(s.Path),
	}, nil
}
