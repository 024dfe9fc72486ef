package workflow

import (
	"context"

	"github.com/de-tools/defect-atlas/pkg/adapters"
	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/de-tools/defect-atlas/pkg/models/store"
	"github.com/de-tools/defect-atlas/pkg/store/duckdb"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ImportOrigin groups every uploaded or CLI-imported record.
const ImportOrigin = "import"

// Import stores parsed records as one batch. Records already imported are
// skipped, so loading the same file twice is harmless.
func (c *Controller) Import(ctx context.Context, name string, records []domain.InspectionRecord) (store.ImportBatch, error) {
	batch := store.ImportBatch{
		ID:      uuid.NewString(),
		Origin:  ImportOrigin,
		Source:  name,
		Records: len(records),
	}

	err := duckdb.InTransaction(ctx, c.db, func(ctx context.Context) error {
		inserted, err := c.records.Add(ctx, batch, adapters.MapInspectionsDomainToStore(records))
		batch.Inserted = inserted
		return err
	})
	if err != nil {
		return batch, err
	}

	zerolog.Ctx(ctx).Info().
		Str("batch_id", batch.ID).
		Str("file", name).
		Int("records", batch.Records).
		Int("inserted", batch.Inserted).
		Msg("import stored")

	if batch.Inserted > 0 {
		c.publisher.Publish(ctx, domain.DatasetEvent{
			Type:    domain.EventDatasetUpdated,
			Origin:  ImportOrigin,
			Records: batch.Inserted,
			At:      c.now().UTC(),
		})
	}
	return batch, nil
}

func (c *Controller) Batches(ctx context.Context) ([]store.ImportBatch, error) {
	return c.records.ListBatches(ctx)
}
