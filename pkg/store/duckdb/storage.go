package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const InspectionSequence = `CREATE SEQUENCE IF NOT EXISTS inspection_seq START 1;`

const InspectionTableSchema = `
	CREATE TABLE IF NOT EXISTS inspection_records (
		id VARCHAR NOT NULL,
		origin VARCHAR NOT NULL,
		batch_id VARCHAR NOT NULL,
		seq BIGINT NOT NULL DEFAULT nextval('inspection_seq'),
		inspection_date VARCHAR NOT NULL DEFAULT '',
		inspection_time VARCHAR NOT NULL DEFAULT '',
		vehicle_type VARCHAR NOT NULL DEFAULT '',
		color VARCHAR NOT NULL DEFAULT '',
		booth VARCHAR NOT NULL DEFAULT '',
		defect_area VARCHAR NOT NULL DEFAULT '',
		defect_type VARCHAR NOT NULL DEFAULT '',
		repainted BOOLEAN NULL,
		accepted BOOLEAN NULL,
		extra VARCHAR NULL,
		PRIMARY KEY (origin, id)
	);
`

const ImportBatchesSchema = `
	CREATE TABLE IF NOT EXISTS import_batches (
		id VARCHAR PRIMARY KEY,
		origin VARCHAR NOT NULL,
		source VARCHAR NOT NULL,
		records INTEGER NOT NULL,
		inserted INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const SyncStateSchema = `
	CREATE TABLE IF NOT EXISTS sync_state (
		profile VARCHAR PRIMARY KEY,
		status VARCHAR NOT NULL,
		records INTEGER NOT NULL DEFAULT 0,
		last_synced_at TIMESTAMP NULL,
		error VARCHAR NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	InspectionSequence,
	InspectionTableSchema,
	ImportBatchesSchema,
	SyncStateSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
