package inspection

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/de-tools/defect-atlas/pkg/models/store"
	"github.com/de-tools/defect-atlas/pkg/store/duckdb"
)

// Store keeps inspection records grouped by origin. Records are returned in
// insertion order.
type Store interface {
	// Add inserts the batch and its records, skipping records whose id
	// already exists for the origin. It returns the number inserted.
	Add(ctx context.Context, batch store.ImportBatch, records []store.InspectionRecord) (int, error)
	// ReplaceOrigin drops every record of the batch origin before adding.
	ReplaceOrigin(ctx context.Context, batch store.ImportBatch, records []store.InspectionRecord) (int, error)
	// List returns records with from <= date <= to; empty bounds are open.
	List(ctx context.Context, from, to string) ([]store.InspectionRecord, error)
	FilterOptions(ctx context.Context) (vehicleTypes, colors []string, err error)
	ListBatches(ctx context.Context) ([]store.ImportBatch, error)
}

type inspectionStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &inspectionStore{db: db}, nil
}

func (s *inspectionStore) Add(ctx context.Context, batch store.ImportBatch, records []store.InspectionRecord) (int, error) {
	conn := duckdb.Conn(ctx, s.db)
	query := `
		INSERT INTO inspection_records (
			id, origin, batch_id, inspection_date, inspection_time, vehicle_type,
			color, booth, defect_area, defect_type, repainted, accepted, extra
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		) ON CONFLICT DO NOTHING`

	inserted := 0
	if len(records) > 0 {
		stmt, err := conn.PrepareContext(ctx, query)
		if err != nil {
			return 0, fmt.Errorf("prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, record := range records {
			extra, err := marshalExtra(record.Extra)
			if err != nil {
				return inserted, fmt.Errorf("marshal extra: %w", err)
			}

			res, err := stmt.ExecContext(ctx,
				record.ID,
				batch.Origin,
				batch.ID,
				record.Date,
				record.Time,
				record.VehicleType,
				record.Color,
				record.Booth,
				record.DefectArea,
				record.DefectType,
				record.Repainted,
				record.Accepted,
				extra,
			)
			if err != nil {
				return inserted, fmt.Errorf("insert record %s: %w", record.ID, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += int(n)
			}
		}
	}

	_, err := conn.ExecContext(ctx,
		`INSERT INTO import_batches (id, origin, source, records, inserted) VALUES (?, ?, ?, ?, ?)`,
		batch.ID, batch.Origin, batch.Source, len(records), inserted,
	)
	if err != nil {
		return inserted, fmt.Errorf("insert batch: %w", err)
	}
	return inserted, nil
}

func (s *inspectionStore) ReplaceOrigin(ctx context.Context, batch store.ImportBatch, records []store.InspectionRecord) (int, error) {
	_, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM inspection_records WHERE origin = ?`, batch.Origin)
	if err != nil {
		return 0, fmt.Errorf("clear origin %s: %w", batch.Origin, err)
	}
	return s.Add(ctx, batch, records)
}

func (s *inspectionStore) List(ctx context.Context, from, to string) ([]store.InspectionRecord, error) {
	var (
		where []string
		args  []any
	)
	if from != "" {
		where = append(where, "inspection_date >= ?")
		args = append(args, from)
	}
	if to != "" {
		where = append(where, "inspection_date <> ''", "inspection_date <= ?")
		args = append(args, to)
	}

	query := `
		SELECT id, origin, batch_id, inspection_date, inspection_time, vehicle_type,
			color, booth, defect_area, defect_type, repainted, accepted, extra
		FROM inspection_records`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq"

	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *inspectionStore) FilterOptions(ctx context.Context) ([]string, []string, error) {
	vehicleTypes, err := s.distinct(ctx, "vehicle_type")
	if err != nil {
		return nil, nil, err
	}
	colors, err := s.distinct(ctx, "color")
	if err != nil {
		return nil, nil, err
	}
	return vehicleTypes, colors, nil
}

func (s *inspectionStore) distinct(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(
		`SELECT DISTINCT %[1]s FROM inspection_records WHERE %[1]s <> '' ORDER BY %[1]s`, column)
	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query distinct %s: %w", column, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (s *inspectionStore) ListBatches(ctx context.Context) ([]store.ImportBatch, error) {
	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT id, origin, source, records, inserted, created_at
		FROM import_batches
		ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	batches := make([]store.ImportBatch, 0)
	for rows.Next() {
		var b store.ImportBatch
		if err := rows.Scan(&b.ID, &b.Origin, &b.Source, &b.Records, &b.Inserted, &b.CreatedAt); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

func scanRecords(rows *sql.Rows) ([]store.InspectionRecord, error) {
	records := make([]store.InspectionRecord, 0)
	for rows.Next() {
		var (
			r     store.InspectionRecord
			extra sql.NullString
		)
		err := rows.Scan(
			&r.ID, &r.Origin, &r.BatchID, &r.Date, &r.Time, &r.VehicleType,
			&r.Color, &r.Booth, &r.DefectArea, &r.DefectType, &r.Repainted, &r.Accepted, &extra,
		)
		if err != nil {
			return nil, err
		}
		if extra.Valid && extra.String != "" {
			if err := json.Unmarshal([]byte(extra.String), &r.Extra); err != nil {
				return nil, fmt.Errorf("unmarshal extra of %s: %w", r.ID, err)
			}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func marshalExtra(extra map[string]string) (sql.NullString, error) {
	if len(extra) == 0 {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(extra)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}
