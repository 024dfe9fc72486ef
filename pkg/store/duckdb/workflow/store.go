package workflow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/defect-atlas/pkg/models/store"
	"github.com/de-tools/defect-atlas/pkg/store/duckdb"
)

// Store persists the last sync outcome of every source profile.
type Store interface {
	// GetState returns nil when the profile has never been synced.
	GetState(ctx context.Context, profile string) (*store.SyncState, error)
	ListStates(ctx context.Context) ([]store.SyncState, error)
	SaveState(ctx context.Context, state store.SyncState) error
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{
		db: db,
	}, nil
}

const selectState = `SELECT profile, status, records, last_synced_at, error, updated_at FROM sync_state`

func (s *defaultStore) GetState(ctx context.Context, profile string) (*store.SyncState, error) {
	row := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, selectState+` WHERE profile = ?`, profile)
	state, err := scanState(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sync state %s: %w", profile, err)
	}
	return state, nil
}

func (s *defaultStore) ListStates(ctx context.Context) ([]store.SyncState, error) {
	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, selectState+` ORDER BY profile`)
	if err != nil {
		return nil, fmt.Errorf("list sync states: %w", err)
	}
	defer rows.Close()

	states := make([]store.SyncState, 0)
	for rows.Next() {
		state, err := scanState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, *state)
	}
	return states, rows.Err()
}

func (s *defaultStore) SaveState(ctx context.Context, state store.SyncState) error {
	var (
		lastSync sql.NullTime
		lastErr  sql.NullString
	)
	if state.LastSyncedAt != nil {
		lastSync = sql.NullTime{Time: *state.LastSyncedAt, Valid: true}
	}
	if state.Error != nil {
		lastErr = sql.NullString{String: *state.Error, Valid: true}
	}
	_, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT OR REPLACE INTO sync_state (profile, status, records, last_synced_at, error, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		state.Profile, state.Status, state.Records, lastSync, lastErr,
	)
	if err != nil {
		return fmt.Errorf("save sync state %s: %w", state.Profile, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanState(row scanner) (*store.SyncState, error) {
	var (
		state    store.SyncState
		lastSync sql.NullTime
		lastErr  sql.NullString
	)
	if err := row.Scan(&state.Profile, &state.Status, &state.Records, &lastSync, &lastErr, &state.UpdatedAt); err != nil {
		return nil, err
	}
	if lastSync.Valid {
		t := lastSync.Time
		state.LastSyncedAt = &t
	}
	if lastErr.Valid {
		e := lastErr.String
		state.Error = &e
	}
	return &state, nil
}
