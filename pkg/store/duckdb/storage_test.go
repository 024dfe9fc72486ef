package duckdb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_BootsSchema(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "duckdb-test-*")
	require.NoError(t, err)

	defer func() {
		err := os.RemoveAll(tmpDir)
		if err != nil {
			t.Errorf("failed to cleanup test directory: %v", err)
		}
	}()

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO inspection_records (id, origin, batch_id, booth) VALUES (?, ?, ?, ?), (?, ?, ?, ?)`,
		"r-1", "import", "b-1", "BT 1",
		"r-2", "import", "b-1", "BT 2",
	)
	require.NoError(t, err)

	var first, second int64
	require.NoError(t, db.QueryRow(`SELECT seq FROM inspection_records WHERE id = 'r-1'`).Scan(&first))
	require.NoError(t, db.QueryRow(`SELECT seq FROM inspection_records WHERE id = 'r-2'`).Scan(&second))
	assert.Less(t, first, second)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sync_state").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestInTransaction(t *testing.T) {
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		err := InTransaction(ctx, db, func(ctx context.Context) error {
			require.NotNil(t, GetTransaction(ctx))
			_, err := Conn(ctx, db).ExecContext(ctx,
				`INSERT INTO sync_state (profile, status) VALUES ('a', 'finished')`)
			return err
		})
		require.NoError(t, err)

		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sync_state WHERE profile = 'a'`).Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := InTransaction(ctx, db, func(ctx context.Context) error {
			_, err := Conn(ctx, db).ExecContext(ctx,
				`INSERT INTO sync_state (profile, status) VALUES ('b', 'finished')`)
			require.NoError(t, err)
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sync_state WHERE profile = 'b'`).Scan(&count))
		assert.Equal(t, 0, count)
	})
}
