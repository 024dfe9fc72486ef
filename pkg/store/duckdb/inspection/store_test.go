package inspection

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/defect-atlas/pkg/models/store"
	"github.com/de-tools/defect-atlas/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupTestDB(t *testing.T) *sql.DB {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	return db
}

func setupFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	store, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{
		db:    db,
		store: store,
	}
}

func sampleRecords() []store.InspectionRecord {
	return []store.InspectionRecord{
		{
			ID: "r-3", Date: "2024-03-15", Time: "08:30", VehicleType: "K5", Color: "White",
			Booth: "BT 1", DefectArea: "DR_FRT_LH_DUST", DefectType: "DUST",
			Repainted: sql.NullBool{Bool: true, Valid: true},
			Accepted:  sql.NullBool{Bool: false, Valid: true},
			Extra:     map[string]string{"Line": "L2"},
		},
		{
			ID: "r-1", Date: "2024-03-20", Time: "14:00", VehicleType: "EV6", Color: "Black",
			Booth: "BT 2",
		},
		{
			ID: "r-2", Time: "21:00", VehicleType: "K5", Color: "",
		},
	}
}

func TestNewStore(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupFixture(t)
		assert.NotNil(t, f.store)
	})

	t.Run("nil db", func(t *testing.T) {
		store, err := NewStore(nil)
		assert.Error(t, err)
		assert.Nil(t, store)
	})
}

func TestStore_AddAndList(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	batch := store.ImportBatch{ID: "b-1", Origin: "import", Source: "march.csv"}

	inserted, err := f.store.Add(ctx, batch, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	t.Run("insertion order and round trip", func(t *testing.T) {
		records, err := f.store.List(ctx, "", "")
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, []string{"r-3", "r-1", "r-2"}, []string{records[0].ID, records[1].ID, records[2].ID})

		first := records[0]
		assert.Equal(t, "import", first.Origin)
		assert.Equal(t, "b-1", first.BatchID)
		assert.Equal(t, sql.NullBool{Bool: true, Valid: true}, first.Repainted)
		assert.Equal(t, sql.NullBool{Bool: false, Valid: true}, first.Accepted)
		assert.Equal(t, map[string]string{"Line": "L2"}, first.Extra)
		assert.False(t, records[1].Repainted.Valid)
		assert.Nil(t, records[1].Extra)
	})

	t.Run("date bounds", func(t *testing.T) {
		records, err := f.store.List(ctx, "2024-03-16", "")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "r-1", records[0].ID)

		records, err = f.store.List(ctx, "", "2024-03-16")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "r-3", records[0].ID)
	})

	t.Run("re-adding is idempotent", func(t *testing.T) {
		again, err := f.store.Add(ctx, store.ImportBatch{ID: "b-2", Origin: "import", Source: "march.csv"}, sampleRecords())
		require.NoError(t, err)
		assert.Equal(t, 0, again)

		records, err := f.store.List(ctx, "", "")
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("filter options", func(t *testing.T) {
		vehicleTypes, colors, err := f.store.FilterOptions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"EV6", "K5"}, vehicleTypes)
		assert.Equal(t, []string{"Black", "White"}, colors)
	})

	t.Run("batches", func(t *testing.T) {
		batches, err := f.store.ListBatches(ctx)
		require.NoError(t, err)
		require.Len(t, batches, 2)
		byID := map[string]store.ImportBatch{}
		for _, b := range batches {
			byID[b.ID] = b
		}
		assert.Equal(t, 3, byID["b-1"].Records)
		assert.Equal(t, 3, byID["b-1"].Inserted)
		assert.Equal(t, 0, byID["b-2"].Inserted)
		assert.Equal(t, "march.csv", byID["b-2"].Source)
		assert.False(t, byID["b-1"].CreatedAt.IsZero())
	})
}

func TestStore_ReplaceOrigin(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.store.Add(ctx, store.ImportBatch{ID: "b-1", Origin: "line-a", Source: "sync"}, sampleRecords())
	require.NoError(t, err)
	_, err = f.store.Add(ctx, store.ImportBatch{ID: "b-2", Origin: "import", Source: "x.csv"}, sampleRecords()[:1])
	require.NoError(t, err)

	err = duckdb.InTransaction(ctx, f.db, func(ctx context.Context) error {
		_, err := f.store.ReplaceOrigin(ctx, store.ImportBatch{ID: "b-3", Origin: "line-a", Source: "sync"},
			[]store.InspectionRecord{{ID: "r-9", Date: "2024-04-01"}})
		return err
	})
	require.NoError(t, err)

	records, err := f.store.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "import", records[0].Origin)
	assert.Equal(t, "r-9", records[1].ID)
	assert.Equal(t, "b-3", records[1].BatchID)
}

func TestStore_Add_PrepareFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPrepare("INSERT INTO inspection_records").WillReturnError(errors.New("read-only"))

	s, err := NewStore(db)
	require.NoError(t, err)
	_, err = s.Add(context.Background(), store.ImportBatch{ID: "b", Origin: "import"}, sampleRecords())

	assert.ErrorContains(t, err, "prepare statement")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_List_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, origin").WithArgs("2024-01-01").WillReturnError(errors.New("gone"))

	s, err := NewStore(db)
	require.NoError(t, err)
	_, err = s.List(context.Background(), "2024-01-01", "")

	assert.ErrorContains(t, err, "query records")
	assert.NoError(t, mock.ExpectationsWereMet())
}
