package commands

import (
	"database/sql"
	"fmt"

	"github.com/de-tools/defect-atlas/pkg/services/workflow"
	"github.com/de-tools/defect-atlas/pkg/store/duckdb"
	"github.com/de-tools/defect-atlas/pkg/store/duckdb/inspection"
	wfstore "github.com/de-tools/defect-atlas/pkg/store/duckdb/workflow"
)

const defaultDBPath = "defect-atlas.db"

// openController opens the local store and a controller without a schedule
// or event publisher. The caller closes the returned db.
func openController(path string) (*sql.DB, *workflow.Controller, error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: path})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}
	records, err := inspection.NewStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	states, err := wfstore.NewStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, workflow.NewController(db, records, states, nil, 0), nil
}
