package store

import (
	"database/sql"
	"time"
)

type InspectionRecord struct {
	ID          string
	Origin      string
	BatchID     string
	Date        string
	Time        string
	VehicleType string
	Color       string
	Booth       string
	DefectArea  string
	DefectType  string
	Repainted   sql.NullBool
	Accepted    sql.NullBool
	Extra       map[string]string
}

// ImportBatch is one load into the store: a file upload, a CLI import or a
// sync run.
type ImportBatch struct {
	ID        string
	Origin    string
	Source    string
	Records   int
	Inserted  int
	CreatedAt time.Time
}
