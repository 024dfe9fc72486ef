package api

import "time"

type InspectionRecord struct {
	ID          string            `json:"id"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	VehicleType string            `json:"vehicleType"`
	Color       string            `json:"color"`
	Booth       string            `json:"booth"`
	DefectArea  string            `json:"defectArea"`
	DefectType  string            `json:"defectType"`
	IsRepainted *bool             `json:"isRepainted"`
	IsAccepted  *bool             `json:"isAccepted"`
	Extra       map[string]string `json:"extra,omitempty"`
}

type FilterOptions struct {
	VehicleTypes []string `json:"vehicleTypes"`
	Colors       []string `json:"colors"`
}

type InspectionData struct {
	InspectionData []InspectionRecord `json:"inspectionData"`
	FilterOptions  FilterOptions      `json:"filterOptions"`
}

// InspectionResponse is the envelope of GET /api/inspection. Data is omitted
// when Success is false.
type InspectionResponse struct {
	Success bool            `json:"success"`
	Data    *InspectionData `json:"data,omitempty"`
}

type ImportResult struct {
	BatchID  string `json:"batchId"`
	Records  int    `json:"records"`
	Inserted int    `json:"inserted"`
}

type ImportBatch struct {
	ID        string    `json:"id"`
	Origin    string    `json:"origin"`
	Source    string    `json:"source"`
	Records   int       `json:"records"`
	Inserted  int       `json:"inserted"`
	CreatedAt time.Time `json:"createdAt"`
}

type SyncState struct {
	Profile      string     `json:"profile"`
	Status       string     `json:"status"`
	Records      int        `json:"records"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
	Error        *string    `json:"error,omitempty"`
}

type DatasetEvent struct {
	Type    string    `json:"type"`
	Origin  string    `json:"origin"`
	Records int       `json:"records"`
	At      time.Time `json:"at"`
}
