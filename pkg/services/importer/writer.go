package importer

import (
	"encoding/csv"
	"io"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
)

var csvHeader = []string{
	"ID", "Date", "Time", "Vehicle Type", "Color", "Booth",
	"Defect Area", "Defect Type", "Repaint Status", "Acceptance Status",
}

// WriteCSV writes records with English headers that Parse maps back.
func WriteCSV(w io.Writer, records []domain.InspectionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID, r.Date, r.Time, r.VehicleType, r.Color, r.Booth,
			r.DefectArea, r.DefectType, r.Repainted.String(), r.Accepted.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
