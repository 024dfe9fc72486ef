// Package importer maps tabular inspection exports (CSV or XLSX) with English
// or Korean headers onto inspection records.
package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("file contains no data rows")
)

// Parse reads a CSV or XLSX export. The format is chosen from the file name.
func Parse(name string, r io.Reader) ([]domain.InspectionRecord, error) {
	var (
		table [][]string
		conv  cellConverter
		err   error
	)

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv", ".txt":
		table, err = readCSV(r)
		conv = textCells{}
	case ".xlsx", ".xlsm":
		table, err = readXLSX(r)
		conv = excelCells{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	records := mapRows(table, conv)
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	return records, nil
}

// cellConverter normalises date and time cells for a file format.
type cellConverter interface {
	date(string) string
	time(string) string
}

type textCells struct{}

func (textCells) date(v string) string { return v }
func (textCells) time(v string) string { return v }

func mapRows(table [][]string, conv cellConverter) []domain.InspectionRecord {
	if len(table) < 2 {
		return nil
	}
	headers := table[0]
	fields := columnMap(headers)
	ids := newIDAssigner()

	var records []domain.InspectionRecord
	for _, row := range table[1:] {
		if blank(row) {
			continue
		}
		rec := domain.InspectionRecord{}
		for i, cell := range row {
			if i >= len(headers) {
				break
			}
			value := strings.TrimSpace(cell)
			if fields[i] == FieldNone {
				if value == "" {
					continue
				}
				if rec.Extra == nil {
					rec.Extra = make(map[string]string)
				}
				rec.Extra[strings.TrimSpace(headers[i])] = value
				continue
			}
			setField(&rec, fields[i], value, conv)
		}
		if rec.ID == "" {
			rec.ID = ids.next(rec)
		}
		records = append(records, rec)
	}
	return records
}

func setField(rec *domain.InspectionRecord, f Field, value string, conv cellConverter) {
	switch f {
	case FieldID:
		rec.ID = value
	case FieldDate:
		rec.Date = conv.date(value)
	case FieldTime:
		rec.Time = conv.time(value)
	case FieldVehicle:
		rec.VehicleType = value
	case FieldColor:
		rec.Color = value
	case FieldBooth:
		rec.Booth = value
	case FieldDefectArea:
		rec.DefectArea = value
	case FieldDefectType:
		rec.DefectType = value
	case FieldRepainted:
		rec.Repainted, _ = domain.ParseTriState(value)
	case FieldAccepted:
		rec.Accepted, _ = domain.ParseTriState(value)
	}
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
