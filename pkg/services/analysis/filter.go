// Package analysis turns a flat list of inspection records into chart-ready
// summaries. Every function is pure and safe for concurrent use.
package analysis

import (
	"strings"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
)

// Filter returns the records matching every set constraint of c, in input order.
// Vehicle type and color use case-insensitive substring matching.
func Filter(records []domain.InspectionRecord, c domain.FilterCriteria) []domain.InspectionRecord {
	if c.IsEmpty() {
		return records
	}

	filtered := make([]domain.InspectionRecord, 0, len(records))
	for _, r := range records {
		if matches(r, c) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matches(r domain.InspectionRecord, c domain.FilterCriteria) bool {
	// ISO dates compare correctly as strings.
	if c.StartDate != "" && r.Date < c.StartDate {
		return false
	}
	if c.EndDate != "" && (r.Date == "" || r.Date > c.EndDate) {
		return false
	}
	if !containsFold(r.VehicleType, c.VehicleType) || !containsFold(r.Color, c.Color) {
		return false
	}
	if c.Repainted.IsSet() && r.Repainted != c.Repainted {
		return false
	}
	if c.Accepted.IsSet() && r.Accepted != c.Accepted {
		return false
	}
	return true
}

func containsFold(value, want string) bool {
	if want == "" {
		return true
	}
	if value == "" {
		return false
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(want))
}
