package export

import (
	"bytes"
	"testing"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	report := &domain.Report{
		Title:   "Defects by booth",
		Origin:  "fixture",
		Records: 3,
		Filters: domain.FilterCriteria{StartDate: "2024-03-01", Accepted: domain.TriFalse},
		Sections: []domain.ReportSection{{
			Title:   "Booths",
			Summary: map[string]interface{}{"booths": 2},
			Details: []domain.ReportDetail{
				{Name: "BT 1", Value: 2, Unit: "defects", Description: "66.7% of records"},
				{Name: "BT 2", Value: 1, Unit: "defects"},
			},
		}},
	}

	require.NoError(t, NewReporter(&buf).Handle(report))

	out := buf.String()
	assert.Contains(t, out, "Defects by booth")
	assert.Contains(t, out, "Filters: start=2024-03-01, accepted=false")
	assert.Contains(t, out, "booths: 2")
	assert.Contains(t, out, "| BT 1")
	assert.Contains(t, out, "66.7% of records")
}

func TestDescribeFilters(t *testing.T) {
	assert.Equal(t, "none", DescribeFilters(domain.FilterCriteria{}))
	assert.Equal(t, "vehicle=K5, color=Red, repainted=true",
		DescribeFilters(domain.FilterCriteria{VehicleType: "K5", Color: "Red", Repainted: domain.TriTrue}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
