package analysis

import (
	"testing"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByTime_Hourly(t *testing.T) {
	records := []domain.InspectionRecord{
		{ID: "a", Date: "2024-03-10", Time: "08:15"},
		{ID: "b", Date: "2024-03-11", Time: "08:45"},
		{ID: "c", Date: "2024-03-11", Time: "13:00"},
		{ID: "d", Date: "2024-03-12", Time: "7:30"},
		{ID: "e", Date: "2024-03-12", Time: ""},
		{ID: "f", Date: "2024-03-12", Time: "25:00"},
	}

	got := ByTime(records, domain.TimeModeHourly)

	assert.Equal(t, []domain.TimeBucket{
		{Label: "07:00", Count: 1, Dates: 1},
		{Label: "08:00", Count: 2, Dates: 2},
		{Label: "13:00", Count: 1, Dates: 1},
		{Label: Unknown, Count: 2, Dates: 1},
	}, got)
}

func TestByTime_Daily(t *testing.T) {
	records := sampleRecords()

	got := ByTime(records, domain.TimeModeDaily)

	require.Len(t, got, 4)
	assert.Equal(t, "2024-03-10", got[0].Label)
	assert.Equal(t, "2024-03-12", got[2].Label)
	assert.Equal(t, Unknown, got[3].Label)

	dated, total := 0, 0
	for _, b := range got {
		total += b.Count
		if b.Label != Unknown {
			dated += b.Count
		}
	}
	assert.Equal(t, 3, dated)
	assert.Equal(t, len(records), total)
}

func TestByTime_WeeklyUsesSundayToSaturday(t *testing.T) {
	tests := []struct {
		date  string
		label string
	}{
		{date: "2024-03-13", label: "3/10 ~ 3/16"}, // Wednesday
		{date: "2024-03-10", label: "3/10 ~ 3/16"}, // Sunday
		{date: "2024-03-16", label: "3/10 ~ 3/16"}, // Saturday
		{date: "2024-02-28", label: "2/25 ~ 3/2"},  // leap year
		{date: "2025-01-01", label: "12/29 ~ 1/4"}, // year boundary
	}

	for _, tc := range tests {
		t.Run(tc.date, func(t *testing.T) {
			got := ByTime([]domain.InspectionRecord{{Date: tc.date}}, domain.TimeModeWeekly)
			require.Len(t, got, 1)
			assert.Equal(t, tc.label, got[0].Label)
			assert.Equal(t, 1, got[0].Count)
		})
	}
}

func TestByTime_WeeklyIsChronological(t *testing.T) {
	records := []domain.InspectionRecord{
		{Date: "2024-11-06"},
		{Date: "2024-10-02"},
		{Date: "2024-10-03"},
		{Date: "not-a-date"},
	}

	got := ByTime(records, domain.TimeModeWeekly)

	assert.Equal(t, []domain.TimeBucket{
		{Label: "9/29 ~ 10/5", Count: 2, Dates: 2},
		{Label: "11/3 ~ 11/9", Count: 1, Dates: 1},
		{Label: Unknown, Count: 1, Dates: 1},
	}, got)
}

func TestByTime_UnknownMode(t *testing.T) {
	assert.Nil(t, ByTime(sampleRecords(), domain.TimeMode("monthly")))
}
