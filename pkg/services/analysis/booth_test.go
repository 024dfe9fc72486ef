package analysis

import (
	"testing"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestByBooth(t *testing.T) {
	got := ByBooth(sampleRecords())

	assert.Equal(t, []domain.BoothCount{
		{Booth: "BT 1", Count: 2},
		{Booth: "BT 2", Count: 1},
		{Booth: Unknown, Count: 1},
	}, got)
}

func TestByBooth_PartitionsRecords(t *testing.T) {
	records := sampleRecords()

	total := 0
	for _, row := range ByBooth(records) {
		total += row.Count
	}

	assert.Equal(t, len(records), total)
}

func TestByBooth_Empty(t *testing.T) {
	assert.Empty(t, ByBooth(nil))
}
