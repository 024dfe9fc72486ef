package analysis

import (
	"sort"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
)

// Unknown replaces missing booth, date and time values.
const Unknown = "Unknown"

// ByBooth counts records per booth, sorted by booth name.
func ByBooth(records []domain.InspectionRecord) []domain.BoothCount {
	counts := make(map[string]int)
	for _, r := range records {
		booth := r.Booth
		if booth == "" {
			booth = Unknown
		}
		counts[booth]++
	}

	result := make([]domain.BoothCount, 0, len(counts))
	for booth, count := range counts {
		result = append(result, domain.BoothCount{Booth: booth, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Booth < result[j].Booth
	})
	return result
}
