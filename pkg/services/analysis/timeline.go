package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
)

type timeBucket struct {
	label string
	order int64 // hour, or week start in unix days
	count int
	dates map[string]struct{}
}

// ByTime buckets records by hour of day, calendar day or Sunday-start week.
// Records with a missing or unparseable time (hourly) or date (daily, weekly)
// land in an Unknown bucket that sorts last.
func ByTime(records []domain.InspectionRecord, mode domain.TimeMode) []domain.TimeBucket {
	var keyFn func(domain.InspectionRecord) (key, label string, order int64, ok bool)
	switch mode {
	case domain.TimeModeHourly:
		keyFn = hourKey
	case domain.TimeModeDaily:
		keyFn = dayKey
	case domain.TimeModeWeekly:
		keyFn = weekKey
	default:
		return nil
	}

	buckets := make(map[string]*timeBucket)
	for _, r := range records {
		key, label, order, ok := keyFn(r)
		if !ok {
			key, label = Unknown, Unknown
		}
		b, exists := buckets[key]
		if !exists {
			b = &timeBucket{label: label, order: order, dates: make(map[string]struct{})}
			buckets[key] = b
		}
		b.count++
		if r.Date != "" {
			b.dates[r.Date] = struct{}{}
		}
	}

	sorted := make([]*timeBucket, 0, len(buckets))
	for _, b := range buckets {
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if (a.label == Unknown) != (b.label == Unknown) {
			return b.label == Unknown
		}
		if a.order != b.order {
			return a.order < b.order
		}
		return a.label < b.label
	})

	result := make([]domain.TimeBucket, 0, len(sorted))
	for _, b := range sorted {
		result = append(result, domain.TimeBucket{Label: b.label, Count: b.count, Dates: len(b.dates)})
	}
	return result
}

func hourKey(r domain.InspectionRecord) (string, string, int64, bool) {
	hh, _, found := strings.Cut(strings.TrimSpace(r.Time), ":")
	if !found {
		return "", "", 0, false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return "", "", 0, false
	}
	label := fmt.Sprintf("%02d:00", hour)
	return label, label, int64(hour), true
}

// Daily labels are the date verbatim; order 0 leaves the label comparison to sort them.
func dayKey(r domain.InspectionRecord) (string, string, int64, bool) {
	if r.Date == "" {
		return "", "", 0, false
	}
	return r.Date, r.Date, 0, true
}

// Weeks are keyed by their ISO start date so that equal M/D labels from
// different years stay apart.
func weekKey(r domain.InspectionRecord) (string, string, int64, bool) {
	date, err := time.Parse(domain.DateLayout, r.Date)
	if err != nil {
		return "", "", 0, false
	}
	start := date.AddDate(0, 0, -int(date.Weekday()))
	end := start.AddDate(0, 0, 6)
	label := fmt.Sprintf("%s ~ %s", shortDate(start), shortDate(end))
	return start.Format(domain.DateLayout), label, start.Unix() / 86400, true
}

func shortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}
