// Package fixture generates demo inspection data with realistic shift, booth
// and busy-day distributions. Output is deterministic for a given seed and Now.
package fixture

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
)

const Origin = "fixture"

var (
	vehicleTypes = []string{"Sedan", "SUV", "Hatchback", "Truck", "EV6", "Sportage", "Sorento", "K5"}
	colors       = []string{"Red", "Blue", "White", "Black", "Silver", "Gray", "Green", "Yellow"}
	areas        = []string{"DR", "FENDER", "HD", "ROOF", "TRUNK", "BUMPER"}
	positions    = []string{"FRT", "RR"}
	sides        = []string{"LH", "RH"}
	defectTypes  = []string{"DUST", "CRATERING", "SCRATCH", "DENT", "ORANGE_PEEL", "WATER_MARK", "PAINT_RUN"}

	// Morning shift is slots 0-9, afternoon 10-19, evening 20-22.
	timeSlots = []string{
		"07:00", "07:30", "08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
		"19:00", "20:00", "21:00",
	}
)

const (
	DefaultCount = 200
	DefaultDays  = 45
	busyDayCount = 10
)

type Generator struct {
	Seed  uint64
	Count int
	Days  int
	Now   time.Time
}

func NewGenerator(seed uint64, count, days int) *Generator {
	return &Generator{Seed: seed, Count: count, Days: days, Now: time.Now()}
}

// Generate builds a dataset of Count records spread over the Days before Now.
func (g *Generator) Generate() *domain.Dataset {
	count, days := g.Count, g.Days
	if count <= 0 {
		count = DefaultCount
	}
	if days <= 0 {
		days = DefaultDays
	}
	now := g.Now
	if now.IsZero() {
		now = time.Now()
	}

	rng := rand.New(rand.NewPCG(g.Seed, g.Seed^0x9e3779b97f4a7c15))
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days)

	busyDays := make([]int, busyDayCount)
	for i := range busyDays {
		busyDays[i] = rng.IntN(days)
	}

	records := make([]domain.InspectionRecord, 0, count)
	for i := 0; i < count; i++ {
		offset := rng.IntN(days)
		if rng.Float64() < 0.6 {
			offset = busyDays[rng.IntN(len(busyDays))]
		}
		date := start.AddDate(0, 0, offset)
		defectType := pick(rng, defectTypes)

		records = append(records, domain.InspectionRecord{
			ID:          fmt.Sprintf("record-%d", i),
			Date:        date.Format(domain.DateLayout),
			Time:        shiftSlot(rng),
			VehicleType: pick(rng, vehicleTypes),
			Color:       pick(rng, colors),
			Booth:       booth(rng),
			DefectArea:  fmt.Sprintf("%s_%s_%s_%s", pick(rng, areas), pick(rng, positions), pick(rng, sides), defectType),
			DefectType:  defectType,
			Repainted:   domain.TriStateOf(rng.Float64() < 0.5),
			Accepted:    domain.TriStateOf(rng.Float64() < 0.7),
		})
	}

	return &domain.Dataset{
		Records: records,
		Options: domain.FilterOptions{
			VehicleTypes: append([]string(nil), vehicleTypes...),
			Colors:       append([]string(nil), colors...),
		},
		Origin: Origin,
	}
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}

// 45% morning, 45% afternoon, 10% evening.
func shiftSlot(rng *rand.Rand) string {
	switch r := rng.Float64(); {
	case r < 0.45:
		return timeSlots[rng.IntN(10)]
	case r < 0.9:
		return timeSlots[10+rng.IntN(10)]
	default:
		return timeSlots[20+rng.IntN(3)]
	}
}

func booth(rng *rand.Rand) string {
	switch r := rng.Float64(); {
	case r < 0.4:
		return "BT 1"
	case r < 0.7:
		return "BT 2"
	default:
		return "BT 3"
	}
}
