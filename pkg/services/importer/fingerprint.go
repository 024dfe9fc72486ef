package importer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/zeebo/xxh3"
)

// idAssigner derives record IDs from row content. Identical rows get
// distinct IDs through their occurrence index, and importing the same file
// again reproduces the same IDs.
type idAssigner struct {
	seen map[uint64]int
}

func newIDAssigner() *idAssigner {
	return &idAssigner{seen: make(map[uint64]int)}
}

func (a *idAssigner) next(rec domain.InspectionRecord) string {
	content := canonical(rec)
	h := xxh3.HashString(content)
	n := a.seen[h]
	a.seen[h] = n + 1
	return fmt.Sprintf("rec-%016x", xxh3.HashString(fmt.Sprintf("%s\x1e%d", content, n)))
}

func canonical(rec domain.InspectionRecord) string {
	parts := []string{
		rec.Date, rec.Time, rec.VehicleType, rec.Color, rec.Booth,
		rec.DefectArea, rec.DefectType, rec.Repainted.String(), rec.Accepted.String(),
	}
	keys := make([]string, 0, len(rec.Extra))
	for k := range rec.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+rec.Extra[k])
	}
	return strings.Join(parts, "\x1f")
}
