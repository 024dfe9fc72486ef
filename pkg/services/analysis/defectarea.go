package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
)

const (
	// AreaDelimiter separates the segments of a defect-area code.
	AreaDelimiter = "_"
	pathSeparator = " > "

	// FullDetailLimit bounds the full-detail chart so bars stay readable.
	// It is a display limit; ByDefectArea itself never truncates.
	FullDetailLimit = 20
)

// ByDefectArea expands every defect-area code into all of its prefixes and
// counts each prefix once per record, so DR_FRT_LH_DUST contributes to DR,
// DR_FRT, DR_FRT_LH and DR_FRT_LH_DUST. Records without a code are skipped.
// Rows are sorted by key; IDs follow first-seen order.
func ByDefectArea(records []domain.InspectionRecord) []domain.DefectAreaRow {
	index := make(map[string]int)
	var rows []domain.DefectAreaRow

	for _, r := range records {
		segments := areaSegments(r.DefectArea)
		for i := 1; i <= len(segments); i++ {
			key := strings.Join(segments[:i], AreaDelimiter)
			pos, ok := index[key]
			if !ok {
				pos = len(rows)
				index[key] = pos
				rows = append(rows, domain.DefectAreaRow{
					ID:       fmt.Sprintf("area-%d", pos),
					Area:     key,
					FullPath: strings.Join(segments[:i], pathSeparator),
					Depth:    i,
				})
			}
			rows[pos].Count++
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Area < rows[j].Area
	})
	return rows
}

func areaSegments(code string) []string {
	parts := strings.Split(strings.TrimSpace(code), AreaDelimiter)
	segments := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// DefectAreaDetail regroups ByDefectArea rows for one chart detail level.
// Top and mid keep the rows of depth one and two, annotated with how many
// distinct deeper paths they roll up. Full keeps rows of depth three or more,
// ordered by count and capped at FullDetailLimit.
func DefectAreaDetail(rows []domain.DefectAreaRow, level domain.DetailLevel) []domain.DefectAreaView {
	switch level {
	case domain.DetailTop:
		return rollup(rows, 1)
	case domain.DetailMid:
		return rollup(rows, 2)
	case domain.DetailFull:
		return fullDetail(rows)
	default:
		return nil
	}
}

func rollup(rows []domain.DefectAreaRow, depth int) []domain.DefectAreaView {
	var views []domain.DefectAreaView
	for _, row := range rows {
		if row.Depth != depth {
			continue
		}
		prefix := row.Area + AreaDelimiter
		descendants := 0
		for _, other := range rows {
			if other.Depth > depth && strings.HasPrefix(other.Area, prefix) {
				descendants++
			}
		}
		views = append(views, domain.DefectAreaView{
			Key:         row.Area,
			DisplayName: row.Area,
			Count:       row.Count,
			Descendants: descendants,
			Details:     fmt.Sprintf("%d sub-categories", descendants),
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Count != views[j].Count {
			return views[i].Count > views[j].Count
		}
		return views[i].Key < views[j].Key
	})
	return views
}

func fullDetail(rows []domain.DefectAreaRow) []domain.DefectAreaView {
	var views []domain.DefectAreaView
	for _, row := range rows {
		if row.Depth < 3 {
			continue
		}
		views = append(views, domain.DefectAreaView{
			Key:         row.Area,
			DisplayName: row.Area,
			Count:       row.Count,
			Details:     row.FullPath,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Count > views[j].Count
	})
	if len(views) > FullDetailLimit {
		views = views[:FullDetailLimit]
	}
	return views
}
