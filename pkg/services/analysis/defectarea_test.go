package analysis

import (
	"fmt"
	"testing"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByDefectArea_SingleRecordExpandsEveryPrefix(t *testing.T) {
	got := ByDefectArea([]domain.InspectionRecord{{DefectArea: "DR_FRT_LH_DUST"}})

	require.Len(t, got, 4)
	expected := []struct {
		area, path string
		depth      int
	}{
		{"DR", "DR", 1},
		{"DR_FRT", "DR > FRT", 2},
		{"DR_FRT_LH", "DR > FRT > LH", 3},
		{"DR_FRT_LH_DUST", "DR > FRT > LH > DUST", 4},
	}
	for i, e := range expected {
		assert.Equal(t, e.area, got[i].Area)
		assert.Equal(t, e.path, got[i].FullPath)
		assert.Equal(t, e.depth, got[i].Depth)
		assert.Equal(t, 1, got[i].Count)
	}
}

func TestByDefectArea_CountsAndSkips(t *testing.T) {
	records := []domain.InspectionRecord{
		{DefectArea: "HD_FRT_LH_DUST"},
		{DefectArea: "DR_RR_RH_DENT"},
		{DefectArea: "DR_FRT_LH_DUST"},
		{DefectArea: ""},
		{DefectArea: "DR__FRT"},
	}

	got := ByDefectArea(records)

	counts := map[string]int{}
	for _, row := range got {
		counts[row.Area] = row.Count
	}
	assert.Equal(t, 3, counts["DR"])
	assert.Equal(t, 2, counts["DR_FRT"])
	assert.Equal(t, 1, counts["DR_RR"])
	assert.Equal(t, 1, counts["HD"])
	assert.NotContains(t, counts, "")
	assert.NotContains(t, counts, Unknown)

	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Area, got[i].Area)
	}
}

func TestByDefectArea_IDsFollowFirstSeenOrder(t *testing.T) {
	got := ByDefectArea([]domain.InspectionRecord{{DefectArea: "ROOF_RR"}, {DefectArea: "BUMPER"}})

	byArea := map[string]string{}
	for _, row := range got {
		byArea[row.Area] = row.ID
	}
	assert.Equal(t, "area-0", byArea["ROOF"])
	assert.Equal(t, "area-1", byArea["ROOF_RR"])
	assert.Equal(t, "area-2", byArea["BUMPER"])
	assert.Equal(t, "BUMPER", got[0].Area)
}

func TestDefectAreaDetail_TopAndMid(t *testing.T) {
	rows := ByDefectArea([]domain.InspectionRecord{
		{DefectArea: "DR_FRT_LH_DUST"},
		{DefectArea: "DR_FRT_RH_DUST"},
		{DefectArea: "DR_RR_LH_DENT"},
		{DefectArea: "HD_FRT_LH_DUST"},
	})

	top := DefectAreaDetail(rows, domain.DetailTop)
	require.Len(t, top, 2)
	assert.Equal(t, domain.DefectAreaView{
		Key: "DR", DisplayName: "DR", Count: 3, Descendants: 8, Details: "8 sub-categories",
	}, top[0])
	assert.Equal(t, "HD", top[1].Key)
	assert.Equal(t, 1, top[1].Count)

	mid := DefectAreaDetail(rows, domain.DetailMid)
	require.Len(t, mid, 3)
	assert.Equal(t, "DR_FRT", mid[0].Key)
	assert.Equal(t, 2, mid[0].Count)
	assert.Equal(t, 4, mid[0].Descendants)
}

func TestDefectAreaDetail_FullIsCappedAndSorted(t *testing.T) {
	var records []domain.InspectionRecord
	for i := 0; i < 30; i++ {
		for n := 0; n <= i%5; n++ {
			records = append(records, domain.InspectionRecord{DefectArea: fmt.Sprintf("DR_FRT_P%02d", i)})
		}
	}

	full := DefectAreaDetail(ByDefectArea(records), domain.DetailFull)

	require.Len(t, full, FullDetailLimit)
	for i := 1; i < len(full); i++ {
		assert.GreaterOrEqual(t, full[i-1].Count, full[i].Count)
	}
	assert.Equal(t, "DR > FRT > P04", full[0].Details)
	for _, v := range full {
		assert.NotEqual(t, "DR", v.Key)
		assert.NotEqual(t, "DR_FRT", v.Key)
	}
}

func TestDefectAreaDetail_UnknownLevel(t *testing.T) {
	assert.Nil(t, DefectAreaDetail(nil, domain.DetailLevel("leaf")))
}
