package adapters

import (
	"github.com/de-tools/defect-atlas/pkg/models/api"
	"github.com/de-tools/defect-atlas/pkg/models/domain"
)

func MapBoothCountsDomainToApi(counts []domain.BoothCount) []api.BoothCount {
	out := make([]api.BoothCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, api.BoothCount{Booth: c.Booth, Count: c.Count})
	}
	return out
}

func MapTimeBucketsDomainToApi(buckets []domain.TimeBucket) []api.TimeBucket {
	out := make([]api.TimeBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, api.TimeBucket{Label: b.Label, Count: b.Count, Dates: b.Dates})
	}
	return out
}

func MapDefectAreaRowsDomainToApi(rows []domain.DefectAreaRow) []api.DefectAreaRow {
	out := make([]api.DefectAreaRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, api.DefectAreaRow{
			ID:       r.ID,
			Area:     r.Area,
			Count:    r.Count,
			FullPath: r.FullPath,
			Depth:    r.Depth,
		})
	}
	return out
}

func MapDefectAreaViewsDomainToApi(views []domain.DefectAreaView) []api.DefectAreaView {
	out := make([]api.DefectAreaView, 0, len(views))
	for _, v := range views {
		out = append(out, api.DefectAreaView{
			Key:         v.Key,
			DisplayName: v.DisplayName,
			Count:       v.Count,
			Descendants: v.Descendants,
			Details:     v.Details,
		})
	}
	return out
}
