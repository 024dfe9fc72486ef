package adapters

import (
	"database/sql"

	"github.com/de-tools/defect-atlas/pkg/models/api"
	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/de-tools/defect-atlas/pkg/models/store"
	"golang.org/x/exp/maps"
)

func MapTriStateToNullBool(t domain.TriState) sql.NullBool {
	if !t.IsSet() {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: t == domain.TriTrue, Valid: true}
}

func MapNullBoolToTriState(b sql.NullBool) domain.TriState {
	if !b.Valid {
		return domain.TriUnknown
	}
	return domain.TriStateOf(b.Bool)
}

func MapTriStateToApi(t domain.TriState) *bool {
	if !t.IsSet() {
		return nil
	}
	b := t == domain.TriTrue
	return &b
}

func MapDomainInspectionToStore(r domain.InspectionRecord) store.InspectionRecord {
	return store.InspectionRecord{
		ID:          r.ID,
		Date:        r.Date,
		Time:        r.Time,
		VehicleType: r.VehicleType,
		Color:       r.Color,
		Booth:       r.Booth,
		DefectArea:  r.DefectArea,
		DefectType:  r.DefectType,
		Repainted:   MapTriStateToNullBool(r.Repainted),
		Accepted:    MapTriStateToNullBool(r.Accepted),
		Extra:       cloneExtra(r.Extra),
	}
}

func MapStoreInspectionToDomain(r store.InspectionRecord) domain.InspectionRecord {
	return domain.InspectionRecord{
		ID:          r.ID,
		Date:        r.Date,
		Time:        r.Time,
		VehicleType: r.VehicleType,
		Color:       r.Color,
		Booth:       r.Booth,
		DefectArea:  r.DefectArea,
		DefectType:  r.DefectType,
		Repainted:   MapNullBoolToTriState(r.Repainted),
		Accepted:    MapNullBoolToTriState(r.Accepted),
		Extra:       cloneExtra(r.Extra),
	}
}

func MapInspectionDomainToApi(r domain.InspectionRecord) api.InspectionRecord {
	return api.InspectionRecord{
		ID:          r.ID,
		Date:        r.Date,
		Time:        r.Time,
		VehicleType: r.VehicleType,
		Color:       r.Color,
		Booth:       r.Booth,
		DefectArea:  r.DefectArea,
		DefectType:  r.DefectType,
		IsRepainted: MapTriStateToApi(r.Repainted),
		IsAccepted:  MapTriStateToApi(r.Accepted),
		Extra:       cloneExtra(r.Extra),
	}
}

func MapInspectionApiToDomain(r api.InspectionRecord) domain.InspectionRecord {
	rec := domain.InspectionRecord{
		ID:          r.ID,
		Date:        r.Date,
		Time:        r.Time,
		VehicleType: r.VehicleType,
		Color:       r.Color,
		Booth:       r.Booth,
		DefectArea:  r.DefectArea,
		DefectType:  r.DefectType,
		Extra:       cloneExtra(r.Extra),
	}
	if r.IsRepainted != nil {
		rec.Repainted = domain.TriStateOf(*r.IsRepainted)
	}
	if r.IsAccepted != nil {
		rec.Accepted = domain.TriStateOf(*r.IsAccepted)
	}
	return rec
}

func MapInspectionsDomainToStore(records []domain.InspectionRecord) []store.InspectionRecord {
	out := make([]store.InspectionRecord, 0, len(records))
	for _, r := range records {
		out = append(out, MapDomainInspectionToStore(r))
	}
	return out
}

func MapInspectionsStoreToDomain(records []store.InspectionRecord) []domain.InspectionRecord {
	out := make([]domain.InspectionRecord, 0, len(records))
	for _, r := range records {
		out = append(out, MapStoreInspectionToDomain(r))
	}
	return out
}

func MapInspectionsApiToDomain(records []api.InspectionRecord) []domain.InspectionRecord {
	out := make([]domain.InspectionRecord, 0, len(records))
	for _, r := range records {
		out = append(out, MapInspectionApiToDomain(r))
	}
	return out
}

func MapDatasetDomainToApi(ds *domain.Dataset) api.InspectionResponse {
	records := make([]api.InspectionRecord, 0, len(ds.Records))
	for _, r := range ds.Records {
		records = append(records, MapInspectionDomainToApi(r))
	}
	return api.InspectionResponse{
		Success: true,
		Data: &api.InspectionData{
			InspectionData: records,
			FilterOptions: api.FilterOptions{
				VehicleTypes: nonNil(ds.Options.VehicleTypes),
				Colors:       nonNil(ds.Options.Colors),
			},
		},
	}
}

func MapImportBatchStoreToApi(b store.ImportBatch) api.ImportBatch {
	return api.ImportBatch{
		ID:        b.ID,
		Origin:    b.Origin,
		Source:    b.Source,
		Records:   b.Records,
		Inserted:  b.Inserted,
		CreatedAt: b.CreatedAt,
	}
}

func cloneExtra(extra map[string]string) map[string]string {
	if extra == nil {
		return nil
	}
	return maps.Clone(extra)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
