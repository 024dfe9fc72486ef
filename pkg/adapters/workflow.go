package adapters

import (
	"github.com/de-tools/defect-atlas/pkg/models/api"
	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/de-tools/defect-atlas/pkg/models/store"
)

func MapStoreSyncStateToDomain(s *store.SyncState) *domain.SyncState {
	if s == nil {
		return nil
	}

	return &domain.SyncState{
		Profile:      s.Profile,
		Status:       domain.SyncStatus(s.Status),
		Records:      s.Records,
		LastSyncedAt: s.LastSyncedAt,
		Error:        s.Error,
	}
}

func MapDomainSyncStateToStore(s domain.SyncState) store.SyncState {
	return store.SyncState{
		Profile:      s.Profile,
		Status:       string(s.Status),
		Records:      s.Records,
		LastSyncedAt: s.LastSyncedAt,
		Error:        s.Error,
	}
}

func MapSyncStateDomainToApi(s domain.SyncState) api.SyncState {
	return api.SyncState{
		Profile:      s.Profile,
		Status:       string(s.Status),
		Records:      s.Records,
		LastSyncedAt: s.LastSyncedAt,
		Error:        s.Error,
	}
}

func MapDatasetEventDomainToApi(e domain.DatasetEvent) api.DatasetEvent {
	return api.DatasetEvent{
		Type:    e.Type,
		Origin:  e.Origin,
		Records: e.Records,
		At:      e.At,
	}
}
