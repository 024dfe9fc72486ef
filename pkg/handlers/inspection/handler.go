package inspection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/defect-atlas/pkg/adapters"
	"github.com/de-tools/defect-atlas/pkg/models/api"
	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/de-tools/defect-atlas/pkg/models/store"
	"github.com/de-tools/defect-atlas/pkg/runtime/chart"
	"github.com/de-tools/defect-atlas/pkg/services/analysis"
	"github.com/de-tools/defect-atlas/pkg/services/importer"
	"github.com/de-tools/defect-atlas/pkg/services/source"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const DefaultMaxUploadBytes = 32 << 20

// Ingestor stores uploaded records and lists past loads.
type Ingestor interface {
	Import(ctx context.Context, name string, records []domain.InspectionRecord) (store.ImportBatch, error)
	Batches(ctx context.Context) ([]store.ImportBatch, error)
}

// SyncReporter exposes the last outcome of every synced profile.
type SyncReporter interface {
	States(ctx context.Context) ([]domain.SyncState, error)
}

type Handler struct {
	source         source.Source
	ingestor       Ingestor
	syncs          SyncReporter
	maxUploadBytes int64
}

func NewHandler(src source.Source, ingestor Ingestor, syncs SyncReporter, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		source:         src,
		ingestor:       ingestor,
		syncs:          syncs,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) GetInspection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	criteria, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ds, err := h.source.Fetch(ctx, criteria)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch inspection data")
		writeJSON(w, r, http.StatusBadGateway, api.InspectionResponse{Success: false})
		return
	}

	filtered := &domain.Dataset{
		Records: analysis.Filter(ds.Records, criteria),
		Options: ds.Options,
		Origin:  ds.Origin,
	}
	writeJSON(w, r, http.StatusOK, adapters.MapDatasetDomainToApi(filtered))
}

func (h *Handler) GetBoothSummary(w http.ResponseWriter, r *http.Request) {
	records, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapBoothCountsDomainToApi(analysis.ByBooth(records)))
}

func (h *Handler) GetTimeSummary(w http.ResponseWriter, r *http.Request) {
	mode, err := domain.ParseTimeMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	records, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapTimeBucketsDomainToApi(analysis.ByTime(records, mode)))
}

// GetDefectAreaSummary returns the raw prefix rows, or the rows prepared for
// a detail level when one is requested.
func (h *Handler) GetDefectAreaSummary(w http.ResponseWriter, r *http.Request) {
	levelParam := r.URL.Query().Get("level")
	level, err := domain.ParseDetailLevel(levelParam)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	records, ok := h.load(w, r)
	if !ok {
		return
	}

	rows := analysis.ByDefectArea(records)
	if levelParam == "" {
		writeJSON(w, r, http.StatusOK, adapters.MapDefectAreaRowsDomainToApi(rows))
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapDefectAreaViewsDomainToApi(analysis.DefectAreaDetail(rows, level)))
}

func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	q := r.URL.Query()

	var (
		title string
		bars  func([]domain.InspectionRecord) []chart.Bar
	)
	switch view := chi.URLParam(r, "view"); view {
	case "booth":
		title = "Defects by booth"
		bars = func(records []domain.InspectionRecord) []chart.Bar {
			return chart.BoothBars(analysis.ByBooth(records))
		}
	case "time":
		mode, err := domain.ParseTimeMode(q.Get("mode"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		title = "Defects by time (" + string(mode) + ")"
		bars = func(records []domain.InspectionRecord) []chart.Bar {
			return chart.TimeBars(analysis.ByTime(records, mode))
		}
	case "defect-area":
		level, err := domain.ParseDetailLevel(q.Get("level"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		title = "Defects by area (" + string(level) + ")"
		bars = func(records []domain.InspectionRecord) []chart.Bar {
			return chart.DefectAreaBars(analysis.DefectAreaDetail(analysis.ByDefectArea(records), level))
		}
	default:
		http.Error(w, "unknown chart view: "+view, http.StatusNotFound)
		return
	}

	records, ok := h.load(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := chart.Render(&buf, title, bars(records))
	if errors.Is(err, chart.ErrNothingToDraw) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to render chart")
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error().Err(err).Msg("failed to write chart")
	}
}

func (h *Handler) PostImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing 'file' field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := importer.Parse(header.Filename, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	batch, err := h.ingestor.Import(ctx, header.Filename, records)
	if err != nil {
		logger.Error().Err(err).Str("file", header.Filename).Msg("failed to store import")
		http.Error(w, "failed to store records", http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusCreated, api.ImportResult{
		BatchID:  batch.ID,
		Records:  batch.Records,
		Inserted: batch.Inserted,
	})
}

func (h *Handler) ListImports(w http.ResponseWriter, r *http.Request) {
	batches, err := h.ingestor.Batches(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to list imports")
		http.Error(w, "failed to list imports", http.StatusInternalServerError)
		return
	}
	response := make([]api.ImportBatch, 0, len(batches))
	for _, b := range batches {
		response = append(response, adapters.MapImportBatchStoreToApi(b))
	}
	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) ListSyncStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.syncs.States(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to list sync states")
		http.Error(w, "failed to list sync states", http.StatusInternalServerError)
		return
	}
	response := make([]api.SyncState, 0, len(states))
	for _, s := range states {
		response = append(response, adapters.MapSyncStateDomainToApi(s))
	}
	writeJSON(w, r, http.StatusOK, response)
}

// load fetches and filters the records for a summary request. On failure it
// has already written the response.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) ([]domain.InspectionRecord, bool) {
	criteria, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	ds, err := h.source.Fetch(r.Context(), criteria)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to fetch inspection data")
		http.Error(w, "inspection data unavailable", http.StatusBadGateway)
		return nil, false
	}
	return analysis.Filter(ds.Records, criteria), true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}
