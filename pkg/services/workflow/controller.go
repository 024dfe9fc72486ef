// Package workflow keeps the embedded store in step with remote sources.
// Every registered profile is pulled on a fixed interval and its records
// replace the previous copy of that origin.
package workflow

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/de-tools/defect-atlas/pkg/adapters"
	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/de-tools/defect-atlas/pkg/models/store"
	"github.com/de-tools/defect-atlas/pkg/services/source"
	"github.com/de-tools/defect-atlas/pkg/store/duckdb"
	"github.com/de-tools/defect-atlas/pkg/store/duckdb/inspection"
	"github.com/de-tools/defect-atlas/pkg/store/duckdb/workflow"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Publisher receives an event whenever the stored dataset changes.
type Publisher interface {
	Publish(ctx context.Context, event domain.DatasetEvent)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, domain.DatasetEvent) {}

type Controller struct {
	db        *sql.DB
	records   inspection.Store
	states    workflow.Store
	publisher Publisher
	interval  time.Duration
	now       func() time.Time

	mu        sync.Mutex
	sources   map[string]source.Source
	scheduler gocron.Scheduler
}

func NewController(
	db *sql.DB,
	records inspection.Store,
	states workflow.Store,
	publisher Publisher,
	interval time.Duration,
) *Controller {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &Controller{
		db:        db,
		records:   records,
		states:    states,
		publisher: publisher,
		interval:  interval,
		now:       time.Now,
		sources:   make(map[string]source.Source),
	}
}

// Register adds a profile to sync. Registering after Start has no effect
// until the next Start.
func (c *Controller) Register(profile string, src source.Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[profile] = src
}

func (c *Controller) Profiles() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunOnce pulls one profile and replaces its records in the store. The
// outcome is recorded in the sync state either way.
func (c *Controller) RunOnce(ctx context.Context, profile string) (domain.SyncState, error) {
	c.mu.Lock()
	src, ok := c.sources[profile]
	c.mu.Unlock()
	if !ok {
		return domain.SyncState{}, fmt.Errorf("profile not registered: %s", profile)
	}

	logger := zerolog.Ctx(ctx).With().Str("profile", profile).Logger()
	state := domain.SyncState{Profile: profile, Status: domain.SyncStatusPending}
	if prev, err := c.states.GetState(ctx, profile); err == nil && prev != nil {
		state.LastSyncedAt = prev.LastSyncedAt
		state.Records = prev.Records
	}
	if err := c.states.SaveState(ctx, adapters.MapDomainSyncStateToStore(state)); err != nil {
		return state, err
	}

	ds, err := src.Fetch(ctx, domain.FilterCriteria{})
	if err != nil {
		logger.Error().Err(err).Msg("sync fetch failed")
		return c.fail(ctx, state, err)
	}

	batch := store.ImportBatch{ID: uuid.NewString(), Origin: profile, Source: "sync:" + ds.Origin}
	err = duckdb.InTransaction(ctx, c.db, func(ctx context.Context) error {
		_, err := c.records.ReplaceOrigin(ctx, batch, adapters.MapInspectionsDomainToStore(ds.Records))
		return err
	})
	if err != nil {
		logger.Error().Err(err).Msg("sync store failed")
		return c.fail(ctx, state, err)
	}

	syncedAt := c.now().UTC()
	state.Status = domain.SyncStatusFinished
	state.Records = len(ds.Records)
	state.LastSyncedAt = &syncedAt
	state.Error = nil
	if err := c.states.SaveState(ctx, adapters.MapDomainSyncStateToStore(state)); err != nil {
		return state, err
	}

	logger.Info().Int("records", state.Records).Str("batch_id", batch.ID).Msg("sync finished")
	c.publisher.Publish(ctx, domain.DatasetEvent{
		Type:    domain.EventDatasetUpdated,
		Origin:  profile,
		Records: state.Records,
		At:      syncedAt,
	})
	return state, nil
}

func (c *Controller) fail(ctx context.Context, state domain.SyncState, cause error) (domain.SyncState, error) {
	msg := cause.Error()
	state.Status = domain.SyncStatusFailed
	state.Error = &msg
	if err := c.states.SaveState(ctx, adapters.MapDomainSyncStateToStore(state)); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("profile", state.Profile).Msg("failed to save sync state")
	}
	return state, cause
}

// RunAll syncs every registered profile and returns the first error.
func (c *Controller) RunAll(ctx context.Context) error {
	var firstErr error
	for _, profile := range c.Profiles() {
		if _, err := c.RunOnce(ctx, profile); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Controller) States(ctx context.Context) ([]domain.SyncState, error) {
	rows, err := c.states.ListStates(ctx)
	if err != nil {
		return nil, err
	}
	states := make([]domain.SyncState, 0, len(rows))
	for i := range rows {
		states = append(states, *adapters.MapStoreSyncStateToDomain(&rows[i]))
	}
	return states, nil
}

// Start schedules one job per registered profile. The first run happens
// immediately.
func (c *Controller) Start(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	scheduler, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					logger.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("Sync job panicked")
				}),
			),
		),
	)
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	for _, profile := range c.Profiles() {
		profile := profile
		_, err := scheduler.NewJob(
			gocron.DurationJob(c.interval),
			gocron.NewTask(func() {
				_, _ = c.RunOnce(ctx, profile)
			}),
			gocron.WithName("sync:"+profile),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			_ = scheduler.Shutdown()
			return fmt.Errorf("schedule %s: %w", profile, err)
		}
	}

	c.mu.Lock()
	c.scheduler = scheduler
	c.mu.Unlock()

	logger.Info().Int("profiles", len(c.Profiles())).Dur("interval", c.interval).Msg("Sync scheduler starting")
	scheduler.Start()
	return nil
}

func (c *Controller) Stop() error {
	c.mu.Lock()
	scheduler := c.scheduler
	c.scheduler = nil
	c.mu.Unlock()
	if scheduler == nil {
		return nil
	}
	return scheduler.Shutdown()
}
