package pharmacy

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

// SnapshotDirectory keeps an atomically swapped in-memory copy of a source
// directory and refreshes it on a schedule. Request-path reads always hit
// the cached snapshot, never the database, so a failed refresh leaves the
// previous snapshot serving.
type SnapshotDirectory struct {
	source    *PostgresDirectory
	fold      Normalizer
	current   atomic.Pointer[MemoryDirectory]
	scheduler *gocron.Scheduler
}

// NewSnapshotDirectory wraps source. Call Start to load the first snapshot
// and begin the refresh schedule.
func NewSnapshotDirectory(source *PostgresDirectory, fold Normalizer) *SnapshotDirectory {
	if fold == nil {
		fold = FoldName
	}
	return &SnapshotDirectory{
		source:    source,
		fold:      fold,
		scheduler: gocron.NewScheduler(time.UTC),
	}
}

// Start performs the initial load and schedules refreshes every interval.
func (d *SnapshotDirectory) Start(ctx context.Context, interval time.Duration) error {
	if err := d.Refresh(ctx); err != nil {
		return fmt.Errorf("initial snapshot load: %w", err)
	}

	if _, err := d.scheduler.Every(interval).Do(func() {
		if err := d.Refresh(context.Background()); err != nil {
			log.Error().Err(err).Msg("snapshot refresh failed")
		}
	}); err != nil {
		return fmt.Errorf("schedule snapshot refresh: %w", err)
	}
	d.scheduler.StartAsync()
	return nil
}

// Stop halts the refresh schedule. The last snapshot keeps serving.
func (d *SnapshotDirectory) Stop() {
	d.scheduler.Stop()
}

// Refresh loads users and medications from the source and swaps the
// snapshot in one step.
func (d *SnapshotDirectory) Refresh(ctx context.Context) error {
	users, err := d.source.ListUsers(ctx)
	if err != nil {
		return err
	}
	meds, err := d.source.ListMedications(ctx)
	if err != nil {
		return err
	}

	d.current.Store(NewMemoryDirectory(users, meds, WithNormalizer(d.fold)))
	log.Info().Int("users", len(users)).Int("medications", len(meds)).Msg("directory snapshot refreshed")
	return nil
}

func (d *SnapshotDirectory) snapshot() (*MemoryDirectory, error) {
	snap := d.current.Load()
	if snap == nil {
		return nil, fmt.Errorf("directory snapshot not loaded")
	}
	return snap, nil
}

func (d *SnapshotDirectory) User(ctx context.Context, userID string) (User, error) {
	snap, err := d.snapshot()
	if err != nil {
		return User{}, err
	}
	return snap.User(ctx, userID)
}

func (d *SnapshotDirectory) MedicationByName(ctx context.Context, name string) (Medication, error) {
	snap, err := d.snapshot()
	if err != nil {
		return Medication{}, err
	}
	return snap.MedicationByName(ctx, name)
}

func (d *SnapshotDirectory) Stock(ctx context.Context, name string) (StockRecord, error) {
	snap, err := d.snapshot()
	if err != nil {
		return StockRecord{}, err
	}
	return snap.Stock(ctx, name)
}

func (d *SnapshotDirectory) MedicationNames(ctx context.Context) ([]string, error) {
	snap, err := d.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.MedicationNames(ctx)
}
