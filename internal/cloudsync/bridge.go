package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/records"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=bridge_mocks_test.go -package=cloudsync

var ErrAnonymousPartition = errors.New("anonymous partition cannot be synced")

const reconcileTimeout = 30 * time.Second

type profileClient interface {
	Push(ctx context.Context, userID string, exercises []records.Exercise, workouts []records.Entry) error
	Pull(ctx context.Context, userID string) (*Profile, error)
}

type syncStore interface {
	Partition(ctx context.Context, partition records.PartitionID) ([]records.Exercise, []records.Entry)
	SetPartition(ctx context.Context, partition records.PartitionID, exercises []records.Exercise, workouts []records.Entry) error
	LastSync(ctx context.Context, partition records.PartitionID) *time.Time
	SetLastSync(ctx context.Context, partition records.PartitionID, at time.Time) error
}

// Bridge reconciles the local partition with the remote profile store.
// Sync is wholesale replacement in one direction per run, never a merge:
//   - the remote profile has data -> it wins, the local partition is replaced
//   - the remote profile is empty -> the local partition is pushed up
//
// Runs are not serialized against concurrent request handlers, the last
// full-list write wins, same as any other partition write.
type Bridge struct {
	client  profileClient
	store   syncStore
	metrics *metrics.Manager
	syncing atomic.Bool
	now     func() time.Time
	// onPartitionReplaced is called after a remote profile replaces the local
	// partition, e.g. to drop cached read models built from it
	onPartitionReplaced func(partition records.PartitionID)
}

func NewBridge(
	client profileClient,
	store syncStore,
	metrics *metrics.Manager,
	onPartitionReplaced func(records.PartitionID),
) *Bridge {
	return &Bridge{
		client:              client,
		store:               store,
		metrics:             metrics,
		now:                 time.Now,
		onPartitionReplaced: onPartitionReplaced,
	}
}

// Syncing reports whether a reconcile run is currently in flight.
func (b *Bridge) Syncing() bool {
	return b.syncing.Load()
}

func (b *Bridge) LastSync(ctx context.Context, partition records.PartitionID) *time.Time {
	return b.store.LastSync(ctx, partition)
}

func (b *Bridge) Reconcile(ctx context.Context, partition records.PartitionID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cloudsync.bridge.reconcile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("partition", partition.String()))

	userID := partition.UserID()
	if userID == "" {
		return ErrAnonymousPartition
	}

	b.syncing.Store(true)
	defer b.syncing.Store(false)

	profile, err := b.client.Pull(ctx, userID)
	if err != nil {
		b.metrics.CounterSyncFailures.Inc()
		return fmt.Errorf("pull remote profile: %w", err)
	}
	b.metrics.CounterSyncPull.Inc()

	if profile.Empty() {
		exercises, workouts := b.store.Partition(ctx, partition)
		if err := b.client.Push(ctx, userID, exercises, workouts); err != nil {
			b.metrics.CounterSyncFailures.Inc()
			return fmt.Errorf("push local partition: %w", err)
		}
		b.metrics.CounterSyncPush.Inc()
		log.Debugf("remote profile for [%s] empty, local partition pushed", partition)
	} else {
		if err := b.store.SetPartition(ctx, partition, profile.Exercises, profile.Workouts); err != nil {
			b.metrics.CounterSyncFailures.Inc()
			return fmt.Errorf("replace local partition: %w", err)
		}
		log.Debugf("local partition [%s] replaced by remote profile", partition)
		if b.onPartitionReplaced != nil {
			b.onPartitionReplaced(partition)
		}
	}

	syncedAt := b.now()
	if err := b.store.SetLastSync(ctx, partition, syncedAt); err != nil {
		log.Errorf("failed to store last sync time for [%s]: %s", partition, err)
	}

	return nil
}

// ReconcileAsync fires a reconcile run in the background, e.g. right after
// sign in. Failures are logged and swallowed: sync is opportunistic, the
// local partition stays authoritative until a later run succeeds.
func (b *Bridge) ReconcileAsync(partition records.PartitionID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()
		if err := b.Reconcile(ctx, partition); err != nil {
			log.Errorf("background sync for [%s] failed: %s", partition, err)
		}
	}()
}
