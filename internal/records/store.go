package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Store is the partition-scoped key-value persistence for the two entity
// lists. Each list is stored as one JSON value under
// <namespace>-<partition>, and every write replaces the whole list.
//
// Plain reads never fail the caller: a missing key, an unreachable redis,
// or a corrupt stored value all degrade to the empty-list default. Mutations
// are stricter: they distinguish a failed read from a genuinely absent
// record, so a persistence problem is never reported as ErrExerciseNotFound
// or ErrEntryNotFound.
type Store struct {
	redisClient *redis.Client
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{
		redisClient: redisClient,
	}
}

func (s *Store) Exercises(ctx context.Context, partition PartitionID) []Exercise {
	var exercises []Exercise
	if err := s.getList(ctx, partition.key(exercisesNamespace), &exercises); err != nil {
		log.Errorf("get exercises for [%s], falling back to empty list: %s", partition, err)
	}
	if exercises == nil {
		exercises = []Exercise{}
	}
	return exercises
}

func (s *Store) Workouts(ctx context.Context, partition PartitionID) []Entry {
	var workouts []Entry
	if err := s.getList(ctx, partition.key(workoutsNamespace), &workouts); err != nil {
		log.Errorf("get workouts for [%s], falling back to empty list: %s", partition, err)
	}
	if workouts == nil {
		workouts = []Entry{}
	}
	return workouts
}

// Partition returns both lists of the given partition.
func (s *Store) Partition(ctx context.Context, partition PartitionID) ([]Exercise, []Entry) {
	return s.Exercises(ctx, partition), s.Workouts(ctx, partition)
}

func (s *Store) SetExercises(ctx context.Context, partition PartitionID, exercises []Exercise) error {
	return s.setList(ctx, partition.key(exercisesNamespace), exercises)
}

func (s *Store) SetWorkouts(ctx context.Context, partition PartitionID, workouts []Entry) error {
	return s.setList(ctx, partition.key(workoutsNamespace), workouts)
}

// SetPartition replaces both lists of the partition in full. Workouts are
// written first so a failure in between cannot leave entries pointing to
// exercises which were never written.
func (s *Store) SetPartition(
	ctx context.Context,
	partition PartitionID,
	exercises []Exercise,
	workouts []Entry,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.store.setPartition")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("partition", partition.String()))

	if err := s.SetWorkouts(ctx, partition, workouts); err != nil {
		return fmt.Errorf("set workouts: %w", err)
	}
	if err := s.SetExercises(ctx, partition, exercises); err != nil {
		return fmt.Errorf("set exercises: %w", err)
	}
	return nil
}

func (s *Store) AddExercise(ctx context.Context, partition PartitionID, exercise Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.store.addExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercises := s.Exercises(ctx, partition)
	exercises = append(exercises, exercise)
	return s.SetExercises(ctx, partition, exercises)
}

// AddWorkout appends a workout entry. The referenced exercise must exist
// at creation time, otherwise ErrExerciseNotFound is returned. When the
// exercises list itself cannot be read, the reference check is skipped:
// a failed read must not masquerade as a missing exercise.
func (s *Store) AddWorkout(ctx context.Context, partition PartitionID, entry Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.store.addWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exercises []Exercise
	if readErr := s.getList(ctx, partition.key(exercisesNamespace), &exercises); readErr != nil {
		log.Errorf("add workout, read exercises for [%s]: %s", partition, readErr)
	} else {
		found := false
		for _, ex := range exercises {
			if ex.ID == entry.ExerciseID {
				found = true
				break
			}
		}
		if !found {
			return ErrExerciseNotFound
		}
	}

	workouts := s.Workouts(ctx, partition)
	workouts = append(workouts, entry)
	return s.SetWorkouts(ctx, partition, workouts)
}

// DeleteExercise removes the exercise and, in the same logical operation,
// every workout entry referencing it. The entries list is written first:
// no orphaned entry can survive an exercise delete.
func (s *Store) DeleteExercise(
	ctx context.Context,
	partition PartitionID,
	exerciseID string,
) (removedEntries int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.store.deleteExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	var exercises []Exercise
	if err := s.getList(ctx, partition.key(exercisesNamespace), &exercises); err != nil {
		return 0, fmt.Errorf("read exercises: %w", err)
	}
	remainingExercises := make([]Exercise, 0, len(exercises))
	found := false
	for _, ex := range exercises {
		if ex.ID == exerciseID {
			found = true
			continue
		}
		remainingExercises = append(remainingExercises, ex)
	}
	if !found {
		return 0, ErrExerciseNotFound
	}

	var workouts []Entry
	if err := s.getList(ctx, partition.key(workoutsNamespace), &workouts); err != nil {
		return 0, fmt.Errorf("read workouts: %w", err)
	}
	remainingWorkouts := make([]Entry, 0, len(workouts))
	for _, entry := range workouts {
		if entry.ExerciseID == exerciseID {
			removedEntries++
			continue
		}
		remainingWorkouts = append(remainingWorkouts, entry)
	}

	if err := s.SetWorkouts(ctx, partition, remainingWorkouts); err != nil {
		return 0, fmt.Errorf("set workouts: %w", err)
	}
	if err := s.SetExercises(ctx, partition, remainingExercises); err != nil {
		return 0, fmt.Errorf("set exercises: %w", err)
	}

	return removedEntries, nil
}

func (s *Store) DeleteWorkout(ctx context.Context, partition PartitionID, entryID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.store.deleteWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var workouts []Entry
	if err := s.getList(ctx, partition.key(workoutsNamespace), &workouts); err != nil {
		return fmt.Errorf("read workouts: %w", err)
	}
	remaining := make([]Entry, 0, len(workouts))
	found := false
	for _, entry := range workouts {
		if entry.ID == entryID {
			found = true
			continue
		}
		remaining = append(remaining, entry)
	}
	if !found {
		return ErrEntryNotFound
	}

	return s.SetWorkouts(ctx, partition, remaining)
}

// Purge drops the partition wholesale, together with its bookkeeping keys.
func (s *Store) Purge(ctx context.Context, partition PartitionID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.store.purge")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("partition", partition.String()))

	cmd := s.redisClient.Del(ctx,
		partition.key(exercisesNamespace),
		partition.key(workoutsNamespace),
		partition.key(lastSyncNamespace),
		partition.key(activeViewNamespace),
	)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("purge partition %s: %w", partition, err)
	}
	return nil
}

func (s *Store) LastSync(ctx context.Context, partition PartitionID) *time.Time {
	cmd := s.redisClient.Get(ctx, partition.key(lastSyncNamespace))
	if err := cmd.Err(); err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("get last sync for [%s]: %s", partition, err)
		}
		return nil
	}

	lastSyncUnix, err := strconv.ParseInt(cmd.Val(), 10, 64)
	if err != nil {
		log.Errorf("corrupt last sync value for [%s]: %s", partition, err)
		return nil
	}

	lastSync := time.Unix(lastSyncUnix, 0)
	return &lastSync
}

func (s *Store) SetLastSync(ctx context.Context, partition PartitionID, at time.Time) error {
	cmd := s.redisClient.Set(ctx, partition.key(lastSyncNamespace), at.Unix(), 0)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("set last sync for %s: %w", partition, err)
	}
	return nil
}

func (s *Store) ActiveView(ctx context.Context, partition PartitionID) string {
	cmd := s.redisClient.Get(ctx, partition.key(activeViewNamespace))
	if err := cmd.Err(); err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("get active view for [%s]: %s", partition, err)
		}
		return ""
	}
	return cmd.Val()
}

func (s *Store) SetActiveView(ctx context.Context, partition PartitionID, view string) error {
	cmd := s.redisClient.Set(ctx, partition.key(activeViewNamespace), view, 0)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("set active view for %s: %w", partition, err)
	}
	return nil
}

// getList reads and unmarshals the JSON list at key. A missing key is not
// an error, the list is simply empty. A failed read or a corrupt value is
// returned as an error so mutating callers can tell "no data" apart from
// "the data could not be read".
func (s *Store) getList(ctx context.Context, key string, target any) error {
	cmd := s.redisClient.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(cmd.Val()), target); err != nil {
		return fmt.Errorf("corrupt value at %s: %w", key, err)
	}
	return nil
}

func (s *Store) setList(ctx context.Context, key string, list any) error {
	listJson, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal list for %s: %w", key, err)
	}

	cmd := s.redisClient.Set(ctx, key, listJson, 0)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
