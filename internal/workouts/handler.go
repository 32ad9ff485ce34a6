package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/records"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

const defaultRecentEntries = 5

type recordsStore interface {
	Exercises(ctx context.Context, partition records.PartitionID) []records.Exercise
	Workouts(ctx context.Context, partition records.PartitionID) []records.Entry
	AddExercise(ctx context.Context, partition records.PartitionID, exercise records.Exercise) error
	AddWorkout(ctx context.Context, partition records.PartitionID, entry records.Entry) error
	DeleteExercise(ctx context.Context, partition records.PartitionID, exerciseID string) (int, error)
	DeleteWorkout(ctx context.Context, partition records.PartitionID, entryID string) error
}

type ExercisesListResponse struct {
	Exercises []records.Exercise `json:"exercises"`
	Total     int                `json:"total"`
}

type WorkoutsListResponse struct {
	Workouts []records.Entry `json:"workouts"`
	Total    int             `json:"total"`
}

type DeleteExerciseResponse struct {
	DeletedID      string `json:"deletedId"`
	RemovedEntries int    `json:"removedEntries"`
}

type DeleteWorkoutResponse struct {
	DeletedID string `json:"deletedId"`
}

type ProgressionResponse struct {
	ExerciseID  string `json:"exerciseId"`
	Progression Trend  `json:"progression"`
}

type Handler struct {
	store   recordsStore
	metrics *metrics.Manager
	// onChange is called after every mutation of a partition, e.g. to drop
	// cached read models built from it
	onChange func(partition records.PartitionID)
}

func NewHandler(store recordsStore, metrics *metrics.Manager, onChange func(records.PartitionID)) *Handler {
	return &Handler{
		store:    store,
		metrics:  metrics,
		onChange: onChange,
	}
}

func (handler *Handler) notifyChanged(partition records.PartitionID) {
	if handler.onChange != nil {
		handler.onChange(partition)
	}
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.newExercise")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var exercise records.Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	if err := exercise.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	exercise.ID = records.NewID()
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now()
	}

	partition := records.PartitionFromContext(ctx)
	if err := handler.store.AddExercise(ctx, partition, exercise); err != nil {
		// local persistence is best effort, the client keeps the record either way
		log.Errorf("failed to store new exercise [%s] for [%s]: %s", exercise.Name, partition, err)
	}

	handler.metrics.CounterExercisesCreated.Inc()
	handler.notifyChanged(partition)

	exerciseJson, err := json.Marshal(exercise)
	if err != nil {
		log.Errorf("failed to marshal new exercise: %s", err)
		http.Error(w, "error, failed to add new exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("new exercise added to [%s]: %s", partition, exerciseJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exerciseJson, http.StatusCreated)
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listExercises")
	defer span.End()

	exercises := handler.store.Exercises(ctx, records.PartitionFromContext(ctx))

	listResponseJson, err := json.Marshal(ExercisesListResponse{
		Exercises: exercises,
		Total:     len(exercises),
	})
	if err != nil {
		log.Errorf("marshal exercises error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.deleteExercise")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	partition := records.PartitionFromContext(ctx)
	removedEntries, err := handler.store.DeleteExercise(ctx, partition, id)
	if errors.Is(err, records.ErrExerciseNotFound) {
		log.Debugf("exercise [%s] not found in [%s]", id, partition)
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to delete exercise [%s] from [%s]: %s", id, partition, err)
		http.Error(w, "exercise not deleted", http.StatusInternalServerError)
		return
	}

	log.Debugf("exercise [%s] deleted from [%s], together with %d entries", id, partition, removedEntries)
	handler.notifyChanged(partition)

	deleteRespJson, err := json.Marshal(DeleteExerciseResponse{
		DeletedID:      id,
		RemovedEntries: removedEntries,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleProgression(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.progression")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	workouts := handler.store.Workouts(ctx, records.PartitionFromContext(ctx))

	progressionJson, err := json.Marshal(ProgressionResponse{
		ExerciseID:  id,
		Progression: Progression(workouts, id),
	})
	if err != nil {
		log.Errorf("failed to marshal progression response: %s", err)
		http.Error(w, "failed to marshal progression response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, progressionJson, http.StatusOK)
}

func (handler *Handler) HandleAddWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.newEntry")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var entry records.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Tracef("new workout entry, unmarshal json params: %s", err)
		http.Error(w, "add workout entry failed", http.StatusBadRequest)
		return
	}

	if err := entry.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry.ID = records.NewID()
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}

	partition := records.PartitionFromContext(ctx)
	err := handler.store.AddWorkout(ctx, partition, entry)
	if errors.Is(err, records.ErrExerciseNotFound) {
		http.Error(w, "exercise not found", http.StatusBadRequest)
		return
	} else if err != nil {
		log.Errorf("failed to store workout entry for [%s]: %s", partition, err)
	}

	handler.metrics.CounterEntriesLogged.Inc()
	handler.notifyChanged(partition)

	entryJson, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("failed to marshal new workout entry: %s", err)
		http.Error(w, "error, failed to add workout entry", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout entry added to [%s]: %s", partition, entryJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entryJson, http.StatusCreated)
}

func (handler *Handler) HandleListWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listEntries")
	defer span.End()

	workouts := handler.store.Workouts(ctx, records.PartitionFromContext(ctx))

	listResponseJson, err := json.Marshal(WorkoutsListResponse{
		Workouts: workouts,
		Total:    len(workouts),
	})
	if err != nil {
		log.Errorf("marshal workout entries error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleRecentWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.recentEntries")
	defer span.End()

	n := defaultRecentEntries
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		parsed, err := strconv.Atoi(nStr)
		if err != nil || parsed < 1 {
			http.Error(w, "parse form error, parameter <n>", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	workouts := handler.store.Workouts(ctx, records.PartitionFromContext(ctx))
	recent := RecentEntries(workouts, n)

	listResponseJson, err := json.Marshal(WorkoutsListResponse{
		Workouts: recent,
		Total:    len(recent),
	})
	if err != nil {
		log.Errorf("marshal recent workout entries error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.deleteEntry")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	partition := records.PartitionFromContext(ctx)
	err := handler.store.DeleteWorkout(ctx, partition, id)
	if errors.Is(err, records.ErrEntryNotFound) {
		http.Error(w, "workout entry not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to delete workout entry [%s] from [%s]: %s", id, partition, err)
		http.Error(w, "workout entry not deleted", http.StatusInternalServerError)
		return
	}

	handler.notifyChanged(partition)

	deleteRespJson, err := json.Marshal(DeleteWorkoutResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
