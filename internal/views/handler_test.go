package views

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/liftlog/internal/records"
	"github.com/2beens/liftlog/internal/workouts"
)

var (
	viewsTestPartition = records.PartitionFor("serj")

	viewsTestExercises = []records.Exercise{
		{ID: "ex-squat", Name: "Back Squat", CreatedAt: time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)},
		{ID: "ex-bench", Name: "Bench Press", CreatedAt: time.Date(2024, 1, 11, 8, 0, 0, 0, time.UTC)},
	}

	viewsTestWorkouts = []records.Entry{
		{ID: "w1", ExerciseID: "ex-squat", Weight: 100, Reps: 5, Sets: 3, Difficulty: 3, Date: time.Date(2024, 2, 1, 17, 0, 0, 0, time.UTC)},
		{ID: "w2", ExerciseID: "ex-bench", Weight: 80, Reps: 8, Sets: 3, Difficulty: 4, Date: time.Date(2024, 2, 2, 17, 0, 0, 0, time.UTC)},
		{ID: "w3", ExerciseID: "ex-squat", Weight: 105, Reps: 5, Sets: 3, Difficulty: 4, Date: time.Date(2024, 2, 3, 17, 0, 0, 0, time.UTC)},
	}
)

func newTestViewsHandler(t *testing.T) (*Handler, *storeMock) {
	t.Helper()
	storeMock := NewMockViewsStore()
	storeMock.exercises[viewsTestPartition] = viewsTestExercises
	storeMock.workouts[viewsTestPartition] = viewsTestWorkouts

	handler := NewHandler(storeMock)
	handler.now = func() time.Time {
		return time.Date(2024, 2, 5, 17, 0, 0, 0, time.UTC)
	}
	return handler, storeMock
}

func newViewRequest(t *testing.T, method, path string, body []byte) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewReader(body))
	require.NoError(t, err)
	return req.WithContext(records.ContextWithPartition(req.Context(), viewsTestPartition))
}

func TestHandler_HandleDashboardView(t *testing.T) {
	handler, _ := newTestViewsHandler(t)

	rec := httptest.NewRecorder()
	handler.HandleDashboardView(rec, newViewRequest(t, "GET", "/views/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var dashboard DashboardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))

	assert.Equal(t, 3, dashboard.Stats.TotalSessions)
	assert.Equal(t, 2, dashboard.Stats.UniqueExercises)
	assert.InDelta(t, 100*5*3+80*8*3+105*5*3, dashboard.Stats.TotalVolume, 0.001)

	require.Len(t, dashboard.Recent, 3)
	assert.Equal(t, "w3", dashboard.Recent[0].ID)
	assert.Equal(t, "Back Squat", dashboard.Recent[0].ExerciseName)
	assert.Equal(t, "RPE 9", dashboard.Recent[0].DifficultyLabel)

	assert.Equal(t, workouts.TrendUp, dashboard.Progressions["ex-squat"])
	assert.Equal(t, workouts.TrendNeutral, dashboard.Progressions["ex-bench"])

	require.NotNil(t, dashboard.DaysSinceLastWorkout)
	assert.Equal(t, 2, *dashboard.DaysSinceLastWorkout)
}

func TestHandler_HandleDashboardView_Cached(t *testing.T) {
	handler, storeMock := newTestViewsHandler(t)

	rec := httptest.NewRecorder()
	handler.HandleDashboardView(rec, newViewRequest(t, "GET", "/views/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	firstBody := rec.Body.String()

	// writes this process never saw (no invalidation) are served from the
	// cache until the entry expires
	storeMock.workouts[viewsTestPartition] = nil
	rec = httptest.NewRecorder()
	handler.HandleDashboardView(rec, newViewRequest(t, "GET", "/views/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, firstBody, rec.Body.String())
}

func TestHandler_HandleDashboardView_FreshAfterInvalidation(t *testing.T) {
	handler, storeMock := newTestViewsHandler(t)

	rec := httptest.NewRecorder()
	handler.HandleDashboardView(rec, newViewRequest(t, "GET", "/views/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var before DashboardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &before))
	require.Equal(t, 3, before.Stats.TotalSessions)

	// log another workout and drop the cached dashboard, the way every
	// mutation path does
	storeMock.workouts[viewsTestPartition] = append(viewsTestWorkouts, records.Entry{
		ID: "w4", ExerciseID: "ex-squat", Weight: 100, Reps: 5, Sets: 3, Difficulty: 4,
		Date: time.Date(2024, 2, 4, 17, 0, 0, 0, time.UTC),
	})
	handler.InvalidateDashboard(viewsTestPartition)

	rec = httptest.NewRecorder()
	handler.HandleDashboardView(rec, newViewRequest(t, "GET", "/views/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var after DashboardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.Equal(t, 4, after.Stats.TotalSessions)
	assert.InDelta(t, before.Stats.TotalVolume+100*5*3, after.Stats.TotalVolume, 0.001)
	require.Len(t, after.Recent, 4)
	assert.Equal(t, "w4", after.Recent[0].ID)
}

func TestHandler_HandleDashboardView_EmptyPartition(t *testing.T) {
	handler := NewHandler(NewMockViewsStore())

	rec := httptest.NewRecorder()
	handler.HandleDashboardView(rec, newViewRequest(t, "GET", "/views/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var dashboard DashboardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))
	assert.Equal(t, 0, dashboard.Stats.TotalSessions)
	assert.Empty(t, dashboard.Recent)
	assert.Nil(t, dashboard.DaysSinceLastWorkout)
}

func TestHandler_HandleLogView(t *testing.T) {
	handler, _ := newTestViewsHandler(t)

	rec := httptest.NewRecorder()
	handler.HandleLogView(rec, newViewRequest(t, "GET", "/views/log", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var logView LogView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logView))
	assert.Len(t, logView.Exercises, 2)
	require.Len(t, logView.Difficulties, 5)
	assert.Equal(t, DifficultyOption{Value: 1, Label: "RPE 6"}, logView.Difficulties[0])
	assert.Equal(t, DifficultyOption{Value: 5, Label: "RPE 10"}, logView.Difficulties[4])
}

func TestHandler_HandleExercisesView(t *testing.T) {
	handler, _ := newTestViewsHandler(t)

	rec := httptest.NewRecorder()
	handler.HandleExercisesView(rec, newViewRequest(t, "GET", "/views/exercises", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var exercisesView ExercisesView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exercisesView))
	require.Equal(t, 2, exercisesView.Total)

	squat := exercisesView.Exercises[0]
	assert.Equal(t, "ex-squat", squat.ID)
	assert.Equal(t, 2, squat.Entries)
	assert.InDelta(t, 105, squat.MaxWeight, 0.001)
	assert.Equal(t, workouts.TrendUp, squat.Progression)

	bench := exercisesView.Exercises[1]
	assert.Equal(t, 1, bench.Entries)
	assert.Equal(t, workouts.TrendNeutral, bench.Progression)
}

func TestHandler_HandleHistoryView(t *testing.T) {
	handler, _ := newTestViewsHandler(t)

	rec := httptest.NewRecorder()
	handler.HandleHistoryView(rec, newViewRequest(t, "GET", "/views/history", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var historyView HistoryView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &historyView))
	require.Equal(t, 3, historyView.Total)
	assert.Equal(t, "w3", historyView.Entries[0].ID)
	assert.Equal(t, "w1", historyView.Entries[2].ID)
	assert.Equal(t, "Bench Press", historyView.Entries[1].ExerciseName)
}

func TestHandler_ActiveView(t *testing.T) {
	handler, storeMock := newTestViewsHandler(t)

	// nothing stored yet, falls back to the default
	rec := httptest.NewRecorder()
	handler.HandleGetActiveView(rec, newViewRequest(t, "GET", "/views/active", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var activeResp ActiveViewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activeResp))
	assert.Equal(t, StateDashboard, activeResp.Active)

	rec = httptest.NewRecorder()
	handler.HandleSetActiveView(rec, newViewRequest(t, "PUT", "/views/active", []byte(`{"active":"history"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "history", storeMock.activeView[viewsTestPartition])

	rec = httptest.NewRecorder()
	handler.HandleGetActiveView(rec, newViewRequest(t, "GET", "/views/active", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activeResp))
	assert.Equal(t, StateHistory, activeResp.Active)
}

func TestHandler_HandleSetActiveView_InvalidState(t *testing.T) {
	handler, _ := newTestViewsHandler(t)

	rec := httptest.NewRecorder()
	handler.HandleSetActiveView(rec, newViewRequest(t, "PUT", "/views/active", []byte(`{"active":"settings"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleSetActiveView_StoreErrorNotSurfaced(t *testing.T) {
	handler, storeMock := newTestViewsHandler(t)
	storeMock.setViewErr = errors.New("redis down")

	rec := httptest.NewRecorder()
	handler.HandleSetActiveView(rec, newViewRequest(t, "PUT", "/views/active", []byte(`{"active":"log"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_HandleGetActiveView_CorruptStoredState(t *testing.T) {
	handler, storeMock := newTestViewsHandler(t)
	storeMock.activeView[viewsTestPartition] = "not-a-view"

	rec := httptest.NewRecorder()
	handler.HandleGetActiveView(rec, newViewRequest(t, "GET", "/views/active", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var activeResp ActiveViewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activeResp))
	assert.Equal(t, StateDashboard, activeResp.Active)
}
