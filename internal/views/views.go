package views

import (
	"time"

	"github.com/2beens/liftlog/internal/records"
	"github.com/2beens/liftlog/internal/workouts"
)

// State is one of the four screens the client can be on. The active state
// is persisted per partition so the app reopens where it was left.
type State string

const (
	StateDashboard State = "dashboard"
	StateLog       State = "log"
	StateExercises State = "exercises"
	StateHistory   State = "history"
)

// DefaultState is what a fresh partition starts on.
const DefaultState = StateDashboard

func ValidState(s string) bool {
	switch State(s) {
	case StateDashboard, StateLog, StateExercises, StateHistory:
		return true
	default:
		return false
	}
}

// EntryView is a workout entry decorated for display: the exercise name
// resolved and the difficulty mapped to its RPE label.
type EntryView struct {
	records.Entry
	ExerciseName    string `json:"exerciseName"`
	DifficultyLabel string `json:"difficultyLabel"`
}

type DashboardView struct {
	Stats                workouts.DashboardStats   `json:"stats"`
	Recent               []EntryView               `json:"recent"`
	Progressions         map[string]workouts.Trend `json:"progressions"`
	DaysSinceLastWorkout *int                      `json:"daysSinceLastWorkout"`
}

// DifficultyOption is one selectable difficulty in the logging form.
type DifficultyOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type LogView struct {
	Exercises    []records.Exercise `json:"exercises"`
	Difficulties []DifficultyOption `json:"difficulties"`
}

type ExerciseSummary struct {
	records.Exercise
	Entries     int            `json:"entries"`
	MaxWeight   float64        `json:"maxWeight"`
	Progression workouts.Trend `json:"progression"`
}

type ExercisesView struct {
	Exercises []ExerciseSummary `json:"exercises"`
	Total     int               `json:"total"`
}

type HistoryView struct {
	Entries []EntryView `json:"entries"`
	Total   int         `json:"total"`
}

func exerciseNames(exercises []records.Exercise) map[string]string {
	names := make(map[string]string, len(exercises))
	for _, ex := range exercises {
		names[ex.ID] = ex.Name
	}
	return names
}

func entryViews(entries []records.Entry, names map[string]string) []EntryView {
	entryViews := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		entryViews = append(entryViews, EntryView{
			Entry:           entry,
			ExerciseName:    names[entry.ExerciseID],
			DifficultyLabel: workouts.DifficultyLabel(entry.Difficulty),
		})
	}
	return entryViews
}

// NewDashboardView assembles the dashboard read model from the partition data.
func NewDashboardView(exercises []records.Exercise, entries []records.Entry, now time.Time) DashboardView {
	return DashboardView{
		Stats:                workouts.Stats(entries),
		Recent:               entryViews(workouts.RecentEntries(entries, 5), exerciseNames(exercises)),
		Progressions:         workouts.Progressions(entries),
		DaysSinceLastWorkout: workouts.DaysSinceLastWorkout(entries, now),
	}
}

func NewLogView(exercises []records.Exercise) LogView {
	difficulties := make([]DifficultyOption, 0, 5)
	for d := 1; d <= 5; d++ {
		difficulties = append(difficulties, DifficultyOption{
			Value: d,
			Label: workouts.DifficultyLabel(d),
		})
	}
	return LogView{
		Exercises:    exercises,
		Difficulties: difficulties,
	}
}

func NewExercisesView(exercises []records.Exercise, entries []records.Entry) ExercisesView {
	maxPerExercise := workouts.MaxWeightPerExercise(entries)

	entriesPerExercise := make(map[string]int)
	for _, entry := range entries {
		entriesPerExercise[entry.ExerciseID]++
	}

	summaries := make([]ExerciseSummary, 0, len(exercises))
	for _, ex := range exercises {
		summaries = append(summaries, ExerciseSummary{
			Exercise:    ex,
			Entries:     entriesPerExercise[ex.ID],
			MaxWeight:   maxPerExercise[ex.ID],
			Progression: workouts.Progression(entries, ex.ID),
		})
	}

	return ExercisesView{
		Exercises: summaries,
		Total:     len(summaries),
	}
}

// NewHistoryView lists all entries, most recent first.
func NewHistoryView(exercises []records.Exercise, entries []records.Entry) HistoryView {
	ordered := workouts.RecentEntries(entries, len(entries))
	return HistoryView{
		Entries: entryViews(ordered, exerciseNames(exercises)),
		Total:   len(ordered),
	}
}
