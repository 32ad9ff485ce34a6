package workouts

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/2beens/liftlog/internal/records"
)

// Trend is the directional progression of an exercise: the comparison of
// the user's two most recent entries for it.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// DashboardStats are the aggregated metrics shown on the dashboard,
// derived from the full workout entry list.
type DashboardStats struct {
	TotalSessions   int     `json:"totalSessions"`
	TotalVolume     float64 `json:"totalVolume"`
	UniqueExercises int     `json:"uniqueExercises"`
	// PersonalRecords counts the exercises with a tracked max weight,
	// i.e. one PR slot per exercise that has at least one entry
	PersonalRecords int `json:"personalRecords"`
}

func Stats(entries []records.Entry) DashboardStats {
	maxPerExercise := MaxWeightPerExercise(entries)

	var totalVolume float64
	for _, entry := range entries {
		totalVolume += entry.Volume()
	}

	return DashboardStats{
		TotalSessions:   len(entries),
		TotalVolume:     totalVolume,
		UniqueExercises: len(maxPerExercise),
		PersonalRecords: len(maxPerExercise),
	}
}

// MaxWeightPerExercise tracks the max weight ever logged per exercise.
func MaxWeightPerExercise(entries []records.Entry) map[string]float64 {
	maxPerExercise := make(map[string]float64)
	for _, entry := range entries {
		if current, ok := maxPerExercise[entry.ExerciseID]; !ok || entry.Weight > current {
			maxPerExercise[entry.ExerciseID] = entry.Weight
		}
	}
	return maxPerExercise
}

// MostRecent returns the entry with the maximum date, nil for no entries.
func MostRecent(entries []records.Entry) *records.Entry {
	if len(entries) == 0 {
		return nil
	}

	mostRecent := entries[0]
	for _, entry := range entries[1:] {
		if entry.Date.After(mostRecent.Date) {
			mostRecent = entry
		}
	}
	return &mostRecent
}

// DaysSinceLastWorkout returns floor(now - most recent entry date) in days,
// nil when no entries exist.
func DaysSinceLastWorkout(entries []records.Entry, now time.Time) *int {
	mostRecent := MostRecent(entries)
	if mostRecent == nil {
		return nil
	}

	days := int(math.Floor(now.Sub(mostRecent.Date).Hours() / 24))
	return &days
}

// RecentEntries returns the n entries with greatest date, descending.
// Ties keep the original list order (stable sort).
func RecentEntries(entries []records.Entry, n int) []records.Entry {
	recent := make([]records.Entry, len(entries))
	copy(recent, entries)

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})

	if n < 0 {
		n = 0
	}
	if n > len(recent) {
		n = len(recent)
	}
	return recent[:n]
}

// Progression compares the latest entry of the exercise to the second
// latest: weight dominates reps, a strict lexicographic tie-break. Sets and
// difficulty are never part of the comparison. Fewer than 2 entries for the
// exercise means there is nothing to compare yet - neutral.
func Progression(entries []records.Entry, exerciseID string) Trend {
	var forExercise []records.Entry
	for _, entry := range entries {
		if entry.ExerciseID == exerciseID {
			forExercise = append(forExercise, entry)
		}
	}
	if len(forExercise) < 2 {
		return TrendNeutral
	}

	sort.SliceStable(forExercise, func(i, j int) bool {
		return forExercise[i].Date.Before(forExercise[j].Date)
	})

	latest := forExercise[len(forExercise)-1]
	previous := forExercise[len(forExercise)-2]

	switch {
	case latest.Weight > previous.Weight:
		return TrendUp
	case latest.Weight < previous.Weight:
		return TrendDown
	case latest.Reps > previous.Reps:
		return TrendUp
	case latest.Reps < previous.Reps:
		return TrendDown
	default:
		return TrendNeutral
	}
}

// Progressions returns the trend for every exercise present in the entries.
func Progressions(entries []records.Entry) map[string]Trend {
	progressions := make(map[string]Trend)
	for _, entry := range entries {
		if _, ok := progressions[entry.ExerciseID]; ok {
			continue
		}
		progressions[entry.ExerciseID] = Progression(entries, entry.ExerciseID)
	}
	return progressions
}

// DifficultyLabel maps the 1-5 difficulty to its display label, RPE 6 - RPE 10.
func DifficultyLabel(difficulty int) string {
	if difficulty < 1 || difficulty > 5 {
		return ""
	}
	return fmt.Sprintf("RPE %d", difficulty+5)
}
