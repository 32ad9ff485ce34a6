package records

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/liftlog/pkg"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrEntryNotFound    = errors.New("workout entry not found")
)

// Exercise is a named movement the user trains ("lift"), e.g. "Back Squat".
type Exercise struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Entry is one logged set-group for an exercise: weight x reps x sets at
// a given difficulty (RPE proxy, 1-5), on one date.
type Entry struct {
	ID         string    `json:"id"`
	ExerciseID string    `json:"exerciseId"`
	Weight     float64   `json:"weight"`
	Reps       int       `json:"reps"`
	Sets       int       `json:"sets"`
	Difficulty int       `json:"difficulty"`
	Date       time.Time `json:"date"`
}

func (e Exercise) Validate() error {
	if e.Name == "" {
		return errors.New("exercise name empty")
	}
	return nil
}

func (e Entry) Validate() error {
	switch {
	case e.ExerciseID == "":
		return errors.New("exercise id empty")
	case e.Weight < 0:
		return errors.New("weight must be >= 0")
	case e.Reps < 1:
		return errors.New("reps must be >= 1")
	case e.Sets < 1:
		return errors.New("sets must be >= 1")
	case e.Difficulty < 1 || e.Difficulty > 5:
		return errors.New("difficulty must be within [1, 5]")
	default:
		return nil
	}
}

// Volume of one entry: weight * reps * sets.
func (e Entry) Volume() float64 {
	return e.Weight * float64(e.Reps) * float64(e.Sets)
}

// NewID returns a monotonic-enough record id token. Not globally unique,
// unique enough within a single user's data set.
func NewID() string {
	suffix, err := pkg.GenerateRandomString(4)
	if err != nil {
		// crypto rand failing is next to impossible, still: never return empty
		suffix = "0000"
	}
	return fmt.Sprintf("%s-%s", strconv.FormatInt(time.Now().UnixNano(), 36), suffix)
}
