package views

import (
	"context"

	"github.com/2beens/liftlog/internal/records"
)

type storeMock struct {
	exercises  map[records.PartitionID][]records.Exercise
	workouts   map[records.PartitionID][]records.Entry
	activeView map[records.PartitionID]string
	setViewErr error
}

func NewMockViewsStore() *storeMock {
	return &storeMock{
		exercises:  make(map[records.PartitionID][]records.Exercise),
		workouts:   make(map[records.PartitionID][]records.Entry),
		activeView: make(map[records.PartitionID]string),
	}
}

func (s *storeMock) Partition(_ context.Context, partition records.PartitionID) ([]records.Exercise, []records.Entry) {
	return s.exercises[partition], s.workouts[partition]
}

func (s *storeMock) ActiveView(_ context.Context, partition records.PartitionID) string {
	return s.activeView[partition]
}

func (s *storeMock) SetActiveView(_ context.Context, partition records.PartitionID, view string) error {
	if s.setViewErr != nil {
		return s.setViewErr
	}
	s.activeView[partition] = view
	return nil
}
