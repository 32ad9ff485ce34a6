package records

import (
	"context"
	"fmt"
)

// PartitionID identifies the per-user pair of exercise/workout lists.
// Exactly one partition is active per request; switching identity switches
// the partition wholesale, there is no merging across partitions.
type PartitionID string

// Anonymous is the sentinel partition used when no identity is established.
const Anonymous PartitionID = "anonymous"

const (
	exercisesNamespace  = "liftlog-exercises"
	workoutsNamespace   = "liftlog-workouts"
	lastSyncNamespace   = "liftlog-lastsync"
	activeViewNamespace = "liftlog-activeview"
)

func PartitionFor(userID string) PartitionID {
	if userID == "" {
		return Anonymous
	}
	return PartitionID(userID)
}

func (p PartitionID) String() string {
	return string(p)
}

func (p PartitionID) UserID() string {
	if p == Anonymous {
		return ""
	}
	return string(p)
}

func (p PartitionID) key(namespace string) string {
	return fmt.Sprintf("%s-%s", namespace, p)
}

type partitionContextKey struct{}

func ContextWithPartition(ctx context.Context, partition PartitionID) context.Context {
	return context.WithValue(ctx, partitionContextKey{}, partition)
}

// PartitionFromContext returns the partition set by the auth middleware,
// or Anonymous when the request carries no identity.
func PartitionFromContext(ctx context.Context) PartitionID {
	partition, ok := ctx.Value(partitionContextKey{}).(PartitionID)
	if !ok || partition == "" {
		return Anonymous
	}
	return partition
}
