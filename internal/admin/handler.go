package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/records"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

type partitionPurger interface {
	Purge(ctx context.Context, partition records.PartitionID) error
}

type PurgeResponse struct {
	PurgedPartition string `json:"purgedPartition"`
}

// Handler serves the operator-only endpoints. The auth middleware makes
// sure only admin sessions ever reach it.
type Handler struct {
	store partitionPurger
	// onPurge is called after a successful purge, e.g. to drop cached read
	// models of the partition
	onPurge func(partition records.PartitionID)
}

func NewHandler(store partitionPurger, onPurge func(records.PartitionID)) *Handler {
	return &Handler{
		store:   store,
		onPurge: onPurge,
	}
}

// HandlePurgePartition drops a user partition wholesale, local data and
// bookkeeping keys included. The remote profile is left alone.
func (handler *Handler) HandlePurgePartition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.purgePartition")
	defer span.End()

	partitionStr := mux.Vars(r)["partition"]
	if partitionStr == "" {
		http.Error(w, "error, partition empty", http.StatusBadRequest)
		return
	}

	partition := records.PartitionID(partitionStr)
	if err := handler.store.Purge(ctx, partition); err != nil {
		log.Errorf("failed to purge partition [%s]: %s", partition, err)
		http.Error(w, "partition not purged", http.StatusInternalServerError)
		return
	}

	log.Warnf("partition [%s] purged", partition)
	if handler.onPurge != nil {
		handler.onPurge(partition)
	}

	purgeRespJson, err := json.Marshal(PurgeResponse{
		PurgedPartition: partitionStr,
	})
	if err != nil {
		log.Errorf("failed to marshal purge response: %s", err)
		http.Error(w, "failed to marshal purge response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(purgeRespJson))
}
