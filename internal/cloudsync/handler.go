package cloudsync

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/records"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

type SyncStatusResponse struct {
	Syncing  bool       `json:"syncing"`
	LastSync *time.Time `json:"lastSync,omitempty"`
}

type SyncTriggerResponse struct {
	Success  bool       `json:"success"`
	LastSync *time.Time `json:"lastSync,omitempty"`
}

type Handler struct {
	bridge *Bridge
}

func NewHandler(bridge *Bridge) *Handler {
	return &Handler{
		bridge: bridge,
	}
}

// HandleTriggerSync runs a reconcile inline and reports the outcome.
// Unlike the best-effort background sync after sign in, an explicit
// trigger does surface failures to the caller.
func (handler *Handler) HandleTriggerSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.cloudsync.trigger")
	defer span.End()

	partition := records.PartitionFromContext(ctx)

	err := handler.bridge.Reconcile(ctx, partition)
	if errors.Is(err, ErrAnonymousPartition) {
		http.Error(w, "sign in to sync", http.StatusUnauthorized)
		return
	} else if err != nil {
		log.Errorf("sync for [%s] failed: %s", partition, err)
		http.Error(w, "sync failed", http.StatusBadGateway)
		return
	}

	triggerRespJson, err := json.Marshal(SyncTriggerResponse{
		Success:  true,
		LastSync: handler.bridge.LastSync(ctx, partition),
	})
	if err != nil {
		log.Errorf("failed to marshal sync trigger response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, triggerRespJson, http.StatusOK)
}

func (handler *Handler) HandleSyncStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.cloudsync.status")
	defer span.End()

	partition := records.PartitionFromContext(ctx)

	statusRespJson, err := json.Marshal(SyncStatusResponse{
		Syncing:  handler.bridge.Syncing(),
		LastSync: handler.bridge.LastSync(ctx, partition),
	})
	if err != nil {
		log.Errorf("failed to marshal sync status response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statusRespJson, http.StatusOK)
}
