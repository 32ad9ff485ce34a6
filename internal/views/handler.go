package views

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/records"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

const (
	dashboardCacheSize = 10 * 1024 * 1024
	// dashboardCacheExpire bounds how stale a cached dashboard can get for
	// writes this process never saw; local mutations drop the entry directly
	// via InvalidateDashboard
	dashboardCacheExpire = 30 * time.Second
)

type viewsStore interface {
	Partition(ctx context.Context, partition records.PartitionID) ([]records.Exercise, []records.Entry)
	ActiveView(ctx context.Context, partition records.PartitionID) string
	SetActiveView(ctx context.Context, partition records.PartitionID, view string) error
}

type ActiveViewResponse struct {
	Active State `json:"active"`
}

type setActiveViewRequest struct {
	Active string `json:"active"`
}

type Handler struct {
	store viewsStore
	cache *freecache.Cache
	now   func() time.Time
}

func NewHandler(store viewsStore) *Handler {
	return &Handler{
		store: store,
		cache: freecache.NewCache(dashboardCacheSize),
		now:   time.Now,
	}
}

func dashboardCacheKey(partition records.PartitionID) []byte {
	return []byte(fmt.Sprintf("dashboard::%s", partition))
}

// InvalidateDashboard drops the cached dashboard of the partition. It is
// called after every mutation of the partition's records, so a dashboard
// render right after a write always reflects that write.
func (handler *Handler) InvalidateDashboard(partition records.PartitionID) {
	handler.cache.Del(dashboardCacheKey(partition))
}

func (handler *Handler) HandleDashboardView(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.views.dashboard")
	defer span.End()

	partition := records.PartitionFromContext(ctx)

	cacheKey := dashboardCacheKey(partition)
	if cachedDashboard, err := handler.cache.Get(cacheKey); err == nil {
		log.Tracef("dashboard for [%s] served from cache", partition)
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cachedDashboard, http.StatusOK)
		return
	}

	exercises, entries := handler.store.Partition(ctx, partition)
	dashboard := NewDashboardView(exercises, entries, handler.now())

	dashboardJson, err := json.Marshal(dashboard)
	if err != nil {
		log.Errorf("failed to marshal dashboard view: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := handler.cache.Set(cacheKey, dashboardJson, int(dashboardCacheExpire.Seconds())); err != nil {
		log.Errorf("failed to cache dashboard for [%s]: %s", partition, err)
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, dashboardJson, http.StatusOK)
}

func (handler *Handler) HandleLogView(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.views.log")
	defer span.End()

	partition := records.PartitionFromContext(ctx)
	exercises, _ := handler.store.Partition(ctx, partition)

	logViewJson, err := json.Marshal(NewLogView(exercises))
	if err != nil {
		log.Errorf("failed to marshal log view: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, logViewJson, http.StatusOK)
}

func (handler *Handler) HandleExercisesView(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.views.exercises")
	defer span.End()

	partition := records.PartitionFromContext(ctx)
	exercises, entries := handler.store.Partition(ctx, partition)

	exercisesViewJson, err := json.Marshal(NewExercisesView(exercises, entries))
	if err != nil {
		log.Errorf("failed to marshal exercises view: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exercisesViewJson, http.StatusOK)
}

func (handler *Handler) HandleHistoryView(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.views.history")
	defer span.End()

	partition := records.PartitionFromContext(ctx)
	exercises, entries := handler.store.Partition(ctx, partition)

	historyViewJson, err := json.Marshal(NewHistoryView(exercises, entries))
	if err != nil {
		log.Errorf("failed to marshal history view: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, historyViewJson, http.StatusOK)
}

func (handler *Handler) HandleGetActiveView(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.views.getActive")
	defer span.End()

	partition := records.PartitionFromContext(ctx)

	active := handler.store.ActiveView(ctx, partition)
	if !ValidState(active) {
		active = string(DefaultState)
	}

	activeViewJson, err := json.Marshal(ActiveViewResponse{Active: State(active)})
	if err != nil {
		log.Errorf("failed to marshal active view response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, activeViewJson, http.StatusOK)
}

func (handler *Handler) HandleSetActiveView(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.views.setActive")
	defer span.End()

	var setActiveReq setActiveViewRequest
	if err := json.NewDecoder(r.Body).Decode(&setActiveReq); err != nil {
		log.Tracef("set active view, unmarshal json params: %s", err)
		http.Error(w, "set active view failed", http.StatusBadRequest)
		return
	}

	if !ValidState(setActiveReq.Active) {
		http.Error(w, "unknown view state", http.StatusBadRequest)
		return
	}

	partition := records.PartitionFromContext(ctx)
	if err := handler.store.SetActiveView(ctx, partition, setActiveReq.Active); err != nil {
		// active view persistence is best effort, the client keeps its own state
		log.Errorf("failed to store active view for [%s]: %s", partition, err)
	}

	activeViewJson, err := json.Marshal(ActiveViewResponse{Active: State(setActiveReq.Active)})
	if err != nil {
		log.Errorf("failed to marshal active view response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, activeViewJson, http.StatusOK)
}
