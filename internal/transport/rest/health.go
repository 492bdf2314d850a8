package rest

import (
	"net/http"
	"time"

	"github.com/frahmantamala/leave-management/internal/transport"
)

// StoreChecker reports how many leave requests the active backend holds; a
// failing count means the store is unusable.
type StoreChecker interface {
	Count() (int, error)
}

type HealthHandler struct {
	*transport.BaseHandler
	store     StoreChecker
	driver    string
	startedAt time.Time
}

func NewHealthHandler(store StoreChecker, driver string) *HealthHandler {
	return &HealthHandler{
		BaseHandler: transport.NewBaseHandler(nil),
		store:       store,
		driver:      driver,
		startedAt:   time.Now(),
	}
}

func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.Count()
	if err != nil {
		h.WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"storage_driver": h.driver,
		"leave_requests": count,
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
	})
}

func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}
