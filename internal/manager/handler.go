package manager

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/pkg/logger"
)

type ServiceAPI interface {
	GetByID(id int64) (*Manager, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// GetCurrentManager returns the authenticated manager and their roster.
func (h *Handler) GetCurrentManager(w http.ResponseWriter, r *http.Request) {
	managerID := internal.ManagerIDFromContext(r.Context())
	if managerID == 0 {
		h.Logger.Error("GetCurrentManager: manager not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	m, err := h.Service.GetByID(managerID)
	if err != nil {
		h.Logger.Error("GetCurrentManager: service error", "error", err, "manager_id", managerID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}
