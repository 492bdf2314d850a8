package notification

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/pkg/logger"
)

type ServiceAPI interface {
	ForManager(managerID int64) []Notification
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

func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	managerID := internal.ManagerIDFromContext(r.Context())
	if managerID == 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	notifications := h.Service.ForManager(managerID)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
	})
}
