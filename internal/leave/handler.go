package leave

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/leave-management/internal/auth"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, managerID int64, dto CreateLeaveDTO) (*LeaveRequest, error)
	GetByID(ctx context.Context, id, managerID int64) (*LeaveRequest, error)
	ListForManager(ctx context.Context, managerID int64) ([]*LeaveRequest, error)
	Patch(ctx context.Context, id, managerID int64, dto PatchLeaveDTO) (*LeaveRequest, error)
	Approve(ctx context.Context, id, managerID int64) (*LeaveRequest, error)
	Reject(ctx context.Context, id, managerID int64) (*LeaveRequest, error)
	Postpone(ctx context.Context, id, managerID int64) (*LeaveRequest, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	m, ok := auth.ManagerFromContext(r.Context())
	if !ok || m == nil {
		h.Logger.Error("CreateLeave: manager not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateLeave: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.Create(r.Context(), m.ID, dto)
	if err != nil {
		h.Logger.Error("CreateLeave: service error", "error", err, "manager_id", m.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateLeave: leave request created",
		"leave_id", req.ID,
		"manager_id", m.ID,
		"employee_id", req.EmployeeID)

	h.WriteJSON(w, http.StatusCreated, req)
}

func (h *Handler) GetLeave(w http.ResponseWriter, r *http.Request) {
	m, ok := auth.ManagerFromContext(r.Context())
	if !ok || m == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.leaveID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid leave request ID")
		return
	}

	req, err := h.Service.GetByID(r.Context(), id, m.ID)
	if err != nil {
		h.Logger.Error("GetLeave: service error", "error", err, "leave_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) PatchLeave(w http.ResponseWriter, r *http.Request) {
	m, ok := auth.ManagerFromContext(r.Context())
	if !ok || m == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.leaveID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid leave request ID")
		return
	}

	var dto PatchLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("PatchLeave: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.Patch(r.Context(), id, m.ID, dto)
	if err != nil {
		h.Logger.Error("PatchLeave: service error", "error", err, "leave_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.Service.Approve)
}

func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.Service.Reject)
}

func (h *Handler) PostponeLeave(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.Service.Postpone)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id, managerID int64) (*LeaveRequest, error)) {
	m, ok := auth.ManagerFromContext(r.Context())
	if !ok || m == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.leaveID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid leave request ID")
		return
	}

	req, err := op(r.Context(), id, m.ID)
	if err != nil {
		h.Logger.Error("status change failed", "error", err, "leave_id", id, "manager_id", m.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("leave status changed", "leave_id", id, "status", req.Status, "manager_id", m.ID)
	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) leaveID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
