package calendar

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/leave-management/internal/auth"
	"github.com/frahmantamala/leave-management/internal/leave"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Leaves  LeaveService
	Editors *Registry
}

func NewHandler(leaves LeaveService, editors *Registry) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Leaves:      leaves,
		Editors:     editors,
	}
}

// GetEvents returns the active manager's calendar entries.
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	m, ok := auth.ManagerFromContext(r.Context())
	if !ok || m == nil {
		h.Logger.Error("GetEvents: manager not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requests, err := h.Leaves.ListForManager(r.Context(), m.ID)
	if err != nil {
		h.Logger.Error("GetEvents: service error", "error", err, "manager_id", m.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": VisibleEvents(m, requests),
	})
}

// GetPending returns the editor state for the active manager.
func (h *Handler) GetPending(w http.ResponseWriter, r *http.Request) {
	m, ok := auth.ManagerFromContext(r.Context())
	if !ok || m == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	state, pending := h.Editors.ForManager(m).State()
	h.writeEditorState(w, state, pending)
}

type slotDTO struct {
	Start leave.Date `json:"start"`
	End   leave.Date `json:"end"`
}

// OpenSlot handles an empty-slot click.
func (h *Handler) OpenSlot(w http.ResponseWriter, r *http.Request) {
	m, ok := auth.ManagerFromContext(r.Context())
	if !ok || m == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto slotDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.Start.IsZero() || dto.End.IsZero() {
		h.WriteError(w, http.StatusBadRequest, "start and end are required")
		return
	}

	pending, err := h.Editors.ForManager(m).OpenSlot(r.Context(), dto.Start, dto.End)
	if err != nil {
		h.Logger.Error("OpenSlot: editor error", "error", err, "manager_id", m.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.writeEditorState(w, StateEditing, pending)
}

// OpenEvent handles a click on an existing calendar entry.
func (h *Handler) OpenEvent(w http.ResponseWriter, r *http.Request) {
	m, ok := auth.ManagerFromContext(r.Context())
	if !ok || m == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	pending, err := h.Editors.ForManager(m).OpenEvent(r.Context(), id)
	if err != nil {
		h.Logger.Error("OpenEvent: editor error", "error", err, "event_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.writeEditorState(w, StateEditing, pending)
}

// ApplyChange handles a field edit in the open modal.
func (h *Handler) ApplyChange(w http.ResponseWriter, r *http.Request) {
	m, ok := auth.ManagerFromContext(r.Context())
	if !ok || m == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var changes PendingChangeDTO
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pending, err := h.Editors.ForManager(m).Apply(changes)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.writeEditorState(w, StateEditing, pending)
}

// SavePending dispatches the pending edit to the store.
func (h *Handler) SavePending(w http.ResponseWriter, r *http.Request) {
	m, ok := auth.ManagerFromContext(r.Context())
	if !ok || m == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	saved, err := h.Editors.ForManager(m).Save(r.Context())
	if err != nil {
		h.Logger.Error("SavePending: save failed", "error", err, "manager_id", m.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("SavePending: leave request saved",
		"leave_id", saved.ID,
		"manager_id", m.ID,
		"status", saved.Status)

	h.WriteJSON(w, http.StatusOK, saved)
}

// CancelPending closes the modal without saving.
func (h *Handler) CancelPending(w http.ResponseWriter, r *http.Request) {
	m, ok := auth.ManagerFromContext(r.Context())
	if !ok || m == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.Editors.ForManager(m).Cancel()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeEditorState(w http.ResponseWriter, state State, pending PendingEvent) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"state":   state,
		"pending": pending,
	})
}
