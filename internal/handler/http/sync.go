package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punchsync"
	"github.com/cmlabs-hris/chronos-backend-go/internal/handler/http/response"
)

type SyncHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	SetConnectivity(w http.ResponseWriter, r *http.Request)
	Trigger(w http.ResponseWriter, r *http.Request)
}

type syncHandlerImpl struct {
	syncService punchsync.Service
}

func NewSyncHandler(syncService punchsync.Service) SyncHandler {
	return &syncHandlerImpl{syncService: syncService}
}

// Status handles GET /sync/status
func (h *syncHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.syncService.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, status)
}

// SetConnectivity handles PUT /sync/connectivity
func (h *syncHandlerImpl) SetConnectivity(w http.ResponseWriter, r *http.Request) {
	var req punchsync.ConnectivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := h.syncService.SetOnline(r.Context(), *req.Online)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, status)
}

// Trigger handles POST /sync
func (h *syncHandlerImpl) Trigger(w http.ResponseWriter, r *http.Request) {
	started, err := h.syncService.Trigger(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := h.syncService.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, punchsync.TriggerResponse{
		Started: started,
		Status:  status,
	})
}
