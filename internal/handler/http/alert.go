package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/chronos-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/sse"
	"github.com/go-chi/chi/v5"
)

// AlertHandler defines the alert handler interface
type AlertHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)

	// SSE
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type alertHandlerImpl struct {
	alertService alert.AlertService
	jwtService   jwt.Service
	hub          *sse.Hub
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertService alert.AlertService, jwtService jwt.Service, hub *sse.Hub) AlertHandler {
	return &alertHandlerImpl{
		alertService: alertService,
		jwtService:   jwtService,
		hub:          hub,
	}
}

// List returns alerts newest first, optionally unread only and narrowed
// to a comma separated ?type= list
func (h *alertHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := alert.AlertFilter{
		UnreadOnly: getBoolQueryParam(r, "unread_only", false),
	}
	for _, v := range getListQueryParam(r, "type") {
		filter.Kinds = append(filter.Kinds, alert.Kind(strings.ToUpper(v)))
	}

	alerts, err := h.alertService.ListAlerts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, alerts)
}

// MarkAsRead marks a single alert as read
func (h *alertHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Alert ID is required", nil)
		return
	}

	if err := h.alertService.MarkAsRead(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Alert marked as read", nil)
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *alertHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(employeeID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, alert.SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream pushes newly raised alerts to administrators
func (h *alertHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot send headers, so the token travels in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	employeeID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(sse.TopicAdmins)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"employee_id\":%q}\n\n", employeeID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
