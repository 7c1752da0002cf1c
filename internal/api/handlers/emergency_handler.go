package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/velora-health/patient-assistant/internal/application/services"
)

// SOSDispatcher is the emergency surface the handler depends on
type SOSDispatcher interface {
	SendSOS(ctx context.Context, summary string) (string, []services.DispatchStatus, error)
}

// EmergencyHandler handles SOS HTTP requests
type EmergencyHandler struct {
	service SOSDispatcher
}

// NewEmergencyHandler creates a new emergency handler
func NewEmergencyHandler(service SOSDispatcher) *EmergencyHandler {
	return &EmergencyHandler{service: service}
}

type sosRequest struct {
	Condition string  `json:"condition"`
	RiskScore float64 `json:"risk_score"`
	Message   string  `json:"message"`
	Location  string  `json:"location"`
}

// SendSOS handles POST /api/emergency/sos
func (h *EmergencyHandler) SendSOS(w http.ResponseWriter, r *http.Request) {
	var req sosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary := buildSummary(req)

	alertID, statuses, err := h.service.SendSOS(r.Context(), summary)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	sent := 0
	for _, s := range statuses {
		if s.Sent {
			sent++
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"alert_id":   alertID,
		"dispatched": sent,
		"attempted":  len(statuses),
		"statuses":   statuses,
	})
}

func buildSummary(req sosRequest) string {
	var b strings.Builder
	b.WriteString("SOS health alert")
	if req.Condition != "" {
		b.WriteString(": elevated ")
		b.WriteString(req.Condition)
		b.WriteString(" risk")
	}
	if req.RiskScore > 0 {
		b.WriteString(" (score ")
		b.WriteString(strconv.FormatFloat(req.RiskScore, 'f', 1, 64))
		b.WriteString("%)")
	}
	if req.Location != "" {
		b.WriteString(". Location: ")
		b.WriteString(req.Location)
	}
	if req.Message != "" {
		b.WriteString(". ")
		b.WriteString(req.Message)
	}
	return b.String()
}
