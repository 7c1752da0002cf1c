package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/velora-health/patient-assistant/internal/domain/providers"
	"github.com/velora-health/patient-assistant/pkg/config"
	apperrors "github.com/velora-health/patient-assistant/pkg/errors"
)

// DispatchStatus records one delivery attempt of an SOS alert
type DispatchStatus struct {
	Contact   string `json:"contact"`
	Channel   string `json:"channel"`
	Sent      bool   `json:"sent"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// EmergencyService composes SOS alerts and dispatches them to the configured
// emergency contacts. Either sender may be nil when that transport is not
// configured; delivery failures are reported per contact, never raised.
type EmergencyService struct {
	sms      providers.AlertSender
	email    providers.AlertSender
	contacts []config.EmergencyContact
}

// NewEmergencyService creates an emergency service
func NewEmergencyService(sms, email providers.AlertSender, contacts []config.EmergencyContact) *EmergencyService {
	return &EmergencyService{sms: sms, email: email, contacts: contacts}
}

// SendSOS dispatches the summary to every configured contact over every
// available transport and returns the per-contact outcomes. An alert id ties
// the dispatches together in logs.
func (s *EmergencyService) SendSOS(ctx context.Context, summary string) (string, []DispatchStatus, error) {
	if len(s.contacts) == 0 {
		return "", nil, apperrors.NewConfigurationError("no emergency contacts configured", nil)
	}

	alertID := uuid.NewString()
	statuses := make([]DispatchStatus, 0, len(s.contacts)*2)

	for _, contact := range s.contacts {
		if contact.Phone != "" && s.sms != nil {
			statuses = append(statuses, s.dispatch(ctx, alertID, s.sms, contact.Name, contact.Phone, summary))
		}
		if contact.Email != "" && s.email != nil {
			statuses = append(statuses, s.dispatch(ctx, alertID, s.email, contact.Name, contact.Email, summary))
		}
	}

	return alertID, statuses, nil
}

func (s *EmergencyService) dispatch(ctx context.Context, alertID string, sender providers.AlertSender, contact, recipient, summary string) DispatchStatus {
	status := DispatchStatus{Contact: contact, Channel: sender.Channel()}

	messageID, err := sender.Send(ctx, recipient, summary)
	if err != nil {
		log.Error().Err(err).
			Str("alert_id", alertID).
			Str("contact", contact).
			Str("channel", sender.Channel()).
			Msg("SOS dispatch failed")
		status.Error = err.Error()
		return status
	}

	status.Sent = true
	status.MessageID = messageID
	return status
}
