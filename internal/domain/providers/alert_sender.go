package providers

import (
	"context"
)

// AlertSender delivers an emergency message over one transport (SMS, email).
// Transports are external collaborators; the emergency service only composes
// messages and records delivery outcomes.
type AlertSender interface {
	// Channel names the transport ("sms", "email")
	Channel() string

	// Send delivers the message and returns a provider message id
	Send(ctx context.Context, recipient, message string) (string, error)
}
