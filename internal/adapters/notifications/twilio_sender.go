// Package notifications holds the SOS alert transports. Both senders are
// external collaborators behind the AlertSender interface; the emergency
// service never depends on a concrete transport.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TwilioSender sends SMS alerts via the Twilio Messages API
type TwilioSender struct {
	accountSID string
	authToken  string
	fromNumber string
	httpClient *http.Client
	baseURL    string
}

// NewTwilioSender creates a Twilio SMS sender
func NewTwilioSender(accountSID, authToken, fromNumber string) (*TwilioSender, error) {
	if accountSID == "" || authToken == "" || fromNumber == "" {
		return nil, fmt.Errorf("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM_NUMBER must be set")
	}

	return &TwilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.twilio.com/2010-04-01",
	}, nil
}

// Channel implements providers.AlertSender
func (t *TwilioSender) Channel() string {
	return "sms"
}

type twilioResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Send delivers an SMS and returns the Twilio message SID
func (t *TwilioSender) Send(ctx context.Context, recipient, message string) (string, error) {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.baseURL, t.accountSID)

	form := url.Values{}
	form.Set("From", t.fromNumber)
	form.Set("To", recipient)
	form.Set("Body", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("Twilio API error (status %d): %s", resp.StatusCode, string(body))
	}

	var out twilioResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if out.SID == "" {
		return "", fmt.Errorf("no message SID in response")
	}

	return out.SID, nil
}
