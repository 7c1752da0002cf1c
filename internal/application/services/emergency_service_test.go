package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/velora-health/patient-assistant/internal/application/services"
	"github.com/velora-health/patient-assistant/pkg/config"
	apperrors "github.com/velora-health/patient-assistant/pkg/errors"
)

// Mocks

type MockAlertSender struct {
	mock.Mock
	channel string
}

func (m *MockAlertSender) Channel() string {
	return m.channel
}

func (m *MockAlertSender) Send(ctx context.Context, recipient, message string) (string, error) {
	args := m.Called(ctx, recipient, message)
	return args.String(0), args.Error(1)
}

func TestSendSOSDispatchesToAllContacts(t *testing.T) {
	sms := &MockAlertSender{channel: "sms"}
	sms.On("Send", mock.Anything, "+15551230001", mock.Anything).Return("SM1", nil)
	sms.On("Send", mock.Anything, "+15551230002", mock.Anything).Return("SM2", nil)

	email := &MockAlertSender{channel: "email"}
	email.On("Send", mock.Anything, "one@example.com", mock.Anything).Return("mid-1", nil)

	service := services.NewEmergencyService(sms, email, []config.EmergencyContact{
		{Name: "One", Phone: "+15551230001", Email: "one@example.com"},
		{Name: "Two", Phone: "+15551230002"},
	})

	alertID, statuses, err := service.SendSOS(context.Background(), "SOS health alert")

	require.NoError(t, err)
	assert.NotEmpty(t, alertID)
	require.Len(t, statuses, 3)
	for _, s := range statuses {
		assert.True(t, s.Sent)
		assert.NotEmpty(t, s.MessageID)
	}
	sms.AssertExpectations(t)
	email.AssertExpectations(t)
}

func TestSendSOSReportsPerContactFailures(t *testing.T) {
	sms := &MockAlertSender{channel: "sms"}
	sms.On("Send", mock.Anything, "+15551230001", mock.Anything).Return("", errors.New("twilio 429"))
	sms.On("Send", mock.Anything, "+15551230002", mock.Anything).Return("SM2", nil)

	service := services.NewEmergencyService(sms, nil, []config.EmergencyContact{
		{Name: "One", Phone: "+15551230001"},
		{Name: "Two", Phone: "+15551230002"},
	})

	_, statuses, err := service.SendSOS(context.Background(), "SOS health alert")

	// A partial delivery failure is not a request failure
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.False(t, statuses[0].Sent)
	assert.Contains(t, statuses[0].Error, "twilio 429")
	assert.True(t, statuses[1].Sent)
}

func TestSendSOSNoContactsConfigured(t *testing.T) {
	sms := &MockAlertSender{channel: "sms"}

	service := services.NewEmergencyService(sms, nil, nil)

	_, _, err := service.SendSOS(context.Background(), "SOS health alert")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeConfiguration, appErr.Type)
}

func TestSendSOSSkipsChannelsWithoutTransport(t *testing.T) {
	email := &MockAlertSender{channel: "email"}
	email.On("Send", mock.Anything, "one@example.com", mock.Anything).Return("mid-1", nil)

	// Contact has a phone number but no SMS sender is configured
	service := services.NewEmergencyService(nil, email, []config.EmergencyContact{
		{Name: "One", Phone: "+15551230001", Email: "one@example.com"},
	})

	_, statuses, err := service.SendSOS(context.Background(), "SOS health alert")

	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "email", statuses[0].Channel)
}
