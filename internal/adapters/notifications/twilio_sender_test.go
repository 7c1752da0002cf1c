package notifications

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTwilioSenderRequiresCredentials(t *testing.T) {
	_, err := NewTwilioSender("", "token", "+15550001111")
	assert.Error(t, err)

	_, err = NewTwilioSender("AC123", "token", "+15550001111")
	assert.NoError(t, err)
}

func TestTwilioSenderSend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "+15550001111", r.PostForm.Get("From"))
		assert.Equal(t, "+15552223333", r.PostForm.Get("To"))
		assert.Equal(t, "SOS health alert", r.PostForm.Get("Body"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "token", pass)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid": "SM42", "status": "queued"}`))
	}))
	defer server.Close()

	sender, err := NewTwilioSender("AC123", "token", "+15550001111")
	require.NoError(t, err)
	sender.baseURL = server.URL

	sid, err := sender.Send(context.Background(), "+15552223333", "SOS health alert")

	require.NoError(t, err)
	assert.Equal(t, "SM42", sid)
}

func TestTwilioSenderAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "authentication failed"}`))
	}))
	defer server.Close()

	sender, err := NewTwilioSender("AC123", "bad-token", "+15550001111")
	require.NoError(t, err)
	sender.baseURL = server.URL

	_, err = sender.Send(context.Background(), "+15552223333", "SOS health alert")
	assert.ErrorContains(t, err, "status 401")
}
