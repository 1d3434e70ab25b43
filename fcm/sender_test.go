package fcm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSendMessageRequest_EmptyDataIsSent(t *testing.T) {
	b, err := json.Marshal(NewSendMessageRequest(NotificationRequest{
		ReceiverToken: "device-token",
		Title:         "Hi",
		Body:          "There",
	}))
	require.NoError(t, err)

	assert.JSONEq(t, `{"message":{"token":"device-token","notification":{"title":"Hi","body":"There"},"data":{}}}`, string(b))
}

func TestNewSendMessageRequest_KeepsData(t *testing.T) {
	b, err := json.Marshal(NewSendMessageRequest(NotificationRequest{
		ReceiverToken: "device-token",
		Title:         "Hi",
		Body:          "There",
		Data:          map[string]string{"chatId": "42"},
	}))
	require.NoError(t, err)

	assert.JSONEq(t, `{"message":{"token":"device-token","notification":{"title":"Hi","body":"There"},"data":{"chatId":"42"}}}`, string(b))
}

func TestSendURL(t *testing.T) {
	assert.Equal(t, "https://fcm.googleapis.com/v1/projects/my-proj/messages:send", SendURL("https://fcm.googleapis.com", "my-proj"))
}

func TestSender_Send(t *testing.T) {
	var gotAuth, gotPath, gotContentType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}))
	defer srv.Close()

	s := &Sender{HTTPClient: srv.Client()}
	result, err := s.Send(context.Background(), srv.URL, "p", "abc123", NotificationRequest{
		ReceiverToken: "t", Title: "a", Body: "b",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.False(t, result.OK())
	assert.JSONEq(t, `{"error":"not found"}`, string(result.Body))
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "/v1/projects/p/messages:send", gotPath)
	assert.JSONEq(t, `{"message":{"token":"t","notification":{"title":"a","body":"b"},"data":{}}}`, string(gotBody))
}

func TestSender_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := (&Sender{}).Send(context.Background(), url, "p", "abc123", NotificationRequest{
		ReceiverToken: "t", Title: "a", Body: "b",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send to FCM")
}
