package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	fcmv1 "google.golang.org/api/fcm/v1"

	"fcmrelay/metrics"
)

// NotificationRequest is the inbound payload of the relay endpoint.
type NotificationRequest struct {
	ReceiverToken string            `json:"receiverToken" binding:"required"`
	Title         string            `json:"title" binding:"required"`
	Body          string            `json:"body" binding:"required"`
	Data          map[string]string `json:"data"`
}

// SendResult is FCM's reply, kept as raw bytes so it can be relayed unchanged.
type SendResult struct {
	StatusCode int
	Body       []byte
}

// OK reports whether FCM answered with a 2xx status.
func (r *SendResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Sender posts messages to the FCM HTTP v1 send endpoint.
type Sender struct {
	HTTPClient *http.Client
}

// NewSendMessageRequest builds the v1 envelope for a single device. The data
// map is always sent, as {} when the caller gave none.
func NewSendMessageRequest(req NotificationRequest) *fcmv1.SendMessageRequest {
	data := req.Data
	if data == nil {
		data = map[string]string{}
	}
	return &fcmv1.SendMessageRequest{
		Message: &fcmv1.Message{
			Token: req.ReceiverToken,
			Notification: &fcmv1.Notification{
				Title: req.Title,
				Body:  req.Body,
			},
			Data:            data,
			ForceSendFields: []string{"Data"},
		},
	}
}

// SendURL is the per-project send endpoint under baseURL.
func SendURL(baseURL, projectID string) string {
	return fmt.Sprintf("%s/v1/projects/%s/messages:send", baseURL, url.PathEscape(projectID))
}

// Send issues one POST and returns whatever FCM answered. A non-2xx status is
// not an error here; the caller decides how to relay it.
func (s *Sender) Send(ctx context.Context, baseURL, projectID, accessToken string, req NotificationRequest) (*SendResult, error) {
	payload, err := json.Marshal(NewSendMessageRequest(req))
	if err != nil {
		return nil, fmt.Errorf("encode FCM message: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, SendURL(baseURL, projectID), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build FCM request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		metrics.ObserveUpstream(0, time.Since(start))
		return nil, fmt.Errorf("send to FCM: %w", err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream(resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read FCM response: %w", err)
	}
	return &SendResult{StatusCode: resp.StatusCode, Body: body}, nil
}
