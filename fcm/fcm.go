package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"fcmrelay/appconfig"
)

// TopicRequest is the inbound payload of the topic endpoint.
type TopicRequest struct {
	Topic string            `json:"topic" binding:"required"`
	Title string            `json:"title" binding:"required"`
	Body  string            `json:"body" binding:"required"`
	Data  map[string]string `json:"data"`
}

// TopicSender delivers one notification to every device subscribed to a topic.
type TopicSender interface {
	SendToTopic(ctx context.Context, cfg appconfig.Config, req TopicRequest) (string, error)
}

// AdminTopicSender sends through the Firebase Admin SDK. A new app is built
// per call from the current SERVICE_ACCOUNT_JSON. Options are appended after
// the credentials option.
type AdminTopicSender struct {
	Options []option.ClientOption
}

func (s AdminTopicSender) SendToTopic(ctx context.Context, cfg appconfig.Config, req TopicRequest) (string, error) {
	opts := append([]option.ClientOption{option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON))}, s.Options...)
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return "", fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return "", fmt.Errorf("error getting messaging client: %w", err)
	}

	id, err := client.Send(ctx, NewTopicMessage(req))
	if err != nil {
		return "", topicSendError(err)
	}
	return id, nil
}

// topicSendError keeps the HTTP status of Admin SDK errors that carry a response.
func topicSendError(err error) error {
	if resp := errorutils.HTTPResponse(err); resp != nil && resp.StatusCode >= 400 {
		return &Error{Kind: KindUpstream, Status: resp.StatusCode, Message: "FCM topic send failed", Err: err}
	}
	return err
}

// NewTopicMessage builds the Admin SDK message for a topic broadcast.
func NewTopicMessage(req TopicRequest) *messaging.Message {
	data := req.Data
	if data == nil {
		data = map[string]string{}
	}
	return &messaging.Message{
		Notification: &messaging.Notification{
			Title: req.Title,
			Body:  req.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:        "default",
				Priority:     messaging.PriorityMax,
				Visibility:   messaging.VisibilityPublic,
				DefaultSound: true,
			},
		},
		Topic: req.Topic,
	}
}
