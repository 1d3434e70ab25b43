package fcm

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"fcmrelay/appconfig"
)

// Relay forwards notification requests to FCM. It holds no per-request state;
// configuration and credentials are passed in on every call.
type Relay struct {
	Tokens TokenProvider
	Sender *Sender
	Topics TopicSender
	Logger *zap.Logger
}

// NewRelay wires the production token provider, sender and topic sender.
func NewRelay(logger *zap.Logger) *Relay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relay{
		Tokens: &JWTTokenProvider{},
		Sender: &Sender{HTTPClient: http.DefaultClient},
		Topics: AdminTopicSender{},
		Logger: logger,
	}
}

// Dispatch resolves the credential, obtains a token and sends req to FCM.
func (r *Relay) Dispatch(ctx context.Context, cfg appconfig.Config, req NotificationRequest) (*SendResult, error) {
	if cfg.ProjectID == "" {
		return nil, configurationError("FIREBASE_PROJECT_ID is not configured")
	}

	sa, err := ParseServiceAccount(cfg.ServiceAccountJSON)
	if err != nil {
		return nil, err
	}

	token, err := r.Tokens.AccessToken(ctx, sa)
	if err != nil {
		return nil, err
	}

	sender := r.Sender
	if sender == nil {
		sender = &Sender{}
	}
	return sender.Send(ctx, cfg.FCMBaseURL, cfg.ProjectID, token, req)
}
