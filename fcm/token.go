package fcm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	fcmv1 "google.golang.org/api/fcm/v1"

	"fcmrelay/metrics"
)

// TokenProvider exchanges a service account for a bearer access token.
type TokenProvider interface {
	AccessToken(ctx context.Context, sa *ServiceAccount) (string, error)
}

// JWTTokenProvider runs the two-legged signed-JWT OAuth2 flow on every call.
// Nothing is cached between calls.
type JWTTokenProvider struct {
	Scopes     []string
	HTTPClient *http.Client
}

// AccessToken signs a JWT for sa and exchanges it at the token endpoint.
func (p *JWTTokenProvider) AccessToken(ctx context.Context, sa *ServiceAccount) (string, error) {
	scopes := p.Scopes
	if len(scopes) == 0 {
		scopes = []string{fcmv1.FirebaseMessagingScope}
	}

	conf := &jwt.Config{
		Email:        sa.ClientEmail,
		PrivateKey:   []byte(sa.PrivateKey),
		PrivateKeyID: sa.PrivateKeyID,
		Scopes:       scopes,
		TokenURL:     sa.TokenURI,
	}
	if conf.TokenURL == "" {
		conf.TokenURL = google.JWTTokenURL
	}
	if p.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.HTTPClient)
	}

	start := time.Now()
	tok, err := conf.TokenSource(ctx).Token()
	if err != nil {
		metrics.ObserveToken("error", time.Since(start))
		return "", fmt.Errorf("fetch access token: %w", err)
	}
	metrics.ObserveToken("ok", time.Since(start))
	return tok.AccessToken, nil
}
