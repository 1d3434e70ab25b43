package fcm

import (
	"encoding/json"
	"strings"
)

// ServiceAccount is a Google service-account key as downloaded from the console.
type ServiceAccount struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri"`
}

// ParseServiceAccount decodes the SERVICE_ACCOUNT_JSON value.
func ParseServiceAccount(raw string) (*ServiceAccount, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, configurationError("SERVICE_ACCOUNT_JSON is not configured")
	}

	var sa ServiceAccount
	if err := json.Unmarshal([]byte(raw), &sa); err != nil {
		return nil, credentialError("invalid SERVICE_ACCOUNT_JSON", err)
	}
	if sa.ClientEmail == "" || sa.PrivateKey == "" {
		return nil, credentialError("SERVICE_ACCOUNT_JSON must contain client_email and private_key", nil)
	}
	return &sa, nil
}
