package storage

import (
	"context"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/jwt"
)

const defaultTokenURL = "https://oauth2.googleapis.com/token"

// SheetScopes are requested for the web-app endpoint when it is deployed
// with "only myself / domain" access.
var SheetScopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive.file",
}

// ServiceAccountCredentials is the subset of a Google service account key
// file needed for the JWT bearer flow.
type ServiceAccountCredentials struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	TokenURI     string `json:"token_uri"`
}

// NewServiceAccountTokenSource builds a cached oauth2 token source from a
// service account JSON key file.
func NewServiceAccountTokenSource(ctx context.Context, credentialsPath string, scopes ...string) (oauth2.TokenSource, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("credentials path is required")
	}
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("error reading credentials file: %w", err)
	}
	cfg, err := jwtConfigFromJSON(data, scopes)
	if err != nil {
		return nil, err
	}
	return oauth2.ReuseTokenSource(nil, cfg.TokenSource(ctx)), nil
}

func jwtConfigFromJSON(data []byte, scopes []string) (*jwt.Config, error) {
	var creds ServiceAccountCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("error parsing credentials: %w", err)
	}
	if creds.ClientEmail == "" {
		return nil, fmt.Errorf("credentials have no client_email")
	}

	key := strings.ReplaceAll(creds.PrivateKey, "\\n", "\n")
	if err := checkPrivateKey(key); err != nil {
		return nil, fmt.Errorf("error parsing private key: %w", err)
	}

	tokenURL := creds.TokenURI
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	if len(scopes) == 0 {
		scopes = SheetScopes
	}
	return &jwt.Config{
		Email:        creds.ClientEmail,
		PrivateKey:   []byte(key),
		PrivateKeyID: creds.PrivateKeyID,
		Scopes:       scopes,
		TokenURL:     tokenURL,
	}, nil
}

func checkPrivateKey(keyData string) error {
	block, _ := pem.Decode([]byte(strings.TrimSpace(keyData)))
	if block == nil {
		return fmt.Errorf("failed to parse PEM block")
	}
	if _, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		return nil
	}
	if _, err := x509.ParsePKCS1PrivateKey(block.Bytes); err != nil {
		return fmt.Errorf("failed to parse private key: %w", err)
	}
	return nil
}
