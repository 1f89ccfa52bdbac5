package storage

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeyPEM(t *testing.T, pkcs8 bool) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	if pkcs8 {
		der, err := x509.MarshalPKCS8PrivateKey(key)
		require.NoError(t, err)
		return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}))
}

func credentialsJSON(t *testing.T, creds ServiceAccountCredentials) []byte {
	t.Helper()
	data, err := json.Marshal(creds)
	require.NoError(t, err)
	return data
}

func TestJWTConfigFromJSON(t *testing.T) {
	pkcs8 := testKeyPEM(t, true)
	pkcs1 := testKeyPEM(t, false)

	tests := []struct {
		name string
		key  string
	}{
		{"pkcs8", pkcs8},
		{"pkcs1", pkcs1},
		{"escaped newlines", strings.ReplaceAll(pkcs8, "\n", `\n`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := jwtConfigFromJSON(credentialsJSON(t, ServiceAccountCredentials{
				PrivateKeyID: "kid-1",
				PrivateKey:   tt.key,
				ClientEmail:  "dispatch@project.iam.gserviceaccount.com",
			}), nil)
			require.NoError(t, err)
			assert.Equal(t, "dispatch@project.iam.gserviceaccount.com", cfg.Email)
			assert.Equal(t, "kid-1", cfg.PrivateKeyID)
			assert.Equal(t, SheetScopes, cfg.Scopes)
			assert.Equal(t, defaultTokenURL, cfg.TokenURL)
			assert.NotContains(t, string(cfg.PrivateKey), `\n`)
		})
	}
}

func TestJWTConfigFromJSONErrors(t *testing.T) {
	key := testKeyPEM(t, true)

	_, err := jwtConfigFromJSON([]byte("{"), nil)
	assert.ErrorContains(t, err, "error parsing credentials")

	_, err = jwtConfigFromJSON(credentialsJSON(t, ServiceAccountCredentials{PrivateKey: key}), nil)
	assert.ErrorContains(t, err, "client_email")

	_, err = jwtConfigFromJSON(credentialsJSON(t, ServiceAccountCredentials{
		PrivateKey:  "not a key",
		ClientEmail: "a@b.c",
	}), nil)
	assert.ErrorContains(t, err, "failed to parse PEM block")

	garbage := string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte("garbage")}))
	_, err = jwtConfigFromJSON(credentialsJSON(t, ServiceAccountCredentials{
		PrivateKey:  garbage,
		ClientEmail: "a@b.c",
	}), nil)
	assert.ErrorContains(t, err, "failed to parse private key")
}

func TestServiceAccountTokenAuthorisesSheetCalls(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.PostForm.Get("assertion") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"sheet-token","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(tokenSrv.Close)

	var (
		mu   sync.Mutex
		auth string
	)
	sheetSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		auth = r.Header.Get("Authorization")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	t.Cleanup(sheetSrv.Close)

	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, credentialsJSON(t, ServiceAccountCredentials{
		Type:        "service_account",
		PrivateKey:  testKeyPEM(t, false),
		ClientEmail: "dispatch@project.iam.gserviceaccount.com",
		TokenURI:    tokenSrv.URL,
	}), 0o600))

	ts, err := NewServiceAccountTokenSource(context.Background(), path)
	require.NoError(t, err)

	client := NewSheetClient(sheetSrv.URL, SheetClientOptions{Timeout: 5 * time.Second, TokenSource: ts})
	_, err = client.GetData(context.Background(), "Login")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "Bearer sheet-token", auth)
}

func TestServiceAccountTokenSourceMissingFile(t *testing.T) {
	_, err := NewServiceAccountTokenSource(context.Background(), "")
	assert.Error(t, err)
	_, err = NewServiceAccountTokenSource(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "error reading credentials file")
}
