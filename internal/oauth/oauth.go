package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
)

// UserInfo is the provider-agnostic identity handed to the user service
// after a successful code exchange.
type UserInfo struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
	Provider  string
}

// Provider is one configured sign-in backend.
type Provider interface {
	Name() string
	GetConsentURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*UserInfo, error)
}

// GenerateState returns an opaque URL-safe token, used both for CSRF states
// and for one-shot auth codes.
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// getJSON performs an authenticated GET against a provider API and decodes
// the response body into out.
func getJSON(client *http.Client, url string, out interface{}) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
