package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// TokenSource manages the bearer token for backend calls. It refreshes
// proactively when the access token's exp claim has passed, and can be
// invalidated to force a refresh after the backend answers 401.
type TokenSource struct {
	refreshURL   string
	refreshToken string
	client       *http.Client

	mu    sync.Mutex
	token *oauth2.Token
}

// NewTokenSource creates a token source seeded with an initial access token.
// If refreshURL is empty the access token is used as-is and never refreshed.
func NewTokenSource(accessToken, refreshToken, refreshURL string, client *http.Client) *TokenSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &TokenSource{
		refreshURL:   refreshURL,
		refreshToken: refreshToken,
		client:       client,
		token:        tokenFromJWT(accessToken),
	}
}

// Token returns a valid access token, refreshing it first if expired.
func (s *TokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != nil && s.token.Valid() {
		return s.token, nil
	}
	return s.refreshLocked()
}

// Invalidate discards the cached token so the next Token call refreshes.
// Called when the backend rejects a request with 401 despite a token that
// looked valid locally.
func (s *TokenSource) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != nil {
		s.token.Expiry = time.Now().Add(-time.Second)
	}
}

func (s *TokenSource) refreshLocked() (*oauth2.Token, error) {
	if s.refreshURL == "" || s.refreshToken == "" {
		if s.token == nil {
			return nil, errors.New("no access token configured")
		}
		return s.token, nil
	}

	body, err := json.Marshal(map[string]string{"refresh": s.refreshToken})
	if err != nil {
		return nil, errors.Wrap(err, "encoding refresh request")
	}

	resp, err := s.client.Post(s.refreshURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "refreshing access token")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("token refresh failed with status %d", resp.StatusCode)
	}

	var payload struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding refresh response")
	}
	if payload.Access == "" {
		return nil, errors.New("token refresh response missing access token")
	}
	if payload.Refresh != "" {
		s.refreshToken = payload.Refresh
	}

	s.token = tokenFromJWT(payload.Access)
	return s.token, nil
}

// tokenFromJWT wraps a raw JWT as an oauth2 token, reading the exp claim
// without verifying the signature. Verification is the backend's job; the
// terminal only needs the expiry to know when to refresh.
func tokenFromJWT(raw string) *oauth2.Token {
	tok := &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}
	if raw == "" {
		return tok
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err == nil {
		if claims.ExpiresAt != nil {
			tok.Expiry = claims.ExpiresAt.Time
		}
	}
	return tok
}

// AuthHeader formats the token for the Authorization header.
func AuthHeader(tok *oauth2.Token) string {
	return fmt.Sprintf("Bearer %s", tok.AccessToken)
}
