// Package session implements cookie-plus-Valkey sessions for the admin
// dashboard. The browser holds only an opaque random ID; the payload
// lives server-side in Valkey under a TTL, so both logout and expiry
// come down to a key disappearing.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the session cookie sent to the browser.
	CookieName = "hi_session"

	// DefaultTTL is how long a session lives without being refreshed.
	DefaultTTL = 24 * time.Hour

	keyPrefix = "session:"
	idBytes   = 32
)

// Data is the payload stored in Valkey for one login. TwoFADone starts
// false; until TOTP verification completes the session only grants
// access to the 2FA endpoints.
type Data struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	TwoFADone   bool      `json:"two_fa_done"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store manages the session lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore creates a session store on the given Valkey client. Pass
// secure=true behind TLS so cookies carry the Secure flag.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{client: client, ttl: DefaultTTL, secure: secure}
}

// Create mints a session ID, writes the payload to Valkey, and sets the
// cookie on the response.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id, err := newID()
	if err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}

	data.CreatedAt = time.Now()
	if err := s.write(ctx, id, data); err != nil {
		return "", err
	}

	http.SetCookie(w, s.cookie(id, int(s.ttl.Seconds())))
	return id, nil
}

// Get loads the session named by the request cookie. A missing cookie or
// an expired session both come back as (nil, nil): not logged in.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, nil
	}

	payload, err := s.client.Get(ctx, keyPrefix+cookie.Value).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &data, nil
}

// Update rewrites the payload under the same session ID and refreshes the
// TTL. Used when 2FA verification completes.
func (s *Store) Update(ctx context.Context, r *http.Request, data *Data) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return fmt.Errorf("session update: no cookie")
	}
	return s.write(ctx, cookie.Value, data)
}

// Destroy deletes the session from Valkey and expires the cookie. A
// request without a cookie is a no-op, not an error.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	s.client.Del(ctx, keyPrefix+cookie.Value)
	http.SetCookie(w, s.cookie("", -1))
	return nil
}

func (s *Store) write(ctx context.Context, id string, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}

func (s *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

func newID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
