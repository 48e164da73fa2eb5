// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// testStore connects to the test Valkey on DB 15 and returns a session
// store over it. Skips when Valkey is unreachable; registers cleanup of
// every session key written during the test.
func testStore(t *testing.T, secure bool) *Store {
	t.Helper()

	addr := envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379")
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		if keys, _ := client.Keys(ctx, keyPrefix+"*").Result(); len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return NewStore(client, secure)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// login creates a session for a fixture account and returns its cookie.
func login(t *testing.T, store *Store, data *Data) *http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	id, err := store.Create(context.Background(), w, data)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned an empty session ID")
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func crewSession() *Data {
	return &Data{
		UserID:      uuid.New(),
		Email:       "restorer@heritageiron.example",
		DisplayName: "Shop Restorer",
		Role:        "editor",
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store := testStore(t, false)
	want := crewSession()

	cookie := login(t, store, want)
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if cookie.Secure {
		t.Error("Secure flag should be off for a non-TLS store")
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/me", nil)
	req.AddCookie(cookie)

	got, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected session data, got nil")
	}
	if got.UserID != want.UserID || got.Email != want.Email || got.Role != want.Role {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be stamped on create")
	}
}

func TestSessionGetWithoutCookie(t *testing.T) {
	store := testStore(t, false)

	data, err := store.Get(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Error("no cookie should mean no session, not an error")
	}
}

func TestSessionGetUnknownID(t *testing.T) {
	store := testStore(t, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "expired-or-forged"})

	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Error("an unknown session ID should read as logged out")
	}
}

func TestSessionUpdateMarks2FA(t *testing.T) {
	store := testStore(t, false)
	data := crewSession()
	cookie := login(t, store, data)

	req := httptest.NewRequest(http.MethodGet, "/admin/api/2fa/verify", nil)
	req.AddCookie(cookie)

	data.TwoFADone = true
	if err := store.Update(context.Background(), req, data); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.Get(context.Background(), req)
	if err != nil || got == nil {
		t.Fatalf("Get after update: data=%v err=%v", got, err)
	}
	if !got.TwoFADone {
		t.Error("TwoFADone should persist across Update")
	}
}

func TestSessionUpdateWithoutCookie(t *testing.T) {
	store := testStore(t, false)

	err := store.Update(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil), &Data{})
	if err == nil {
		t.Error("Update without a cookie should fail")
	}
}

func TestSessionDestroy(t *testing.T) {
	store := testStore(t, false)
	cookie := login(t, store, crewSession())

	req := httptest.NewRequest(http.MethodPost, "/admin/api/logout", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()

	if err := store.Destroy(context.Background(), w, req); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName && c.MaxAge != -1 {
			t.Error("destroyed session cookie should carry MaxAge=-1")
		}
	}

	if got, _ := store.Get(context.Background(), req); got != nil {
		t.Error("session should be gone from Valkey after Destroy")
	}
}

func TestSessionDestroyWithoutCookie(t *testing.T) {
	store := testStore(t, false)

	err := store.Destroy(context.Background(), httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/admin/api/logout", nil))
	if err != nil {
		t.Errorf("Destroy without a cookie should be a no-op, got %v", err)
	}
}

func TestSessionSecureCookie(t *testing.T) {
	store := testStore(t, true)

	cookie := login(t, store, crewSession())
	if !cookie.Secure {
		t.Error("Secure flag should be set when the store is secure")
	}
}
