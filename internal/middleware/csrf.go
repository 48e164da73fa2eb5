// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

const (
	// CSRFCookieName holds the double-submit token. The cookie is
	// deliberately readable from JS: the dashboard reads it and echoes it
	// back in the request header.
	CSRFCookieName = "hi_csrf"

	// CSRFHeaderName is where the dashboard sends the token back.
	CSRFHeaderName = "X-CSRF-Token"

	// CSRFFormField carries the token for plain form posts.
	CSRFFormField = "csrf_token"

	csrfTokenBytes = 32
)

// CSRF implements double-submit cookie protection for the admin API.
// Safe methods only ensure the token cookie exists; mutating methods
// (POST, PUT, PATCH, DELETE) must echo the cookie's token in the header
// or form field.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := ensureCSRFCookie(w, r)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		echoed := r.Header.Get(CSRFHeaderName)
		if echoed == "" {
			echoed = r.FormValue(CSRFFormField)
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(echoed)) != 1 {
			writeJSONError(w, http.StatusForbidden, "csrf token mismatch")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ensureCSRFCookie returns the request's current token, minting and
// setting a fresh one when the request carries none.
func ensureCSRFCookie(w http.ResponseWriter, r *http.Request) (string, error) {
	if c, err := r.Cookie(CSRFCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	raw := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
	})
	return token, nil
}

// GetCSRFToken reads the token cookie off a request, or "" if absent.
func GetCSRFToken(r *http.Request) string {
	if c, err := r.Cookie(CSRFCookieName); err == nil {
		return c.Value
	}
	return ""
}
