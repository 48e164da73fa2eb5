// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// cleanupEvery is how often idle visitor entries are swept away.
const cleanupEvery = 5 * time.Minute

// visitor holds the hit timestamps seen from one client IP.
type visitor struct {
	mu   sync.Mutex
	hits []time.Time
}

// RateLimiter caps requests per client IP over a sliding window. The
// login endpoint and the public contact form each sit behind one.
type RateLimiter struct {
	mu       sync.RWMutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	done     chan struct{}
}

// NewRateLimiter allows limit requests per window per IP and starts a
// background sweep that forgets idle IPs.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		done:     make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(cleanupEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.done:
			return
		}
	}
}

// Stop ends the background sweep goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

// allow records a hit for key and reports whether it is within the limit.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.RLock()
	v := rl.visitors[key]
	rl.mu.RUnlock()

	if v == nil {
		rl.mu.Lock()
		if v = rl.visitors[key]; v == nil {
			v = &visitor{}
			rl.visitors[key] = v
		}
		rl.mu.Unlock()
	}

	now := time.Now()
	cutoff := now.Add(-rl.window)

	v.mu.Lock()
	defer v.mu.Unlock()

	// Slide the window: drop hits older than the cutoff.
	fresh := v.hits[:0]
	for _, ts := range v.hits {
		if ts.After(cutoff) {
			fresh = append(fresh, ts)
		}
	}
	v.hits = fresh

	if len(v.hits) >= rl.limit {
		return false
	}
	v.hits = append(v.hits, now)
	return true
}

// cleanup drops visitors whose every hit has aged out of the window.
func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.visitors {
		v.mu.Lock()
		active := false
		for _, ts := range v.hits {
			if ts.After(cutoff) {
				active = true
				break
			}
		}
		v.mu.Unlock()

		if !active {
			delete(rl.visitors, key)
		}
	}
}

// Middleware rejects over-limit requests with a 429 JSON error.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			writeJSONError(w, http.StatusTooManyRequests, "too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the originating address, trusting the usual proxy
// headers before falling back to the socket address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The leftmost entry is the original client.
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return strings.TrimSpace(rip)
	}

	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i >= 0 {
		return host[:i]
	}
	return host
}
