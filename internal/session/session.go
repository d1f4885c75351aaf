// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session tracks live access tokens in Valkey. A token is only
// honoured while its session record exists, so deleting the record revokes
// the token. The record also carries the theme cascade seeded at login.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"privatespace/internal/design"
)

const (
	// CookieName is the name of the cookie carrying the access token for
	// the server-rendered pages.
	CookieName = "ps_token"

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "session:"
)

// Data holds the session payload stored in Valkey.
type Data struct {
	UserID    uuid.UUID     `json:"user_id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Theme     *design.Theme `json:"theme,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store manages session lifecycle in Valkey.
type Store struct {
	client *redis.Client
	secure bool
}

// NewStore creates a session store backed by the given Valkey client.
// secure controls the Secure flag of the page cookie.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{client: client, secure: secure}
}

// Create stores the session for token ID jti. It expires together with the
// token after ttl.
func (s *Store) Create(ctx context.Context, jti string, data *Data, ttl time.Duration) error {
	data.CreatedAt = time.Now()

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}

	// The per-user index lives as long as the longest session in it.
	idx := userKey(data.UserID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, keyPrefix+jti, payload, ttl)
		pipe.SAdd(ctx, idx, jti)
		pipe.ExpireNX(ctx, idx, ttl)
		pipe.ExpireGT(ctx, idx, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}

func userKey(userID uuid.UUID) string {
	return keyPrefix + "user:" + userID.String()
}

// Get retrieves the session for a token ID. Returns nil if the session has
// expired or was revoked.
func (s *Store) Get(ctx context.Context, jti string) (*Data, error) {
	payload, err := s.client.Get(ctx, keyPrefix+jti).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}
	return &data, nil
}

// replace overwrites an existing session, keeping its TTL. It reports
// false when the session is gone.
func (s *Store) replace(ctx context.Context, jti string, data *Data) (bool, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return false, fmt.Errorf("session marshal: %w", err)
	}
	ok, err := s.client.SetXX(ctx, keyPrefix+jti, payload, redis.KeepTTL).Result()
	if err != nil {
		return false, fmt.Errorf("session update: %w", err)
	}
	return ok, nil
}

// SetTheme stores theme in every live session of the user so each of their
// open clients renders with it from the next request. It returns how many
// sessions were updated. Expired or revoked sessions are dropped from the
// user's index on the way.
func (s *Store) SetTheme(ctx context.Context, userID uuid.UUID, theme *design.Theme) (int, error) {
	idx := userKey(userID)
	jtis, err := s.client.SMembers(ctx, idx).Result()
	if err != nil {
		return 0, fmt.Errorf("session list: %w", err)
	}

	updated := 0
	for _, jti := range jtis {
		data, err := s.Get(ctx, jti)
		if err != nil {
			return updated, err
		}
		if data == nil || data.UserID != userID {
			s.client.SRem(ctx, idx, jti)
			continue
		}
		data.Theme = theme
		ok, err := s.replace(ctx, jti, data)
		if err != nil {
			return updated, err
		}
		if !ok {
			s.client.SRem(ctx, idx, jti)
			continue
		}
		updated++
	}
	return updated, nil
}

// Destroy revokes the token by deleting its session.
func (s *Store) Destroy(ctx context.Context, jti string) error {
	if err := s.client.Del(ctx, keyPrefix+jti).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}
	return nil
}

// SetCookie stores the access token in the page cookie.
func (s *Store) SetCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearCookie expires the page cookie immediately.
func (s *Store) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		MaxAge:   -1,
	})
}

// TokenFromRequest returns the bearer token from the Authorization header,
// falling back to the page cookie. ok is false if neither is present.
func TokenFromRequest(r *http.Request) (token string, fromCookie bool, ok bool) {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, value, found := strings.Cut(h, " ")
		if found && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), false, true
		}
		return "", false, false
	}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, true, true
	}
	return "", false, false
}
