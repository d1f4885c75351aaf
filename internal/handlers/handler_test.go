// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Integration tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"privatespace/internal/auth"
	"privatespace/internal/cache"
	"privatespace/internal/database"
	"privatespace/internal/middleware"
	"privatespace/internal/models"
	"privatespace/internal/session"
	"privatespace/internal/storage"
	"privatespace/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "privatespace")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "privatespace")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds the dependencies of handler integration tests.
type testEnv struct {
	DB       *sql.DB
	Services *Services
	API      *API
	Media    *storage.Local
}

// newTestEnv wires every store against the test database, Valkey on DB 15
// and local media storage in a temp dir.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	media, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("storage.NewLocal: %v", err)
	}

	svc := &Services{
		Users:      store.NewUserStore(db),
		Journal:    store.NewJournalStore(db),
		Blog:       store.NewBlogStore(db),
		Album:      store.NewAlbumStore(db),
		Sections:   store.NewSectionStore(db),
		Dashboard:  store.NewDashboardStore(db),
		Sessions:   session.NewStore(vk, false),
		JWT:        auth.NewJWTManager("handler-test-secret", time.Hour),
		Media:      media,
		Pages:      cache.NewPageCache(vk, time.Minute),
		AlbumQuota: 100 << 20,
	}
	return &testEnv{DB: db, Services: svc, API: NewAPI(svc), Media: media}
}

// testUser creates a throwaway user removed with everything it owns when
// the test finishes.
func (e *testEnv) testUser(t *testing.T) *models.User {
	t.Helper()
	name := "h" + uuid.NewString()[:8]
	u, err := e.Services.Users.Create(name, name+"@handler-test.local", "testpass123")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { e.DB.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u
}

// asUser attaches an authenticated identity to r.
func asUser(r *http.Request, id uuid.UUID) *http.Request {
	return r.WithContext(middleware.WithIdentity(r.Context(), &middleware.Identity{UserID: id}))
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
