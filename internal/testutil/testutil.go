// Package testutil provides shared helpers for unit and integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell/inkwell/internal/repository"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// NewTestRepository connects to TEST_DATABASE_URL, resets the schema and
// returns a Repository. Skips the test when no database is configured.
func NewTestRepository(t testing.TB) (context.Context, *repository.Repository) {
	t.Helper()

	databaseURL := RequireEnv(t, "TEST_DATABASE_URL")
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("connect for schema reset: %v", err)
	}
	if _, err := pool.Exec(ctx, repository.Schema); err != nil {
		pool.Close()
		t.Fatalf("apply schema: %v", err)
	}
	pool.Close()

	repo, err := repository.New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	t.Cleanup(repo.Close)

	return ctx, repo
}

var uniqueCounter atomic.Int64

// UniqueUsername returns a username unlikely to collide across test runs.
func UniqueUsername(prefix string) string {
	return fmt.Sprintf("%s_%d_%d", prefix, time.Now().UnixNano(), uniqueCounter.Add(1))
}
