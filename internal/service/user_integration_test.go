//go:build integration

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/userhub/userhub/internal/repository"
	"github.com/userhub/userhub/internal/testutil"
)

func newServiceTestEnv(t *testing.T) (context.Context, *UserService) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	unlock, err := testutil.AcquireDBLock(ctx, pool)
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetUsersSchema(ctx, pool); err != nil {
		t.Fatalf("reset users schema: %v", err)
	}

	repo := repository.NewWithPool(pool)
	return ctx, NewUserService(repo, nil, nil)
}

func TestIntegrationUserService_CreateAndGet(t *testing.T) {
	ctx, svc := newServiceTestEnv(t)

	created, err := svc.CreateUser(ctx, CreateUserInput{
		Name:  "  Ada Lovelace ",
		Email: " Ada@Example.com ",
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if created.Name != "Ada Lovelace" {
		t.Errorf("expected trimmed name, got %q", created.Name)
	}
	if created.Email != "ada@example.com" {
		t.Errorf("expected normalized email, got %q", created.Email)
	}

	got, err := svc.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Email != created.Email {
		t.Errorf("expected email %s, got %s", created.Email, got.Email)
	}
}

func TestIntegrationUserService_DuplicateEmail(t *testing.T) {
	ctx, svc := newServiceTestEnv(t)

	input := CreateUserInput{Name: "Ada", Email: testutil.UniqueEmail("svc-dup")}
	if _, err := svc.CreateUser(ctx, input); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	_, err := svc.CreateUser(ctx, input)
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestIntegrationUserService_GetMissing(t *testing.T) {
	ctx, svc := newServiceTestEnv(t)

	_, err := svc.GetUser(ctx, 999999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIntegrationUserService_List(t *testing.T) {
	ctx, svc := newServiceTestEnv(t)

	for i := 0; i < 3; i++ {
		input := CreateUserInput{Name: "User", Email: testutil.UniqueEmail("svc-list")}
		if _, err := svc.CreateUser(ctx, input); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	users, err := svc.ListUsers(ctx, 0)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
}
