package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/userhub/userhub/internal/handler/dto"
	"github.com/userhub/userhub/internal/model"
	"github.com/userhub/userhub/internal/service"
)

// stubUserService is a UserService stub for handler tests.
type stubUserService struct {
	createFn func(ctx context.Context, input service.CreateUserInput) (*model.User, error)
	getFn    func(ctx context.Context, id int64) (*model.User, error)
	listFn   func(ctx context.Context, limit int) ([]*model.User, error)
}

func (s *stubUserService) CreateUser(ctx context.Context, input service.CreateUserInput) (*model.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) ListUsers(ctx context.Context, limit int) ([]*model.User, error) {
	return s.listFn(ctx, limit)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser() *model.User {
	return &model.User{
		ID:        1,
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func newUserRouter(svc UserService) *chi.Mux {
	h := NewUserHandler(svc, discardLogger())
	r := chi.NewRouter()
	r.Get("/users", h.List)
	r.Post("/users", h.Create)
	r.Get("/users/{id}", h.Get)
	return r
}

func TestUserHandler_Create(t *testing.T) {
	svc := &stubUserService{
		createFn: func(ctx context.Context, input service.CreateUserInput) (*model.User, error) {
			if input.Name != "Ada Lovelace" || input.Email != "ada@example.com" {
				t.Errorf("unexpected input: %+v", input)
			}
			return testUser(), nil
		},
	}
	r := newUserRouter(svc)

	body := `{"name":"Ada Lovelace","email":"ada@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var user model.User
	if err := json.NewDecoder(rec.Body).Decode(&user); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if user.ID != 1 {
		t.Errorf("expected user ID 1, got %d", user.ID)
	}
}

func TestUserHandler_Create_InvalidJSON(t *testing.T) {
	svc := &stubUserService{}
	r := newUserRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	assertErrorCode(t, rec.Body, "INVALID_JSON")
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	svc := &stubUserService{
		createFn: func(ctx context.Context, input service.CreateUserInput) (*model.User, error) {
			return nil, service.ErrEmailExists
		},
	}
	r := newUserRouter(svc)

	body := `{"name":"Ada","email":"ada@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	assertErrorCode(t, rec.Body, "EMAIL_TAKEN")
}

func TestUserHandler_Create_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"invalid_name", service.ErrInvalidName, "INVALID_NAME"},
		{"invalid_email", service.ErrInvalidEmail, "INVALID_EMAIL"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc := &stubUserService{
				createFn: func(ctx context.Context, input service.CreateUserInput) (*model.User, error) {
					return nil, test.err
				},
			}
			r := newUserRouter(svc)

			body := `{"name":"x","email":"y"}`
			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}

			assertErrorCode(t, rec.Body, test.wantCode)
		})
	}
}

func TestUserHandler_Get(t *testing.T) {
	svc := &stubUserService{
		getFn: func(ctx context.Context, id int64) (*model.User, error) {
			if id != 1 {
				t.Errorf("expected id 1, got %d", id)
			}
			return testUser(), nil
		},
	}
	r := newUserRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/users/1", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var user model.User
	if err := json.NewDecoder(rec.Body).Decode(&user); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if user.Email != "ada@example.com" {
		t.Errorf("unexpected email: %s", user.Email)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	svc := &stubUserService{
		getFn: func(ctx context.Context, id int64) (*model.User, error) {
			return nil, service.ErrUserNotFound
		},
	}
	r := newUserRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/users/99", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	assertErrorCode(t, rec.Body, "USER_NOT_FOUND")
}

func TestUserHandler_Get_InvalidID(t *testing.T) {
	svc := &stubUserService{}
	r := newUserRouter(svc)

	for _, id := range []string{"abc", "-4", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/users/"+id, nil)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected status 400, got %d", id, rec.Code)
		}
	}
}

func TestUserHandler_List(t *testing.T) {
	svc := &stubUserService{
		listFn: func(ctx context.Context, limit int) ([]*model.User, error) {
			if limit != 0 {
				t.Errorf("expected zero limit passthrough, got %d", limit)
			}
			return []*model.User{testUser()}, nil
		},
	}
	r := newUserRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var users []*model.User
	if err := json.NewDecoder(rec.Body).Decode(&users); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestUserHandler_List_Empty(t *testing.T) {
	svc := &stubUserService{
		listFn: func(ctx context.Context, limit int) ([]*model.User, error) {
			return []*model.User{}, nil
		},
	}
	r := newUserRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	// An empty list must encode as [], not null.
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty array, got %s", body)
	}
}

func TestUserHandler_List_WithLimit(t *testing.T) {
	svc := &stubUserService{
		listFn: func(ctx context.Context, limit int) ([]*model.User, error) {
			if limit != 5 {
				t.Errorf("expected limit 5, got %d", limit)
			}
			return []*model.User{}, nil
		},
	}
	r := newUserRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/users?limit=5", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestUserHandler_List_InvalidLimit(t *testing.T) {
	svc := &stubUserService{}
	r := newUserRouter(svc)

	for _, limit := range []string{"abc", "-1", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/users?limit="+limit, nil)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit %q: expected status 400, got %d", limit, rec.Code)
		}
	}
}

func assertErrorCode(t *testing.T, body io.Reader, want string) {
	t.Helper()

	var resp dto.ErrorResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Code != want {
		t.Errorf("expected error code %s, got %s", want, resp.Code)
	}
}
