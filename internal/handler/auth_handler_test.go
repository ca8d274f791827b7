package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/gitcrm/internal/middleware"
	"github.com/hitoshi/gitcrm/internal/model"
)

// --- モック ---

type mockAuthService struct {
	registerFn    func(ctx context.Context, email, password string) (*model.User, string, error)
	loginFn       func(ctx context.Context, email, password string) (*model.User, string, error)
	currentUserFn func(ctx context.Context, userID int64) (*model.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password string) (*model.User, string, error) {
	return m.registerFn(ctx, email, password)
}
func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	return m.loginFn(ctx, email, password)
}
func (m *mockAuthService) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	return m.currentUserFn(ctx, userID)
}

// --- テスト ---

// TestAuthHandler_Register_Success は登録成功が201でトークンとユーザーを
// 返すことを検証する。
func TestAuthHandler_Register_Success(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, email, password string) (*model.User, string, error) {
			return &model.User{ID: 1, Email: email}, "issued-token", nil
		},
	}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"new@example.com","password":"password123"}`))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var body struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Token != "issued-token" {
		t.Errorf("token = %q", body.Token)
	}
	if body.User.Email != "new@example.com" {
		t.Errorf("user.email = %q", body.User.Email)
	}
}

// TestAuthHandler_Register_ValidationFailure はバリデーション失敗が400で
// details付きのエラーボディを返すことを検証する。
func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"メール形式不正", `{"email":"not-an-email","password":"password123"}`},
		{"パスワード短すぎ", `{"email":"user@example.com","password":"abc"}`},
		{"両方空", `{"email":"","password":""}`},
		{"JSON不正", `{not json`},
	}

	svc := &mockAuthService{
		registerFn: func(ctx context.Context, email, password string) (*model.User, string, error) {
			t.Fatal("service should not be called for invalid input")
			return nil, "", nil
		},
	}
	h := NewAuthHandler(svc)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.Register(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}

			var body apiErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if len(body.Details) == 0 {
				t.Error("details should not be empty")
			}
		})
	}
}

// TestAuthHandler_Register_EmailTaken は登録済みメールアドレスが409になることを検証する。
func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, email, password string) (*model.User, string, error) {
			return nil, "", model.NewEmailTakenError()
		},
	}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"taken@example.com","password":"password123"}`))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

// TestAuthHandler_Login_InvalidCredentials はログイン失敗が401になることを検証する。
func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*model.User, string, error) {
			return nil, "", model.NewInvalidCredentialsError()
		},
	}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"user@example.com","password":"wrong-password"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// TestAuthHandler_Me_Success は認証済みユーザー情報がDBの最新値で返ることを検証する。
func TestAuthHandler_Me_Success(t *testing.T) {
	svc := &mockAuthService{
		currentUserFn: func(ctx context.Context, userID int64) (*model.User, error) {
			if userID != 42 {
				t.Errorf("userID = %d, want 42", userID)
			}
			return &model.User{ID: userID, Email: "user@example.com"}, nil
		},
	}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	ctx := middleware.ContextWithIdentity(req.Context(), &model.Identity{UserID: 42, Email: "user@example.com"})
	w := httptest.NewRecorder()
	h.Me(w, req.WithContext(ctx))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.User.ID != 42 {
		t.Errorf("user.id = %d, want 42", body.User.ID)
	}
}

// TestAuthHandler_Me_DeletedAccount はアカウント削除済みの場合に404になることを検証する。
func TestAuthHandler_Me_DeletedAccount(t *testing.T) {
	svc := &mockAuthService{
		currentUserFn: func(ctx context.Context, userID int64) (*model.User, error) {
			return nil, model.NewUserNotFoundError()
		},
	}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	ctx := middleware.ContextWithIdentity(req.Context(), &model.Identity{UserID: 999})
	w := httptest.NewRecorder()
	h.Me(w, req.WithContext(ctx))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
