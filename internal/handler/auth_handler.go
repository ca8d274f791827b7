package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/gitcrm/internal/middleware"
	"github.com/hitoshi/gitcrm/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Register は新規ユーザーを作成し、トークンを発行する。
	Register(ctx context.Context, email, password string) (*model.User, string, error)
	// Login はユーザーを認証し、トークンを発行する。
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	// CurrentUser はユーザーIDから最新のユーザー情報を取得する。
	CurrentUser(ctx context.Context, userID int64) (*model.User, error)
}

// AuthHandler は認証関連のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// credentialsRequest は登録・ログインリクエストのボディ。
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse は登録・ログイン成功時のレスポンス。
type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

// meResponse は認証済みユーザー情報のレスポンス。
type meResponse struct {
	User userResponse `json:"user"`
}

// Register は新規ユーザー登録を処理する。
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError(
			[]string{"リクエストボディが正しいJSON形式ではありません"},
		))
		return
	}

	if details := validateCredentials(req.Email, req.Password); len(details) > 0 {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError(details))
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Message: "登録が完了しました。",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// Login はログインを処理する。
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError(
			[]string{"リクエストボディが正しいJSON形式ではありません"},
		))
		return
	}

	if details := validateCredentials(req.Email, req.Password); len(details) > 0 {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError(details))
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Message: "ログインしました。",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// Me は認証済みユーザー自身の情報を返す。
// トークンのクレームではなくDBの最新値を返す。
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	user, err := h.service.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{User: toUserResponse(user)})
}
