// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/gitcrm/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// identityContextKey はリクエストコンテキストに認証済みユーザー情報を格納するためのキー。
var identityContextKey = contextKey("identity")

// TokenVerifier はベアラートークンの検証インターフェース。
// auth.TokenManagerの部分集合として定義する。
type TokenVerifier interface {
	Verify(token string) (*model.Identity, error)
}

// UserFinder はアカウントの存在確認に必要なインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// NewRequiredAuthMiddleware はAuthorizationヘッダーのベアラートークンを検証する
// ミドルウェアを返す。トークンが暗号的に有効でも、アカウントが削除済みの場合は
// 401を返す（トークンは削除済みアカウントを指しうる）。
// 検証済みユーザー情報はリクエストコンテキストに注入され、
// ビジネスロジックに到達する前に未認証リクエストを弾く。
func NewRequiredAuthMiddleware(verifier TokenVerifier, users UserFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Authorizationヘッダーからトークンを取得
			token := extractBearerToken(r)
			if token == "" {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 2. 署名と有効期限の検証
			identity, err := verifier.Verify(token)
			if err != nil {
				apiErr, ok := err.(*model.APIError)
				if !ok {
					apiErr = model.NewTokenInvalidError()
				}
				WriteErrorResponse(w, http.StatusUnauthorized, apiErr)
				return
			}

			// 3. アカウントがまだ存在することの確認
			user, err := users.FindByID(r.Context(), identity.UserID)
			if err != nil {
				slog.Error("failed to find user for token",
					slog.Int64("user_id", identity.UserID),
					slog.String("error", err.Error()),
				)
				WriteErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
				return
			}
			if user == nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUserNotFoundError())
				return
			}

			// 4. 認証済みユーザー情報をコンテキストに注入
			ctx := ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewOptionalAuthMiddleware はトークンがあれば検証し、なければ匿名のまま通す
// ミドルウェアを返す。検証失敗やアカウント不在も匿名として続行する。
// 「検証エラーを握りつぶして匿名で続行する」のはバグではなく明示的な
// 2結果契約であり、ユーザー情報の有無のみが結果として残る。
func NewOptionalAuthMiddleware(verifier TokenVerifier, users UserFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.FindByID(r.Context(), identity.UserID)
			if err != nil || user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken はAuthorizationヘッダーから "Bearer <token>" のトークン部を取り出す。
// ヘッダーが無い、または形式が異なる場合は空文字を返す。
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// IdentityFromContext はリクエストコンテキストから認証済みユーザー情報を取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func IdentityFromContext(ctx context.Context) (*model.Identity, error) {
	identity, ok := ctx.Value(identityContextKey).(*model.Identity)
	if !ok || identity == nil {
		return nil, fmt.Errorf("identity not found in context")
	}
	return identity, nil
}

// ContextWithIdentity はコンテキストに認証済みユーザー情報を注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}
