// Package handler はHTTP APIのハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/gitcrm/internal/model"
)

// apiErrorResponse は統一エラーフォーマットのレスポンス。
// detailsはバリデーション失敗時のフィールド単位メッセージで、空なら省略する。
type apiErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// userResponse はユーザー情報のAPIレスポンス。
// パスワードハッシュは決して含めない。
type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// projectResponse はプロジェクト情報のAPIレスポンス。
type projectResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Owner         string    `json:"owner"`
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	Stars         int       `json:"stars"`
	Forks         int       `json:"forks"`
	OpenIssues    int       `json:"open_issues"`
	CreatedAtUnix int64     `json:"created_at_unix"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// toUserResponse はmodel.UserからAPIレスポンスに変換する。
func toUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// toProjectResponse はmodel.ProjectからAPIレスポンスに変換する。
func toProjectResponse(p *model.Project) projectResponse {
	return projectResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Owner:         p.Owner,
		Name:          p.Name,
		URL:           p.URL,
		Stars:         p.Stars,
		Forks:         p.Forks,
		OpenIssues:    p.OpenIssues,
		CreatedAtUnix: p.CreatedAtUnix,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	writeJSON(w, statusCode, apiErrorResponse{
		Error:   apiErr.Message,
		Details: apiErr.Details,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う。詳細はログのみに残す
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeValidationFailed, model.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorized, model.ErrCodeTokenInvalid, model.ErrCodeTokenExpired, model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case model.ErrCodeEmailTaken, model.ErrCodeDuplicateProject:
		return http.StatusConflict
	case model.ErrCodeUserNotFound, model.ErrCodeProjectNotFound, model.ErrCodeRepoNotFound:
		return http.StatusNotFound
	case model.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case model.ErrCodeUpstreamUnavailable, model.ErrCodeGatewayError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
