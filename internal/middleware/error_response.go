package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/gitcrm/internal/model"
)

// ErrorResponseBody はAPIエラーレスポンスの統一フォーマット。
// detailsはバリデーション失敗時のフィールド単位メッセージで、空なら省略する。
// スタックトレースや内部識別子は決して含めない。
type ErrorResponseBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// WriteErrorResponse は統一エラーフォーマットでHTTPエラーレスポンスを書き込む。
// すべてのAPIエンドポイントで一貫したエラーレスポンスを提供する。
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		Error:   apiErr.Message,
		Details: apiErr.Details,
	})
}
