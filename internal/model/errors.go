// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// クライアントには {error, details?} の形で返却し、Codeはステータスコードへの
// マッピングにのみ使用する（内部識別子は外部に漏らさない）。
type APIError struct {
	Code    string   // エラーコード
	Message string   // ユーザー向けメッセージ
	Details []string // フィールド単位のバリデーションメッセージ（任意）
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeInvalidPath         = "INVALID_PATH"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeTokenInvalid        = "TOKEN_INVALID"
	ErrCodeTokenExpired        = "TOKEN_EXPIRED"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeEmailTaken          = "EMAIL_TAKEN"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeProjectNotFound     = "PROJECT_NOT_FOUND"
	ErrCodeDuplicateProject    = "DUPLICATE_PROJECT"
	ErrCodeRepoNotFound        = "REPO_NOT_FOUND"
	ErrCodeRateLimited         = "RATE_LIMITED"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeGatewayError        = "GATEWAY_ERROR"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// NewValidationError はバリデーション失敗エラーを生成する。
// detailsにはフィールドごとの人間可読なメッセージを渡す。
func NewValidationError(details []string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "入力内容に誤りがあります。",
		Details: details,
	}
}

// NewInvalidPathError はリポジトリパスが不正な場合のエラーを生成する。
func NewInvalidPathError(reason string) *APIError {
	return &APIError{
		Code:    ErrCodeInvalidPath,
		Message: fmt.Sprintf("リポジトリパスが不正です: %s", reason),
	}
}

// NewUnauthorizedError は認証が必要な場合のエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: "認証が必要です。",
	}
}

// NewTokenInvalidError はトークンの署名や形式が不正な場合のエラーを生成する。
func NewTokenInvalidError() *APIError {
	return &APIError{
		Code:    ErrCodeTokenInvalid,
		Message: "トークンが不正です。",
	}
}

// NewTokenExpiredError はトークンの有効期限が切れている場合のエラーを生成する。
// 不正トークンとはメッセージを区別するが、HTTPステータスはどちらも401。
func NewTokenExpiredError() *APIError {
	return &APIError{
		Code:    ErrCodeTokenExpired,
		Message: "トークンの有効期限が切れています。",
	}
}

// NewInvalidCredentialsError はログイン失敗エラーを生成する。
// メールアドレス不明とパスワード不一致を区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:    ErrCodeInvalidCredentials,
		Message: "メールアドレスまたはパスワードが正しくありません。",
	}
}

// NewEmailTakenError はメールアドレスが登録済みの場合のエラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:    ErrCodeEmailTaken,
		Message: "このメールアドレスは既に登録されています。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
// トークンが暗号的に有効でも、アカウントが削除済みの場合に返す。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:    ErrCodeUserNotFound,
		Message: "ユーザーが見つかりません。",
	}
}

// NewProjectNotFoundError はプロジェクトが見つからない場合のエラーを生成する。
// 他ユーザー所有のプロジェクトへのアクセスも同じエラーを返し、存在を漏らさない。
func NewProjectNotFoundError() *APIError {
	return &APIError{
		Code:    ErrCodeProjectNotFound,
		Message: "指定されたプロジェクトが見つかりません。",
	}
}

// NewDuplicateProjectError は同一リポジトリを二重登録しようとした場合のエラーを生成する。
func NewDuplicateProjectError() *APIError {
	return &APIError{
		Code:    ErrCodeDuplicateProject,
		Message: "このリポジトリは既に登録されています。",
	}
}

// NewRepoNotFoundError はGitHub上にリポジトリが存在しない場合のエラーを生成する。
func NewRepoNotFoundError(owner, name string) *APIError {
	return &APIError{
		Code:    ErrCodeRepoNotFound,
		Message: fmt.Sprintf("リポジトリ '%s/%s' がGitHub上に見つかりません。", owner, name),
	}
}

// NewRateLimitedError はGitHub APIのレート制限に達した場合のエラーを生成する。
// サーバー側では自動リトライしない。
func NewRateLimitedError() *APIError {
	return &APIError{
		Code:    ErrCodeRateLimited,
		Message: "GitHub APIのレート制限に達しました。しばらく待ってから再度お試しください。",
	}
}

// NewUpstreamUnavailableError はGitHub APIが5xxを返した場合のエラーを生成する。
func NewUpstreamUnavailableError() *APIError {
	return &APIError{
		Code:    ErrCodeUpstreamUnavailable,
		Message: "GitHub APIが現在利用できません。しばらく待ってから再度お試しください。",
	}
}

// NewGatewayError はタイムアウトやレスポンス解析失敗など、その他の
// トランスポート起因の失敗エラーを生成する。reasonは診断用テキスト。
func NewGatewayError(reason string) *APIError {
	return &APIError{
		Code:    ErrCodeGatewayError,
		Message: fmt.Sprintf("GitHub APIの呼び出しに失敗しました: %s", reason),
	}
}

// NewInternalError は予期しないエラーを生成する。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func NewInternalError() *APIError {
	return &APIError{
		Code:    ErrCodeInternal,
		Message: "内部エラーが発生しました。",
	}
}
