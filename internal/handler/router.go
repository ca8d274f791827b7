package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gitcrm/internal/middleware"
)

// Pinger はDB接続の死活確認インターフェース。
// sql.DBの部分集合として定義する。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	UserFinder        middleware.UserFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	MetricsRecorder   middleware.HTTPMetricsRecorder // nilの場合は記録しない
	MetricsHandler    http.Handler                   // nilの場合は/metricsを公開しない
	Logger            *slog.Logger                   // nilの場合はslog.Default()を使用

	// サービス
	AuthService    AuthServiceInterface
	ProjectService ProjectServiceInterface

	// ヘルスチェック
	DB Pinger
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → Metrics → SecurityHeaders → CORS → (認証ルートのみ) Auth → RateLimit
//
// /auth/register と /auth/login は認証の外に配置する。
// レート制限は認証済みユーザー単位のため、認証ミドルウェアの後に適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// 全ルートに効くミドルウェア
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	if deps.MetricsRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsRecorder))
	}
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	authHandler := NewAuthHandler(deps.AuthService)
	projectHandler := NewProjectHandler(deps.ProjectService)

	requiredAuth := middleware.NewRequiredAuthMiddleware(deps.TokenVerifier, deps.UserFinder)

	// --- 認証不要のルート ---

	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	// ヘルスチェック（認証・レート制限の外）
	r.Get("/health", newHealthHandler(deps.DB))

	// Prometheusスクレイプ用
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- 認証が必要なルート ---

	r.Group(func(r chi.Router) {
		r.Use(requiredAuth)
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/auth/me", authHandler.Me)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			// 登録はGitHub APIを消費するため専用レート制限を追加
			r.With(deps.RateLimiter.ProjectRegistrationMiddleware()).Post("/", projectHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", projectHandler.Get)
				r.Put("/", projectHandler.Update)
				r.Delete("/", projectHandler.Delete)
			})
		})
	})

	// 未定義ルートも統一エラーフォーマットで返す
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, apiErrorResponse{
			Error: "指定されたリソースが見つかりません。",
		})
	})

	return r
}

// healthResponse はヘルスチェックのレスポンス。
type healthResponse struct {
	Status string `json:"status"`
}

// newHealthHandler はDB接続を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if db == nil || db.PingContext(ctx) != nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy"})
			return
		}

		writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
