package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hitoshi/gitcrm/internal/model"
)

// RateLimiterConfig はレート制限の設定を保持する。
type RateLimiterConfig struct {
	GeneralRate     rate.Limit    // API全般のレート（req/sec）。120/60 = 2 req/sec
	GeneralBurst    int           // API全般のバーストサイズ
	ProjectRegRate  rate.Limit    // プロジェクト登録のレート（req/sec）。10/60
	ProjectRegBurst int           // プロジェクト登録のバーストサイズ
	CleanupInterval time.Duration // 期限切れエントリのクリーンアップ間隔
}

// NewRateLimiterConfig は1分あたりのリクエスト数からレート制限設定を構築する。
func NewRateLimiterConfig(generalPerMin, projectRegPerMin int) RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(float64(generalPerMin) / 60.0),
		GeneralBurst:    generalPerMin,
		ProjectRegRate:  rate.Limit(float64(projectRegPerMin) / 60.0),
		ProjectRegBurst: projectRegPerMin,
		CleanupInterval: 5 * time.Minute,
	}
}

// userLimiter はユーザーごとのレートリミッターとアクセス時刻を保持する。
type userLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// limiterSet はひとつの制限クラス（API全般、プロジェクト登録など）の
// ユーザーごとのリミッターを管理する。
type limiterSet struct {
	mu       sync.RWMutex
	limiters map[int64]*userLimiter
	rate     rate.Limit
	burst    int
}

func newLimiterSet(r rate.Limit, burst int) *limiterSet {
	return &limiterSet{
		limiters: make(map[int64]*userLimiter),
		rate:     r,
		burst:    burst,
	}
}

// getOrCreate はユーザーのリミッターを取得または作成する。
func (ls *limiterSet) getOrCreate(userID int64) *rate.Limiter {
	ls.mu.RLock()
	ul, exists := ls.limiters[userID]
	ls.mu.RUnlock()

	if exists {
		ls.mu.Lock()
		ul.lastAccess = time.Now()
		ls.mu.Unlock()
		return ul.limiter
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	// ダブルチェック
	if ul, exists := ls.limiters[userID]; exists {
		ul.lastAccess = time.Now()
		return ul.limiter
	}

	limiter := rate.NewLimiter(ls.rate, ls.burst)
	ls.limiters[userID] = &userLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

// count は現在管理されているエントリ数を返す。テストおよびメトリクス用。
func (ls *limiterSet) count() int {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return len(ls.limiters)
}

// cleanup は最終アクセス時刻がttlを超えたエントリを削除する。
func (ls *limiterSet) cleanup(ttl time.Duration) {
	now := time.Now()
	ls.mu.Lock()
	for userID, ul := range ls.limiters {
		if now.Sub(ul.lastAccess) > ttl {
			delete(ls.limiters, userID)
		}
	}
	ls.mu.Unlock()
}

// RateLimiter は認証済みユーザーごとのレート制限を管理する。
// API全般のレート制限とプロジェクト登録のレート制限の2種類を提供し、
// 両者は独立したトークンバケットとして動作する。
type RateLimiter struct {
	config     RateLimiterConfig
	general    *limiterSet
	projectReg *limiterSet
	stopCh     chan struct{}
}

// NewRateLimiter は新しいRateLimiterを生成する。
// バックグラウンドで期限切れエントリのクリーンアップを開始する。
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:     config,
		general:    newLimiterSet(config.GeneralRate, config.GeneralBurst),
		projectReg: newLimiterSet(config.ProjectRegRate, config.ProjectRegBurst),
		stopCh:     make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop はクリーンアップのバックグラウンドゴルーチンを停止する。
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// GeneralMiddleware はAPI全般のレート制限ミドルウェアを返す。
// リクエストコンテキストに認証済みユーザー情報が必要（認証ミドルウェアの後に配置）。
func (rl *RateLimiter) GeneralMiddleware() func(next http.Handler) http.Handler {
	return rl.middleware(rl.general, "general")
}

// ProjectRegistrationMiddleware はプロジェクト登録専用のレート制限ミドルウェアを返す。
// API全般のレート制限とは独立に動作する。
func (rl *RateLimiter) ProjectRegistrationMiddleware() func(next http.Handler) http.Handler {
	return rl.middleware(rl.projectReg, "project_registration")
}

// GeneralLimiterCount は現在管理されているAPI全般リミッターのエントリ数を返す。
func (rl *RateLimiter) GeneralLimiterCount() int {
	return rl.general.count()
}

// ProjectRegLimiterCount は現在管理されているプロジェクト登録リミッターのエントリ数を返す。
func (rl *RateLimiter) ProjectRegLimiterCount() int {
	return rl.projectReg.count()
}

func (rl *RateLimiter) middleware(set *limiterSet, limitType string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := IdentityFromContext(r.Context())
			if err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			if !set.getOrCreate(identity.UserID).Allow() {
				writeRateLimitResponse(w, set.rate)
				slog.Warn("rate limit exceeded",
					slog.Int64("user_id", identity.UserID),
					slog.String("limit_type", limitType),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// cleanupLoop はバックグラウンドで期限切れエントリを定期的にクリーンアップする。
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// 最終アクセスからクリーンアップ間隔の2倍を超えたエントリを破棄
			ttl := rl.config.CleanupInterval * 2
			rl.general.cleanup(ttl)
			rl.projectReg.cleanup(ttl)
		case <-rl.stopCh:
			return
		}
	}
}

// writeRateLimitResponse は429 Too Many Requestsレスポンスを書き込む。
// Retry-Afterヘッダーにはトークンが補充されるまでの推定秒数を設定する。
func writeRateLimitResponse(w http.ResponseWriter, r rate.Limit) {
	retryAfterSec := int(math.Ceil(1.0 / float64(r)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	WriteErrorResponse(w, http.StatusTooManyRequests, model.NewRateLimitedError())
}
