package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/hitoshi/gitcrm/internal/model"
)

const (
	// defaultBaseURL はGitHub REST APIのエンドポイント。
	defaultBaseURL = "https://api.github.com"
	// defaultTimeout は外部呼び出しの上限時間。
	defaultTimeout = 10 * time.Second
)

// Repository はGitHub APIが返すリポジトリ情報のうち、必要なフィールドを表す。
type Repository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	HTMLURL         string    `json:"html_url"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	CreatedAt       time.Time `json:"created_at"`
	Owner           struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// ClientConfig はGitHubクライアントの設定。
type ClientConfig struct {
	BaseURL string        // 空の場合はapi.github.com
	Token   string        // 空の場合は未認証で呼び出す
	Timeout time.Duration // 0の場合は10秒
}

// Client はGitHub APIのクライアント。
// トランスポートの失敗を閉じたエラー分類（REPO_NOT_FOUND / RATE_LIMITED /
// UPSTREAM_UNAVAILABLE / GATEWAY_ERROR）に変換する。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewClient はClientの新しいインスタンスを生成する。
// トークンが設定されている場合はoauth2のstatic token sourceを使用し、
// 認証済みクォータでAPIを呼び出す。
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	var httpClient *http.Client
	if cfg.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), src)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = timeout

	return &Client{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    baseURL,
	}
}

// GetRepository は指定リポジトリの現在のメトリクスをGitHub APIから取得する。
// 404はエラーではなく「リポジトリが存在しない」という正当な結果であり、
// REPO_NOT_FOUNDとして返す。403はRATE_LIMITED（即時リトライ不可）、
// 5xxはUPSTREAM_UNAVAILABLE、その他のトランスポート失敗はGATEWAY_ERROR。
func (c *Client) GetRepository(ctx context.Context, owner, name string) (*Repository, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, model.NewGatewayError(fmt.Sprintf("リクエストの作成に失敗しました: %s", err.Error()))
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "gitcrm/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("GitHub APIの呼び出しに失敗しました",
			slog.String("owner", owner),
			slog.String("repo", name),
			slog.String("error", err.Error()),
		)
		return nil, model.NewGatewayError(err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return nil, model.NewRepoNotFoundError(owner, name)
	case resp.StatusCode == http.StatusForbidden:
		c.logger.Warn("GitHub APIのレート制限に達しました",
			slog.String("owner", owner),
			slog.String("repo", name),
		)
		return nil, model.NewRateLimitedError()
	case resp.StatusCode >= 500:
		c.logger.Error("GitHub APIがサーバーエラーを返しました",
			slog.Int("http_status", resp.StatusCode),
			slog.String("owner", owner),
			slog.String("repo", name),
		)
		return nil, model.NewUpstreamUnavailableError()
	default:
		return nil, model.NewGatewayError(fmt.Sprintf("GitHub APIがステータス %d を返しました", resp.StatusCode))
	}

	var repo Repository
	if err := json.NewDecoder(resp.Body).Decode(&repo); err != nil {
		c.logger.Error("GitHub APIのレスポンスのパースに失敗しました",
			slog.String("error", err.Error()),
		)
		return nil, model.NewGatewayError(fmt.Sprintf("レスポンスJSONのパースに失敗しました: %s", err.Error()))
	}

	return &repo, nil
}
