package github

import "github.com/hitoshi/gitcrm/internal/model"

// ToProjectData はGitHub APIのレスポンスをスナップショット用データに変換する純粋関数。
// ownerにはリクエスト時の表記ではなく、GitHubが返す正規のログイン名を使用する
// （大文字小文字が異なる場合がある）。created_at_unixはミリ秒を1000で
// 切り捨て除算したエポック秒。
func ToProjectData(repo *Repository) model.ProjectData {
	return model.ProjectData{
		Owner:         repo.Owner.Login,
		Name:          repo.Name,
		URL:           repo.HTMLURL,
		Stars:         repo.StargazersCount,
		Forks:         repo.ForksCount,
		OpenIssues:    repo.OpenIssuesCount,
		CreatedAtUnix: repo.CreatedAt.UnixMilli() / 1000,
	}
}
