// Package model はドメインモデルを定義する。
package model

import "time"

// Project はGitHubリポジトリのスナップショットを表す。
// (user_id, owner, name) の組はユニーク。同じリポジトリを別々のユーザーが
// それぞれ追跡することはできるが、同一ユーザーが二重登録することはできない。
type Project struct {
	ID            int64
	UserID        int64
	Owner         string
	Name          string
	URL           string
	Stars         int
	Forks         int
	OpenIssues    int
	CreatedAtUnix int64 // GitHub上のリポジトリ作成日時（エポック秒）。スナップショット自体の作成日時ではない
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProjectData は外部ゲートウェイから取得したリポジトリ情報をスナップショット行に
// マッピングした未保存のデータを表す。
type ProjectData struct {
	Owner         string
	Name          string
	URL           string
	Stars         int
	Forks         int
	OpenIssues    int
	CreatedAtUnix int64
}

// ProjectMetricsUpdate は更新可能なメトリクスフィールドの集合を表す。
// nilフィールドは更新対象外。owner/name/url/created_at_unixは作成後不変のため
// ここには含めない（リネーム追従しないスナップショット固定ポリシー）。
type ProjectMetricsUpdate struct {
	Stars      *int
	Forks      *int
	OpenIssues *int
}
