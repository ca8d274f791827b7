// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/gitcrm/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成し、採番されたIDとタイムスタンプ込みで返す。
	// メールアドレスのユニーク制約違反はIsUniqueViolationで判定できるエラーを返す。
	Create(ctx context.Context, email, passwordHash string) (*model.User, error)

	// FindByEmail はメールアドレス完全一致でユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// ProjectRepository はプロジェクト（リポジトリスナップショット）の永続化インターフェース。
type ProjectRepository interface {
	// Create はスナップショット行を作成し、採番されたIDとタイムスタンプ込みで返す。
	// (user_id, owner, name) のユニーク制約違反はIsUniqueViolationで判定できるエラーを返す。
	Create(ctx context.Context, userID int64, data model.ProjectData) (*model.Project, error)

	// FindByIDAndUserID はIDと所有ユーザーIDでプロジェクトを取得する。
	// 存在しない場合も他ユーザー所有の場合もnilを返し、両者を区別しない。
	FindByIDAndUserID(ctx context.Context, id, userID int64) (*model.Project, error)

	// FindByUserAndRepo はユーザーIDとowner/nameでプロジェクトを検索する。見つからない場合はnilを返す。
	FindByUserAndRepo(ctx context.Context, userID int64, owner, name string) (*model.Project, error)

	// ListByUserID はユーザーのプロジェクト一覧をローカル作成日時の新しい順で返す。
	ListByUserID(ctx context.Context, userID int64) ([]*model.Project, error)

	// UpdateMetrics は許可リスト化されたメトリクスフィールドのみを動的に更新し、
	// updated_atを進める。該当行がない場合はnilを返す。
	UpdateMetrics(ctx context.Context, id, userID int64, update model.ProjectMetricsUpdate) (*model.Project, error)

	// Delete はIDと所有ユーザーIDが一致する行を削除する。削除された場合にtrueを返す。
	Delete(ctx context.Context, id, userID int64) (bool, error)
}
