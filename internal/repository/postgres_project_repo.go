package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hitoshi/gitcrm/internal/model"
)

// projectColumns はSELECT/RETURNINGで常に使用する列リスト。
const projectColumns = `id, user_id, owner, name, url, stars, forks, open_issues, created_at_unix, created_at, updated_at`

// PostgresProjectRepo はPostgreSQLを使用したプロジェクトリポジトリ。
type PostgresProjectRepo struct {
	db *sql.DB
}

// NewPostgresProjectRepo はPostgresProjectRepoを生成する。
func NewPostgresProjectRepo(db *sql.DB) *PostgresProjectRepo {
	return &PostgresProjectRepo{db: db}
}

// scanProject は1行分のプロジェクトを読み取る。
func scanProject(row interface{ Scan(...any) error }) (*model.Project, error) {
	p := &model.Project{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.Owner, &p.Name, &p.URL,
		&p.Stars, &p.Forks, &p.OpenIssues, &p.CreatedAtUnix,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create はスナップショット行を作成し、採番されたIDとタイムスタンプ込みで返す。
func (r *PostgresProjectRepo) Create(ctx context.Context, userID int64, data model.ProjectData) (*model.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO projects (user_id, owner, name, url, stars, forks, open_issues, created_at_unix)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+projectColumns,
		userID, data.Owner, data.Name, data.URL,
		data.Stars, data.Forks, data.OpenIssues, data.CreatedAtUnix,
	)

	p, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("プロジェクトの作成に失敗しました: %w", err)
	}
	return p, nil
}

// FindByIDAndUserID はIDと所有ユーザーIDでプロジェクトを取得する。見つからない場合はnilを返す。
func (r *PostgresProjectRepo) FindByIDAndUserID(ctx context.Context, id, userID int64) (*model.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND user_id = $2`,
		id, userID,
	)

	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("プロジェクトの取得に失敗しました: %w", err)
	}
	return p, nil
}

// FindByUserAndRepo はユーザーIDとowner/nameでプロジェクトを検索する。見つからない場合はnilを返す。
func (r *PostgresProjectRepo) FindByUserAndRepo(ctx context.Context, userID int64, owner, name string) (*model.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = $1 AND owner = $2 AND name = $3`,
		userID, owner, name,
	)

	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("プロジェクトの検索に失敗しました: %w", err)
	}
	return p, nil
}

// ListByUserID はユーザーのプロジェクト一覧をローカル作成日時の新しい順で返す。
func (r *PostgresProjectRepo) ListByUserID(ctx context.Context, userID int64) ([]*model.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("プロジェクト一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("プロジェクト行の読み取りに失敗しました: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("プロジェクト一覧の走査に失敗しました: %w", err)
	}
	return projects, nil
}

// UpdateMetrics は許可リスト化されたメトリクスフィールドのみを動的に更新する。
// nilのフィールドはSET句に含めず既存値を維持する。呼び出し元由来のキーを
// そのままSQLに流し込むことはせず、列名はこの関数内で固定する。
// 該当行がない場合はnilを返す。
func (r *PostgresProjectRepo) UpdateMetrics(ctx context.Context, id, userID int64, update model.ProjectMetricsUpdate) (*model.Project, error) {
	var sets []string
	var values []any
	param := 1

	if update.Stars != nil {
		sets = append(sets, fmt.Sprintf("stars = $%d", param))
		values = append(values, *update.Stars)
		param++
	}
	if update.Forks != nil {
		sets = append(sets, fmt.Sprintf("forks = $%d", param))
		values = append(values, *update.Forks)
		param++
	}
	if update.OpenIssues != nil {
		sets = append(sets, fmt.Sprintf("open_issues = $%d", param))
		values = append(values, *update.OpenIssues)
		param++
	}

	// 更新フィールドが1つもない場合は現在の行をそのまま返す
	if len(sets) == 0 {
		return r.FindByIDAndUserID(ctx, id, userID)
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	values = append(values, id, userID)

	query := fmt.Sprintf(
		`UPDATE projects SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), param, param+1, projectColumns,
	)

	p, err := scanProject(r.db.QueryRowContext(ctx, query, values...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("プロジェクトの更新に失敗しました: %w", err)
	}
	return p, nil
}

// Delete はIDと所有ユーザーIDが一致する行を削除する。削除された場合にtrueを返す。
func (r *PostgresProjectRepo) Delete(ctx context.Context, id, userID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("プロジェクトの削除に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("削除行数の取得に失敗しました: %w", err)
	}
	return rowsAffected > 0, nil
}

// compile-time interface check
var _ ProjectRepository = (*PostgresProjectRepo)(nil)
