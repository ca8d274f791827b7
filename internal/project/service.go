// Package project はリポジトリスナップショットの同期サービスを提供する。
// 外部ゲートウェイからの取得、スナップショットへのマッピング、
// ユーザー単位のユニーク性の強制を担う。
package project

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/gitcrm/internal/github"
	"github.com/hitoshi/gitcrm/internal/model"
	"github.com/hitoshi/gitcrm/internal/repository"
)

// RepositoryGateway は外部リポジトリ情報の取得インターフェース。
// github.Clientの部分集合として定義する。
type RepositoryGateway interface {
	GetRepository(ctx context.Context, owner, name string) (*github.Repository, error)
}

// MetricsRecorder はゲートウェイ呼び出しのメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordFetchSuccess()
	RecordFetchFailure(code string)
	RecordFetchLatency(d time.Duration)
}

// Service はプロジェクトの同期に関するビジネスロジックを提供する。
// 各操作はリクエスト内で完結し、永続的な状態機械は持たない。
type Service struct {
	projectRepo repository.ProjectRepository
	gateway     RepositoryGateway
	metrics     MetricsRecorder // nilの場合は記録しない
}

// NewService はServiceを生成する。
func NewService(projectRepo repository.ProjectRepository, gateway RepositoryGateway, metrics MetricsRecorder) *Service {
	return &Service{
		projectRepo: projectRepo,
		gateway:     gateway,
		metrics:     metrics,
	}
}

// fetch はゲートウェイ呼び出しをメトリクス記録付きで実行する。
func (s *Service) fetch(ctx context.Context, owner, name string) (*github.Repository, error) {
	start := time.Now()
	repo, err := s.gateway.GetRepository(ctx, owner, name)
	if s.metrics != nil {
		s.metrics.RecordFetchLatency(time.Since(start))
		if err != nil {
			code := model.ErrCodeGatewayError
			if apiErr, ok := err.(*model.APIError); ok {
				code = apiErr.Code
			}
			s.metrics.RecordFetchFailure(code)
		} else {
			s.metrics.RecordFetchSuccess()
		}
	}
	return repo, err
}

// Add は "owner/repo" パスからリポジトリを取得し、スナップショットとして登録する。
//
// 事前の存在チェックとINSERTはトランザクションで括らないため、同時Addは
// 両方とも事前チェックを通過しうる。その場合でもDBのユニーク制約が
// 2件目のINSERTを弾き、DUPLICATE_PROJECTに変換する（黙って重複させない）。
func (s *Service) Add(ctx context.Context, userID int64, path string) (*model.Project, error) {
	owner, name, err := github.ParseRepositoryPath(path)
	if err != nil {
		return nil, err
	}

	existing, err := s.projectRepo.FindByUserAndRepo(ctx, userID, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing project: %w", err)
	}
	if existing != nil {
		return nil, model.NewDuplicateProjectError()
	}

	repo, err := s.fetch(ctx, owner, name)
	if err != nil {
		// ゲートウェイの閉じたエラー分類（REPO_NOT_FOUND等）をそのまま伝播する
		return nil, err
	}

	created, err := s.projectRepo.Create(ctx, userID, github.ToProjectData(repo))
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, model.NewDuplicateProjectError()
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	slog.Info("project added",
		slog.Int64("user_id", userID),
		slog.Int64("project_id", created.ID),
		slog.String("repo", created.Owner+"/"+created.Name),
	)

	return created, nil
}

// Refresh はスナップショットのメトリクスをGitHubの現在値で上書きする。
//
// 取得には呼び出し元の入力ではなく保存済みのowner/nameを使用する。
// 更新対象はstars/forks/open_issuesとupdated_atのみで、owner/name/url/
// created_at_unixはGitHub側でリネームされていても書き換えない
// （スナップショット固定ポリシー）。
// 他ユーザー所有のIDを指定された場合も存在しない場合と同じPROJECT_NOT_FOUNDを返す。
func (s *Service) Refresh(ctx context.Context, userID, projectID int64) (*model.Project, error) {
	existing, err := s.projectRepo.FindByIDAndUserID(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if existing == nil {
		return nil, model.NewProjectNotFoundError()
	}

	repo, err := s.fetch(ctx, existing.Owner, existing.Name)
	if err != nil {
		return nil, err
	}

	data := github.ToProjectData(repo)
	updated, err := s.projectRepo.UpdateMetrics(ctx, projectID, userID, model.ProjectMetricsUpdate{
		Stars:      &data.Stars,
		Forks:      &data.Forks,
		OpenIssues: &data.OpenIssues,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if updated == nil {
		// フェッチ中に削除された場合
		return nil, model.NewProjectNotFoundError()
	}

	slog.Info("project refreshed",
		slog.Int64("user_id", userID),
		slog.Int64("project_id", projectID),
		slog.Int("stars", updated.Stars),
	)

	return updated, nil
}

// Delete は指定プロジェクトを削除する。
// 存在しない場合も他ユーザー所有の場合も同じPROJECT_NOT_FOUNDを返す。
func (s *Service) Delete(ctx context.Context, userID, projectID int64) error {
	deleted, err := s.projectRepo.Delete(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if !deleted {
		return model.NewProjectNotFoundError()
	}

	slog.Info("project deleted",
		slog.Int64("user_id", userID),
		slog.Int64("project_id", projectID),
	)

	return nil
}

// List はユーザーのプロジェクト一覧をローカル作成日時の新しい順で返す。
func (s *Service) List(ctx context.Context, userID int64) ([]*model.Project, error) {
	projects, err := s.projectRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get は指定プロジェクトを取得する。
func (s *Service) Get(ctx context.Context, userID, projectID int64) (*model.Project, error) {
	p, err := s.projectRepo.FindByIDAndUserID(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if p == nil {
		return nil, model.NewProjectNotFoundError()
	}
	return p, nil
}
