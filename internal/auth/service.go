package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/gitcrm/internal/model"
	"github.com/hitoshi/gitcrm/internal/repository"
)

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	tokens   *TokenManager
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, tokens *TokenManager) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register は新規ユーザーを作成し、トークンを発行する。
// メールアドレスが登録済みの場合はEMAIL_TAKENを返す。
func (s *Service) Register(ctx context.Context, email, password string) (*model.User, string, error) {
	// 事前チェック。同時登録の競合はDBのユニーク制約で最終的に弾く
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, "", model.NewEmailTakenError()
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, email, hash)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, "", model.NewEmailTakenError()
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("new user registered",
		slog.Int64("user_id", user.ID),
	)

	return user, token, nil
}

// Login はメールアドレスとパスワードでユーザーを認証し、トークンを発行する。
// ユーザー不在とパスワード不一致はどちらもINVALID_CREDENTIALSを返し、
// アカウントの存在を漏らさない。
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !VerifyPassword(password, user.PasswordHash) {
		return nil, "", model.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user logged in",
		slog.Int64("user_id", user.ID),
	)

	return user, token, nil
}

// CurrentUser はユーザーIDから最新のユーザー情報をDBから取得する。
// トークンが有効でもアカウントが削除済みの場合はUSER_NOT_FOUNDを返す。
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}
