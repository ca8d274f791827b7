package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/gitcrm/internal/model"
)

// Claims はJWTに格納するクレームを表す。
// (user_id, email, iat, exp) のみを持つ自己完結型のアサーション。
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager はステートレスなベアラートークンの発行と検証を行う。
// 失効リストやリフレッシュ機構は持たず、有効期限切れが唯一の無効化経路。
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager はTokenManagerを生成する。
// 署名鍵が空の場合はサーバー設定不備としてエラーを返す。
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT signing secret is not configured")
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// Issue は指定ユーザーの署名済みHS256トークンを発行する。
func (m *TokenManager) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンの署名と有効期限を検証し、ユーザー情報を返す。
// 期限切れはTOKEN_EXPIRED、それ以外の形式・署名不正はTOKEN_INVALIDを返す。
// アカウントがまだ存在するかの確認は呼び出し元（ミドルウェア）の責務。
func (m *TokenManager) Verify(tokenString string) (*model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.NewTokenExpiredError()
		}
		return nil, model.NewTokenInvalidError()
	}
	if !token.Valid {
		return nil, model.NewTokenInvalidError()
	}

	return &model.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}
