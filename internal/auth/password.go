// Package auth はパスワード認証、JWTの発行・検証、認証サービスを提供する。
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost はパスワードハッシュのコストパラメータ。
const bcryptCost = 12

// HashPassword はパスワードをbcryptでハッシュ化する。
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword は平文パスワードとハッシュの一致を検証する。
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
