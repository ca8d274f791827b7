// Package model はドメインモデルを定義する。
package model

import "time"

// User は登録済みユーザーアカウントを表す。
// メールアドレスは大文字小文字を区別した完全一致でユニーク。
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity は認証済みリクエストのユーザー情報を表す。
// JWTの検証結果としてミドルウェアからコンテキストに注入される。
type Identity struct {
	UserID int64
	Email  string
}
