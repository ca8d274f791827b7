package handler

import (
	"regexp"
	"strconv"
)

// emailPattern は実用的なメールアドレス検証パターン。
// RFC完全準拠は目指さず、明らかな誤入力を弾く。
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	passwordMinLength = 6
	passwordMaxLength = 128
)

// validateCredentials はメールアドレスとパスワードを検証し、
// フィールドごとの人間可読なメッセージを返す。問題がなければ空スライスを返す。
func validateCredentials(email, password string) []string {
	var details []string

	if email == "" {
		details = append(details, "emailは必須です")
	} else if !emailPattern.MatchString(email) {
		details = append(details, "emailの形式が正しくありません")
	}

	if password == "" {
		details = append(details, "passwordは必須です")
	} else if len(password) < passwordMinLength {
		details = append(details, "passwordは6文字以上である必要があります")
	} else if len(password) > passwordMaxLength {
		details = append(details, "passwordは128文字以下である必要があります")
	}

	return details
}

// parseIDParam はURLパラメータのIDを正の整数として解析する。
// 解析できない場合はok=falseを返す。
func parseIDParam(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
