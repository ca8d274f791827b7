package handler

import (
	"strings"
	"testing"
)

// TestValidateCredentials はメールアドレスとパスワードの検証ルールを検証する。
func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		password    string
		wantDetails int
	}{
		{"正常", "user@example.com", "password123", 0},
		{"6文字ちょうど", "user@example.com", "abcdef", 0},
		{"メール空", "", "password123", 1},
		{"メール形式不正", "not-an-email", "password123", 1},
		{"アットマークなし", "user.example.com", "password123", 1},
		{"パスワード空", "user@example.com", "", 1},
		{"パスワード5文字", "user@example.com", "abcde", 1},
		{"パスワード129文字", "user@example.com", strings.Repeat("a", 129), 1},
		{"両方不正", "bad", "x", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := validateCredentials(tt.email, tt.password)
			if len(details) != tt.wantDetails {
				t.Errorf("validateCredentials(%q, ...) returned %d details, want %d: %v",
					tt.email, len(details), tt.wantDetails, details)
			}
		})
	}
}

// TestParseIDParam はIDパラメータの解析を検証する。
func TestParseIDParam(t *testing.T) {
	tests := []struct {
		raw    string
		wantID int64
		wantOK bool
	}{
		{"1", 1, true},
		{"9223372036854775807", 9223372036854775807, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}

	for _, tt := range tests {
		id, ok := parseIDParam(tt.raw)
		if id != tt.wantID || ok != tt.wantOK {
			t.Errorf("parseIDParam(%q) = (%d, %v), want (%d, %v)",
				tt.raw, id, ok, tt.wantID, tt.wantOK)
		}
	}
}
