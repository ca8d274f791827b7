package github

import (
	"testing"
	"time"
)

// TestToProjectData_UsesCanonicalOwner はリクエスト時の表記ではなく
// GitHubが返す正規のログイン名が使われることを検証する。
func TestToProjectData_UsesCanonicalOwner(t *testing.T) {
	repo := &Repository{
		Name:            "linux",
		HTMLURL:         "https://github.com/torvalds/linux",
		StargazersCount: 150000,
		ForksCount:      50000,
		OpenIssuesCount: 300,
		CreatedAt:       time.Date(2011, 9, 4, 22, 48, 12, 0, time.UTC),
	}
	repo.Owner.Login = "torvalds"

	data := ToProjectData(repo)

	if data.Owner != "torvalds" {
		t.Errorf("Owner = %q, want %q", data.Owner, "torvalds")
	}
	if data.Name != "linux" {
		t.Errorf("Name = %q, want %q", data.Name, "linux")
	}
	if data.Stars != 150000 {
		t.Errorf("Stars = %d, want %d", data.Stars, 150000)
	}
	if data.URL != "https://github.com/torvalds/linux" {
		t.Errorf("URL = %q", data.URL)
	}
}

// TestToProjectData_CreatedAtUnix_FloorsMilliseconds はミリ秒が
// 切り捨て除算でエポック秒に変換されることを検証する。
func TestToProjectData_CreatedAtUnix_FloorsMilliseconds(t *testing.T) {
	// 999ミリ秒は切り捨てられる
	created := time.Date(2020, 1, 2, 3, 4, 5, 999_000_000, time.UTC)
	repo := &Repository{CreatedAt: created}

	data := ToProjectData(repo)

	want := created.Unix()
	if data.CreatedAtUnix != want {
		t.Errorf("CreatedAtUnix = %d, want %d", data.CreatedAtUnix, want)
	}
}
