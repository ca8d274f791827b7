// Package logger はgitcrm全体で使うJSON構造化ログのセットアップを提供する。
// リクエストログやGitHub取得ログの属性はslogのキーバリューで出力される。
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup は指定writerに出力するJSON構造化slog.Loggerを返す。
// テストではio.Discardを渡してログを抑制できる。
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// SetupDefault はJSONロガーをslogのグローバルデフォルトとして設定する。
// nilの場合はos.Stdoutに出力する。
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	slog.SetDefault(Setup(w))
}
