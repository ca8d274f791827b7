// Package github はGitHub APIへの外部ゲートウェイを提供する。
// リポジトリパスの構文検証、APIクライアント、スナップショットへのマッピングを含む。
package github

import (
	"regexp"
	"strings"

	"github.com/hitoshi/gitcrm/internal/model"
)

// validNamePattern はownerとリポジトリ名に許可する文字の集合。
var validNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ParseRepositoryPath は "owner/repo" 形式のパスを解析してownerとnameを返す。
// 前後の空白とスラッシュを取り除いたうえで、ちょうど1つの「/」で分割する。
// パス構文の検証はこの関数に一元化し、パスを受け付ける全ての箇所で同一に適用する。
func ParseRepositoryPath(path string) (owner, name string, err error) {
	cleaned := strings.Trim(strings.TrimSpace(path), "/")

	parts := strings.Split(cleaned, "/")
	if len(parts) != 2 {
		return "", "", model.NewInvalidPathError("owner/repository の形式で指定してください")
	}

	owner, name = parts[0], parts[1]
	if owner == "" || name == "" {
		return "", "", model.NewInvalidPathError("ownerとリポジトリ名は空にできません")
	}

	if !validNamePattern.MatchString(owner) || !validNamePattern.MatchString(name) {
		return "", "", model.NewInvalidPathError("ownerとリポジトリ名には英数字、ドット、アンダースコア、ハイフンのみ使用できます")
	}

	return owner, name, nil
}
