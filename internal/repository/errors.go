package repository

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolationCode はPostgreSQLのunique_violationエラーコード。
const uniqueViolationCode = "23505"

// IsUniqueViolation はエラーがユニーク制約違反かどうかを判定する。
// 同時Addの競合はアプリ層の事前チェックをすり抜けるため、
// サービス層はINSERT失敗時にこの判定で409に変換する。
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}
