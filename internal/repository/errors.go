package repository

import "errors"

var (
	// 対象が存在しない
	ErrNotFound = errors.New("not found")
	// 一意制約違反（email重複・注文番号重複など）
	ErrConflict = errors.New("conflict")
)
