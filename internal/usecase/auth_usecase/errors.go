package auth

import "errors"

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrWeakPassword       = errors.New("weak password")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")

	// メールまたはパスワードが違う
	ErrInvalidCredentials = errors.New("invalid credentials")

	// 停止済みユーザー
	ErrUserInactive = errors.New("user is inactive")

	// ログイン試行回数の上限
	ErrTooManyAttempts = errors.New("too many login attempts")

	// 対象ユーザーがいない
	ErrUserNotFound = errors.New("user not found")
)

const minPasswordLength = 8
