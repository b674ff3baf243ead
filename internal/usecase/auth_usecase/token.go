package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"storefront/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
)

// トークンが不正・期限切れ
var ErrInvalidToken = errors.New("invalid token")

const (
	kindSession = "session"
	kindAdmin   = "admin"
)

type tokenClaims struct {
	Kind         string `json:"kind"`
	Role         string `json:"role,omitempty"`
	TokenVersion int    `json:"tv"`
	jwt.RegisteredClaims
}

// 管理者アクセストークンから取り出した値
type AdminClaims struct {
	UserID       int64
	Role         model.Role
	TokenVersion int
}

// JWTIssuer はHS256で会員セッションと管理者トークンを発行・検証する
type JWTIssuer struct {
	secret     []byte
	sessionTTL time.Duration
	adminTTL   time.Duration
}

func NewJWTIssuer(secret string, sessionTTL time.Duration, adminTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), sessionTTL: sessionTTL, adminTTL: adminTTL}
}

func (j *JWTIssuer) SessionTTL() time.Duration { return j.sessionTTL }

// 会員セッション（cookieに入れる）
func (j *JWTIssuer) IssueSession(customerID int64, now time.Time) (string, time.Time, error) {
	exp := now.Add(j.sessionTTL)
	return j.sign(tokenClaims{
		Kind:             kindSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(customerID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}, exp)
}

func (j *JWTIssuer) ParseSession(raw string) (int64, error) {
	claims, err := j.parse(raw, kindSession)
	if err != nil {
		return 0, err
	}
	return subjectID(claims)
}

// 管理者のbearerトークン
func (j *JWTIssuer) IssueAdmin(user *model.User, now time.Time) (string, time.Time, error) {
	exp := now.Add(j.adminTTL)
	return j.sign(tokenClaims{
		Kind:             kindAdmin,
		Role:             string(user.Role),
		TokenVersion:     user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}, exp)
}

func (j *JWTIssuer) ParseAdmin(raw string) (AdminClaims, error) {
	claims, err := j.parse(raw, kindAdmin)
	if err != nil {
		return AdminClaims{}, err
	}
	id, err := subjectID(claims)
	if err != nil {
		return AdminClaims{}, err
	}
	if claims.Role == "" || claims.TokenVersion < 0 {
		return AdminClaims{}, ErrInvalidToken
	}
	return AdminClaims{UserID: id, Role: model.Role(claims.Role), TokenVersion: claims.TokenVersion}, nil
}

func (j *JWTIssuer) sign(claims tokenClaims, exp time.Time) (string, time.Time, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (j *JWTIssuer) parse(raw string, kind string) (*tokenClaims, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || token == nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	//会員トークンを管理APIに使わせない
	if claims.Kind != kind {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func subjectID(claims *tokenClaims) (int64, error) {
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}
