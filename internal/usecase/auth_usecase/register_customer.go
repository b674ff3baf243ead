package auth

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

// 会員登録の入力
type RegisterCustomerInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// handlerでcookieに詰める値まで返す
type CustomerSession struct {
	Customer     model.Customer
	SessionToken string
	ExpiresIn    int
}

type RegisterCustomerUsecase struct {
	customers repository.CustomerRepository
	hasher    PasswordHasher
	issuer    *JWTIssuer
	clock     Clock
}

// DI
func NewRegisterCustomerUsecase(
	customers repository.CustomerRepository,
	hasher PasswordHasher,
	issuer *JWTIssuer,
	clock Clock,
) *RegisterCustomerUsecase {
	return &RegisterCustomerUsecase{
		customers: customers,
		hasher:    hasher,
		issuer:    issuer,
		clock:     clock,
	}
}

// 会員登録実行（登録後はそのままログイン状態）
func (u *RegisterCustomerUsecase) Execute(ctx context.Context, in RegisterCustomerInput) (CustomerSession, error) {
	var out CustomerSession

	email := normalizeEmail(in.Email)
	if !isValidEmailFormat(email) {
		return out, ErrInvalidEmailFormat
	}
	if len(in.Password) < minPasswordLength {
		return out, ErrPasswordTooShort
	}
	if isWeakPassword(in.Password) {
		return out, ErrWeakPassword
	}

	// email重複チェック
	existing, err := u.customers.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return out, ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return out, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	c := &model.Customer{
		Email:        email,
		PasswordHash: hashed,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
	}
	if err := u.customers.Create(ctx, c); err != nil {
		// 同時登録でunique違反
		if errors.Is(err, repository.ErrConflict) {
			return out, ErrEmailAlreadyExists
		}
		return out, err
	}

	now := u.clock.Now()
	token, exp, err := u.issuer.IssueSession(c.ID, now)
	if err != nil {
		return out, err
	}

	out.Customer = *c
	out.SessionToken = token
	out.ExpiresIn = int(exp.Sub(now).Seconds())
	return out, nil
}
