package auth

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/util"

	"go.uber.org/zap"
)

const (
	ScopeCustomer = "customer"
	ScopeAdmin    = "admin"
)

// ログイン試行回数の共有カウンタ
type AttemptLimiter interface {
	// 上限内ならtrue
	Hit(ctx context.Context, scope, email string) (bool, error)
	Reset(ctx context.Context, scope, email string) error
}

// handlerから渡す入力
type LoginInput struct {
	Email    string
	Password string
}

type CustomerLoginUsecase struct {
	customers repository.CustomerRepository
	verifier  PasswordVerifier
	issuer    *JWTIssuer
	limiter   AttemptLimiter
	clock     Clock
}

func NewCustomerLoginUsecase(
	customers repository.CustomerRepository,
	verifier PasswordVerifier,
	issuer *JWTIssuer,
	limiter AttemptLimiter,
	clock Clock,
) *CustomerLoginUsecase {
	return &CustomerLoginUsecase{
		customers: customers,
		verifier:  verifier,
		issuer:    issuer,
		limiter:   limiter,
		clock:     clock,
	}
}

// 会員ログイン（セッションcookie用のトークンを返す）
func (u *CustomerLoginUsecase) Execute(ctx context.Context, in LoginInput) (CustomerSession, error) {
	var out CustomerSession
	email := normalizeEmail(in.Email)

	if err := checkAttempts(ctx, u.limiter, ScopeCustomer, email); err != nil {
		return out, err
	}

	c, err := u.customers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	if ok := u.verifier.Verify(in.Password, c.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	now := u.clock.Now()
	token, exp, err := u.issuer.IssueSession(c.ID, now)
	if err != nil {
		return out, err
	}

	_ = u.limiter.Reset(ctx, ScopeCustomer, email)
	if err := u.customers.UpdateLastLogin(ctx, c.ID, now); err != nil {
		util.GetLogger().Warn("update customer last login", zap.Int64("customer_id", c.ID), zap.Error(err))
	}
	c.LastLoginAt = &now

	out.Customer = *c
	out.SessionToken = token
	out.ExpiresIn = int(exp.Sub(now).Seconds())
	return out, nil
}

// token 形（JwtAccessToken相当）
type JwtAccessToken struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenVersion int    `json:"token_version"`
}

// handlerがJSONにして返す
type AdminLoginOutput struct {
	User  model.User     `json:"user"`
	Token JwtAccessToken `json:"token"`
}

type AdminLoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   *JWTIssuer
	limiter  AttemptLimiter
	clock    Clock
}

func NewAdminLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer *JWTIssuer,
	limiter AttemptLimiter,
	clock Clock,
) *AdminLoginUsecase {
	return &AdminLoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		limiter:  limiter,
		clock:    clock,
	}
}

// ログイン処理を実行する
func (u *AdminLoginUsecase) Execute(ctx context.Context, in LoginInput) (AdminLoginOutput, error) {
	var out AdminLoginOutput
	email := normalizeEmail(in.Email)

	if err := checkAttempts(ctx, u.limiter, ScopeAdmin, email); err != nil {
		return out, err
	}

	//emailでユーザー取得
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return out, ErrUserInactive
	}

	//AccessToken発行
	now := u.clock.Now()
	accessToken, accessExp, err := u.issuer.IssueAdmin(user, now)
	if err != nil {
		return out, err
	}

	_ = u.limiter.Reset(ctx, ScopeAdmin, email)

	//最終ログイン時刻更新
	if err := u.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		util.GetLogger().Warn("update admin last login", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	user.LastLoginAt = &now

	out.User = *user
	out.Token = JwtAccessToken{
		AccessToken:  accessToken,
		ExpiresIn:    int(accessExp.Sub(now).Seconds()),
		TokenVersion: user.TokenVersion,
	}
	return out, nil
}

func checkAttempts(ctx context.Context, limiter AttemptLimiter, scope, email string) error {
	ok, err := limiter.Hit(ctx, scope, email)
	if err != nil {
		//カウンタが使えない時は通す
		util.GetLogger().Warn("login limiter error", zap.String("scope", scope), zap.Error(err))
		return nil
	}
	if !ok {
		return ErrTooManyAttempts
	}
	return nil
}
