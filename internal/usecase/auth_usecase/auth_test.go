package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// fakes / mocks
// =====================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Now().Truncate(time.Second)

type fakeLimiter struct {
	allow  bool
	err    error
	hits   int
	resets int
}

func (l *fakeLimiter) Hit(ctx context.Context, scope, email string) (bool, error) {
	l.hits++
	return l.allow, l.err
}

func (l *fakeLimiter) Reset(ctx context.Context, scope, email string) error {
	l.resets++
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type plainVerifier struct{}

func (plainVerifier) Verify(plain string, hashed string) bool { return hashed == "hashed:"+plain }

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) Create(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CustomerRepoMock) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) RecordOrder(ctx context.Context, customerID int64, total decimal.Decimal) error {
	panic("not used in auth tests")
}

func (m *CustomerRepoMock) UpdateLastLogin(ctx context.Context, customerID int64, at time.Time) error {
	args := m.Called(ctx, customerID, at)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *UserRepoMock) IncrementTokenVersion(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, f repository.AuditLogListFilter) ([]model.AuditLog, int64, error) {
	panic("not used in auth tests")
}

var (
	_ repository.UserRepository     = (*UserRepoMock)(nil)
	_ repository.CustomerRepository = (*CustomerRepoMock)(nil)
	_ repository.AuditLogRepository = (*AuditRepoMock)(nil)
)

// =====================
// token
// =====================

func newIssuer() *JWTIssuer {
	return NewJWTIssuer("test-secret", 7*24*time.Hour, time.Hour)
}

func TestJWTIssuer_SessionRoundTrip(t *testing.T) {
	j := newIssuer()

	raw, exp, err := j.IssueSession(42, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(7*24*time.Hour), exp)

	id, err := j.ParseSession(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestJWTIssuer_AdminRoundTrip(t *testing.T) {
	j := newIssuer()
	user := &model.User{ID: 7, Role: model.RoleShopManager, TokenVersion: 3}

	raw, _, err := j.IssueAdmin(user, testNow)
	require.NoError(t, err)

	claims, err := j.ParseAdmin(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, model.RoleShopManager, claims.Role)
	assert.Equal(t, 3, claims.TokenVersion)
}

// 会員セッションは管理APIで使えない（逆も同じ）
func TestJWTIssuer_KindMismatch(t *testing.T) {
	j := newIssuer()

	session, _, err := j.IssueSession(42, testNow)
	require.NoError(t, err)
	_, err = j.ParseAdmin(session)
	assert.ErrorIs(t, err, ErrInvalidToken)

	admin, _, err := j.IssueAdmin(&model.User{ID: 7, Role: model.RoleAdmin}, testNow)
	require.NoError(t, err)
	_, err = j.ParseSession(admin)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_Expired(t *testing.T) {
	j := newIssuer()

	raw, _, err := j.IssueAdmin(&model.User{ID: 7, Role: model.RoleAdmin}, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = j.ParseAdmin(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_WrongSecretAndAlg(t *testing.T) {
	j := newIssuer()
	other := NewJWTIssuer("other-secret", time.Hour, time.Hour)

	raw, _, err := other.IssueSession(42, testNow)
	require.NoError(t, err)
	_, err = j.ParseSession(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// HS512は受け付けない
	claims := tokenClaims{
		Kind:             kindSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = j.ParseSession(hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// =====================
// register
// =====================

func TestRegisterCustomer_Validation(t *testing.T) {
	uc := NewRegisterCustomerUsecase(new(CustomerRepoMock), plainHasher{}, newIssuer(), fixedClock{testNow})

	tests := []struct {
		name string
		in   RegisterCustomerInput
		want error
	}{
		{"bad email", RegisterCustomerInput{Email: "not-an-email", Password: "s3cure-pass"}, ErrInvalidEmailFormat},
		{"short", RegisterCustomerInput{Email: "a@example.com", Password: "short"}, ErrPasswordTooShort},
		{"weak", RegisterCustomerInput{Email: "a@example.com", Password: "Password123"}, ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegisterCustomer_Duplicate(t *testing.T) {
	customers := new(CustomerRepoMock)
	customers.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.Customer{ID: 1}, nil)
	uc := NewRegisterCustomerUsecase(customers, plainHasher{}, newIssuer(), fixedClock{testNow})

	_, err := uc.Execute(context.Background(), RegisterCustomerInput{Email: "A@Example.com", Password: "s3cure-pass"})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterCustomer_OK(t *testing.T) {
	customers := new(CustomerRepoMock)
	customers.On("FindByEmail", mock.Anything, "a@example.com").Return(nil, repository.ErrNotFound)
	customers.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Customer) bool {
		return c.Email == "a@example.com" && c.PasswordHash == "hashed:s3cure-pass"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Customer).ID = 10
	}).Return(nil).Once()
	issuer := newIssuer()
	uc := NewRegisterCustomerUsecase(customers, plainHasher{}, issuer, fixedClock{testNow})

	out, err := uc.Execute(context.Background(), RegisterCustomerInput{Email: " a@example.com ", Password: "s3cure-pass", FirstName: "An"})

	require.NoError(t, err)
	assert.Equal(t, int64(10), out.Customer.ID)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), out.ExpiresIn)
	id, err := issuer.ParseSession(out.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, int64(10), id)
}

// =====================
// login
// =====================

func TestCustomerLogin_OK(t *testing.T) {
	customers := new(CustomerRepoMock)
	customers.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.Customer{ID: 10, PasswordHash: "hashed:s3cure-pass"}, nil)
	customers.On("UpdateLastLogin", mock.Anything, int64(10), testNow).Return(nil)
	limiter := &fakeLimiter{allow: true}
	uc := NewCustomerLoginUsecase(customers, plainVerifier{}, newIssuer(), limiter, fixedClock{testNow})

	out, err := uc.Execute(context.Background(), LoginInput{Email: "A@example.com", Password: "s3cure-pass"})

	require.NoError(t, err)
	assert.NotEmpty(t, out.SessionToken)
	assert.Equal(t, 1, limiter.hits)
	assert.Equal(t, 1, limiter.resets)
}

func TestCustomerLogin_WrongPassword(t *testing.T) {
	customers := new(CustomerRepoMock)
	customers.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.Customer{ID: 10, PasswordHash: "hashed:s3cure-pass"}, nil)
	limiter := &fakeLimiter{allow: true}
	uc := NewCustomerLoginUsecase(customers, plainVerifier{}, newIssuer(), limiter, fixedClock{testNow})

	_, err := uc.Execute(context.Background(), LoginInput{Email: "a@example.com", Password: "nope"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 0, limiter.resets)
}

func TestCustomerLogin_TooManyAttempts(t *testing.T) {
	customers := new(CustomerRepoMock)
	uc := NewCustomerLoginUsecase(customers, plainVerifier{}, newIssuer(), &fakeLimiter{allow: false}, fixedClock{testNow})

	_, err := uc.Execute(context.Background(), LoginInput{Email: "a@example.com", Password: "s3cure-pass"})

	assert.ErrorIs(t, err, ErrTooManyAttempts)
	customers.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

// カウンタが落ちていても通す
func TestCustomerLogin_LimiterErrorFailsOpen(t *testing.T) {
	customers := new(CustomerRepoMock)
	customers.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.Customer{ID: 10, PasswordHash: "hashed:s3cure-pass"}, nil)
	customers.On("UpdateLastLogin", mock.Anything, int64(10), testNow).Return(nil)
	uc := NewCustomerLoginUsecase(customers, plainVerifier{}, newIssuer(), &fakeLimiter{err: errors.New("redis down")}, fixedClock{testNow})

	_, err := uc.Execute(context.Background(), LoginInput{Email: "a@example.com", Password: "s3cure-pass"})

	assert.NoError(t, err)
}

func TestAdminLogin_Inactive(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "boss@example.com").Return(&model.User{ID: 1, PasswordHash: "hashed:s3cure-pass", IsActive: false}, nil)
	uc := NewAdminLoginUsecase(users, plainVerifier{}, newIssuer(), &fakeLimiter{allow: true}, fixedClock{testNow})

	_, err := uc.Execute(context.Background(), LoginInput{Email: "boss@example.com", Password: "s3cure-pass"})

	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestAdminLogin_OK(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "boss@example.com").Return(&model.User{
		ID:           1,
		PasswordHash: "hashed:s3cure-pass",
		Role:         model.RoleAdmin,
		TokenVersion: 2,
		IsActive:     true,
	}, nil)
	users.On("UpdateLastLogin", mock.Anything, int64(1), testNow).Return(nil)
	issuer := newIssuer()
	uc := NewAdminLoginUsecase(users, plainVerifier{}, issuer, &fakeLimiter{allow: true}, fixedClock{testNow})

	out, err := uc.Execute(context.Background(), LoginInput{Email: "boss@example.com", Password: "s3cure-pass"})

	require.NoError(t, err)
	assert.Equal(t, 3600, out.Token.ExpiresIn)
	assert.Equal(t, 2, out.Token.TokenVersion)
	claims, err := issuer.ParseAdmin(out.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
}

// =====================
// force logout
// =====================

func TestForceLogout_OK(t *testing.T) {
	users := new(UserRepoMock)
	users.On("IncrementTokenVersion", mock.Anything, int64(5)).Return(4, nil)
	audits := new(AuditRepoMock)
	audits.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionForceLogout && l.ResourceID == 5 && l.ActorUserID == 1
	})).Return(nil).Once()
	uc := NewForceLogoutUsecase(users, audits, fixedClock{testNow})

	out, err := uc.Execute(context.Background(), 1, 5)

	require.NoError(t, err)
	assert.Equal(t, 4, out.NewTokenVersion)
	audits.AssertExpectations(t)
}

func TestForceLogout_NotFound(t *testing.T) {
	users := new(UserRepoMock)
	users.On("IncrementTokenVersion", mock.Anything, int64(5)).Return(0, repository.ErrNotFound)
	uc := NewForceLogoutUsecase(users, new(AuditRepoMock), fixedClock{testNow})

	_, err := uc.Execute(context.Background(), 1, 5)

	assert.ErrorIs(t, err, ErrUserNotFound)
}
