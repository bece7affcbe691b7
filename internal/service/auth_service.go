package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/attendx/hrms-service/internal/auth"
	"github.com/attendx/hrms-service/internal/domain"
	"github.com/attendx/hrms-service/internal/events"
	"github.com/attendx/hrms-service/internal/observability"
	"github.com/attendx/hrms-service/internal/repository"
	apperrors "github.com/attendx/hrms-service/pkg/util"
)

const msgBadCredentials = "incorrect email or password"

// LoginThrottle tracks failed logins per email.
type LoginThrottle interface {
	Locked(ctx context.Context, email string) bool
	RecordFailure(ctx context.Context, email string)
	Reset(ctx context.Context, email string)
}

// AuthService coordinates the login flow.
type AuthService struct {
	accounts    repository.AccountRepository
	tokens      *auth.TokenManager
	hasher      *auth.Hasher
	throttle    LoginThrottle
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
	dummyDigest string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	Tokens      *auth.TokenManager
	Hasher      *auth.Hasher
	Throttle    LoginThrottle
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Account     *domain.Account
	AccessToken string
	ExpiresAt   time.Time
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuthService{
		accounts:   deps.AccountRepo,
		tokens:     deps.Tokens,
		hasher:     deps.Hasher,
		throttle:   deps.Throttle,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
	// Unknown emails still pay for one bcrypt comparison.
	if digest, err := s.hasher.HashPassword("unused-password"); err == nil {
		s.dummyDigest = digest
	}
	return s
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if s.throttle != nil && s.throttle.Locked(ctx, email) {
		s.metrics.RecordLogin("throttled")
		return nil, apperrors.NewTooManyAttempts("too many failed login attempts, try again later")
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.hasher.VerifyPassword(password, s.dummyDigest)
			s.loginFailed(ctx, email, "unknown_email")
			return nil, apperrors.NewUnauthorized(msgBadCredentials)
		}
		return nil, apperrors.MapError(err)
	}

	if !account.IsActive() {
		s.metrics.RecordLogin("inactive")
		s.logger.Info("login rejected", zap.Int64("account_id", account.ID), zap.String("reason", "inactive"))
		return nil, apperrors.NewForbidden("user account is inactive")
	}

	if !s.hasher.VerifyPassword(password, account.PasswordHash) {
		s.loginFailed(ctx, email, "bad_password")
		return nil, apperrors.NewUnauthorized(msgBadCredentials)
	}

	token, exp, err := s.tokens.IssueDefault(account)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if s.throttle != nil {
		s.throttle.Reset(ctx, email)
	}
	s.metrics.RecordLogin("success")
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventLoginSucceeded, strconv.FormatInt(account.ID, 10), account,
		events.LoginSucceededPayload{Email: account.Email, Role: account.Role}))

	return &LoginResult{Account: account, AccessToken: token, ExpiresAt: exp}, nil
}

func (s *AuthService) loginFailed(ctx context.Context, email, reason string) {
	if s.throttle != nil {
		s.throttle.RecordFailure(ctx, email)
	}
	s.metrics.RecordLogin("bad_credentials")
	s.logger.Info("login rejected", zap.String("reason", reason))
}
