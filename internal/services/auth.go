package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"aisolutions/internal/config"
	"aisolutions/internal/domain"
	"aisolutions/internal/metrics"
	"aisolutions/internal/util"
	apperrors "aisolutions/pkg/errors"
)

// LoginPayload is the body of a login request
type LoginPayload struct {
	Username domain.Field[string] `json:"username"`
	Password domain.Field[string] `json:"password"`
}

// LoginResult is returned on a successful login
type LoginResult struct {
	Token        string    `json:"token"`
	ExpiresAt    time.Time `json:"expires_at"`
	DashboardURL string    `json:"dashboard_url"`
}

// AuthService checks the configured admin credentials, issues tokens and
// decides whether a request may reach an admin route.
type AuthService struct {
	tokens       *util.TokenManager
	username     string
	password     string
	passwordHash string
	dashboardURL string
	log          *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.AuthConfig, dashboardURL string, tokens *util.TokenManager, log *zap.Logger) *AuthService {
	return &AuthService{
		tokens:       tokens,
		username:     cfg.AdminUsername,
		password:     cfg.AdminPassword,
		passwordHash: cfg.AdminPasswordHash,
		dashboardURL: dashboardURL,
		log:          log,
	}
}

// Login implements the login method. Unknown user and wrong password are
// reported identically.
func (s *AuthService) Login(ctx context.Context, p *LoginPayload) (*LoginResult, error) {
	if p == nil || !p.Username.Present() || !p.Password.Present() {
		return nil, apperrors.Invalid(ErrCredentialsRequired.Error())
	}

	if !s.checkCredentials(p.Username.Value, p.Password.Value) {
		s.log.Info("login failed")
		metrics.RecordAuthAttempt(false)
		return nil, unauthorized(ErrInvalidCredentials, "")
	}

	token, expiresAt, err := s.tokens.Issue(p.Username.Value)
	if err != nil {
		s.log.Error("token generation failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	s.log.Info("login successful", zap.String("username", p.Username.Value))
	metrics.RecordAuthAttempt(true)

	return &LoginResult{
		Token:        token,
		ExpiresAt:    expiresAt,
		DashboardURL: s.dashboardURL,
	}, nil
}

func (s *AuthService) checkCredentials(username, password string) bool {
	userOK := util.EqualStrings(username, s.username)
	var passOK bool
	switch {
	case s.passwordHash != "":
		passOK = util.CheckPasswordHash(password, s.passwordHash)
	case s.password != "":
		passOK = util.EqualStrings(password, s.password)
	}
	return userOK && passOK
}

// Authorize applies the admin guard to an Authorization header value. Checks
// run in order: header present, header well formed, token signature and
// expiry, admin flag.
func (s *AuthService) Authorize(header string) (*util.Claims, error) {
	if header == "" {
		return nil, unauthorized(ErrMissingAuthHeader, "")
	}

	parts := strings.Fields(header)
	if len(parts) != 2 {
		return nil, unauthorized(ErrMalformedAuthHeader, "")
	}
	if !strings.EqualFold(parts[0], "bearer") {
		return nil, unauthorized(ErrInvalidAuthScheme, "")
	}

	claims, err := s.tokens.Validate(parts[1])
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, util.ErrExpiredToken):
		return nil, unauthorized(ErrTokenExpired, "")
	case errors.Is(err, util.ErrNotAdmin):
		return nil, forbidden(ErrInsufficientPrivilege)
	default:
		return nil, unauthorized(ErrTokenInvalid, "Invalid token: "+strings.TrimPrefix(err.Error(), util.ErrInvalidToken.Error()+": "))
	}
}
