package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/model"
	"github.com/autolane-tms/autolane_api/shared"
)

const bcryptCost = 12

// userStore is the slice of PostgresService the authenticator needs.
type userStore interface {
	GetUser(userID string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	UpdateLastLogin(userID string) error
	UpdateUserPassword(userID, passwordHash string) error
	CreatePasswordResetCode(code *model.PasswordResetCode) error
	GetActivePasswordResetCode(userID, code string) (*model.PasswordResetCode, error)
	MarkResetCodeUsed(codeID string) error
}

type AuthService struct {
	context.DefaultService

	users    userStore
	limiter  *RateLimitService
	jwtSvc   *JWTService
	emailSvc *EmailService
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.users = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.limiter = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.emailSvc = svc.Service(EMAIL_SVC).(*EmailService)
	return nil
}

func loginKey(email string) string {
	return "login:" + email
}

func passwordResetKey(email string) string {
	return "password_reset:" + email
}

// ==================== AUTHORIZE ====================

// Authorize verifies credentials and returns the session payload to embed
// in the token. The limiter is consulted before the hash is touched, so a
// rate-limited caller costs no bcrypt work and leaks no timing signal.
func (svc *AuthService) Authorize(email, password string) (*dto.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	config, _ := svc.limiter.Config("login")
	result := svc.limiter.Check(loginKey(email), config)
	if !result.Allowed {
		recordLoginOutcome("rate_limited")
		return nil, shared.NewRateLimitedError(result.RetryAfterSeconds,
			"Too many login attempts. Please try again later.")
	}

	user, err := svc.users.GetUserByEmail(email)
	if err != nil || user == nil {
		recordLoginOutcome("invalid_credentials")
		return nil, shared.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		recordLoginOutcome("invalid_credentials")
		return nil, shared.ErrInvalidCredentials
	}

	if user.Status == shared.StatusBlocked {
		recordLoginOutcome("blocked")
		return nil, shared.ErrAccountBlocked
	}

	svc.limiter.Reset(loginKey(email))

	if err := svc.users.UpdateLastLogin(user.ID); err != nil {
		log.Errorf("Failed to update last login for %s: %v", user.ID, err)
	}

	recordLoginOutcome("success")
	return &dto.Session{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		Status: user.Status,
	}, nil
}

// Login wraps Authorize with token minting for the HTTP layer.
func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	session, err := svc.Authorize(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := svc.jwtSvc.ToJWT(*session)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to create session")
	}

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(svc.jwtSvc.SessionDuration.Seconds()),
		Session:     *session,
		RedirectTo:  shared.HomeForRole(session.Role),
	}, nil
}

// LoginStatus reports remaining attempts without consuming one.
func (svc *AuthService) LoginStatus(email string) dto.LoginStatusResponse {
	email = strings.ToLower(strings.TrimSpace(email))

	config, _ := svc.limiter.Config("login")
	result := svc.limiter.Status(loginKey(email), config)

	resp := dto.LoginStatusResponse{RemainingAttempts: result.Remaining}
	if !result.ResetAt.IsZero() {
		resetAt := result.ResetAt
		resp.ResetAt = &resetAt
	}
	return resp
}

// RefreshSession re-reads the user row so a renewed token carries the
// current role and status instead of the snapshot it was issued with.
func (svc *AuthService) RefreshSession(userID string) (*dto.Session, error) {
	user, err := svc.userByID(userID)
	if err != nil {
		return nil, err
	}

	return &dto.Session{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		Status: user.Status,
	}, nil
}

// ==================== PASSWORD MANAGEMENT ====================

func (svc *AuthService) ChangePassword(userID string, req dto.ChangePasswordRequest) error {
	user, err := svc.userByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return shared.NewBadRequestError(nil, "Current password is incorrect")
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return shared.NewInternalError(err, "Failed to update password")
	}

	return svc.users.UpdateUserPassword(user.ID, hash)
}

// ForgotPassword answers identically for known and unknown emails.
func (svc *AuthService) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	config, _ := svc.limiter.Config("password_reset")
	result := svc.limiter.Check(passwordResetKey(email), config)
	if !result.Allowed {
		return shared.NewRateLimitedError(result.RetryAfterSeconds,
			"Too many password reset requests. Please try again later.")
	}

	user, err := svc.users.GetUserByEmail(email)
	if err != nil || user == nil {
		return nil
	}

	code, err := generateResetCode()
	if err != nil {
		return shared.NewInternalError(err, "Failed to create reset code")
	}

	if err := svc.users.CreatePasswordResetCode(&model.PasswordResetCode{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}); err != nil {
		return shared.NewInternalError(err, "Failed to create reset code")
	}

	if err := svc.emailSvc.SendPasswordResetEmail(user.Email, user.Name, code); err != nil {
		log.Errorf("Failed to send reset email to %s: %v", user.Email, err)
	}

	return nil
}

func (svc *AuthService) ResetPassword(req dto.ResetPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := svc.users.GetUserByEmail(email)
	if err != nil || user == nil {
		return shared.NewBadRequestError(nil, "Invalid or expired reset code")
	}

	resetCode, err := svc.users.GetActivePasswordResetCode(user.ID, req.Code)
	if err != nil || resetCode == nil {
		return shared.NewBadRequestError(nil, "Invalid or expired reset code")
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return shared.NewInternalError(err, "Failed to update password")
	}

	if err := svc.users.UpdateUserPassword(user.ID, hash); err != nil {
		return err
	}

	if err := svc.users.MarkResetCodeUsed(resetCode.ID); err != nil {
		log.Errorf("Failed to mark reset code used: %v", err)
	}

	svc.limiter.Reset(passwordResetKey(email))
	return nil
}

func (svc *AuthService) userByID(userID string) (*model.User, error) {
	user, err := svc.users.GetUser(userID)
	if err != nil || user == nil {
		return nil, shared.NewNotFoundError(err, "User not found")
	}
	return user, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
