package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/golang-jwt/jwt/v5"

	"github.com/autolane-tms/autolane_api/dto"
)

type JWTService struct {
	context.DefaultService

	SessionDuration time.Duration
	// RenewAfter is how old a token may get before an authenticated request
	// re-issues it. This is the implicit-renewal part of the session model.
	RenewAfter   time.Duration
	jwtSecretKey string
}

type SessionClaims struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
	jwt.RegisteredClaims
}

const JWT_SVC = "jwt_svc"

func (svc JWTService) Id() string {
	return JWT_SVC
}

func (svc *JWTService) Configure(ctx *context.Context) error {
	svc.SessionDuration = 30 * 24 * time.Hour
	svc.RenewAfter = 24 * time.Hour
	svc.jwtSecretKey = os.Getenv("JWT_SECRET")
	return svc.DefaultService.Configure(ctx)
}

func (svc *JWTService) Start() error {
	if svc.jwtSecretKey == "" {
		return errors.New("JWT_SECRET is not set")
	}
	return nil
}

// ToJWT signs a session payload. Role and status are frozen at issuance;
// nothing re-reads the user row until the token expires or is renewed.
func (svc *JWTService) ToJWT(session dto.Session) (string, error) {
	now := time.Now()

	claims := &SessionClaims{
		Email:  session.Email,
		Name:   session.Name,
		Role:   session.Role,
		Status: session.Status,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(svc.SessionDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "autolane",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(svc.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}

	return tokenString, nil
}

// VerifyJWTToken validates signature and expiry and returns the embedded
// session. shouldRenew reports whether the token is older than RenewAfter.
func (svc *JWTService) VerifyJWTToken(jwtToken string) (session *dto.Session, shouldRenew bool, err error) {
	token, err := jwt.ParseWithClaims(jwtToken, &SessionClaims{}, svc.getJWTKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, false, errors.New("invalid session token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.Subject == "" {
		return nil, false, errors.New("invalid session claims")
	}

	if claims.IssuedAt != nil {
		shouldRenew = time.Since(claims.IssuedAt.Time) > svc.RenewAfter
	}

	return &dto.Session{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
		Status: claims.Status,
	}, shouldRenew, nil
}

func (svc *JWTService) getJWTKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	return []byte(svc.jwtSecretKey), nil
}

// SessionTTL reports how long issued sessions live.
func (svc *JWTService) SessionTTL() time.Duration {
	return svc.SessionDuration
}

func (svc *JWTService) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return "", errors.New("invalid authorization header format")
	}

	return authHeader[7:], nil
}
