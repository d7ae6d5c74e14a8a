package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
	TokenTypeDevice  TokenType = "device"
)

const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
	DeviceTokenTTL  = 15 * time.Minute
)

// UserClaims are the claims of staff access/refresh tokens and of telemetry
// device tokens. Subject is the user id or, for device tokens, the device id.
type UserClaims struct {
	Username string    `json:"username,omitempty"`
	Role     string    `json:"role,omitempty"`
	Type     TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateAccessToken(userID, username, role string) (string, time.Time, error)
	GenerateRefreshToken(userID string) (string, error)
	GenerateDeviceToken(deviceID string) (string, time.Time, error)
	ValidateToken(tokenString string, want TokenType) (*UserClaims, error)
}

type tokenManager struct {
	secret []byte
	now    func() time.Time
}

func NewTokenManager(secret string) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (m *tokenManager) GenerateAccessToken(userID, username, role string) (string, time.Time, error) {
	exp := m.now().Add(AccessTokenTTL)
	tok, err := m.sign(UserClaims{Username: username, Role: role, Type: TokenTypeAccess}, userID, "api-access", exp)
	return tok, exp, err
}

func (m *tokenManager) GenerateRefreshToken(userID string) (string, error) {
	return m.sign(UserClaims{Type: TokenTypeRefresh}, userID, "token-refresh", m.now().Add(RefreshTokenTTL))
}

func (m *tokenManager) GenerateDeviceToken(deviceID string) (string, time.Time, error) {
	exp := m.now().Add(DeviceTokenTTL)
	tok, err := m.sign(UserClaims{Type: TokenTypeDevice}, deviceID, "telemetry", exp)
	return tok, exp, err
}

func (m *tokenManager) sign(claims UserClaims, subject, audience string, exp time.Time) (string, error) {
	now := m.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    "evrental-settlement",
		Audience:  jwt.ClaimStrings{audience},
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string, want TokenType) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if want != "" && claims.Type != want {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// ExpiryUnverified reads the exp claim without checking the signature. The
// client holds no signing key; it only needs to know when to stop sending a token.
func ExpiryUnverified(tokenString string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
