package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. Each link in a bulletin carries its own purpose so a
// subscribe token can never be replayed against the unsubscribe endpoint.
const (
	PurposeManage      = "manage"
	PurposeSubscribe   = "subscribe"
	PurposeUnsubscribe = "unsubscribe"
)

const tokenTTL = 30 * 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongPurpose = errors.New("token purpose mismatch")
)

// Manager signs and verifies the per-recipient action links embedded in
// bulletins.
type Manager struct {
	secret []byte
	now    func() time.Time
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), now: time.Now}
}

// Generate mints a token binding an email address to one action.
func (m *Manager) Generate(email, purpose string) (string, error) {
	claims := jwt.MapClaims{
		"email":   email,
		"purpose": purpose,
		"exp":     m.now().Add(tokenTTL).Unix(),
		"iat":     m.now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and purpose, returning the bound email.
func (m *Manager) Verify(tokenString, purpose string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	if got, _ := claims["purpose"].(string); got != purpose {
		return "", ErrWrongPurpose
	}
	return email, nil
}
