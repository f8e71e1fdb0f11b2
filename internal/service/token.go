package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// IdentityToken — выпущенный bearer-токен псевдонимной личности.
type IdentityToken struct {
	Identity  uuid.UUID     `json:"identity"`
	Token     string        `json:"token"`
	ExpiresIn time.Duration `json:"expires_in"`
}

// TokenManager отвечает за выпуск и проверку JWT личностей. Аккаунтов
// нет: личность — это свежий UUID, токен — единственное доказательство
// владения ею.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager создаёт менеджер токенов.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// IssueNew выпускает токен для новой личности.
func (m *TokenManager) IssueNew() (*IdentityToken, error) {
	return m.Issue(uuid.New())
}

// Issue выпускает токен для заданной личности.
func (m *TokenManager) Issue(identity uuid.UUID) (*IdentityToken, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   identity.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, err
	}

	return &IdentityToken{
		Identity:  identity,
		Token:     signed,
		ExpiresIn: m.ttl,
	}, nil
}

// Parse извлекает личность из токена.
func (m *TokenManager) Parse(token string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		if err == nil {
			err = jwt.ErrTokenInvalidClaims
		}
		return uuid.Nil, err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	identity, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, err
	}
	return identity, nil
}
