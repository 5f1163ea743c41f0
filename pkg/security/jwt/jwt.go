package jwt

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/artem13815/jobboard/pkg/auth"
)

type Generator struct {
	secret []byte
	issuer string
}

func NewGenerator(secret, issuer string) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer}
}

// Claims включает стандартные поля и роль пользователя; subject - id сессии.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Generate signs a token that lives exactly as long as the session.
func (g *Generator) Generate(ctx context.Context, s auth.Session) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   s.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
		Role: string(s.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}
