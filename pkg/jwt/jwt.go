package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret indica tentativa de assinar/validar sem segredo configurado.
var ErrEmptySecret = errors.New("jwt: secret vazio")

// Identity é o conteúdo de sessão carregado no token.
type Identity struct {
	UserID       string
	Email        string
	Name         string
	Role         string // ADMIN | SUPERVISOR | ATENDENTE | CONSULTOR
	SupervisorID string // vazio quando o usuário não tem supervisor
}

// Claims são os claims padrão mais os campos da sessão.
// Role e SupervisorID permitem ao guard decidir sem consultar o banco.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	SupervisorID string `json:"supervisor_id,omitempty"`
}

// Identity devolve a identidade contida nos claims.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:       c.UserID,
		Email:        c.Email,
		Name:         c.Name,
		Role:         c.Role,
		SupervisorID: c.SupervisorID,
	}
}

// Generate gera um token HS256 assinado para a identidade.
func Generate(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:       id.UserID,
		Email:        id.Email,
		Name:         id.Name,
		Role:         id.Role,
		SupervisorID: id.SupervisorID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida o token e devolve os claims.
// Retorna erro se o token for inválido, expirado ou com assinatura incorreta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("jwt: claims inválidos")
	}
	if claims.UserID == "" {
		return nil, errors.New("jwt: token sem user_id")
	}
	return claims, nil
}
