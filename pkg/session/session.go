// Package session firma y verifica el token de sesión del POS.
//
// La identidad del cliente (tienda, usuario, cuenta) viaja en una sola
// cookie firmada HS256 en lugar de tres cookies con ids planos: manipular
// cualquiera de los ids invalida la firma y la sesión completa. El rol NO
// va en el token: se relee de la base en cada petición que lo necesita,
// para que un cambio de rol aplique en la siguiente petición del afectado.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName es el nombre de la cookie que transporta el token firmado.
const CookieName = "pos_session"

// Session es la identidad resuelta de una petición. Los tres ids viajan
// juntos; IsLoggedIn exige tienda y usuario (la cuenta sola no basta).
type Session struct {
	StoreID   string
	UserID    string
	AccountID string
}

// IsLoggedIn indica si la sesión tiene tienda y usuario presentes.
func (s Session) IsLoggedIn() bool {
	return s.StoreID != "" && s.UserID != ""
}

// Claims incluye los claims estándar JWT más la identidad POS.
type Claims struct {
	jwt.RegisteredClaims
	StoreID   string `json:"store_id"`
	UserID    string `json:"user_id"`
	AccountID string `json:"account_id"`
}

// Generate genera el token de sesión firmado. Los tres ids deben venir
// completos: no se emiten sesiones parciales.
func Generate(secret string, s Session, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("session: secret vacío")
	}
	if s.StoreID == "" || s.UserID == "" || s.AccountID == "" {
		return "", fmt.Errorf("session: identidad incompleta")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		StoreID:   s.StoreID,
		UserID:    s.UserID,
		AccountID: s.AccountID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la sesión.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (Session, error) {
	if secret == "" {
		return Session{}, fmt.Errorf("session: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Session{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Session{}, fmt.Errorf("claims inválidos")
	}
	return Session{
		StoreID:   claims.StoreID,
		UserID:    claims.UserID,
		AccountID: claims.AccountID,
	}, nil
}
