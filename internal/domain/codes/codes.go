// Package codes genera los códigos cortos de login de tiendas y usuarios.
//
// Los códigos son de 5 caracteres sobre un alfabeto de 32 símbolos sin
// caracteres ambiguos (sin I, O, 0, 1) para poder dictarlos o teclearlos
// en una caja registradora. 32^5 ≈ 33.5M combinaciones, así que las
// colisiones son raras; aun así cada candidato se verifica contra la base
// antes de entregarlo y el bucle está acotado.
package codes

import (
	"context"
	"errors"
	"math/rand"
	"strings"
)

// Alphabet es el conjunto de caracteres permitido: mayúsculas y dígitos
// sin los visualmente ambiguos I, O, 0 y 1.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Length es la longitud fija de todo código generado.
const Length = 5

// maxAttempts acota el bucle de reintentos de Unique.
const maxAttempts = 10

// ErrExhausted se devuelve cuando los maxAttempts candidatos colisionaron.
// El llamador debe tratar esto como condición reintentable, no usar el
// último candidato: la unicidad real la garantiza el índice único de la DB.
var ErrExhausted = errors.New("codes: intentos de generación agotados")

// Random devuelve un código aleatorio de Length caracteres del alfabeto.
// No necesita ser criptográficamente seguro: son códigos de login cortos
// legibles por humanos, no secretos de alta entropía.
func Random() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(Alphabet[rand.Intn(len(Alphabet))])
	}
	return b.String()
}

// ExistsFunc consulta si un código ya está en uso. El alcance de la
// unicidad lo decide el closure: global para tiendas, por cuenta para
// usuarios (el closure captura el accountID).
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generator produce códigos verificados contra un ExistsFunc.
type Generator struct {
	exists ExistsFunc
	random func() string
}

// NewGenerator construye un generador sobre el chequeo de existencia dado.
func NewGenerator(exists ExistsFunc) *Generator {
	return &Generator{exists: exists, random: Random}
}

// Unique dibuja candidatos hasta encontrar uno libre. Tras maxAttempts
// candidatos en colisión devuelve ErrExhausted. El chequeo existencia →
// insert no es atómico: dos registros concurrentes pueden pasar ambos la
// verificación con el mismo candidato, por eso el insert posterior debe
// apoyarse en el constraint único y reintentar ante violación.
func (g *Generator) Unique(ctx context.Context) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code := g.random()
		taken, err := g.exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrExhausted
}
