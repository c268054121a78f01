// Package usecase contiene los casos de uso del punto de venta: tiendas,
// personal, inventario, ventas, compras, gastos y reportes.
package usecase

import (
	"errors"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/codes"
)

// isCodeCollision reconoce los fallos de generación/insert de códigos que
// otro sorteo puede resolver: el índice único rechazó el insert o el
// generador agotó sus intentos contra un prefijo muy poblado.
func isCodeCollision(err error) bool {
	return errors.Is(err, domain.ErrDuplicate) || errors.Is(err, codes.ErrExhausted)
}
