package inventory

import "github.com/jhoicas/Inventario-kardex/internal/domain"

// MaxQuantity tope de unidades por saldo y por movimiento. Con él las sumas por
// empresa (SumByCompany) quedan lejos del límite de int64.
const MaxQuantity int64 = 1_000_000_000_000

// ValidQuantity indica si q es una cantidad de movimiento aceptable.
func ValidQuantity(q int64) bool {
	return q > 0 && q <= MaxQuantity
}

// AddQuantity suma q al saldo sin pasar de MaxQuantity.
func AddQuantity(balance, q int64) (int64, error) {
	if !ValidQuantity(q) || balance < 0 || balance > MaxQuantity-q {
		return 0, domain.ErrInvalidQuantity
	}
	return balance + q, nil
}
