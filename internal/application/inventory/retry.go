package inventory

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jhoicas/Inventario-kardex/internal/domain"
)

// RetryOnContention reintenta op mientras falle por contención de bloqueo, con
// backoff exponencial y como máximo attempts intentos. Cualquier otro error se
// devuelve de inmediato: los rechazos de negocio no cambian al reintentar.
func RetryOnContention[T any](ctx context.Context, attempts int, op func() (T, error)) (T, error) {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 50 * time.Millisecond
	eb.MaxInterval = 500 * time.Millisecond
	eb.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(max(attempts-1, 0))), ctx)

	var out T
	err := backoff.Retry(func() error {
		v, err := op()
		if err != nil {
			if domain.IsRetryable(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		out = v
		return nil
	}, b)
	return out, err
}
