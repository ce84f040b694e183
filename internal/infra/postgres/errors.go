package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/vocational-profile/internal/domain/apperr"
	"github.com/jackc/pgx/v5/pgconn"
)

// Коды SQLSTATE, после которых запрос можно безопасно повторить
var retryableCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
	"57P01": {}, // admin_shutdown
	"57P02": {}, // crash_shutdown
	"57P03": {}, // cannot_connect_now
	"53300": {}, // too_many_connections
}

// Classify превращает ошибку хранилища в ошибку ядра. Ошибки, уже имеющие вид,
// возвращаются как есть; временные сбои получают вид StoreUnavailable;
// остальные остаются непредвиденными.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if apperr.KindOf(err) != apperr.KindUnknown {
		return err
	}
	if isTransient(err) {
		return apperr.E(apperr.StoreUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if _, ok := retryableCodes[pgErr.Code]; ok {
			return true
		}
		// класс 08 - ошибки соединения
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "08"
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	return pgconn.SafeToRetry(err) || pgconn.Timeout(err)
}
