package database

import (
	"context"
	"database/sql/driver"
	"net"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"tasks-api/utilities"
)

// Retry executa op até attempts vezes, esperando delay entre as tentativas.
// Só erros transitórios (ver IsTransient) são repetidos; qualquer outro erro
// volta imediatamente. Ao esgotar as tentativas, devolve o último erro.
func Retry(ctx context.Context, attempts int, delay time.Duration, op func(attempt int) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = op(i); err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		if i == attempts {
			break
		}

		utilities.LogWarn("Falha ao conectar ao banco de dados, tentando novamente (%d/%d) em %v: %v", i, attempts, delay, err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Wrap(ctx.Err(), "tentativas de conexão canceladas")
		case <-timer.C:
		}
	}
	return errors.Wrapf(err, "banco de dados indisponível após %d tentativas", attempts)
}

// IsTransient indica se err representa uma falha de conectividade que vale a
// pena repetir: servidor inacessível, conexão recusada, SQLSTATE classe 08 ou
// 57P03 (cannot_connect_now).
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return transientSQLState(string(pqErr.Code))
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return transientSQLState(pgErr.Code)
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func transientSQLState(code string) bool {
	return len(code) == 5 && (code[:2] == "08" || code == "57P03")
}
