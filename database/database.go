package database

import (
	"context"
	"database/sql"
	"net"
	"net/url"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"tasks-api/config"
	"tasks-api/utilities"
)

// DSN monta a string de conexão no formato URL, aceito tanto pelo lib/pq
// quanto pelo pgx.
func DSN(cfg *config.Config) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:   net.JoinHostPort(cfg.DBHost, cfg.DBPort),
		Path:   "/" + cfg.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", cfg.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Connect abre o pool e garante que o banco está acessível, repetindo a
// tentativa em falhas transitórias conforme DB_CONNECT_ATTEMPTS/DB_CONNECT_DELAY.
func Connect(ctx context.Context, cfg *config.Config) (*Pool, error) {
	db, err := sql.Open(cfg.DBDriver, DSN(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir conexão com o banco de dados")
	}

	pool := NewPool(db, cfg)
	err = Retry(ctx, cfg.ConnectAttempts, cfg.ConnectDelay, func(attempt int) error {
		utilities.LogDebug("Conectando ao PostgreSQL em %s:%s (tentativa %d/%d)", cfg.DBHost, cfg.DBPort, attempt, cfg.ConnectAttempts)
		return db.PingContext(ctx)
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	utilities.LogInfo("Conectado ao PostgreSQL com sucesso! (driver=%s, pool=%d)", cfg.DBDriver, cfg.PoolMaxOpen)
	return pool, nil
}
