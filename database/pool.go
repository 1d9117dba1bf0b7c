package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"tasks-api/config"
)

// ErrPoolTimeout é devolvido quando nenhuma conexão fica livre dentro do
// tempo de espera configurado.
var ErrPoolTimeout = errors.New("tempo esgotado aguardando conexão do pool")

// Pool é um pool limitado de conexões. Cada requisição retira uma conexão com
// Acquire e devolve com Release.
type Pool struct {
	db             *sql.DB
	acquireTimeout time.Duration
}

// NewPool aplica os limites da configuração sobre db.
func NewPool(db *sql.DB, cfg *config.Config) *Pool {
	db.SetMaxOpenConns(cfg.PoolMaxOpen)
	db.SetMaxIdleConns(cfg.PoolMaxIdle)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return &Pool{db: db, acquireTimeout: cfg.AcquireTimeout}
}

// Acquire retira uma conexão do pool. Não há laço de novas tentativas aqui:
// se o pool estiver cheio por mais que acquireTimeout, devolve ErrPoolTimeout.
func (p *Pool) Acquire(ctx context.Context) (*sql.Conn, error) {
	actx := ctx
	if p.acquireTimeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
	}

	conn, err := p.db.Conn(actx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, ErrPoolTimeout
		}
		return nil, errors.Wrap(err, "erro ao obter conexão do pool")
	}
	return conn, nil
}

// Release devolve a conexão ao pool.
func (p *Pool) Release(conn *sql.Conn) {
	if conn != nil {
		conn.Close()
	}
}

func (p *Pool) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Pool) Stats() sql.DBStats {
	return p.db.Stats()
}

func (p *Pool) Close() error {
	return p.db.Close()
}
