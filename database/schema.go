package database

import (
	"context"

	"github.com/pkg/errors"

	"tasks-api/utilities"
)

const schemaTasks = `
	CREATE TABLE IF NOT EXISTS tasks (
		id SERIAL PRIMARY KEY,
		title VARCHAR(100) NOT NULL,
		description TEXT
	)`

// InitSchema cria a tabela de tarefas caso ainda não exista. Pode ser chamada
// em toda inicialização.
func InitSchema(ctx context.Context, pool *Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer pool.Release(conn)

	if _, err := conn.ExecContext(ctx, schemaTasks); err != nil {
		return errors.Wrap(err, "erro ao criar tabela tasks")
	}
	utilities.LogInfo("Schema do banco de dados verificado (tabela tasks)")
	return nil
}
