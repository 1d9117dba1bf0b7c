package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"tasks-api/models"
	"tasks-api/utilities"
)

// ErrTaskNotFound indica que nenhuma linha corresponde ao id informado.
var ErrTaskNotFound = errors.New("tarefa não encontrada")

const (
	queryListTasks  = `SELECT id, title, description FROM tasks ORDER BY id`
	queryGetTask    = `SELECT id, title, description FROM tasks WHERE id = $1`
	queryInsertTask = `INSERT INTO tasks (title, description) VALUES ($1, $2) RETURNING id`
	queryUpdateTask = `UPDATE tasks SET title = $1, description = $2 WHERE id = $3`
	queryDeleteTask = `DELETE FROM tasks WHERE id = $1`
)

// TaskRepository executa as operações de tarefas. Cada chamada retira uma
// conexão do pool, executa uma única instrução dentro de uma transação e
// devolve a conexão, inclusive em caso de erro.
type TaskRepository struct {
	pool *Pool
}

func NewTaskRepository(pool *Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Release(conn)

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "erro ao iniciar transação")
	}
	defer func() {
		// Rollback se a transação ainda estiver aberta (em caso de erro)
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else if cerr := tx.Commit(); cerr != nil {
			err = errors.Wrap(cerr, "erro ao confirmar transação")
		}
	}()

	return fn(tx)
}

func (r *TaskRepository) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, queryListTasks)
		if err != nil {
			return errors.Wrap(err, "erro ao buscar tarefas")
		}
		defer rows.Close()

		for rows.Next() {
			task, err := scanTask(rows)
			if err != nil {
				return err
			}
			tasks = append(tasks, *task)
		}
		return errors.Wrap(rows.Err(), "erro ao ler tarefas")
	})
	if err != nil {
		return nil, err
	}

	utilities.LogDebug("Tarefas listadas - total: %d", len(tasks))
	return tasks, nil
}

func (r *TaskRepository) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	var task *models.Task
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		task, err = scanTask(tx.QueryRowContext(ctx, queryGetTask, id))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTaskNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, input models.TaskInput) (*models.Task, error) {
	var id int64
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, queryInsertTask, input.Title, nullString(input.Description)).Scan(&id)
		return errors.Wrap(err, "erro ao inserir tarefa")
	})
	if err != nil {
		return nil, err
	}

	task := input.ToTask(id)
	utilities.LogDebug("Tarefa inserida: %s (ID: %d)", task.Title, task.ID)
	return &task, nil
}

// UpdateTask substitui título e descrição. Devolve ErrTaskNotFound quando o id
// não existe; nesse caso nada é alterado.
func (r *TaskRepository) UpdateTask(ctx context.Context, id int64, input models.TaskInput) (*models.Task, error) {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, queryUpdateTask, input.Title, nullString(input.Description), id)
		if err != nil {
			return errors.Wrapf(err, "erro ao atualizar tarefa %d", id)
		}
		return requireAffected(res, id)
	})
	if err != nil {
		return nil, err
	}

	task := input.ToTask(id)
	return &task, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, queryDeleteTask, id)
		if err != nil {
			return errors.Wrapf(err, "erro ao excluir tarefa %d", id)
		}
		return requireAffected(res, id)
	})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		task        models.Task
		description sql.NullString
	)
	if err := row.Scan(&task.ID, &task.Title, &description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "erro ao ler tarefa")
	}
	if description.Valid {
		task.Description = &description.String
	}
	return &task, nil
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "erro ao obter linhas afetadas")
	}
	if n == 0 {
		return errors.Wrapf(ErrTaskNotFound, "id %d", id)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
