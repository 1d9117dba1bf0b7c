package database

import (
	"context"

	"tasks-api/models"
)

// TaskStore define os métodos para manipular tarefas no banco de dados
type TaskStore interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	CreateTask(ctx context.Context, input models.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, id int64, input models.TaskInput) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

var _ TaskStore = (*TaskRepository)(nil)
