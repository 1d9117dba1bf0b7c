package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"tasks-api/config"
	"tasks-api/database"
	"tasks-api/models"
	"tasks-api/utilities"
)

const maxBodyBytes = 1 << 20

// TaskHandler atende as rotas de /tasks.
type TaskHandler struct {
	store database.TaskStore
	// strictNotFound faz PUT/DELETE de um id inexistente responder 404 em vez
	// de 200.
	strictNotFound bool
}

func NewTaskHandler(store database.TaskStore, cfg *config.Config) *TaskHandler {
	return &TaskHandler{store: store, strictNotFound: cfg.StrictNotFound}
}

// List lista todas as tarefas
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("Iniciando listagem de tarefas")

	tasks, err := h.store.ListTasks(r.Context())
	if err != nil {
		h.storeError(w, err, "Erro ao buscar tarefas no banco de dados")
		return
	}

	utilities.LogInfo("Tarefas listadas com sucesso - total: %d", len(tasks))
	writeJSON(w, http.StatusOK, tasks)
}

// Get busca uma tarefa pelo id
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := h.store.GetTask(r.Context(), id)
	if err != nil {
		h.storeError(w, err, fmt.Sprintf("Erro ao buscar tarefa %d", id))
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Create cria uma nova tarefa
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("Iniciando criação de nova tarefa")

	input, ok := decodeTaskInput(w, r)
	if !ok {
		return
	}

	task, err := h.store.CreateTask(r.Context(), input)
	if err != nil {
		h.storeError(w, err, "Erro ao inserir tarefa no banco de dados")
		return
	}

	utilities.LogInfo("Tarefa criada com sucesso: %s (ID: %d)", task.Title, task.ID)
	writeJSON(w, http.StatusCreated, task)
}

// Update substitui título e descrição de uma tarefa existente
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	input, ok := decodeTaskInput(w, r)
	if !ok {
		return
	}

	task, err := h.store.UpdateTask(r.Context(), id, input)
	if errors.Is(err, database.ErrTaskNotFound) && !h.strictNotFound {
		utilities.LogWarn("Atualização de tarefa inexistente %d ignorada", id)
		echo := input.ToTask(id)
		writeJSON(w, http.StatusOK, echo)
		return
	}
	if err != nil {
		h.storeError(w, err, fmt.Sprintf("Erro ao atualizar tarefa %d", id))
		return
	}

	utilities.LogInfo("Tarefa atualizada com sucesso: %d", id)
	writeJSON(w, http.StatusOK, task)
}

// Delete remove uma tarefa
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	err := h.store.DeleteTask(r.Context(), id)
	switch {
	case errors.Is(err, database.ErrTaskNotFound) && !h.strictNotFound:
		utilities.LogWarn("Exclusão de tarefa inexistente %d ignorada", id)
	case err != nil:
		h.storeError(w, err, fmt.Sprintf("Erro ao excluir tarefa %d", id))
		return
	default:
		utilities.LogInfo("Tarefa excluída com sucesso: %d", id)
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Task %d deleted", id)})
}

// storeError traduz erros da camada de dados em respostas HTTP. Detalhes do
// banco só vão para o log.
func (h *TaskHandler) storeError(w http.ResponseWriter, err error, context string) {
	switch {
	case errors.Is(err, database.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "task not found")
	case errors.Is(err, database.ErrPoolTimeout):
		utilities.LogError(err, context)
		writeError(w, http.StatusServiceUnavailable, "database busy, try again later")
	default:
		utilities.LogError(err, context)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utilities.LogDebug("ID de tarefa inválido: %q", mux.Vars(r)["id"])
		writeError(w, http.StatusBadRequest, "invalid task id")
		return 0, false
	}
	return id, true
}

func decodeTaskInput(w http.ResponseWriter, r *http.Request) (models.TaskInput, bool) {
	var input models.TaskInput

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utilities.LogDebug("Erro ao decodificar JSON da tarefa: %v", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return input, false
	}
	if err := input.Validate(); err != nil {
		utilities.LogDebug("Validação falhou: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return input, false
	}
	return input, true
}
