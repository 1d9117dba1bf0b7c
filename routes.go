package main

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"tasks-api/config"
	"tasks-api/database"
	"tasks-api/handlers"
	"tasks-api/utilities"
)

// NewRouter monta as rotas da API com CORS, recuperação de panics, request id
// e log de requisições.
func NewRouter(cfg *config.Config, store database.TaskStore, checker handlers.HealthChecker) http.Handler {
	r := mux.NewRouter()

	r.Use(handlers.RequestIDMiddleware, handlers.LoggingMiddleware)

	tasks := handlers.NewTaskHandler(store, cfg)

	// --- Rotas públicas ---
	// GET / pedindo JSON devolve a lista de tarefas; sem isso, o texto de status
	r.HandleFunc("/", tasks.List).Methods("GET").HeadersRegexp("Accept", "application/json")
	r.HandleFunc("/", handlers.IndexHandler).Methods("GET")
	r.HandleFunc("/healthz", handlers.HealthHandler(checker)).Methods("GET")

	// --- Rotas de Tarefas ---
	r.HandleFunc("/tasks", tasks.List).Methods("GET")
	r.HandleFunc("/tasks", tasks.Create).Methods("POST")
	r.HandleFunc("/tasks/{id:[0-9]+}", tasks.Get).Methods("GET")
	r.HandleFunc("/tasks/{id:[0-9]+}", tasks.Update).Methods("PUT")
	r.HandleFunc("/tasks/{id:[0-9]+}", tasks.Delete).Methods("DELETE")

	r.NotFoundHandler = http.HandlerFunc(handlers.NotFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowedHandler)

	// Configuração do CORS
	headers := gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", handlers.RequestIDHeader})
	methods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	origins := gorillahandlers.AllowedOrigins(cfg.AllowedOrigins)
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		utilities.LogInfo("CORS_ALLOWED_ORIGINS não definida, permitindo todas as origens ('*').")
	} else {
		utilities.LogInfo("Configurando CORS com origens permitidas: %v", cfg.AllowedOrigins)
	}

	handler := gorillahandlers.CORS(headers, methods, origins)(r)

	return gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(utilities.ErrorLogger),
		gorillahandlers.PrintRecoveryStack(true),
	)(handler)
}
