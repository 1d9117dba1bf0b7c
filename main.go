package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tasks-api/config"
	"tasks-api/database"
	"tasks-api/utilities"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Erro ao carregar o arquivo .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuração inválida: %v", err)
	}

	// Inicializar o sistema de logs
	utilities.InitLogger(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Erro ao conectar ao banco de dados: %v", err)
	}
	defer pool.Close()

	if err := database.InitSchema(ctx, pool); err != nil {
		pool.Close()
		log.Fatalf("Erro ao inicializar o schema: %v", err)
	}

	router := NewRouter(cfg, database.NewTaskRepository(pool), pool)
	if err := Serve(ctx, cfg, router); err != nil {
		utilities.LogError(err, "Servidor encerrado com erro")
	}
}
