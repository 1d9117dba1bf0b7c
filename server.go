package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"tasks-api/config"
	"tasks-api/utilities"
)

// Serve escuta em 0.0.0.0:SERVER_PORT até ctx ser cancelado e então encerra
// o servidor, aguardando as requisições em andamento por até
// SERVER_SHUTDOWN_TIMEOUT.
func Serve(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", cfg.ServerPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          utilities.ErrorLogger,
	}

	errCh := make(chan error, 1)
	go func() {
		utilities.LogInfo("Servidor iniciado na porta %s", cfg.ServerPort)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	utilities.LogInfo("Encerrando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	utilities.LogInfo("Servidor encerrado")
	return nil
}
