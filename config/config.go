package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config reúne todas as configurações do serviço. É montada uma única vez no
// main e repassada para quem precisa dela.
type Config struct {
	DBHost     string
	DBName     string
	DBUser     string
	DBPassword string
	DBPort     string
	DBSSLMode  string
	DBDriver   string

	ConnectAttempts int
	ConnectDelay    time.Duration

	PoolMaxOpen     int
	PoolMaxIdle     int
	ConnMaxLifetime time.Duration
	AcquireTimeout  time.Duration

	ServerPort      string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	StrictNotFound bool
	Debug          bool
}

// LoadDotEnv carrega o arquivo .env se ele existir. A ausência do arquivo não
// é erro: seguimos com as variáveis do sistema.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Load lê a configuração das variáveis de ambiente, aplicando os valores padrão.
func Load() (*Config, error) {
	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBName:     getEnv("DB_NAME", "tasks_db"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		ServerPort: getEnv("SERVER_PORT", "5000"),
	}

	var err error
	if cfg.ConnectAttempts, err = getInt("DB_CONNECT_ATTEMPTS", 5); err != nil {
		return nil, err
	}
	if cfg.ConnectDelay, err = getDuration("DB_CONNECT_DELAY", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.PoolMaxOpen, err = getInt("DB_POOL_MAX_OPEN", 10); err != nil {
		return nil, err
	}
	if cfg.PoolMaxIdle, err = getInt("DB_POOL_MAX_IDLE", 5); err != nil {
		return nil, err
	}
	if cfg.ConnMaxLifetime, err = getDuration("DB_POOL_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.AcquireTimeout, err = getDuration("DB_ACQUIRE_TIMEOUT", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.StrictNotFound, err = getBool("TASKS_STRICT_NOT_FOUND", false); err != nil {
		return nil, err
	}
	if cfg.Debug, err = getBool("LOG_DEBUG", false); err != nil {
		return nil, err
	}

	cfg.AllowedOrigins = []string{"*"}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ConnectAttempts < 1 {
		return fmt.Errorf("DB_CONNECT_ATTEMPTS deve ser >= 1, recebido %d", c.ConnectAttempts)
	}
	if c.PoolMaxOpen < 1 {
		return fmt.Errorf("DB_POOL_MAX_OPEN deve ser >= 1, recebido %d", c.PoolMaxOpen)
	}
	if c.PoolMaxIdle > c.PoolMaxOpen {
		c.PoolMaxIdle = c.PoolMaxOpen
	}
	switch c.DBDriver {
	case "postgres", "pgx":
	default:
		return fmt.Errorf("DB_DRIVER inválido: %q (use postgres ou pgx)", c.DBDriver)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s inválido: %w", key, err)
	}
	return b, nil
}
