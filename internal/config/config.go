package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Dashboard    Dashboard    `mapstructure:",squash"`
	TokenCleanup TokenCleanup `mapstructure:",squash"`
	Maintenance  Maintenance  `mapstructure:",squash"`
	SecretKey    string       `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string         `mapstructure:"log_level"`
	Timezone string         `mapstructure:"app_timezone"`
	Location *time.Location `mapstructure:"-"`
}

type Auth struct {
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type Dashboard struct {
	FetchTimeout time.Duration `mapstructure:"dashboard_fetch_timeout"`
	DraftTTL     time.Duration `mapstructure:"close_draft_ttl"`
}

type TokenCleanup struct {
	CronSchedule  string `mapstructure:"access_token_cleanup_cron"`
	RetentionDays int    `mapstructure:"access_token_cleanup_retention_days"`
	Enabled       bool   `mapstructure:"access_token_cleanup_enabled"`
}

// Maintenance lista os tenants cujas sessões podem acionar as rotas /v1/cron
type Maintenance struct {
	RawTenantIDs []string `mapstructure:"maintenance_tenant_ids"`
	TenantIDs    []int64  `mapstructure:"-"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/pos?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("SESSION_TTL", "8h")

	viper.SetDefault("APP_TIMEZONE", "America/Mexico_City")

	viper.SetDefault("DASHBOARD_FETCH_TIMEOUT", "10s") // Tempo máximo para carregar todos os registros do período
	viper.SetDefault("CLOSE_DRAFT_TTL", "30m")         // Rascunhos de fechamento abandonados expiram depois disso

	// Limpeza de tokens de acesso expirados
	viper.SetDefault("ACCESS_TOKEN_CLEANUP_CRON", "0 2 * * *")  // Todos os dias às 2h da manhã
	viper.SetDefault("ACCESS_TOKEN_CLEANUP_RETENTION_DAYS", 30) // Mantém tokens expirados por 30 dias
	viper.SetDefault("ACCESS_TOKEN_CLEANUP_ENABLED", false)     // Habilitar limpeza automática

	viper.SetDefault("MAINTENANCE_TENANT_IDS", "") // Vazio bloqueia as rotas de cron para todos

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	location, err := time.LoadLocation(config.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("fuso horário inválido %q: %w", config.App.Timezone, err)
	}
	config.App.Location = location

	config.Maintenance.TenantIDs, err = parseTenantIDs(config.Maintenance.RawTenantIDs)
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func parseTenantIDs(raw []string) ([]int64, error) {
	ids := make([]int64, 0, len(raw))
	for _, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("MAINTENANCE_TENANT_IDS inválido %q: %w", value, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
