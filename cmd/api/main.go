package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/pos-dashboard-api/internal/api"
	"github.com/vfg2006/pos-dashboard-api/internal/config"
	"github.com/vfg2006/pos-dashboard-api/internal/scheduler"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/closing"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	clk := clock.New(cfg.App.Location)
	logrus.WithField("timezone", cfg.App.Location.String()).Info("Fuso horário das lojas configurado")

	saleRepo := repository.NewSaleRepository(pgConn)
	movementRepo := repository.NewMovementRepository(pgConn)
	expenseRepo := repository.NewExpenseRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	accessTokenRepo := repository.NewAccessTokenRepository(pgConn)
	closeRepo := repository.NewCloseRepository(pgConn)

	authenticator := authenticating.NewService(accessTokenRepo, cfg, clk)

	dashboardService := aggregating.NewService(
		saleRepo,
		movementRepo,
		expenseRepo,
		productRepo,
		clk,
		cfg.Dashboard.FetchTimeout,
	)

	drafts := closing.NewDraftStore(cfg.Dashboard.DraftTTL, clk)
	closeService := closing.NewService(closeRepo, dashboardService, drafts, clk)

	tokenCleanupService := scheduler.NewTokenCleanupService(accessTokenRepo, cfg, clk)

	if err := tokenCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de tokens de acesso")
	} else {
		logrus.Info("Agendador de limpeza de tokens de acesso iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		pgConn,
		clk,
		authenticator,
		dashboardService,
		closeService,
		tokenCleanupService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
