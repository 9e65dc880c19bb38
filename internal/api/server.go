package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/pos-dashboard-api/internal/api/handler"
	"github.com/vfg2006/pos-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/pos-dashboard-api/internal/config"
	"github.com/vfg2006/pos-dashboard-api/internal/scheduler"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/closing"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
	"github.com/vfg2006/pos-dashboard-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	db handler.Pinger,
	clk clock.Clock,
	authenticator authenticating.Authenticator,
	dashboardService aggregating.Loader,
	closeService closing.Closer,
	tokenCleanupService *scheduler.TokenCleanupService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		TokenCleanupService: tokenCleanupService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(db)...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Dashboard(dashboardService, clk)...),
		router.WithRoutes(handler.Closes(closeService, clk)...),
		router.WithRoutes(handler.CronJobs(cronServices, config.Maintenance.TenantIDs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LoggingMiddleware(),
		middleware.LogPanicMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      config.Dashboard.FetchTimeout + 5*time.Second, // A carga do dashboard precisa caber na escrita
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
