package handler

import (
	"net/http"

	"github.com/vfg2006/pos-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/closing"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
	"github.com/vfg2006/pos-dashboard-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/access",
			Method:  http.MethodPost,
			Handler: Access(service),
		},
	}
}

func Dashboard(service aggregating.Loader, clk clock.Clock) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service, clk),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireSession()},
		},
	}
}

func Closes(service closing.Closer, clk clock.Clock) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/closes",
			Method:      http.MethodGet,
			Handler:     ListCloses(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireSession()},
		},
		{
			Path:        "/v1/closes/drafts",
			Method:      http.MethodPost,
			Handler:     OpenClose(service, clk),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireSession()},
		},
		{
			Path:        "/v1/closes/drafts/:id/count",
			Method:      http.MethodPost,
			Handler:     SubmitCloseCount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireSession()},
		},
		{
			Path:        "/v1/closes/drafts/:id/save",
			Method:      http.MethodPost,
			Handler:     SaveClose(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireSession()},
		},
		{
			Path:        "/v1/closes/drafts/:id",
			Method:      http.MethodDelete,
			Handler:     AbandonClose(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireSession()},
		},
	}
}

// CronJobs fica restrito aos tenants de manutenção: a limpeza de tokens atinge todos os tenants
func CronJobs(services CronJobServices, maintenanceTenantIDs []int64) []router.Route {
	maintenanceOnly := []func(http.Handler) http.Handler{
		middleware.RequireSession(),
		middleware.RequireMaintenance(maintenanceTenantIDs),
	}

	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: maintenanceOnly,
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: maintenanceOnly,
		},
	}
}
