package handler

import (
	"net/http"

	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/period"
	"github.com/vfg2006/pos-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
	"github.com/vfg2006/pos-dashboard-api/pkg/log"
	"github.com/vfg2006/pos-dashboard-api/pkg/middleware"
)

// resolvePeriod converte o seletor e as datas opcionais (YYYY-MM-DD) no período consultado
func resolvePeriod(clk clock.Clock, selector, start, end string) (domain.Period, error) {
	now := clk.Now()

	startDate, err := period.ParseDate(start, now.Location())
	if err != nil {
		return domain.Period{}, err
	}

	endDate, err := period.ParseDate(end, now.Location())
	if err != nil {
		return domain.Period{}, err
	}

	return period.Resolve(selector, startDate, endDate, now)
}

// GetDashboard recalcula o snapshot do período informado em ?range=today|week|month ou ?start=&end=
func GetDashboard(service aggregating.Loader, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
			return
		}

		query := r.URL.Query()
		p, err := resolvePeriod(clk, query.Get("range"), query.Get("start"), query.Get("end"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"period_type":  p.Type,
			"period_start": p.Start,
			"period_end":   p.End,
		}).Debug("Carregando dashboard")

		snapshot, err := service.Load(r.Context(), claims.TenantID, p)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, snapshot)
	}
}
