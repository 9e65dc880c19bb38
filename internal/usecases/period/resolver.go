// Package period converte o seletor de intervalo do dashboard em datas concretas
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/pos-dashboard-api/internal/domain"
)

const dateLayout = time.DateOnly

var (
	ErrInvalidDate  = errors.New("data inválida")
	ErrInvalidRange = errors.New("data inicial posterior à data final")
	ErrMissingDate  = errors.New("intervalo personalizado exige data inicial e final")
)

// Resolve devolve o intervalo fechado correspondente ao seletor.
// Datas explícitas têm precedência sobre o seletor; seletor desconhecido equivale a "today".
// Todas as datas são interpretadas no fuso de now.
func Resolve(selector string, explicitStart, explicitEnd *time.Time, now time.Time) (domain.Period, error) {
	if explicitStart != nil || explicitEnd != nil {
		if explicitStart == nil || explicitEnd == nil {
			return domain.Period{}, ErrMissingDate
		}

		start := startOfDay(*explicitStart, now.Location())
		end := endOfDay(*explicitEnd, now.Location())
		if start.After(end) {
			return domain.Period{}, ErrInvalidRange
		}

		return domain.Period{Start: start, End: end, Type: domain.PeriodCustom}, nil
	}

	switch domain.PeriodType(strings.ToLower(strings.TrimSpace(selector))) {
	case domain.PeriodWeek:
		return domain.Period{Start: now.AddDate(0, 0, -7), End: now, Type: domain.PeriodWeek}, nil
	case domain.PeriodMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return domain.Period{Start: first, End: now, Type: domain.PeriodMonth}, nil
	default:
		return domain.Period{
			Start: startOfDay(now, now.Location()),
			End:   endOfDay(now, now.Location()),
			Type:  domain.PeriodToday,
		}, nil
	}
}

// ParseDate lê uma data no formato AAAA-MM-DD. String vazia devolve nil.
func ParseDate(value string, location *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	date, err := time.ParseInLocation(dateLayout, value, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}

	return &date, nil
}

func startOfDay(t time.Time, location *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, location)
}

func endOfDay(t time.Time, location *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, location)
}
