package domain

import "time"

type PeriodType string

const (
	PeriodToday  PeriodType = "today"
	PeriodWeek   PeriodType = "week"
	PeriodMonth  PeriodType = "month"
	PeriodCustom PeriodType = "custom"
)

// Period é um intervalo com as duas extremidades inclusivas
type Period struct {
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
	Type  PeriodType `json:"type"`
}
