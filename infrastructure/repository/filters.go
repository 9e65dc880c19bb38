package repository

import (
	"time"

	"github.com/Masterminds/squirrel"
)

// activeRecords filtra registros do tenant que não foram inativados nem removidos
func activeRecords(tenantID int64) squirrel.And {
	return squirrel.And{
		squirrel.Eq{"tenant_id": tenantID},
		squirrel.Eq{"active": true},
		squirrel.Eq{"deleted_at": nil},
	}
}

// activeRecordsBetween restringe activeRecords ao intervalo fechado [start, end] de created_at
func activeRecordsBetween(tenantID int64, start, end time.Time) squirrel.And {
	return append(activeRecords(tenantID),
		squirrel.Expr("created_at BETWEEN ? AND ?", start, end),
	)
}
