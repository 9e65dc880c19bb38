package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrUniqueViolation indica que a escrita violou uma constraint UNIQUE
var ErrUniqueViolation = errors.New("registro duplicado")

const pqUniqueViolation = pq.ErrorCode("23505")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
