// Package clock fornece a fonte de tempo injetável usada pelos casos de uso
package clock

import "time"

// Clock devolve o instante atual
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	location *time.Location
}

// New cria um relógio de sistema que devolve horários no fuso informado
func New(location *time.Location) Clock {
	if location == nil {
		location = time.Local
	}
	return systemClock{location: location}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.location)
}

type fixedClock struct {
	now time.Time
}

// Fixed devolve sempre o mesmo instante. Útil em testes.
func Fixed(now time.Time) Clock {
	return fixedClock{now: now}
}

func (c fixedClock) Now() time.Time {
	return c.now
}
