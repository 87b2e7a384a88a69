package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock fornece o horário usado nos registros de QR; testes trocam por um fixo.
type Clock func() time.Time

func ClockIn(tz string) Clock {
	loc := Location(tz)
	return func() time.Time { return time.Now().In(loc) }
}

func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
