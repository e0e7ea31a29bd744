package pet

import (
	"fmt"
	"time"
)

// Age deriva a idade a partir da data de nascimento — nunca é armazenada.
// Anos inteiros quando ≥ 1 ano, senão meses inteiros; "—" sem data.
func Age(dob *time.Time, asOf time.Time) string {
	if dob == nil {
		return "—"
	}

	years := wholeYears(*dob, asOf)
	if years >= 1 {
		if years == 1 {
			return "1 year"
		}
		return fmt.Sprintf("%d years", years)
	}

	months := wholeMonths(*dob, asOf)
	if months == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", months)
}

// anos-calendário completos entre as duas datas
func wholeYears(from, to time.Time) int {
	years := to.Year() - from.Year()

	anniversary := from.AddDate(years, 0, 0)
	if anniversary.After(to) {
		years--
	}

	return years
}

// meses-calendário completos entre as duas datas
func wholeMonths(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())

	mark := from.AddDate(0, months, 0)
	if mark.After(to) {
		months--
	}

	return months
}
