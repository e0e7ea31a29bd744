package pet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func dob(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAge_NoDateOfBirth(t *testing.T) {
	assert.Equal(t, "—", Age(nil, now))
}

func TestAge_ExactlyOneYear(t *testing.T) {
	assert.Equal(t, "1 year", Age(dob(2023, 6, 15), now))
}

func TestAge_ElevenMonths(t *testing.T) {
	assert.Equal(t, "11 months", Age(dob(2023, 7, 15), now))
}

func TestAge_DayBeforeAnniversary(t *testing.T) {
	// completa 1 ano amanhã → ainda 11 meses
	assert.Equal(t, "11 months", Age(dob(2023, 6, 16), now))
}

func TestAge_Years(t *testing.T) {
	assert.Equal(t, "3 years", Age(dob(2021, 1, 10), now))
	assert.Equal(t, "2 years", Age(dob(2021, 7, 10), now))
}

func TestAge_OneMonth(t *testing.T) {
	assert.Equal(t, "1 month", Age(dob(2024, 5, 10), now))
}

func TestAge_Newborn(t *testing.T) {
	assert.Equal(t, "0 months", Age(dob(2024, 6, 1), now))
}
