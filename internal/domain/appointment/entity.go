package appointment

import (
	"time"

	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ValidateInterval é chamado antes de qualquer persistência:
// create, edição manual, drag (move os dois lados) e resize (move um só).
func ValidateInterval(start, end time.Time) error {
	if !end.After(start) {
		return httperr.ErrBusiness("end_not_after_start")
	}
	return nil
}

// Reschedule muda o intervalo sem tocar no status.
func Reschedule(ap *models.Appointment, newStart, newEnd time.Time) error {
	if err := ValidateInterval(newStart, newEnd); err != nil {
		return err
	}

	ap.StartTime = newStart
	ap.EndTime = newEnd
	return nil
}

// SetStatus muda o status sem tocar no intervalo.
func SetStatus(ap *models.Appointment, s Status) error {
	if err := ValidateStatus(s); err != nil {
		return err
	}

	ap.Status = string(s)
	return nil
}
