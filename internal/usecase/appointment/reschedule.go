package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/CocoPetControl/clinic-api/internal/audit"
	domain "github.com/CocoPetControl/clinic-api/internal/domain/appointment"
	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/models"
)

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Caminho do drag (move os dois lados) e do resize (move um só):
// valida o intervalo e nunca altera o status.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	clinicID uuid.UUID,
	userID uuid.UUID,
	appointmentID uuid.UUID,
	newStart time.Time,
	newEnd time.Time,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForClinic(ctx, appointmentID, clinicID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.Reschedule(ap, newStart, newEnd); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
