package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/CocoPetControl/clinic-api/internal/audit"
	domain "github.com/CocoPetControl/clinic-api/internal/domain/appointment"
	"github.com/CocoPetControl/clinic-api/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Irreversível; o banco cascateia vitals, prescrições e recomendações.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	clinicID uuid.UUID,
	userID uuid.UUID,
	appointmentID uuid.UUID,
) error {

	ap, err := uc.repo.GetAppointmentForClinic(ctx, appointmentID, clinicID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID, clinicID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return nil
}
