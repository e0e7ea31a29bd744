package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/CocoPetControl/clinic-api/internal/models"
)

type Repository interface {
	// -------- Lookups (sempre escopados pela clínica) --------
	GetPetForClinic(
		ctx context.Context,
		petID uuid.UUID,
		clinicID uuid.UUID,
	) (*models.Pet, error)

	GetVetForClinic(
		ctx context.Context,
		vetID uuid.UUID,
		clinicID uuid.UUID,
	) (*models.User, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForClinic(
		ctx context.Context,
		appointmentID uuid.UUID,
		clinicID uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		appointmentID uuid.UUID,
		clinicID uuid.UUID,
	) error

	// -------- Calendar feed --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		clinicID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
