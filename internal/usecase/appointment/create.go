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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClinicID uuid.UUID
	UserID   uuid.UUID

	PetID uuid.UUID
	VetID *uuid.UUID

	StartTime time.Time
	EndTime   time.Time

	Reason string
	Notes  string
	Room   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Intervalo válido antes de qualquer escrita
	// --------------------------------------------------
	if err := domain.ValidateInterval(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Pet da clínica
	// --------------------------------------------------
	pet, err := uc.repo.GetPetForClinic(ctx, in.PetID, in.ClinicID)
	if err != nil {
		return nil, httperr.ErrBusiness("pet_not_found")
	}

	// --------------------------------------------------
	// 3️⃣ Veterinário (opcional) da clínica
	// --------------------------------------------------
	if in.VetID != nil {
		if _, err := uc.repo.GetVetForClinic(ctx, *in.VetID, in.ClinicID); err != nil {
			return nil, httperr.ErrBusiness("vet_not_found")
		}
	}

	// --------------------------------------------------
	// 4️⃣ Criação (status centralizado, sequencial por clínica
	//    atribuído pelo repositório na mesma transação)
	// --------------------------------------------------
	ap := &models.Appointment{
		ClinicID:  in.ClinicID,
		PetID:     pet.ID,
		VetID:     in.VetID,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Status:    string(domain.InitialStatus()),
		Reason:    in.Reason,
		Notes:     in.Notes,
		Room:      in.Room,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
