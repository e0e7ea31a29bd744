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

// Campos nil não são alterados.
type EditAppointmentInput struct {
	ClinicID      uuid.UUID
	UserID        uuid.UUID
	AppointmentID uuid.UUID

	PetID *uuid.UUID
	VetID *uuid.UUID

	StartTime *time.Time
	EndTime   *time.Time

	Status *string
	Reason *string
	Notes  *string
	Room   *string
}

// ======================================================
// USE CASE
// ======================================================

type EditAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewEditAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *EditAppointment {
	return &EditAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *EditAppointment) Execute(
	ctx context.Context,
	in EditAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForClinic(ctx, in.AppointmentID, in.ClinicID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// --------------------------------------------------
	// 1️⃣ Intervalo: revalida se start OU end mudou
	// --------------------------------------------------
	newStart := ap.StartTime
	newEnd := ap.EndTime
	if in.StartTime != nil {
		newStart = *in.StartTime
	}
	if in.EndTime != nil {
		newEnd = *in.EndTime
	}

	if in.StartTime != nil || in.EndTime != nil {
		if err := domain.ValidateInterval(newStart, newEnd); err != nil {
			return nil, err
		}
		ap.StartTime = newStart
		ap.EndTime = newEnd
	}

	// --------------------------------------------------
	// 2️⃣ Relações (pet / vet, sempre da mesma clínica)
	// --------------------------------------------------
	if in.PetID != nil {
		if _, err := uc.repo.GetPetForClinic(ctx, *in.PetID, in.ClinicID); err != nil {
			return nil, httperr.ErrBusiness("pet_not_found")
		}
		ap.PetID = *in.PetID
	}

	if in.VetID != nil {
		if *in.VetID == uuid.Nil {
			ap.VetID = nil
		} else {
			if _, err := uc.repo.GetVetForClinic(ctx, *in.VetID, in.ClinicID); err != nil {
				return nil, httperr.ErrBusiness("vet_not_found")
			}
			ap.VetID = in.VetID
		}
	}

	// --------------------------------------------------
	// 3️⃣ Status: qualquer um dos quatro, sem grafo
	// --------------------------------------------------
	if in.Status != nil {
		if err := domain.SetStatus(ap, domain.Status(*in.Status)); err != nil {
			return nil, err
		}
	}

	if in.Reason != nil {
		ap.Reason = *in.Reason
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}
	if in.Room != nil {
		ap.Room = *in.Room
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
