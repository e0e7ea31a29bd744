package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/CocoPetControl/clinic-api/internal/domain/appointment"
	"github.com/CocoPetControl/clinic-api/internal/dto"
	"github.com/CocoPetControl/clinic-api/internal/refnum"
)

type ListAppointmentsByRange struct {
	repo domain.Repository
}

func NewListAppointmentsByRange(
	repo domain.Repository,
) *ListAppointmentsByRange {
	return &ListAppointmentsByRange{
		repo: repo,
	}
}

// Feed do calendário: tudo da clínica dentro do intervalo pedido.
func (uc *ListAppointmentsByRange) Execute(
	ctx context.Context,
	clinicID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]dto.CalendarEventDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		clinicID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CalendarEventDTO, 0, len(appointments))
	for _, ap := range appointments {

		ref := refnum.Fallback("AP", ap.ID.String(), 6)
		if ap.AppointmentNumber != nil {
			ref = refnum.Format("AP", *ap.AppointmentNumber, ap.CreatedAt.Year())
		}

		ownerName := ""
		if ap.Pet.Owner.ID != uuid.Nil {
			ownerName = ap.Pet.Owner.FirstName + " " + ap.Pet.Owner.LastName
		}

		vetName := ""
		if ap.Vet != nil {
			vetName = ap.Vet.FullName
		}

		out = append(out, dto.CalendarEventDTO{
			ID:        ap.ID.String(),
			Reference: ref,
			StartTime: ap.StartTime,
			EndTime:   ap.EndTime,
			Duration:  domain.FormatDuration(ap.StartTime, ap.EndTime),
			Status:    ap.Status,
			PetName:   ap.Pet.Name,
			OwnerName: ownerName,
			VetName:   vetName,
			Reason:    ap.Reason,
			Room:      ap.Room,
		})
	}

	return out, nil
}
