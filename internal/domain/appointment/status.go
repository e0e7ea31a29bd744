package appointment

import "github.com/CocoPetControl/clinic-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

// Qualquer status pode virar qualquer outro por edição manual;
// não existe grafo de transição além de "escolha um dos quatro".
func IsValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func ValidateStatus(s Status) error {
	if !IsValidStatus(s) {
		return httperr.ErrBusiness("invalid_status")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
