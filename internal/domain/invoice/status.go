package invoice

import (
	"time"

	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/models"
)

// ===============================
// Invoice Status
// ===============================

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
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
	return StatusDraft
}

// ===============================
// Validations
// ===============================

// ValidateDueDate: vencimento no dia da emissão ou depois; igual é aceito.
func ValidateDueDate(issueDate time.Time, dueDate *time.Time) error {
	if dueDate == nil {
		return nil
	}
	if dueDate.Before(issueDate) {
		return httperr.ErrBusiness("invalid_due_date")
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

// MarkSent aplica a única transição automática do sistema:
// draft → sent após envio confirmado. Qualquer outro status fica
// como está (reenvio permitido, sem erro).
func MarkSent(inv *models.Invoice) bool {
	if inv.Status != string(StatusDraft) {
		return false
	}

	inv.Status = string(StatusSent)
	return true
}
