package invoice

import (
	"context"

	"github.com/google/uuid"

	"github.com/CocoPetControl/clinic-api/internal/models"
)

type Repository interface {
	// -------- Lookups (sempre escopados pela clínica) --------
	GetClinicByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Clinic, error)

	GetOwnerForClinic(
		ctx context.Context,
		ownerID uuid.UUID,
		clinicID uuid.UUID,
	) (*models.Owner, error)

	GetInvoiceForClinic(
		ctx context.Context,
		invoiceID uuid.UUID,
		clinicID uuid.UUID,
	) (*models.Invoice, error)

	ListItems(
		ctx context.Context,
		invoiceID uuid.UUID,
	) ([]models.InvoiceItem, error)

	// -------- Header + items, uma transação --------
	//
	// Upsert do cabeçalho acontece-antes dos deletes/upserts de item
	// (itens novos referenciam o id da fatura recém-criada).
	SaveWithItems(
		ctx context.Context,
		inv *models.Invoice,
		items []models.InvoiceItem,
		removedItemIDs []uuid.UUID,
	) error

	UpdateStatus(
		ctx context.Context,
		invoiceID uuid.UUID,
		status string,
	) error

	DeleteInvoice(
		ctx context.Context,
		invoiceID uuid.UUID,
		clinicID uuid.UUID,
	) error
}
