package invoice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/CocoPetControl/clinic-api/internal/audit"
	domain "github.com/CocoPetControl/clinic-api/internal/domain/invoice"
	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/models"
	"github.com/CocoPetControl/clinic-api/internal/money"
)

// ======================================================
// INPUT
// ======================================================

type ItemInput struct {
	ID          *uuid.UUID
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

type SaveInvoiceInput struct {
	ClinicID uuid.UUID
	UserID   uuid.UUID

	// nil = criação
	InvoiceID *uuid.UUID

	OwnerID       uuid.UUID
	AppointmentID *uuid.UUID

	Status    string
	IssueDate time.Time
	DueDate   *time.Time
	Notes     string

	// Usado apenas quando a fatura não tem itens (total manual).
	ManualTotal decimal.Decimal

	Items          []ItemInput
	RemovedItemIDs []uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

type SaveInvoiceWithItems struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSaveInvoiceWithItems(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SaveInvoiceWithItems {
	return &SaveInvoiceWithItems{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SaveInvoiceWithItems) Execute(
	ctx context.Context,
	in SaveInvoiceInput,
) (*models.Invoice, error) {

	// --------------------------------------------------
	// 1️⃣ Validações de domínio antes de qualquer escrita
	// --------------------------------------------------
	if err := domain.ValidateStatus(domain.Status(in.Status)); err != nil {
		return nil, err
	}

	if err := domain.ValidateDueDate(in.IssueDate, in.DueDate); err != nil {
		return nil, err
	}

	moneyItems := make([]money.Item, 0, len(in.Items))
	for _, it := range in.Items {
		if strings.TrimSpace(it.Description) == "" {
			return nil, httperr.ErrBusiness("invalid_description")
		}
		moneyItems = append(moneyItems, money.Item{
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	// --------------------------------------------------
	// 2️⃣ Total: derivado dos itens sempre que o request
	//    mexe em itens; manual só para fatura sem item algum
	// --------------------------------------------------
	var total decimal.Decimal
	switch {
	case len(in.Items) > 0:
		t, err := money.InvoiceTotal(moneyItems)
		if err != nil {
			return nil, err
		}
		total = t
	case len(in.RemovedItemIDs) > 0:
		// último item removido → total volta a zero
		total = decimal.Zero
	default:
		if in.ManualTotal.IsNegative() {
			return nil, httperr.ErrBusiness("invalid_total")
		}
		total = in.ManualTotal
	}

	// --------------------------------------------------
	// 3️⃣ Owner da clínica
	// --------------------------------------------------
	owner, err := uc.repo.GetOwnerForClinic(ctx, in.OwnerID, in.ClinicID)
	if err != nil {
		return nil, httperr.ErrBusiness("owner_not_found")
	}

	// --------------------------------------------------
	// 4️⃣ Cabeçalho (upsert acontece-antes dos itens)
	// --------------------------------------------------
	var inv *models.Invoice

	if in.InvoiceID != nil {
		inv, err = uc.repo.GetInvoiceForClinic(ctx, *in.InvoiceID, in.ClinicID)
		if err != nil {
			return nil, httperr.ErrBusiness("invoice_not_found")
		}
	} else {
		inv = &models.Invoice{
			ClinicID:  in.ClinicID,
			IssueDate: in.IssueDate,
		}
	}

	inv.OwnerID = owner.ID
	inv.AppointmentID = in.AppointmentID
	inv.Status = in.Status
	inv.Total = total
	inv.IssueDate = in.IssueDate
	inv.DueDate = in.DueDate
	inv.Notes = in.Notes

	items := make([]models.InvoiceItem, 0, len(in.Items))
	for _, it := range in.Items {
		row := models.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
		if it.ID != nil {
			row.ID = *it.ID
		}
		items = append(items, row)
	}

	if err := uc.repo.SaveWithItems(ctx, inv, items, in.RemovedItemIDs); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	action := "invoice_updated"
	if in.InvoiceID == nil {
		action = "invoice_created"
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.UserID,
		Action:   action,
		Entity:   "invoice",
		EntityID: &inv.ID,
		Metadata: map[string]any{
			"total": inv.Total.String(),
			"items": len(items),
		},
	})

	return inv, nil
}
