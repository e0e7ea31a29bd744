package invoice

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/CocoPetControl/clinic-api/internal/audit"
	domain "github.com/CocoPetControl/clinic-api/internal/domain/invoice"
	"github.com/CocoPetControl/clinic-api/internal/email"
	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/money"
	"github.com/CocoPetControl/clinic-api/internal/refnum"
)

// O e-mail é sempre renderizado em USD/en-US hoje; quando a clínica
// tiver moeda configurável, ela entra aqui.
const (
	currencyCode = "USD"
	localeCode   = "en-US"
)

type Mailer interface {
	SendInvoice(ctx context.Context, msg email.InvoiceMessage) (string, error)
}

// ======================================================
// USE CASE
// ======================================================

type SendInvoice struct {
	repo   domain.Repository
	mailer Mailer
	audit  *audit.Dispatcher
}

func NewSendInvoice(
	repo domain.Repository,
	mailer Mailer,
	audit *audit.Dispatcher,
) *SendInvoice {
	return &SendInvoice{
		repo:   repo,
		mailer: mailer,
		audit:  audit,
	}
}

type SendInvoiceResult struct {
	MessageID string `json:"message_id"`
	SentTo    string `json:"sent_to"`
	Status    string `json:"status"`
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SendInvoice) Execute(
	ctx context.Context,
	clinicID uuid.UUID,
	userID uuid.UUID,
	invoiceID uuid.UUID,
) (*SendInvoiceResult, error) {

	// --------------------------------------------------
	// 1️⃣ Fatura + owner + clínica + itens
	// --------------------------------------------------
	inv, err := uc.repo.GetInvoiceForClinic(ctx, invoiceID, clinicID)
	if err != nil {
		return nil, httperr.ErrBusiness("invoice_not_found")
	}

	owner, err := uc.repo.GetOwnerForClinic(ctx, inv.OwnerID, clinicID)
	if err != nil {
		return nil, httperr.ErrBusiness("owner_not_found")
	}

	if strings.TrimSpace(owner.Email) == "" {
		return nil, httperr.ErrBusiness("owner_has_no_email")
	}

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	items, err := uc.repo.ListItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Total exibido: soma dos itens quando houver,
	//    senão o total armazenado (fatura manual)
	// --------------------------------------------------
	lines := make([]email.InvoiceLine, 0, len(items))
	subtotal := decimal.Zero

	for _, it := range items {
		line, err := money.LineTotal(it.Quantity, it.UnitPrice)
		if err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(line)

		lines = append(lines, email.InvoiceLine{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   money.FormatCurrency(it.UnitPrice, currencyCode, localeCode),
			Amount:      money.FormatCurrency(line, currencyCode, localeCode),
		})
	}

	total := inv.Total
	if subtotal.IsPositive() {
		total = subtotal
	}

	// --------------------------------------------------
	// 3️⃣ Envio
	// --------------------------------------------------
	msg := email.InvoiceMessage{
		To:          owner.Email,
		OwnerName:   owner.FirstName + " " + owner.LastName,
		ClinicName:  clinic.Name,
		ClinicPhone: clinic.Phone,
		ClinicEmail: clinic.Email,
		Reference:   refnum.FormatShort("INV", inv.InvoiceNumber),
		Status:      inv.Status,
		IssueDate:   inv.IssueDate.Format("January 02, 2006"),
		Notes:       inv.Notes,
		Lines:       lines,
		Total:       money.FormatCurrency(total, currencyCode, localeCode),
	}
	if inv.DueDate != nil {
		msg.DueDate = inv.DueDate.Format("January 02, 2006")
	}

	messageID, err := uc.mailer.SendInvoice(ctx, msg)
	if err != nil {
		// status da fatura fica intocado em falha de envio
		return nil, httperr.ErrBusiness("email_failed")
	}

	// --------------------------------------------------
	// 4️⃣ Única transição automática: draft → sent
	// --------------------------------------------------
	if domain.MarkSent(inv) {
		if err := uc.repo.UpdateStatus(ctx, inv.ID, inv.Status); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "invoice_sent",
		Entity:   "invoice",
		EntityID: &inv.ID,
		Metadata: map[string]any{
			"message_id": messageID,
			"sent_to":    owner.Email,
		},
	})

	return &SendInvoiceResult{
		MessageID: messageID,
		SentTo:    owner.Email,
		Status:    inv.Status,
	}, nil
}
