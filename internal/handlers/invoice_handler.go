package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CocoPetControl/clinic-api/internal/audit"
	"github.com/CocoPetControl/clinic-api/internal/dto"
	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/httpresp"
	"github.com/CocoPetControl/clinic-api/internal/middleware"
	"github.com/CocoPetControl/clinic-api/internal/models"
	"github.com/CocoPetControl/clinic-api/internal/money"
	"github.com/CocoPetControl/clinic-api/internal/refnum"
	ucInvoice "github.com/CocoPetControl/clinic-api/internal/usecase/invoice"
)

// ======================================================
// HANDLER
// ======================================================

type InvoiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher

	saveUC *ucInvoice.SaveInvoiceWithItems
	sendUC *ucInvoice.SendInvoice
}

func NewInvoiceHandler(
	db *gorm.DB,
	dispatcher *audit.Dispatcher,
	saveUC *ucInvoice.SaveInvoiceWithItems,
	sendUC *ucInvoice.SendInvoice,
) *InvoiceHandler {
	return &InvoiceHandler{
		db:     db,
		audit:  dispatcher,
		saveUC: saveUC,
		sendUC: sendUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type InvoiceItemRequest struct {
	ID          *uuid.UUID      `json:"id"`
	Description string          `json:"description" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type SaveInvoiceRequest struct {
	OwnerID       uuid.UUID  `json:"owner_id" binding:"required"`
	AppointmentID *uuid.UUID `json:"appointment_id"`

	Status    string     `json:"status"`
	IssueDate time.Time  `json:"issue_date" binding:"required"`
	DueDate   *time.Time `json:"due_date"`
	Notes     string     `json:"notes"`

	Total decimal.Decimal `json:"total"`

	Items          []InvoiceItemRequest `json:"items"`
	RemovedItemIDs []uuid.UUID          `json:"removed_item_ids"`
}

func (r *SaveInvoiceRequest) toInput(clinicID, userID uuid.UUID, invoiceID *uuid.UUID) ucInvoice.SaveInvoiceInput {
	items := make([]ucInvoice.ItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, ucInvoice.ItemInput{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	status := r.Status
	if status == "" {
		status = "draft"
	}

	return ucInvoice.SaveInvoiceInput{
		ClinicID:       clinicID,
		UserID:         userID,
		InvoiceID:      invoiceID,
		OwnerID:        r.OwnerID,
		AppointmentID:  r.AppointmentID,
		Status:         status,
		IssueDate:      r.IssueDate,
		DueDate:        r.DueDate,
		Notes:          r.Notes,
		ManualTotal:    r.Total,
		Items:          items,
		RemovedItemIDs: r.RemovedItemIDs,
	}
}

// ======================================================
// HELPERS
// ======================================================

func invoiceReference(inv *models.Invoice) string {
	if inv.InvoiceNumber > 0 {
		return refnum.FormatShort("INV", inv.InvoiceNumber)
	}
	return refnum.Fallback("INV", inv.ID.String(), 6)
}

// ======================================================
// LIST
// ======================================================

func (h *InvoiceHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	q := h.db.
		Preload("Owner").
		Where("clinic_id = ?", clinicID)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var invoices []models.Invoice
	if err := q.
		Order("issue_date DESC, invoice_number DESC").
		Find(&invoices).Error; err != nil {

		httperr.Internal(c, "failed_to_list_invoices", "Erro ao listar faturas.")
		return
	}

	out := make([]dto.InvoiceListDTO, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		out = append(out, dto.InvoiceListDTO{
			ID:             inv.ID.String(),
			Reference:      invoiceReference(inv),
			OwnerName:      inv.Owner.FirstName + " " + inv.Owner.LastName,
			Status:         inv.Status,
			Total:          inv.Total,
			TotalFormatted: money.FormatCurrency(inv.Total, "USD", "en-US"),
			IssueDate:      inv.IssueDate,
			DueDate:        inv.DueDate,
		})
	}

	httpresp.List(c, out)
}

// ======================================================
// GET (com itens)
// ======================================================

func (h *InvoiceHandler) Get(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var inv models.Invoice
	if err := h.db.
		Preload("Owner").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_items.created_at ASC")
		}).
		Where("id = ? AND clinic_id = ?", invoiceID, clinicID).
		First(&inv).Error; err != nil {

		httperr.NotFound(c, "invoice_not_found", "Fatura não encontrada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoice":   inv,
		"reference": invoiceReference(&inv),
	})
}

// ======================================================
// CREATE / UPDATE (cabeçalho + itens, uma transação)
// ======================================================

func (h *InvoiceHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req SaveInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	inv, err := h.saveUC.Execute(c.Request.Context(), req.toInput(clinicID, userID, nil))
	if err != nil {
		if respondBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_save_invoice", "Erro ao salvar fatura.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"invoice":   inv,
		"reference": invoiceReference(inv),
	})
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req SaveInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	inv, err := h.saveUC.Execute(c.Request.Context(), req.toInput(clinicID, userID, &invoiceID))
	if err != nil {
		if respondBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_save_invoice", "Erro ao salvar fatura.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoice":   inv,
		"reference": invoiceReference(inv),
	})
}

// ======================================================
// DELETE
// ======================================================

func (h *InvoiceHandler) Delete(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var inv models.Invoice
	if err := h.db.
		Where("id = ? AND clinic_id = ?", invoiceID, clinicID).
		First(&inv).Error; err != nil {

		httperr.NotFound(c, "invoice_not_found", "Fatura não encontrada.")
		return
	}

	// itens caem junto via FK
	if err := h.db.Delete(&inv).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_invoice", "Erro ao remover fatura.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "invoice_deleted",
		Entity:   "invoice",
		EntityID: &inv.ID,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ======================================================
// SEND (e-mail para o tutor; draft → sent)
// ======================================================

func (h *InvoiceHandler) Send(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	res, err := h.sendUC.Execute(c.Request.Context(), clinicID, userID, invoiceID)
	if err != nil {
		// falha do provedor é gateway, não bad request
		if httperr.IsBusiness(err, "email_failed") {
			httperr.BadGateway(c, "email_failed", "Falha ao enviar o e-mail.")
			return
		}
		if respondBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_send_invoice", "Erro ao enviar fatura.")
		return
	}

	c.JSON(http.StatusOK, res)
}
