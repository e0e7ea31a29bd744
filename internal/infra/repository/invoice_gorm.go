package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/CocoPetControl/clinic-api/internal/domain/invoice"
	"github.com/CocoPetControl/clinic-api/internal/models"
)

type InvoiceGormRepository struct {
	db *gorm.DB
}

func NewInvoiceGormRepository(db *gorm.DB) *InvoiceGormRepository {
	return &InvoiceGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *InvoiceGormRepository) GetClinicByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *InvoiceGormRepository) GetOwnerForClinic(
	ctx context.Context,
	ownerID uuid.UUID,
	clinicID uuid.UUID,
) (*models.Owner, error) {

	var owner models.Owner
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", ownerID, clinicID).
		First(&owner).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *InvoiceGormRepository) GetInvoiceForClinic(
	ctx context.Context,
	invoiceID uuid.UUID,
	clinicID uuid.UUID,
) (*models.Invoice, error) {

	var inv models.Invoice
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", invoiceID, clinicID).
		First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceGormRepository) ListItems(
	ctx context.Context,
	invoiceID uuid.UUID,
) ([]models.InvoiceItem, error) {

	var items []models.InvoiceItem
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --------------------------------------------------
// Header + items, uma transação
// --------------------------------------------------

func (r *InvoiceGormRepository) SaveWithItems(
	ctx context.Context,
	inv *models.Invoice,
	items []models.InvoiceItem,
	removedItemIDs []uuid.UUID,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// 1️⃣ cabeçalho primeiro: itens novos precisam do id da fatura
		if inv.ID == uuid.Nil {
			var max int
			if err := tx.
				Model(&models.Invoice{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("clinic_id = ?", inv.ClinicID).
				Select("COALESCE(MAX(invoice_number), 0)").
				Scan(&max).Error; err != nil {
				return err
			}
			inv.InvoiceNumber = max + 1

			if err := tx.Omit("Owner", "Appointment", "Items").Create(inv).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Omit("Owner", "Appointment", "Items").Save(inv).Error; err != nil {
				return err
			}
		}

		// 2️⃣ remoções, escopadas pela fatura
		if len(removedItemIDs) > 0 {
			if err := tx.
				Where("invoice_id = ? AND id IN ?", inv.ID, removedItemIDs).
				Delete(&models.InvoiceItem{}).Error; err != nil {
				return err
			}
		}

		// 3️⃣ upsert item a item
		for i := range items {
			items[i].InvoiceID = inv.ID

			if items[i].ID == uuid.Nil {
				if err := tx.Create(&items[i]).Error; err != nil {
					return err
				}
				continue
			}

			if err := tx.
				Model(&models.InvoiceItem{}).
				Where("id = ? AND invoice_id = ?", items[i].ID, inv.ID).
				Updates(map[string]any{
					"description": items[i].Description,
					"quantity":    items[i].Quantity,
					"unit_price":  items[i].UnitPrice,
				}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *InvoiceGormRepository) UpdateStatus(
	ctx context.Context,
	invoiceID uuid.UUID,
	status string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", invoiceID).
		Update("status", status).Error
}

func (r *InvoiceGormRepository) DeleteInvoice(
	ctx context.Context,
	invoiceID uuid.UUID,
	clinicID uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", invoiceID, clinicID).
		Delete(&models.Invoice{}).Error
}

// Compile-time check
var _ domain.Repository = (*InvoiceGormRepository)(nil)
