package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CocoPetControl/clinic-api/internal/audit"
	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/middleware"
	"github.com/CocoPetControl/clinic-api/internal/models"
	"github.com/CocoPetControl/clinic-api/internal/storage"
)

// limite por arquivo de imagem (bytes)
const maxImageUploadSize = 10 << 20

type MedicalRecordHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
	audit    *audit.Dispatcher
}

func NewMedicalRecordHandler(
	db *gorm.DB,
	uploader *storage.Uploader,
	dispatcher *audit.Dispatcher,
) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		db:       db,
		uploader: uploader,
		audit:    dispatcher,
	}
}

// --------- Requests ---------

type CreateMedicalRecordRequest struct {
	PetID          uuid.UUID        `json:"pet_id" binding:"required"`
	VetID          *uuid.UUID       `json:"vet_id"`
	VisitDate      time.Time        `json:"visit_date" binding:"required"`
	ChiefComplaint string           `json:"chief_complaint"`
	Diagnosis      string           `json:"diagnosis"`
	Treatment      string           `json:"treatment"`
	Notes          string           `json:"notes"`
	Cost           *decimal.Decimal `json:"cost"`
}

type UpdateMedicalRecordRequest struct {
	VetID          *uuid.UUID       `json:"vet_id"`
	VisitDate      *time.Time       `json:"visit_date"`
	ChiefComplaint *string          `json:"chief_complaint"`
	Diagnosis      *string          `json:"diagnosis"`
	Treatment      *string          `json:"treatment"`
	Notes          *string          `json:"notes"`
	Cost           *decimal.Decimal `json:"cost"`
}

// ======================================================
// LIST (histórico do pet, mais recente primeiro)
// ======================================================
func (h *MedicalRecordHandler) ListByPet(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	petID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var pet models.Pet
	if err := h.db.
		Where("id = ? AND clinic_id = ?", petID, clinicID).
		First(&pet).Error; err != nil {

		httperr.NotFound(c, "pet_not_found", "Pet não encontrado.")
		return
	}

	var records []models.MedicalRecord
	if err := h.db.
		Preload("Vet").
		Where("pet_id = ? AND clinic_id = ?", pet.ID, clinicID).
		Order("visit_date DESC").
		Find(&records).Error; err != nil {

		httperr.Internal(c, "failed_to_list_records", "Erro ao listar histórico.")
		return
	}

	c.JSON(http.StatusOK, records)
}

// ======================================================
// CREATE
// ======================================================
func (h *MedicalRecordHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req CreateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var pet models.Pet
	if err := h.db.
		Where("id = ? AND clinic_id = ?", req.PetID, clinicID).
		First(&pet).Error; err != nil {

		httperr.BadRequest(c, "pet_not_found", "Pet não encontrado.")
		return
	}

	if req.VetID != nil {
		var vet models.User
		if err := h.db.
			Where("id = ? AND clinic_id = ?", *req.VetID, clinicID).
			First(&vet).Error; err != nil {

			httperr.BadRequest(c, "vet_not_found", "Veterinário não encontrado.")
			return
		}
	}

	cost := decimal.Zero
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			httperr.BadRequest(c, "invalid_cost", "Custo não pode ser negativo.")
			return
		}
		cost = *req.Cost
	}

	record := models.MedicalRecord{
		ClinicID:       clinicID,
		PetID:          pet.ID,
		VetID:          req.VetID,
		VisitDate:      req.VisitDate,
		ChiefComplaint: req.ChiefComplaint,
		Diagnosis:      req.Diagnosis,
		Treatment:      req.Treatment,
		Notes:          req.Notes,
		Cost:           cost,
	}

	if err := h.db.Create(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_create_record", "Erro ao criar registro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "medical_record_created",
		Entity:   "medical_record",
		EntityID: &record.ID,
	})

	c.JSON(http.StatusCreated, record)
}

// ======================================================
// UPDATE
// ======================================================
func (h *MedicalRecordHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var record models.MedicalRecord
	if err := h.db.
		Where("id = ? AND clinic_id = ?", recordID, clinicID).
		First(&record).Error; err != nil {

		httperr.NotFound(c, "record_not_found", "Registro não encontrado.")
		return
	}

	var req UpdateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.VetID != nil {
		if *req.VetID == uuid.Nil {
			record.VetID = nil
		} else {
			var vet models.User
			if err := h.db.
				Where("id = ? AND clinic_id = ?", *req.VetID, clinicID).
				First(&vet).Error; err != nil {

				httperr.BadRequest(c, "vet_not_found", "Veterinário não encontrado.")
				return
			}
			record.VetID = req.VetID
		}
	}

	if req.VisitDate != nil {
		record.VisitDate = *req.VisitDate
	}
	if req.ChiefComplaint != nil {
		record.ChiefComplaint = *req.ChiefComplaint
	}
	if req.Diagnosis != nil {
		record.Diagnosis = *req.Diagnosis
	}
	if req.Treatment != nil {
		record.Treatment = *req.Treatment
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			httperr.BadRequest(c, "invalid_cost", "Custo não pode ser negativo.")
			return
		}
		record.Cost = *req.Cost
	}

	if err := h.db.Save(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_update_record", "Erro ao salvar registro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "medical_record_updated",
		Entity:   "medical_record",
		EntityID: &record.ID,
	})

	c.JSON(http.StatusOK, record)
}

// ======================================================
// DELETE
// ======================================================
func (h *MedicalRecordHandler) Delete(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var record models.MedicalRecord
	if err := h.db.
		Where("id = ? AND clinic_id = ?", recordID, clinicID).
		First(&record).Error; err != nil {

		httperr.NotFound(c, "record_not_found", "Registro não encontrado.")
		return
	}

	if err := h.db.Delete(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_record", "Erro ao remover registro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "medical_record_deleted",
		Entity:   "medical_record",
		EntityID: &record.ID,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ======================================================
// UPLOAD IMAGE (multipart → webp → S3)
// ======================================================
func (h *MedicalRecordHandler) UploadImage(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	if h.uploader == nil {
		httperr.Internal(c, "storage_not_configured", "Armazenamento de imagens não configurado.")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var record models.MedicalRecord
	if err := h.db.
		Where("id = ? AND clinic_id = ?", recordID, clinicID).
		First(&record).Error; err != nil {

		httperr.NotFound(c, "record_not_found", "Registro não encontrado.")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Arquivo de imagem obrigatório.")
		return
	}

	if file.Size > maxImageUploadSize {
		httperr.BadRequest(c, "image_too_large", "Imagem acima de 10MB.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Erro ao ler imagem.")
		return
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Erro ao ler imagem.")
		return
	}

	processed, err := storage.ProcessImage(raw)
	if err != nil {
		if be, ok := httperr.AsBusiness(err); ok {
			httperr.BadRequest(c, be.Code, "Imagem inválida.")
			return
		}
		httperr.Internal(c, "failed_to_process_image", "Erro ao processar imagem.")
		return
	}

	url, err := h.uploader.Put(c.Request.Context(), clinicID, processed, "image/webp")
	if err != nil {
		httperr.BadGateway(c, "storage_upload_failed", "Erro ao enviar imagem para o storage.")
		return
	}

	record.ImageURLs = append(record.ImageURLs, url)
	if err := h.db.Save(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_update_record", "Erro ao salvar registro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "medical_record_image_uploaded",
		Entity:   "medical_record",
		EntityID: &record.ID,
		Metadata: map[string]any{"url": url},
	})

	c.JSON(http.StatusCreated, gin.H{
		"url":        url,
		"image_urls": record.ImageURLs,
	})
}
