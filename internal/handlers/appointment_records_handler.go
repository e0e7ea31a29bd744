package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CocoPetControl/clinic-api/internal/audit"
	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/middleware"
	"github.com/CocoPetControl/clinic-api/internal/models"
)

// Registros clínicos da consulta: vitals (um por consulta),
// prescrições e recomendações.
type AppointmentRecordsHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAppointmentRecordsHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *AppointmentRecordsHandler {
	return &AppointmentRecordsHandler{db: db, audit: dispatcher}
}

func (h *AppointmentRecordsHandler) loadAppointment(c *gin.Context, clinicID uuid.UUID) (*models.Appointment, bool) {
	apID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var ap models.Appointment
	if err := h.db.
		Where("id = ? AND clinic_id = ?", apID, clinicID).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return nil, false
	}

	return &ap, true
}

// ======================================================
// VITALS (PUT = upsert, um registro por consulta)
// ======================================================

type UpsertVitalsRequest struct {
	WeightLbs    *float64 `json:"weight_lbs"`
	TemperatureF *float64 `json:"temperature_f"`
	HeartRateBpm *int     `json:"heart_rate_bpm"`
}

func (h *AppointmentRecordsHandler) UpsertVitals(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	ap, ok := h.loadAppointment(c, clinicID)
	if !ok {
		return
	}

	var req UpsertVitalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var vitals models.AppointmentVitals
	err := h.db.Where("appointment_id = ?", ap.ID).First(&vitals).Error

	if err == gorm.ErrRecordNotFound {
		vitals = models.AppointmentVitals{AppointmentID: ap.ID}
	} else if err != nil {
		httperr.Internal(c, "failed_to_get_vitals", "Erro ao buscar sinais vitais.")
		return
	}

	vitals.WeightLbs = req.WeightLbs
	vitals.TemperatureF = req.TemperatureF
	vitals.HeartRateBpm = req.HeartRateBpm

	if err := h.db.Save(&vitals).Error; err != nil {
		httperr.Internal(c, "failed_to_save_vitals", "Erro ao salvar sinais vitais.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "appointment_vitals_saved",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	c.JSON(http.StatusOK, vitals)
}

// ======================================================
// PRESCRIPTIONS
// ======================================================

type CreatePrescriptionRequest struct {
	ItemName           string `json:"item_name" binding:"required"`
	Type               string `json:"type"`
	DosageInstructions string `json:"dosage_instructions"`
	Quantity           string `json:"quantity"`
	Status             string `json:"status"`
}

func (h *AppointmentRecordsHandler) CreatePrescription(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	ap, ok := h.loadAppointment(c, clinicID)
	if !ok {
		return
	}

	var req CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	prescription := models.AppointmentPrescription{
		AppointmentID:      ap.ID,
		ItemName:           req.ItemName,
		Type:               req.Type,
		DosageInstructions: req.DosageInstructions,
		Quantity:           req.Quantity,
		Status:             req.Status,
	}
	if prescription.Type == "" {
		prescription.Type = "other"
	}
	if prescription.Status == "" {
		prescription.Status = "pending"
	}

	if err := h.db.Create(&prescription).Error; err != nil {
		httperr.Internal(c, "failed_to_create_prescription", "Erro ao criar prescrição.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "prescription_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	c.JSON(http.StatusCreated, prescription)
}

func (h *AppointmentRecordsHandler) DeletePrescription(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	ap, ok := h.loadAppointment(c, clinicID)
	if !ok {
		return
	}

	prescriptionID, err := uuid.Parse(c.Param("prescriptionId"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND appointment_id = ?", prescriptionID, ap.ID).
		Delete(&models.AppointmentPrescription{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_prescription", "Erro ao remover prescrição.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "prescription_not_found", "Prescrição não encontrada.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "prescription_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ======================================================
// RECOMMENDATIONS
// ======================================================

type CreateRecommendationRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (h *AppointmentRecordsHandler) CreateRecommendation(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	ap, ok := h.loadAppointment(c, clinicID)
	if !ok {
		return
	}

	var req CreateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	recommendation := models.AppointmentRecommendation{
		AppointmentID: ap.ID,
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
	}
	if recommendation.Priority == "" {
		recommendation.Priority = "routine"
	}

	if err := h.db.Create(&recommendation).Error; err != nil {
		httperr.Internal(c, "failed_to_create_recommendation", "Erro ao criar recomendação.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "recommendation_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	c.JSON(http.StatusCreated, recommendation)
}

func (h *AppointmentRecordsHandler) DeleteRecommendation(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	ap, ok := h.loadAppointment(c, clinicID)
	if !ok {
		return
	}

	recommendationID, err := uuid.Parse(c.Param("recommendationId"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND appointment_id = ?", recommendationID, ap.ID).
		Delete(&models.AppointmentRecommendation{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_recommendation", "Erro ao remover recomendação.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "recommendation_not_found", "Recomendação não encontrada.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "recommendation_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
