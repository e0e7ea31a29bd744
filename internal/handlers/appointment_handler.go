package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/httpresp"
	"github.com/CocoPetControl/clinic-api/internal/middleware"
	"github.com/CocoPetControl/clinic-api/internal/models"
	ucAppointment "github.com/CocoPetControl/clinic-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	createUC     *ucAppointment.CreateAppointment
	editUC       *ucAppointment.EditAppointment
	rescheduleUC *ucAppointment.RescheduleAppointment
	deleteUC     *ucAppointment.DeleteAppointment
	listUC       *ucAppointment.ListAppointmentsByRange
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	editUC *ucAppointment.EditAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	listUC *ucAppointment.ListAppointmentsByRange,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		createUC:     createUC,
		editUC:       editUC,
		rescheduleUC: rescheduleUC,
		deleteUC:     deleteUC,
		listUC:       listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PetID uuid.UUID  `json:"pet_id" binding:"required"`
	VetID *uuid.UUID `json:"vet_id"`

	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`

	Reason string `json:"reason"`
	Notes  string `json:"notes"`
	Room   string `json:"room"`
}

type UpdateAppointmentRequest struct {
	PetID *uuid.UUID `json:"pet_id"`
	VetID *uuid.UUID `json:"vet_id"`

	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	Status *string `json:"status"`
	Reason *string `json:"reason"`
	Notes  *string `json:"notes"`
	Room   *string `json:"room"`
}

type RescheduleAppointmentRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClinicID:  clinicID,
		UserID:    userID,
		PetID:     req.PetID,
		VetID:     req.VetID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
		Notes:     req.Notes,
		Room:      req.Room,
	})
	if err != nil {
		if respondBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST (feed do calendário, por intervalo)
// ======================================================

func (h *AppointmentHandler) ListByRange(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		httperr.BadRequest(c, "missing_range", "Parâmetros start e end são obrigatórios.")
		return
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_start", "Data inicial inválida (RFC3339).")
		return
	}

	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_end", "Data final inválida (RFC3339).")
		return
	}

	events, err := h.listUC.Execute(c.Request.Context(), clinicID, start, end)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, events)
}

// ======================================================
// GET (detalhe, com vitals/prescrições/recomendações)
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	apID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Pet").
		Preload("Pet.Owner").
		Preload("Vet").
		Preload("Vitals").
		Preload("Prescriptions").
		Preload("Recommendations").
		Where("id = ? AND clinic_id = ?", apID, clinicID).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	apID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.editUC.Execute(c.Request.Context(), ucAppointment.EditAppointmentInput{
		ClinicID:      clinicID,
		UserID:        userID,
		AppointmentID: apID,
		PetID:         req.PetID,
		VetID:         req.VetID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        req.Status,
		Reason:        req.Reason,
		Notes:         req.Notes,
		Room:          req.Room,
	})
	if err != nil {
		if respondBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// RESCHEDULE (drag & resize do calendário)
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	apID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(
		c.Request.Context(),
		clinicID,
		userID,
		apID,
		req.StartTime,
		req.EndTime,
	)
	if err != nil {
		if respondBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_reschedule_appointment", "Erro ao remarcar agendamento.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	apID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), clinicID, userID, apID); err != nil {
		if respondBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_delete_appointment", "Erro ao remover agendamento.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
