package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/middleware"
	"github.com/CocoPetControl/clinic-api/internal/models"
	"github.com/CocoPetControl/clinic-api/internal/timezone"
)

type ClinicHandler struct {
	db *gorm.DB
}

func NewClinicHandler(db *gorm.DB) *ClinicHandler {
	return &ClinicHandler{db: db}
}

type UpdateClinicRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Email    *string `json:"email"`
	Timezone *string `json:"timezone"`
}

func (h *ClinicHandler) GetMeClinic(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	var clinic models.Clinic
	if err := h.db.First(&clinic, "id = ?", clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_not_found", "Clínica não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic", "Erro ao buscar dados da clínica.")
		return
	}

	c.JSON(http.StatusOK, clinic)
}

func (h *ClinicHandler) UpdateMeClinic(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	var clinic models.Clinic
	if err := h.db.First(&clinic, "id = ?", clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_not_found", "Clínica não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic", "Erro ao buscar dados da clínica.")
		return
	}

	var req UpdateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.Phone != nil {
		clinic.Phone = *req.Phone
	}
	if req.Address != nil {
		clinic.Address = *req.Address
	}
	if req.Email != nil {
		clinic.Email = *req.Email
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido (use nomes IANA).")
			return
		}
		clinic.Timezone = *req.Timezone
	}

	if err := h.db.Save(&clinic).Error; err != nil {
		httperr.Internal(c, "failed_to_update_clinic", "Erro ao salvar dados da clínica.")
		return
	}

	c.JSON(http.StatusOK, clinic)
}

// Vets da clínica, para o select de agendamento.
func (h *ClinicHandler) ListVets(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	var vets []models.User
	if err := h.db.
		Where("clinic_id = ? AND role IN ?", clinicID, []string{"vet", "admin"}).
		Order("full_name ASC").
		Find(&vets).Error; err != nil {

		httperr.Internal(c, "failed_to_list_vets", "Erro ao listar veterinários.")
		return
	}

	c.JSON(http.StatusOK, vets)
}
