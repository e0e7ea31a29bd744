package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CocoPetControl/clinic-api/internal/audit"
	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/middleware"
	"github.com/CocoPetControl/clinic-api/internal/models"
)

type OwnerHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewOwnerHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *OwnerHandler {
	return &OwnerHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateOwnerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type UpdateOwnerRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

// ======================================================
// LIST (com busca)
// ======================================================
func (h *OwnerHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("clinic_id = ?", clinicID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like, like,
		)
	}

	var owners []models.Owner
	if err := q.
		Order("created_at DESC").
		Find(&owners).Error; err != nil {

		httperr.Internal(c, "failed_to_list_owners", "Erro ao listar tutores.")
		return
	}

	c.JSON(http.StatusOK, owners)
}

// ======================================================
// CREATE
// ======================================================
func (h *OwnerHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	owner := models.Owner{
		ClinicID:  clinicID,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		Address:   req.Address,
	}

	if err := h.db.Create(&owner).Error; err != nil {
		httperr.Internal(c, "failed_to_create_owner", "Erro ao criar tutor.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "owner_created",
		Entity:   "owner",
		EntityID: &owner.ID,
	})

	c.JSON(http.StatusCreated, owner)
}

// ======================================================
// GET (com pets)
// ======================================================
func (h *OwnerHandler) Get(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var owner models.Owner
	if err := h.db.
		Where("id = ? AND clinic_id = ?", ownerID, clinicID).
		First(&owner).Error; err != nil {

		httperr.NotFound(c, "owner_not_found", "Tutor não encontrado.")
		return
	}

	var pets []models.Pet
	h.db.
		Where("owner_id = ? AND clinic_id = ?", owner.ID, clinicID).
		Order("name ASC").
		Find(&pets)

	c.JSON(http.StatusOK, gin.H{
		"owner": owner,
		"pets":  pets,
	})
}

// ======================================================
// UPDATE
// ======================================================
func (h *OwnerHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var owner models.Owner
	if err := h.db.
		Where("id = ? AND clinic_id = ?", ownerID, clinicID).
		First(&owner).Error; err != nil {

		httperr.NotFound(c, "owner_not_found", "Tutor não encontrado.")
		return
	}

	var req UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.FirstName != nil {
		owner.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		owner.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		owner.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		owner.Phone = *req.Phone
	}
	if req.Address != nil {
		owner.Address = *req.Address
	}

	if err := h.db.Save(&owner).Error; err != nil {
		httperr.Internal(c, "failed_to_update_owner", "Erro ao salvar tutor.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "owner_updated",
		Entity:   "owner",
		EntityID: &owner.ID,
	})

	c.JSON(http.StatusOK, owner)
}

// ======================================================
// DELETE
// ======================================================
func (h *OwnerHandler) Delete(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var owner models.Owner
	if err := h.db.
		Where("id = ? AND clinic_id = ?", ownerID, clinicID).
		First(&owner).Error; err != nil {

		httperr.NotFound(c, "owner_not_found", "Tutor não encontrado.")
		return
	}

	// cascateia pets, históricos e agendamentos via FK
	if err := h.db.Delete(&owner).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_owner", "Erro ao remover tutor.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "owner_deleted",
		Entity:   "owner",
		EntityID: &owner.ID,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
