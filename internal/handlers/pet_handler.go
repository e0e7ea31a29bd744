package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CocoPetControl/clinic-api/internal/audit"
	petdomain "github.com/CocoPetControl/clinic-api/internal/domain/pet"
	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/middleware"
	"github.com/CocoPetControl/clinic-api/internal/models"
)

type PetHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPetHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *PetHandler {
	return &PetHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreatePetRequest struct {
	OwnerID     uuid.UUID  `json:"owner_id" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	Species     string     `json:"species" binding:"required"`
	Breed       string     `json:"breed"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Sex         string     `json:"sex"`
	WeightKg    *float64   `json:"weight_kg"`
	Notes       string     `json:"notes"`
}

type UpdatePetRequest struct {
	OwnerID     *uuid.UUID `json:"owner_id"`
	Name        *string    `json:"name"`
	Species     *string    `json:"species"`
	Breed       *string    `json:"breed"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Sex         *string    `json:"sex"`
	WeightKg    *float64   `json:"weight_kg"`
	Notes       *string    `json:"notes"`
}

// idade derivada entra em toda resposta de pet
func petJSON(pet *models.Pet) gin.H {
	return gin.H{
		"id":            pet.ID,
		"clinic_id":     pet.ClinicID,
		"owner_id":      pet.OwnerID,
		"owner":         pet.Owner,
		"name":          pet.Name,
		"species":       pet.Species,
		"breed":         pet.Breed,
		"date_of_birth": pet.DateOfBirth,
		"age":           petdomain.Age(pet.DateOfBirth, time.Now()),
		"sex":           pet.Sex,
		"weight_kg":     pet.WeightKg,
		"notes":         pet.Notes,
		"created_at":    pet.CreatedAt,
		"updated_at":    pet.UpdatedAt,
	}
}

// ======================================================
// LIST
// ======================================================
func (h *PetHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	q := h.db.Preload("Owner").Where("clinic_id = ?", clinicID)

	if ownerStr := c.Query("owner_id"); ownerStr != "" {
		ownerID, err := uuid.Parse(ownerStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_owner_id", "ID de tutor inválido.")
			return
		}
		q = q.Where("owner_id = ?", ownerID)
	}

	if species := strings.ToLower(strings.TrimSpace(c.Query("species"))); species != "" {
		q = q.Where("LOWER(species) = ?", species)
	}

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(breed) LIKE ?", like, like)
	}

	var pets []models.Pet
	if err := q.
		Order("created_at DESC").
		Find(&pets).Error; err != nil {

		httperr.Internal(c, "failed_to_list_pets", "Erro ao listar pets.")
		return
	}

	out := make([]gin.H, 0, len(pets))
	for i := range pets {
		out = append(out, petJSON(&pets[i]))
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// CREATE
// ======================================================
func (h *PetHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var owner models.Owner
	if err := h.db.
		Where("id = ? AND clinic_id = ?", req.OwnerID, clinicID).
		First(&owner).Error; err != nil {

		httperr.BadRequest(c, "owner_not_found", "Tutor não encontrado.")
		return
	}

	pet := models.Pet{
		ClinicID:    clinicID,
		OwnerID:     owner.ID,
		Name:        strings.TrimSpace(req.Name),
		Species:     req.Species,
		Breed:       req.Breed,
		DateOfBirth: req.DateOfBirth,
		Sex:         req.Sex,
		WeightKg:    req.WeightKg,
		Notes:       req.Notes,
	}

	if err := h.db.Create(&pet).Error; err != nil {
		httperr.Internal(c, "failed_to_create_pet", "Erro ao criar pet.")
		return
	}
	pet.Owner = owner

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "pet_created",
		Entity:   "pet",
		EntityID: &pet.ID,
	})

	c.JSON(http.StatusCreated, petJSON(&pet))
}

// ======================================================
// GET
// ======================================================
func (h *PetHandler) Get(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	petID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var pet models.Pet
	if err := h.db.
		Preload("Owner").
		Where("id = ? AND clinic_id = ?", petID, clinicID).
		First(&pet).Error; err != nil {

		httperr.NotFound(c, "pet_not_found", "Pet não encontrado.")
		return
	}

	c.JSON(http.StatusOK, petJSON(&pet))
}

// ======================================================
// UPDATE
// ======================================================
func (h *PetHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	petID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var pet models.Pet
	if err := h.db.
		Preload("Owner").
		Where("id = ? AND clinic_id = ?", petID, clinicID).
		First(&pet).Error; err != nil {

		httperr.NotFound(c, "pet_not_found", "Pet não encontrado.")
		return
	}

	var req UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.OwnerID != nil {
		var owner models.Owner
		if err := h.db.
			Where("id = ? AND clinic_id = ?", *req.OwnerID, clinicID).
			First(&owner).Error; err != nil {

			httperr.BadRequest(c, "owner_not_found", "Tutor não encontrado.")
			return
		}
		pet.OwnerID = owner.ID
		pet.Owner = owner
	}

	if req.Name != nil {
		pet.Name = strings.TrimSpace(*req.Name)
	}
	if req.Species != nil {
		pet.Species = *req.Species
	}
	if req.Breed != nil {
		pet.Breed = *req.Breed
	}
	if req.DateOfBirth != nil {
		pet.DateOfBirth = req.DateOfBirth
	}
	if req.Sex != nil {
		pet.Sex = *req.Sex
	}
	if req.WeightKg != nil {
		pet.WeightKg = req.WeightKg
	}
	if req.Notes != nil {
		pet.Notes = *req.Notes
	}

	if err := h.db.Omit("Owner").Save(&pet).Error; err != nil {
		httperr.Internal(c, "failed_to_update_pet", "Erro ao salvar pet.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "pet_updated",
		Entity:   "pet",
		EntityID: &pet.ID,
	})

	c.JSON(http.StatusOK, petJSON(&pet))
}

// ======================================================
// DELETE
// ======================================================
func (h *PetHandler) Delete(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

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

	if err := h.db.Delete(&pet).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_pet", "Erro ao remover pet.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "pet_deleted",
		Entity:   "pet",
		EntityID: &pet.ID,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
