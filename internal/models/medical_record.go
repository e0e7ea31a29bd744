package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type MedicalRecord struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`

	PetID uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id"`
	Pet   Pet       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"pet"`

	VetID *uuid.UUID `gorm:"type:uuid" json:"vet_id"`
	Vet   *User      `gorm:"foreignKey:VetID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vet,omitempty"`

	VisitDate      time.Time `gorm:"not null" json:"visit_date"`
	ChiefComplaint string    `gorm:"size:255" json:"chief_complaint"`
	Diagnosis      string    `gorm:"type:text" json:"diagnosis"`
	Treatment      string    `gorm:"type:text" json:"treatment"`
	Notes          string    `gorm:"type:text" json:"notes"`

	// URLs opacas devolvidas pelo storage; a API não interpreta o caminho.
	ImageURLs pq.StringArray `gorm:"type:text[]" json:"image_urls"`

	Cost decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"cost"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
