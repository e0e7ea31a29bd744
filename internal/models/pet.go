package models

import (
	"time"

	"github.com/google/uuid"
)

type Pet struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`

	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   Owner     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"owner"`

	Name        string     `gorm:"size:100;not null" json:"name"`
	Species     string     `gorm:"size:50;not null" json:"species"`
	Breed       string     `gorm:"size:100" json:"breed"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Sex         string     `gorm:"size:10" json:"sex"`
	WeightKg    *float64   `json:"weight_kg"`
	Notes       string     `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
