package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`

	PetID uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id"`
	Pet   Pet       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"pet"`

	VetID *uuid.UUID `gorm:"type:uuid" json:"vet_id"`
	Vet   *User      `gorm:"foreignKey:VetID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vet,omitempty"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Reason string `gorm:"size:255" json:"reason"`
	Notes  string `gorm:"type:text" json:"notes"`
	Room   string `gorm:"size:50" json:"room"`

	// Sequencial por clínica, atribuído na criação.
	AppointmentNumber *int `json:"appointment_number"`

	Vitals          *AppointmentVitals          `gorm:"constraint:OnDelete:CASCADE;" json:"vitals,omitempty"`
	Prescriptions   []AppointmentPrescription   `gorm:"constraint:OnDelete:CASCADE;" json:"prescriptions,omitempty"`
	Recommendations []AppointmentRecommendation `gorm:"constraint:OnDelete:CASCADE;" json:"recommendations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppointmentVitals struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"appointment_id"`

	WeightLbs    *float64 `json:"weight_lbs"`
	TemperatureF *float64 `json:"temperature_f"`
	HeartRateBpm *int     `json:"heart_rate_bpm"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppointmentPrescription struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`

	ItemName           string `gorm:"size:150;not null" json:"item_name"`
	Type               string `gorm:"size:20;default:'other'" json:"type"`
	DosageInstructions string `gorm:"size:255" json:"dosage_instructions"`
	Quantity           string `gorm:"size:50" json:"quantity"`
	Status             string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}

type AppointmentRecommendation struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Priority    string `gorm:"size:20;default:'routine'" json:"priority"`

	CreatedAt time.Time `json:"created_at"`
}
