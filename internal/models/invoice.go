package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`

	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   Owner     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"owner"`

	AppointmentID *uuid.UUID   `gorm:"type:uuid" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"appointment,omitempty"`

	// Sequencial por clínica, atribuído na criação.
	InvoiceNumber int `gorm:"not null" json:"invoice_number"`

	Status string `gorm:"size:20;default:'draft'" json:"status"`

	// Recalculado a partir dos itens sempre que existirem;
	// valor manual apenas para faturas sem itens.
	Total decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`

	IssueDate time.Time  `gorm:"not null" json:"issue_date"`
	DueDate   *time.Time `json:"due_date"`
	Notes     string     `gorm:"type:text" json:"notes"`

	Items []InvoiceItem `gorm:"constraint:OnDelete:CASCADE;" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`

	Description string          `gorm:"size:255;not null" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`

	CreatedAt time.Time `json:"created_at"`
}
