package dto

import "time"

// Evento do calendário: uma linha por appointment no intervalo pedido.
type CalendarEventDTO struct {
	ID        string    `json:"id"`
	Reference string    `json:"reference"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  string    `json:"duration"`
	Status    string    `json:"status"`
	PetName   string    `json:"pet_name"`
	OwnerName string    `json:"owner_name"`
	VetName   string    `json:"vet_name,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Room      string    `json:"room,omitempty"`
}
