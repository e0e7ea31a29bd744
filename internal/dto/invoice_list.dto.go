package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceListDTO struct {
	ID             string          `json:"id"`
	Reference      string          `json:"reference"`
	OwnerName      string          `json:"owner_name"`
	Status         string          `json:"status"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
	IssueDate      time.Time       `json:"issue_date"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
}
