package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CocoPetControl/clinic-api/internal/cache"
	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/middleware"
	"github.com/CocoPetControl/clinic-api/internal/models"
	"github.com/CocoPetControl/clinic-api/internal/timezone"
)

const dashboardCacheTTL = 60 * time.Second

type DashboardHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDashboardHandler(db *gorm.DB, c *cache.Cache) *DashboardHandler {
	return &DashboardHandler{db: db, cache: c}
}

type DashboardStats struct {
	AppointmentsToday    int64 `json:"appointments_today"`
	AppointmentsThisWeek int64 `json:"appointments_this_week"`
	TotalPets            int64 `json:"total_pets"`
	TotalOwners          int64 `json:"total_owners"`

	InvoicesDraft int64 `json:"invoices_draft"`
	InvoicesSent  int64 `json:"invoices_sent"`

	RevenuePaid        decimal.Decimal `json:"revenue_paid"`
	RevenueOutstanding decimal.Decimal `json:"revenue_outstanding"`
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)
	ctx := c.Request.Context()

	cacheKey := fmt.Sprintf("dashboard:%s", clinicID)

	var stats DashboardStats
	if h.cache.Get(ctx, cacheKey, &stats) {
		c.JSON(http.StatusOK, stats)
		return
	}

	var clinic models.Clinic
	if err := h.db.First(&clinic, "id = ?", clinicID).Error; err != nil {
		httperr.Internal(c, "clinic_not_found", "Clínica não encontrada.")
		return
	}

	now := timezone.NowIn(clinic.Timezone)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24 * time.Hour)
	weekEnd := todayStart.AddDate(0, 0, 7)

	h.db.Model(&models.Appointment{}).
		Where("clinic_id = ? AND start_time >= ? AND start_time < ?", clinicID, todayStart, todayEnd).
		Count(&stats.AppointmentsToday)

	h.db.Model(&models.Appointment{}).
		Where("clinic_id = ? AND start_time >= ? AND start_time < ?", clinicID, todayStart, weekEnd).
		Count(&stats.AppointmentsThisWeek)

	h.db.Model(&models.Pet{}).
		Where("clinic_id = ?", clinicID).
		Count(&stats.TotalPets)

	h.db.Model(&models.Owner{}).
		Where("clinic_id = ?", clinicID).
		Count(&stats.TotalOwners)

	h.db.Model(&models.Invoice{}).
		Where("clinic_id = ? AND status = 'draft'", clinicID).
		Count(&stats.InvoicesDraft)

	h.db.Model(&models.Invoice{}).
		Where("clinic_id = ? AND status = 'sent'", clinicID).
		Count(&stats.InvoicesSent)

	stats.RevenuePaid = h.sumInvoices(clinicID, []string{"paid"})
	stats.RevenueOutstanding = h.sumInvoices(clinicID, []string{"sent", "overdue"})

	h.cache.Set(ctx, cacheKey, stats, dashboardCacheTTL)

	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) sumInvoices(clinicID uuid.UUID, statuses []string) decimal.Decimal {
	var raw decimal.NullDecimal

	h.db.Model(&models.Invoice{}).
		Where("clinic_id = ? AND status IN ?", clinicID, statuses).
		Select("SUM(total)").
		Scan(&raw)

	if !raw.Valid {
		return decimal.Zero
	}
	return raw.Decimal
}
