package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/CocoPetControl/clinic-api/internal/domain/appointment"
	"github.com/CocoPetControl/clinic-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Pet / Vet
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPetForClinic(
	ctx context.Context,
	petID uuid.UUID,
	clinicID uuid.UUID,
) (*models.Pet, error) {

	var pet models.Pet
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("id = ? AND clinic_id = ?", petID, clinicID).
		First(&pet).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *AppointmentGormRepository) GetVetForClinic(
	ctx context.Context,
	vetID uuid.UUID,
	clinicID uuid.UUID,
) (*models.User, error) {

	var vet models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", vetID, clinicID).
		First(&vet).Error; err != nil {
		return nil, err
	}
	return &vet, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	// número sequencial por clínica, atribuído na mesma transação
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var max int
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("clinic_id = ?", ap.ClinicID).
			Select("COALESCE(MAX(appointment_number), 0)").
			Scan(&max).Error; err != nil {
			return err
		}

		next := max + 1
		ap.AppointmentNumber = &next

		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) GetAppointmentForClinic(
	ctx context.Context,
	appointmentID uuid.UUID,
	clinicID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Pet.Owner").
		Preload("Vet").
		Preload("Vitals").
		Preload("Prescriptions").
		Preload("Recommendations").
		Where("id = ? AND clinic_id = ?", appointmentID, clinicID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit("Pet", "Vet", "Vitals", "Prescriptions", "Recommendations").
		Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	appointmentID uuid.UUID,
	clinicID uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", appointmentID, clinicID).
		Delete(&models.Appointment{}).Error
}

// --------------------------------------------------
// Calendar feed
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	clinicID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Pet.Owner").
		Preload("Vet").
		Where(
			"clinic_id = ? AND start_time >= ? AND start_time < ?",
			clinicID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
