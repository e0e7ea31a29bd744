package appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/CocoPetControl/clinic-api/internal/domain/appointment"
	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/models"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type fakeRepo struct {
	pets         map[uuid.UUID]models.Pet
	vets         map[uuid.UUID]models.User
	appointments map[uuid.UUID]models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		pets:         map[uuid.UUID]models.Pet{},
		vets:         map[uuid.UUID]models.User{},
		appointments: map[uuid.UUID]models.Appointment{},
	}
}

func (r *fakeRepo) GetPetForClinic(ctx context.Context, petID, clinicID uuid.UUID) (*models.Pet, error) {
	p, ok := r.pets[petID]
	if !ok || p.ClinicID != clinicID {
		return nil, errRepoNotFound
	}
	return &p, nil
}

func (r *fakeRepo) GetVetForClinic(ctx context.Context, vetID, clinicID uuid.UUID) (*models.User, error) {
	v, ok := r.vets[vetID]
	if !ok || v.ClinicID != clinicID {
		return nil, errRepoNotFound
	}
	return &v, nil
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	ap.ID = uuid.New()
	ap.CreatedAt = time.Now()

	max := 0
	for _, stored := range r.appointments {
		if stored.ClinicID == ap.ClinicID && stored.AppointmentNumber != nil && *stored.AppointmentNumber > max {
			max = *stored.AppointmentNumber
		}
	}
	next := max + 1
	ap.AppointmentNumber = &next

	r.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) GetAppointmentForClinic(ctx context.Context, appointmentID, clinicID uuid.UUID) (*models.Appointment, error) {
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.ClinicID != clinicID {
		return nil, errRepoNotFound
	}
	if pet, ok := r.pets[ap.PetID]; ok {
		ap.Pet = pet
	}
	return &ap, nil
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if _, ok := r.appointments[ap.ID]; !ok {
		return errRepoNotFound
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) DeleteAppointment(ctx context.Context, appointmentID, clinicID uuid.UUID) error {
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.ClinicID != clinicID {
		return errRepoNotFound
	}
	delete(r.appointments, appointmentID)
	return nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, clinicID uuid.UUID, start, end time.Time) ([]models.Appointment, error) {
	out := make([]models.Appointment, 0)
	for _, ap := range r.appointments {
		if ap.ClinicID != clinicID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		if pet, ok := r.pets[ap.PetID]; ok {
			ap.Pet = pet
		}
		if ap.VetID != nil {
			if vet, ok := r.vets[*ap.VetID]; ok {
				ap.Vet = &vet
			}
		}
		out = append(out, ap)
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// -------------------------
// Fixtures
// -------------------------

func seed(r *fakeRepo) (clinicID, userID, petID uuid.UUID) {
	clinicID = uuid.New()
	userID = uuid.New()
	petID = uuid.New()

	ownerID := uuid.New()
	r.pets[petID] = models.Pet{
		ID:       petID,
		ClinicID: clinicID,
		OwnerID:  ownerID,
		Owner: models.Owner{
			ID:        ownerID,
			ClinicID:  clinicID,
			FirstName: "Jamie",
			LastName:  "Rivera",
		},
		Name:    "Biscuit",
		Species: "dog",
	}
	return
}

func at(hour, min int) time.Time {
	return time.Date(2024, 3, 12, hour, min, 0, 0, time.UTC)
}

// -------------------------
// Create
// -------------------------

func TestCreateAppointment_OK(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)
	uc := NewCreateAppointment(repo, nil)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClinicID:  clinicID,
		UserID:    userID,
		PetID:     petID,
		StartTime: at(9, 0),
		EndTime:   at(9, 45),
		Reason:    "Annual checkup",
	})
	require.NoError(t, err)

	assert.Equal(t, "scheduled", ap.Status)
	require.NotNil(t, ap.AppointmentNumber)
	assert.Equal(t, 1, *ap.AppointmentNumber)
}

func TestCreateAppointment_InvertedIntervalRejected(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)
	uc := NewCreateAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClinicID:  clinicID,
		UserID:    userID,
		PetID:     petID,
		StartTime: at(10, 0),
		EndTime:   at(9, 0),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "end_not_after_start"))
	assert.Empty(t, repo.appointments)
}

func TestCreateAppointment_ZeroLengthRejected(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)
	uc := NewCreateAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClinicID:  clinicID,
		UserID:    userID,
		PetID:     petID,
		StartTime: at(9, 0),
		EndTime:   at(9, 0),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "end_not_after_start"))
}

func TestCreateAppointment_PetFromAnotherClinic(t *testing.T) {
	repo := newFakeRepo()
	_, userID, petID := seed(repo)
	uc := NewCreateAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClinicID:  uuid.New(), // outra clínica
		UserID:    userID,
		PetID:     petID,
		StartTime: at(9, 0),
		EndTime:   at(9, 30),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "pet_not_found"))
}

func TestCreateAppointment_UnknownVet(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)
	uc := NewCreateAppointment(repo, nil)

	vetID := uuid.New()
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClinicID:  clinicID,
		UserID:    userID,
		PetID:     petID,
		VetID:     &vetID,
		StartTime: at(9, 0),
		EndTime:   at(9, 30),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "vet_not_found"))
}

func TestCreateAppointment_SequentialNumbersPerClinic(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)
	uc := NewCreateAppointment(repo, nil)

	for want := 1; want <= 3; want++ {
		ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
			ClinicID:  clinicID,
			UserID:    userID,
			PetID:     petID,
			StartTime: at(8+want, 0),
			EndTime:   at(8+want, 30),
		})
		require.NoError(t, err)
		assert.Equal(t, want, *ap.AppointmentNumber)
	}
}

// -------------------------
// Edit
// -------------------------

func createOne(t *testing.T, repo *fakeRepo, clinicID, userID, petID uuid.UUID) *models.Appointment {
	t.Helper()
	uc := NewCreateAppointment(repo, nil)
	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClinicID:  clinicID,
		UserID:    userID,
		PetID:     petID,
		StartTime: at(9, 0),
		EndTime:   at(10, 0),
	})
	require.NoError(t, err)
	return ap
}

func TestEditAppointment_ResizeRevalidatesInterval(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)
	ap := createOne(t, repo, clinicID, userID, petID)

	uc := NewEditAppointment(repo, nil)

	// mover só o end para antes do start armazenado
	badEnd := at(8, 30)
	_, err := uc.Execute(context.Background(), EditAppointmentInput{
		ClinicID:      clinicID,
		UserID:        userID,
		AppointmentID: ap.ID,
		EndTime:       &badEnd,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "end_not_after_start"))

	stored := repo.appointments[ap.ID]
	assert.Equal(t, at(9, 0), stored.StartTime)
	assert.Equal(t, at(10, 0), stored.EndTime)
}

func TestEditAppointment_StatusAnyToAny(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)
	ap := createOne(t, repo, clinicID, userID, petID)

	uc := NewEditAppointment(repo, nil)

	// scheduled → completed → scheduled, sem grafo de transições
	for _, status := range []string{"completed", "scheduled", "no-show", "cancelled"} {
		s := status
		got, err := uc.Execute(context.Background(), EditAppointmentInput{
			ClinicID:      clinicID,
			UserID:        userID,
			AppointmentID: ap.ID,
			Status:        &s,
		})
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}
}

func TestEditAppointment_InvalidStatusRejected(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)
	ap := createOne(t, repo, clinicID, userID, petID)

	uc := NewEditAppointment(repo, nil)

	bad := "archived"
	_, err := uc.Execute(context.Background(), EditAppointmentInput{
		ClinicID:      clinicID,
		UserID:        userID,
		AppointmentID: ap.ID,
		Status:        &bad,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
	assert.Equal(t, "scheduled", repo.appointments[ap.ID].Status)
}

func TestEditAppointment_ClearVet(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)

	vetID := uuid.New()
	repo.vets[vetID] = models.User{ID: vetID, ClinicID: clinicID, FullName: "Dr. Chen", Role: "vet"}

	ap := createOne(t, repo, clinicID, userID, petID)

	uc := NewEditAppointment(repo, nil)

	got, err := uc.Execute(context.Background(), EditAppointmentInput{
		ClinicID:      clinicID,
		UserID:        userID,
		AppointmentID: ap.ID,
		VetID:         &vetID,
	})
	require.NoError(t, err)
	require.NotNil(t, got.VetID)

	nilVet := uuid.Nil
	got, err = uc.Execute(context.Background(), EditAppointmentInput{
		ClinicID:      clinicID,
		UserID:        userID,
		AppointmentID: ap.ID,
		VetID:         &nilVet,
	})
	require.NoError(t, err)
	assert.Nil(t, got.VetID)
}

// -------------------------
// Reschedule
// -------------------------

func TestReschedule_DragKeepsStatus(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)
	ap := createOne(t, repo, clinicID, userID, petID)

	// marca como completed antes do drag
	edit := NewEditAppointment(repo, nil)
	done := "completed"
	_, err := edit.Execute(context.Background(), EditAppointmentInput{
		ClinicID:      clinicID,
		UserID:        userID,
		AppointmentID: ap.ID,
		Status:        &done,
	})
	require.NoError(t, err)

	uc := NewRescheduleAppointment(repo, nil)
	got, err := uc.Execute(context.Background(), clinicID, userID, ap.ID, at(14, 0), at(15, 0))
	require.NoError(t, err)

	assert.Equal(t, at(14, 0), got.StartTime)
	assert.Equal(t, at(15, 0), got.EndTime)
	assert.Equal(t, "completed", got.Status)
}

func TestReschedule_InvertedIntervalLeavesStored(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)
	ap := createOne(t, repo, clinicID, userID, petID)

	uc := NewRescheduleAppointment(repo, nil)
	_, err := uc.Execute(context.Background(), clinicID, userID, ap.ID, at(15, 0), at(14, 0))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "end_not_after_start"))

	stored := repo.appointments[ap.ID]
	assert.Equal(t, at(9, 0), stored.StartTime)
	assert.Equal(t, at(10, 0), stored.EndTime)
}

// -------------------------
// Delete / Calendar feed
// -------------------------

func TestDeleteAppointment(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)
	ap := createOne(t, repo, clinicID, userID, petID)

	uc := NewDeleteAppointment(repo, nil)
	require.NoError(t, uc.Execute(context.Background(), clinicID, userID, ap.ID))
	assert.Empty(t, repo.appointments)
}

func TestDeleteAppointment_OtherClinic(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)
	ap := createOne(t, repo, clinicID, userID, petID)

	uc := NewDeleteAppointment(repo, nil)
	err := uc.Execute(context.Background(), uuid.New(), userID, ap.ID)
	require.Error(t, err)
	assert.Len(t, repo.appointments, 1)
}

func TestListByRange_CalendarEvent(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)
	ap := createOne(t, repo, clinicID, userID, petID)

	uc := NewListAppointmentsByRange(repo)
	events, err := uc.Execute(
		context.Background(),
		clinicID,
		at(0, 0),
		at(23, 59),
	)
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, ap.ID.String(), ev.ID)
	assert.Equal(t, fmt.Sprintf("AP-%d-001", ap.CreatedAt.Year()), ev.Reference)
	assert.Equal(t, "1h", ev.Duration)
	assert.Equal(t, "Biscuit", ev.PetName)
	assert.Equal(t, "Jamie Rivera", ev.OwnerName)
}

func TestListByRange_OutsideWindowExcluded(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, petID := seed(repo)
	createOne(t, repo, clinicID, userID, petID) // 9h–10h

	uc := NewListAppointmentsByRange(repo)
	events, err := uc.Execute(context.Background(), clinicID, at(12, 0), at(18, 0))
	require.NoError(t, err)
	assert.Empty(t, events)
}
