package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/models"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestValidateInterval(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		ok    bool
	}{
		{"end after start", base, base.Add(30 * time.Minute), true},
		{"end equals start", base, base, false},
		{"end before start", base, base.Add(-time.Minute), false},
		{"one second apart", base, base.Add(time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInterval(tt.start, tt.end)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, httperr.IsBusiness(err, "end_not_after_start"))
			}
		})
	}
}

func TestReschedule(t *testing.T) {
	ap := &models.Appointment{
		StartTime: base,
		EndTime:   base.Add(time.Hour),
		Status:    string(StatusScheduled),
	}

	// drag: os dois lados andam juntos
	err := Reschedule(ap, base.Add(2*time.Hour), base.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, base.Add(2*time.Hour), ap.StartTime)
	assert.Equal(t, base.Add(3*time.Hour), ap.EndTime)
	assert.Equal(t, string(StatusScheduled), ap.Status)

	// resize: só o fim anda
	err = Reschedule(ap, ap.StartTime, ap.StartTime.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, ap.EndTime.Sub(ap.StartTime))
}

func TestReschedule_RejectsInvertedInterval(t *testing.T) {
	ap := &models.Appointment{
		StartTime: base,
		EndTime:   base.Add(time.Hour),
	}

	err := Reschedule(ap, base, base)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "end_not_after_start"))

	// falha não pode deixar o intervalo pela metade
	assert.Equal(t, base, ap.StartTime)
	assert.Equal(t, base.Add(time.Hour), ap.EndTime)
}

func TestSetStatus_AnyToAny(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusCompleted)}

	// sem grafo de transição: completed pode voltar para scheduled
	require.NoError(t, SetStatus(ap, StatusScheduled))
	assert.Equal(t, "scheduled", ap.Status)

	require.NoError(t, SetStatus(ap, StatusNoShow))
	assert.Equal(t, "no-show", ap.Status)
}

func TestSetStatus_Invalid(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}

	err := SetStatus(ap, Status("waiting"))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
	assert.Equal(t, "scheduled", ap.Status)
}

func TestSetStatus_NeverTouchesInterval(t *testing.T) {
	ap := &models.Appointment{
		StartTime: base,
		EndTime:   base.Add(time.Hour),
		Status:    string(StatusScheduled),
	}

	require.NoError(t, SetStatus(ap, StatusCancelled))
	assert.Equal(t, base, ap.StartTime)
	assert.Equal(t, base.Add(time.Hour), ap.EndTime)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{45, "45 mins"},
		{59, "59 mins"},
		{60, "1h"},
		{90, "1h 30m"},
		{120, "2h"},
		{150, "2h 30m"},
	}

	for _, tt := range tests {
		got := FormatDuration(base, base.Add(time.Duration(tt.mins)*time.Minute))
		assert.Equal(t, tt.want, got)
	}
}
