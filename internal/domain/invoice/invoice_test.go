package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/models"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestValidateDueDate(t *testing.T) {
	issue := date(2024, 1, 10)

	// sem vencimento
	assert.NoError(t, ValidateDueDate(issue, nil))

	// igual à emissão é aceito
	due := date(2024, 1, 10)
	assert.NoError(t, ValidateDueDate(issue, &due))

	// depois da emissão
	due = date(2024, 2, 1)
	assert.NoError(t, ValidateDueDate(issue, &due))
}

func TestValidateDueDate_BeforeIssue(t *testing.T) {
	issue := date(2024, 1, 10)
	due := date(2024, 1, 5)

	err := ValidateDueDate(issue, &due)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_due_date"))
}

func TestMarkSent_FromDraft(t *testing.T) {
	inv := &models.Invoice{Status: string(StatusDraft)}

	assert.True(t, MarkSent(inv))
	assert.Equal(t, string(StatusSent), inv.Status)
}

func TestMarkSent_Resend(t *testing.T) {
	inv := &models.Invoice{Status: string(StatusSent)}

	// reenvio: sem transição, sem erro
	assert.False(t, MarkSent(inv))
	assert.Equal(t, string(StatusSent), inv.Status)
}

func TestMarkSent_OtherStatusesUntouched(t *testing.T) {
	for _, s := range []Status{StatusPaid, StatusOverdue, StatusCancelled} {
		inv := &models.Invoice{Status: string(s)}
		assert.False(t, MarkSent(inv))
		assert.Equal(t, string(s), inv.Status)
	}
}

func TestValidateStatus(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled} {
		assert.NoError(t, ValidateStatus(s))
	}

	err := ValidateStatus(Status("archived"))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}
