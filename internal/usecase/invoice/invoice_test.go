package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CocoPetControl/clinic-api/internal/email"
	"github.com/CocoPetControl/clinic-api/internal/httperr"
	"github.com/CocoPetControl/clinic-api/internal/models"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type fakeRepo struct {
	clinics  map[uuid.UUID]models.Clinic
	owners   map[uuid.UUID]models.Owner
	invoices map[uuid.UUID]models.Invoice
	items    map[uuid.UUID]models.InvoiceItem

	failHeader bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clinics:  map[uuid.UUID]models.Clinic{},
		owners:   map[uuid.UUID]models.Owner{},
		invoices: map[uuid.UUID]models.Invoice{},
		items:    map[uuid.UUID]models.InvoiceItem{},
	}
}

func (r *fakeRepo) GetClinicByID(ctx context.Context, id uuid.UUID) (*models.Clinic, error) {
	c, ok := r.clinics[id]
	if !ok {
		return nil, errRepoNotFound
	}
	return &c, nil
}

func (r *fakeRepo) GetOwnerForClinic(ctx context.Context, ownerID, clinicID uuid.UUID) (*models.Owner, error) {
	o, ok := r.owners[ownerID]
	if !ok || o.ClinicID != clinicID {
		return nil, errRepoNotFound
	}
	return &o, nil
}

func (r *fakeRepo) GetInvoiceForClinic(ctx context.Context, invoiceID, clinicID uuid.UUID) (*models.Invoice, error) {
	inv, ok := r.invoices[invoiceID]
	if !ok || inv.ClinicID != clinicID {
		return nil, errRepoNotFound
	}
	return &inv, nil
}

func (r *fakeRepo) ListItems(ctx context.Context, invoiceID uuid.UUID) ([]models.InvoiceItem, error) {
	out := make([]models.InvoiceItem, 0)
	for _, it := range r.items {
		if it.InvoiceID == invoiceID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeRepo) SaveWithItems(
	ctx context.Context,
	inv *models.Invoice,
	items []models.InvoiceItem,
	removedItemIDs []uuid.UUID,
) error {
	if r.failHeader {
		return errors.New("repo: header write failed")
	}

	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
		inv.InvoiceNumber = r.nextNumber(inv.ClinicID)
		inv.CreatedAt = time.Now()
	}
	r.invoices[inv.ID] = *inv

	for _, id := range removedItemIDs {
		delete(r.items, id)
	}

	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].InvoiceID = inv.ID
		r.items[items[i].ID] = items[i]
	}

	return nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, invoiceID uuid.UUID, status string) error {
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return errRepoNotFound
	}
	inv.Status = status
	r.invoices[invoiceID] = inv
	return nil
}

func (r *fakeRepo) DeleteInvoice(ctx context.Context, invoiceID, clinicID uuid.UUID) error {
	inv, ok := r.invoices[invoiceID]
	if !ok || inv.ClinicID != clinicID {
		return errRepoNotFound
	}
	delete(r.invoices, invoiceID)
	for id, it := range r.items {
		if it.InvoiceID == invoiceID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *fakeRepo) nextNumber(clinicID uuid.UUID) int {
	max := 0
	for _, inv := range r.invoices {
		if inv.ClinicID == clinicID && inv.InvoiceNumber > max {
			max = inv.InvoiceNumber
		}
	}
	return max + 1
}

// -------------------------
// Test mailer
// -------------------------

type fakeMailer struct {
	sent []email.InvoiceMessage
	fail bool
}

func (m *fakeMailer) SendInvoice(ctx context.Context, msg email.InvoiceMessage) (string, error) {
	if m.fail {
		return "", errors.New("mailer: boom")
	}
	m.sent = append(m.sent, msg)
	return "msg_123", nil
}

// -------------------------
// Fixtures
// -------------------------

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func seed(r *fakeRepo) (clinicID, userID, ownerID uuid.UUID) {
	clinicID = uuid.New()
	userID = uuid.New()
	ownerID = uuid.New()

	r.clinics[clinicID] = models.Clinic{ID: clinicID, Name: "CoCo Pet Control", Phone: "555-0100"}
	r.owners[ownerID] = models.Owner{
		ID:        ownerID,
		ClinicID:  clinicID,
		FirstName: "Jamie",
		LastName:  "Rivera",
		Email:     "jamie@example.com",
	}
	return
}

func baseInput(clinicID, userID, ownerID uuid.UUID) SaveInvoiceInput {
	return SaveInvoiceInput{
		ClinicID:  clinicID,
		UserID:    userID,
		OwnerID:   ownerID,
		Status:    "draft",
		IssueDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

// -------------------------
// SaveInvoiceWithItems
// -------------------------

func TestSaveInvoice_TotalMatchesItems(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)
	uc := NewSaveInvoiceWithItems(repo, nil)

	in := baseInput(clinicID, userID, ownerID)
	in.Items = []ItemInput{
		{Description: "Exam", Quantity: 1, UnitPrice: d("50")},
		{Description: "Vaccine", Quantity: 2, UnitPrice: d("25")},
	}

	inv, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	stored := repo.invoices[inv.ID]
	assert.True(t, stored.Total.Equal(d("100")), "got %s", stored.Total)

	items, _ := repo.ListItems(context.Background(), inv.ID)
	assert.Len(t, items, 2)
	assert.Equal(t, 1, stored.InvoiceNumber)
}

func TestSaveInvoice_IdempotentResave(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)
	uc := NewSaveInvoiceWithItems(repo, nil)

	in := baseInput(clinicID, userID, ownerID)
	in.Items = []ItemInput{
		{Description: "Exam", Quantity: 1, UnitPrice: d("80")},
	}

	inv, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	items, _ := repo.ListItems(context.Background(), inv.ID)
	require.Len(t, items, 1)

	// re-save idêntico: mesmo total, mesma contagem de itens
	again := baseInput(clinicID, userID, ownerID)
	again.InvoiceID = &inv.ID
	again.Items = []ItemInput{
		{ID: &items[0].ID, Description: "Exam", Quantity: 1, UnitPrice: d("80")},
	}

	_, err = uc.Execute(context.Background(), again)
	require.NoError(t, err)

	stored := repo.invoices[inv.ID]
	assert.True(t, stored.Total.Equal(d("80")))

	items, _ = repo.ListItems(context.Background(), inv.ID)
	assert.Len(t, items, 1)
}

func TestSaveInvoice_RemoveItem(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)
	uc := NewSaveInvoiceWithItems(repo, nil)

	in := baseInput(clinicID, userID, ownerID)
	in.Items = []ItemInput{
		{Description: "Exam", Quantity: 1, UnitPrice: d("50")},
		{Description: "Vaccine", Quantity: 1, UnitPrice: d("30")},
		{Description: "Nail trim", Quantity: 1, UnitPrice: d("20")},
	}

	inv, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	items, _ := repo.ListItems(context.Background(), inv.ID)
	require.Len(t, items, 3)

	var removed uuid.UUID
	kept := make([]ItemInput, 0, 2)
	for _, it := range items {
		if it.Description == "Nail trim" {
			removed = it.ID
			continue
		}
		id := it.ID
		kept = append(kept, ItemInput{
			ID:          &id,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	edit := baseInput(clinicID, userID, ownerID)
	edit.InvoiceID = &inv.ID
	edit.Items = kept
	edit.RemovedItemIDs = []uuid.UUID{removed}

	_, err = uc.Execute(context.Background(), edit)
	require.NoError(t, err)

	items, _ = repo.ListItems(context.Background(), inv.ID)
	assert.Len(t, items, 2)

	stored := repo.invoices[inv.ID]
	assert.True(t, stored.Total.Equal(d("80")), "got %s", stored.Total)
}

func TestSaveInvoice_LastItemRemoved_TotalResetsToZero(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)
	uc := NewSaveInvoiceWithItems(repo, nil)

	in := baseInput(clinicID, userID, ownerID)
	in.Items = []ItemInput{{Description: "Exam", Quantity: 1, UnitPrice: d("50")}}

	inv, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	items, _ := repo.ListItems(context.Background(), inv.ID)
	require.Len(t, items, 1)

	edit := baseInput(clinicID, userID, ownerID)
	edit.InvoiceID = &inv.ID
	edit.RemovedItemIDs = []uuid.UUID{items[0].ID}

	_, err = uc.Execute(context.Background(), edit)
	require.NoError(t, err)

	stored := repo.invoices[inv.ID]
	assert.True(t, stored.Total.IsZero(), "got %s", stored.Total)

	items, _ = repo.ListItems(context.Background(), inv.ID)
	assert.Len(t, items, 0)
}

func TestSaveInvoice_ManualTotalWithoutItems(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)
	uc := NewSaveInvoiceWithItems(repo, nil)

	in := baseInput(clinicID, userID, ownerID)
	in.ManualTotal = d("150.75")

	inv, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	stored := repo.invoices[inv.ID]
	assert.True(t, stored.Total.Equal(d("150.75")))
}

func TestSaveInvoice_DueDateBeforeIssueRejected(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)
	uc := NewSaveInvoiceWithItems(repo, nil)

	in := baseInput(clinicID, userID, ownerID)
	due := in.IssueDate.AddDate(0, 0, -5)
	in.DueDate = &due

	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_due_date"))
	assert.Empty(t, repo.invoices)
}

func TestSaveInvoice_DueDateEqualIssueAccepted(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)
	uc := NewSaveInvoiceWithItems(repo, nil)

	in := baseInput(clinicID, userID, ownerID)
	due := in.IssueDate
	in.DueDate = &due

	_, err := uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestSaveInvoice_InvalidItemRejectedBeforeWrite(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)
	uc := NewSaveInvoiceWithItems(repo, nil)

	in := baseInput(clinicID, userID, ownerID)
	in.Items = []ItemInput{{Description: "Exam", Quantity: 0, UnitPrice: d("50")}}

	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_quantity"))
	assert.Empty(t, repo.invoices)
}

func TestSaveInvoice_HeaderFailureAbortsEverything(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)
	repo.failHeader = true
	uc := NewSaveInvoiceWithItems(repo, nil)

	in := baseInput(clinicID, userID, ownerID)
	in.Items = []ItemInput{{Description: "Exam", Quantity: 1, UnitPrice: d("50")}}

	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.Empty(t, repo.invoices)
	assert.Empty(t, repo.items)
}

func TestSaveInvoice_SequentialNumbersPerClinic(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)
	uc := NewSaveInvoiceWithItems(repo, nil)

	first, err := uc.Execute(context.Background(), baseInput(clinicID, userID, ownerID))
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), baseInput(clinicID, userID, ownerID))
	require.NoError(t, err)

	assert.Equal(t, 1, repo.invoices[first.ID].InvoiceNumber)
	assert.Equal(t, 2, repo.invoices[second.ID].InvoiceNumber)
}

// -------------------------
// SendInvoice
// -------------------------

func seedInvoice(repo *fakeRepo, clinicID, ownerID uuid.UUID, status string) uuid.UUID {
	id := uuid.New()
	repo.invoices[id] = models.Invoice{
		ID:            id,
		ClinicID:      clinicID,
		OwnerID:       ownerID,
		InvoiceNumber: 7,
		Status:        status,
		Total:         d("0"),
		IssueDate:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	for _, it := range []models.InvoiceItem{
		{ID: uuid.New(), InvoiceID: id, Description: "Exam", Quantity: 1, UnitPrice: d("50")},
		{ID: uuid.New(), InvoiceID: id, Description: "Vaccine", Quantity: 2, UnitPrice: d("25")},
	} {
		repo.items[it.ID] = it
	}

	return id
}

func TestSendInvoice_DraftBecomesSent(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)
	invID := seedInvoice(repo, clinicID, ownerID, "draft")

	mailer := &fakeMailer{}
	uc := NewSendInvoice(repo, mailer, nil)

	res, err := uc.Execute(context.Background(), clinicID, userID, invID)
	require.NoError(t, err)

	assert.Equal(t, "msg_123", res.MessageID)
	assert.Equal(t, "jamie@example.com", res.SentTo)
	assert.Equal(t, "sent", repo.invoices[invID].Status)

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "INV-007", msg.Reference)
	assert.Equal(t, "$100.00", msg.Total)
	assert.Len(t, msg.Lines, 2)
}

func TestSendInvoice_ResendKeepsStatus(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)
	invID := seedInvoice(repo, clinicID, ownerID, "sent")

	mailer := &fakeMailer{}
	uc := NewSendInvoice(repo, mailer, nil)

	res, err := uc.Execute(context.Background(), clinicID, userID, invID)
	require.NoError(t, err)

	// reenvio: e-mail sai de novo, status não re-transiciona
	assert.Len(t, mailer.sent, 1)
	assert.Equal(t, "sent", res.Status)
	assert.Equal(t, "sent", repo.invoices[invID].Status)
}

func TestSendInvoice_FailureLeavesStatusUntouched(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)
	invID := seedInvoice(repo, clinicID, ownerID, "draft")

	mailer := &fakeMailer{fail: true}
	uc := NewSendInvoice(repo, mailer, nil)

	_, err := uc.Execute(context.Background(), clinicID, userID, invID)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "email_failed"))
	assert.Equal(t, "draft", repo.invoices[invID].Status)
}

func TestSendInvoice_OwnerWithoutEmail(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)

	owner := repo.owners[ownerID]
	owner.Email = ""
	repo.owners[ownerID] = owner

	invID := seedInvoice(repo, clinicID, ownerID, "draft")

	mailer := &fakeMailer{}
	uc := NewSendInvoice(repo, mailer, nil)

	_, err := uc.Execute(context.Background(), clinicID, userID, invID)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "owner_has_no_email"))
	assert.Empty(t, mailer.sent)
}

func TestSendInvoice_ManualTotalWhenNoItems(t *testing.T) {
	repo := newFakeRepo()
	clinicID, userID, ownerID := seed(repo)

	id := uuid.New()
	repo.invoices[id] = models.Invoice{
		ID:            id,
		ClinicID:      clinicID,
		OwnerID:       ownerID,
		InvoiceNumber: 9,
		Status:        "draft",
		Total:         d("42.50"),
		IssueDate:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	mailer := &fakeMailer{}
	uc := NewSendInvoice(repo, mailer, nil)

	_, err := uc.Execute(context.Background(), clinicID, userID, id)
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "$42.50", mailer.sent[0].Total)
}
