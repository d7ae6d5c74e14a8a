package remote

import (
	"context"
	"net/http"
	"testing"
	"time"

	"evrental-staff-core/internal/datasource"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"
	"evrental-staff-core/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureDoer struct {
	method string
	path   string
	body   any
	form   *transport.Form
	calls  int
}

func (c *captureDoer) DoJSON(_ context.Context, method, path string, body any) (*transport.Response, error) {
	c.calls++
	c.method, c.path, c.body = method, path, body
	return &transport.Response{StatusCode: http.StatusOK, Body: []byte(`{"success":true}`)}, nil
}

func (c *captureDoer) DoMultipart(_ context.Context, method, path string, form *transport.Form) (*transport.Response, error) {
	c.calls++
	c.method, c.path, c.form = method, path, form
	return &transport.Response{StatusCode: http.StatusOK, Body: []byte(`{"success":true}`)}, nil
}

func fixedClock() Clock {
	at := time.UnixMilli(1_760_000_000_123)
	return func() time.Time { return at }
}

func TestRentalReturnRepository_AnalyzeReturnFileNames(t *testing.T) {
	doer := &captureDoer{}
	repo := NewRentalReturnRepository(datasource.NewRentalReturnDataSource(doer), fixedClock())

	_, err := repo.AnalyzeReturn(context.Background(), "B1", []string{"/cam/a.JPG", "/cam/b.png", "/cam/raw"})
	require.NoError(t, err)
	assert.Equal(t, 1, doer.calls)
	assert.Equal(t, datasource.PathAnalyzeReturn, doer.path)
	assert.Equal(t, []string{
		"return_1760000000123_0.jpg",
		"return_1760000000123_1.png",
		"return_1760000000123_2.jpg",
	}, doer.form.FileNames("ReturnImages"))
}

func TestRentalReturnRepository_CreateReceipt(t *testing.T) {
	doer := &captureDoer{}
	repo := NewRentalReturnRepository(datasource.NewRentalReturnDataSource(doer), fixedClock())

	t.Run("with checklist", func(t *testing.T) {
		_, err := repo.CreateReceipt(context.Background(), repository.ReceiptInput{
			BookingID:          "B1",
			RentalReceiptID:    "R1",
			ActualReturnAt:     time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC),
			EndOdometerKm:      -3,
			ChecklistImagePath: "/cam/checklist.jpeg",
			AdditionalFees:     []domain.AdditionalFee{{FeeType: domain.FeeTypeCleaning, Amount: 100000}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"checklist_1760000000123.jpeg"}, doer.form.FileNames("ChecklistImage"))
		// no validation here: negative odometer reaches the server unchanged
		assert.Equal(t, []string{"-3"}, doer.form.FieldValues("EndOdometerKm"))
		assert.Equal(t, []string{`[{"feeType":"cleaning","amount":100000}]`}, doer.form.FieldValues("AdditionalFees"))
	})

	t.Run("without checklist", func(t *testing.T) {
		_, err := repo.CreateReceipt(context.Background(), repository.ReceiptInput{BookingID: "B1"})
		require.NoError(t, err)
		assert.Empty(t, doer.form.FileNames("ChecklistImage"))
	})
}

func TestRentalReturnRepository_Finalize(t *testing.T) {
	doer := &captureDoer{}
	repo := NewRentalReturnRepository(datasource.NewRentalReturnDataSource(doer), nil)

	_, err := repo.FinalizeReturn(context.Background(), "B1", true)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, doer.method)
	assert.Equal(t, domain.FinalizeReturnRequest{BookingID: "B1", RenterConfirmed: true}, doer.body)
}

func TestAuthRepository_PassesCredentialsUnchanged(t *testing.T) {
	doer := &captureDoer{}
	repo := NewAuthRepository(datasource.NewAuthDataSource(doer))

	_, err := repo.Login(context.Background(), "  staff01  ", " pass word ")
	require.NoError(t, err)
	assert.Equal(t, domain.LoginRequest{Username: "  staff01  ", Password: " pass word "}, doer.body)
}

func TestDocumentRepository_Upload(t *testing.T) {
	doer := &captureDoer{}
	repo := NewDocumentRepository(datasource.NewDocumentDataSource(doer), fixedClock())

	_, err := repo.UploadCitizenID(context.Background(), repository.DocumentInput{
		IDNumber:       "079123456789",
		FrontImagePath: "/cam/front.jpg",
		BackImagePath:  "/cam/back.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, datasource.PathCitizenID, doer.path)
	assert.Equal(t, []string{"citizen_front_1760000000123.jpg"}, doer.form.FileNames("FrontImage"))
	assert.Equal(t, []string{"citizen_back_1760000000123.jpg"}, doer.form.FileNames("BackImage"))
}

func TestChargingRepository_Complete(t *testing.T) {
	doer := &captureDoer{}
	repo := NewChargingRepository(datasource.NewChargingDataSource(doer))

	_, err := repo.Complete(context.Background(), "C1", 90, 2.25)
	require.NoError(t, err)
	assert.Equal(t, domain.CompleteChargingRequest{ChargingID: "C1", EndBattery: 90, KwhCharged: 2.25}, doer.body)
}
