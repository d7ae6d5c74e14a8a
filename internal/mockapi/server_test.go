package mockapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"evrental-staff-core/internal/apperror"
	"evrental-staff-core/internal/config"
	"evrental-staff-core/internal/container"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/gps"
	"evrental-staff-core/internal/mockapi"
	"evrental-staff-core/internal/repository"
	"evrental-staff-core/internal/storage"
	"evrental-staff-core/internal/usecase"
	"evrental-staff-core/internal/workflow"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// device tokens and sharing sessions are checked against the wall clock
var fixedNow = time.Now().UTC().Truncate(time.Second)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []domain.ReturnNotice
}

func (n *recordingNotifier) NotifyReturnFinalized(ctx context.Context, notice domain.ReturnNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return nil
}

type env struct {
	srv      *mockapi.Server
	ts       *httptest.Server
	c        *container.Container
	notifier *recordingNotifier
	dir      string
}

func setup(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()

	var handler http.Handler
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	images, err := storage.NewLocalStore(ts.URL, filepath.Join(dir, "uploads"))
	require.NoError(t, err)
	srv, err := mockapi.New(mockapi.Options{
		JWTSecret:         "test-secret",
		Images:            images,
		Clock:             func() time.Time { return fixedNow },
		TelemetryInterval: 5 * time.Millisecond,
		BcryptCost:        bcrypt.MinCost,
	})
	require.NoError(t, err)
	handler = srv.Handler()

	cfg := &config.Config{
		API:      config.APIConfig{BaseURL: ts.URL, TimeoutSeconds: 5},
		Drafts:   config.DraftsConfig{Driver: "memory"},
		Charging: config.ChargingConfig{BatteryCapacityKwh: 5},
		Telemetry: config.TelemetryConfig{
			URL:                  "ws" + strings.TrimPrefix(ts.URL, "http") + "/telemetry",
			Origin:               "http://localhost/",
			InitialBackoffMillis: 10,
			MaxBackoffSeconds:    1,
			HealthySeconds:       60,
		},
	}
	notifier := &recordingNotifier{}
	c, err := container.New(cfg, container.WithNotifier(notifier), container.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	return &env{srv: srv, ts: ts, c: c, notifier: notifier, dir: dir}
}

func (e *env) login(t *testing.T) {
	t.Helper()
	res, err := e.c.Auth().Login.Execute(context.Background(), usecase.LoginInput{Username: "staff01", Password: mockapi.SeedPassword})
	require.NoError(t, err)
	e.c.Session.AddAuth(res.AuthTokens, res.User)
}

func (e *env) photo(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(p, []byte("\xff\xd8\xff fake jpeg "+name), 0644))
	return p
}

func TestAuthFlows(t *testing.T) {
	ctx := context.Background()

	t.Run("login and profile", func(t *testing.T) {
		e := setup(t)
		e.login(t)

		user, err := e.c.Auth().GetProfile.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, "staff01", user.Username)

		updated, err := e.c.Auth().UpdateProfile.Execute(ctx, domain.UpdateProfileRequest{Phone: "0901234567"})
		require.NoError(t, err)
		assert.Equal(t, "0901234567", updated.Phone)
	})

	t.Run("wrong password", func(t *testing.T) {
		e := setup(t)
		_, err := e.c.Auth().Login.Execute(ctx, usecase.LoginInput{Username: "staff01", Password: "wrong-pass"})
		require.Error(t, err)
		assert.Equal(t, apperror.AuthErrorInvalidCredentials, apperror.ClassifyAuthError(err))
	})

	t.Run("too many failures lock the account", func(t *testing.T) {
		e := setup(t)
		var err error
		for i := 0; i < 5; i++ {
			_, err = e.c.Auth().Login.Execute(ctx, usecase.LoginInput{Username: "staff01", Password: "wrong-pass"})
		}
		assert.Equal(t, apperror.AuthErrorLocked, apperror.ClassifyAuthError(err))
	})

	t.Run("unverified then otp", func(t *testing.T) {
		e := setup(t)
		_, err := e.c.Auth().Login.Execute(ctx, usecase.LoginInput{Username: "staff02", Password: mockapi.SeedPassword})
		var ue *apperror.UnverifiedAccountError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, "staff02", ue.Username)

		_, err = e.c.Auth().VerifyOtp.Execute(ctx, "staff02@evrental.vn", "000000")
		require.Error(t, err)

		require.NoError(t, e.c.Auth().ResendOtp.Execute(ctx, "staff02@evrental.vn"))
		otp := e.srv.OTP("staff02@evrental.vn")
		require.Len(t, otp, 6)

		res, err := e.c.Auth().VerifyOtp.Execute(ctx, "staff02@evrental.vn", otp)
		require.NoError(t, err)
		assert.True(t, res.User.IsVerified)
		assert.NotEmpty(t, res.AccessToken)
	})

	t.Run("google login", func(t *testing.T) {
		e := setup(t)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iss":   "https://accounts.google.com",
			"sub":   "109876543210987654321",
			"email": "staff01@evrental.vn",
			"aud":   "evrental-staff.apps.googleusercontent.com",
		}).SignedString([]byte("google"))
		require.NoError(t, err)

		res, err := e.c.Auth().GoogleLogin.Execute(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, "staff-1", res.User.ID)
	})

	t.Run("protected route without token", func(t *testing.T) {
		e := setup(t)
		_, err := e.c.Auth().GetProfile.Execute(ctx)
		assert.Equal(t, http.StatusUnauthorized, apperror.StatusCode(err))
	})
}

func TestReturnWorkflowEndToEnd(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	e.login(t)

	// a charging session before the return adds 2 kWh at 3,500 VND
	calc := e.c.ChargingCalculator()
	calc.SetStart(60)
	kwh := calc.SetEnd(100)
	require.InDelta(t, 2.0, kwh, 1e-9)
	rec, err := e.c.Charging().Start(ctx, "BK001", 60)
	require.NoError(t, err)
	_, err = e.c.Charging().Complete(ctx, usecase.CompleteChargingInput{ChargingID: rec.ID, StartBattery: 60, EndBattery: 100, KwhCharged: kwh})
	require.NoError(t, err)

	wf, err := e.c.Workflow(ctx)
	require.NoError(t, err)

	draft, err := wf.Start(ctx, "BK001", "")
	require.NoError(t, err)

	draft, err = wf.CapturePhotos(ctx, draft.ID, []string{e.photo(t, "front.jpg"), e.photo(t, "rear_scratch.jpg")})
	require.NoError(t, err)
	require.Len(t, draft.Analysis.UploadedImageURLs, 2)
	// upload names are rewritten by the client; the marker travels in the bytes
	assert.True(t, draft.Analysis.DamageResult.HasNewDamages)
	require.Len(t, draft.Analysis.DamageResult.Suggestions, 1)
	assert.Contains(t, draft.Analysis.DamageResult.Suggestions[0].Description, "số 2")
	assert.Equal(t, int64(300_000), draft.Analysis.DamageResult.Suggestions[0].SuggestedFee)

	// the uploaded image can be downloaded again
	resp, err := http.Get(draft.Analysis.UploadedImageURLs[0])
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))

	draft, err = wf.SubmitInspection(ctx, draft.ID, workflow.InspectionInput{
		EndOdometerKm:        "12150",
		EndBatteryPercentage: "100",
		ChecklistImagePath:   e.photo(t, "checklist.jpg"),
	})
	require.NoError(t, err)

	draft, err = wf.SubmitAdditionalFees(ctx, draft.ID, []domain.AdditionalFee{
		{FeeType: domain.FeeTypeCleaning, Amount: 150_000},
		{FeeType: "  ", Amount: 999},
		{FeeType: domain.FeeTypeDamage, Amount: 300_000, Description: "Xước cản sau"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StepReceiptCreated, draft.Step)
	assert.NotEmpty(t, draft.ReceiptID)

	draft, err = wf.LoadSummary(ctx, draft.ID)
	require.NoError(t, err)
	s := draft.Summary.Settlement
	assert.Equal(t, int64(1_200_000), s.BaseRentalFee)
	assert.Equal(t, int64(7_000), s.TotalChargingFee)
	assert.Equal(t, int64(450_000), s.TotalAdditionalFees)
	assert.Equal(t, int64(300_000), s.Breakdown.Damage)
	assert.Equal(t, int64(1_657_000), s.TotalAmount)
	assert.Equal(t, int64(-657_000), s.RefundAmount)
	assert.True(t, s.Consistent())
	assert.Len(t, draft.Summary.AdditionalFees, 2)

	// renter has not confirmed: HTTP 200 carrying success=false
	_, err = wf.Finalize(ctx, draft.ID, false)
	var ee *apperror.EnvelopeError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, http.StatusBadRequest, ee.Code)
	assert.Equal(t, "RENTER_NOT_CONFIRMED", ee.ErrorCode)
	got, err := wf.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepSummary, got.Step)

	draft, err = wf.Finalize(ctx, draft.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.StepFinalized, draft.Step)
	assert.Equal(t, "PAYMENT_REQUIRED", draft.Finalized.PaymentStatus)
	assert.Equal(t, int64(-657_000), draft.Finalized.RefundAmount)

	require.Len(t, e.notifier.notices, 1)
	assert.Equal(t, "an.nguyen@example.com", e.notifier.notices[0].RenterEmail)
	assert.Equal(t, int64(657_000), e.notifier.notices[0].Settlement.AmountOwed())

	_, err = wf.Finalize(ctx, draft.ID, true)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestReceiptRejectedByServer(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	e.login(t)
	wf, err := e.c.Workflow(ctx)
	require.NoError(t, err)

	draft, err := wf.Start(ctx, "BK002", "")
	require.NoError(t, err)
	draft, err = wf.CapturePhotos(ctx, draft.ID, []string{e.photo(t, "a.jpg")})
	require.NoError(t, err)
	assert.False(t, draft.Analysis.DamageResult.HasNewDamages)
	assert.Empty(t, draft.Analysis.DamageResult.Suggestions)
	// below the pickup odometer of 3400 km
	draft, err = wf.SubmitInspection(ctx, draft.ID, workflow.InspectionInput{EndOdometerKm: "3000", EndBatteryPercentage: "50"})
	require.NoError(t, err)

	_, err = wf.SubmitAdditionalFees(ctx, draft.ID, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.StatusCode(err))

	got, err := wf.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepAdditionalFees, got.Step)
}

func TestSwapAndUpdate(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	e.login(t)
	wf, err := e.c.Workflow(ctx)
	require.NoError(t, err)

	draft, err := wf.Start(ctx, "BK003", "")
	require.NoError(t, err)
	draft, err = wf.CapturePhotos(ctx, draft.ID, []string{e.photo(t, "b.jpg")})
	require.NoError(t, err)
	draft, err = wf.SubmitInspection(ctx, draft.ID, workflow.InspectionInput{EndOdometerKm: "900", EndBatteryPercentage: "40"})
	require.NoError(t, err)
	draft, err = wf.SubmitAdditionalFees(ctx, draft.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-200_000), draft.Receipt.Settlement.RefundAmount)

	draft, err = wf.UpdateReceipt(ctx, draft.ID, workflow.ReceiptEdit{
		AdditionalFees: []domain.AdditionalFee{{FeeType: domain.FeeTypeLateReturn, Amount: 100_000}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-300_000), draft.Summary.Settlement.RefundAmount)
	assert.Equal(t, int64(100_000), draft.Summary.Settlement.Breakdown.LateReturn)

	receiptID := draft.ReceiptID
	draft, err = wf.SwapVehicle(ctx, draft.ID, workflow.ReceiptEdit{})
	require.NoError(t, err)
	assert.NotEqual(t, "BK003", draft.BookingID)
	assert.Equal(t, receiptID, draft.ReceiptID)
	assert.Equal(t, "VinFast VF 8", draft.Summary.VehicleName)
	assert.Equal(t, domain.StepSummary, draft.Step)

	draft, err = wf.Finalize(ctx, draft.ID, true)
	require.NoError(t, err)
	assert.Equal(t, draft.BookingID, draft.Finalized.BookingID)
}

func TestFeesChargingDocuments(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	e.login(t)

	t.Run("additional fees", func(t *testing.T) {
		fee, err := e.c.AdditionalFee().Create(ctx, domain.CreateAdditionalFeeRequest{BookingID: "BK002", FeeType: domain.FeeTypeCrossBranch, Amount: 200_000})
		require.NoError(t, err)
		fees, err := e.c.AdditionalFee().List(ctx, "BK002")
		require.NoError(t, err)
		require.Len(t, fees, 1)
		require.NoError(t, e.c.AdditionalFee().Delete(ctx, fee.ID))
		fees, err = e.c.AdditionalFee().List(ctx, "BK002")
		require.NoError(t, err)
		assert.Empty(t, fees)
		assert.NotNil(t, fees)

		err = e.c.AdditionalFee().Delete(ctx, fee.ID)
		assert.Equal(t, http.StatusNotFound, apperror.StatusCode(err))
	})

	t.Run("charging twice is a conflict", func(t *testing.T) {
		_, err := e.c.Charging().Start(ctx, "BK002", 20)
		require.NoError(t, err)
		_, err = e.c.Charging().Start(ctx, "BK002", 20)
		assert.Equal(t, http.StatusConflict, apperror.StatusCode(err))
		history, err := e.c.Charging().History(ctx, "BK002")
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("documents", func(t *testing.T) {
		doc, err := e.c.Document().UploadDrivingLicense(ctx, repository.DocumentInput{
			IDNumber:       "790123456789",
			FullName:       "Trần Thị Bình",
			DateOfBirth:    "1995-05-20",
			IssueDate:      "2021-06-01",
			ExpiryDate:     "2035-05-20",
			LicenseClass:   "B2",
			FrontImagePath: e.photo(t, "license_front.jpg"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.DocumentStatusPending, doc.Status)
		assert.NotEmpty(t, doc.FrontImageURL)

		docs, err := e.c.Document().ListMine(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		require.NoError(t, e.c.Document().Delete(ctx, doc.ID))
	})
}

func TestGpsSharingTelemetry(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	e.login(t)

	session, err := e.c.GpsSharing().Invite(ctx, "BK001")
	require.NoError(t, err)
	assert.Equal(t, domain.SharingStatusPending, session.Status)
	require.NotEmpty(t, session.Owner.Tracking.Token)

	joined, err := e.c.GpsSharing().Join(ctx, strings.ToLower(session.InvitationCode), "BK002")
	require.NoError(t, err)
	assert.Equal(t, domain.SharingStatusActive, joined.Status)
	require.NotNil(t, joined.Guest)

	_, err = e.c.GpsSharing().Join(ctx, session.InvitationCode, "BK003")
	assert.Equal(t, http.StatusGone, apperror.StatusCode(err))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	out := make(chan gps.Update)
	done := make(chan error, 1)
	go func() { done <- e.c.Tracker(joined.SessionID).Run(runCtx, joined, out) }()

	seen := map[gps.Role]bool{}
	timeout := time.After(5 * time.Second)
	for len(seen) < 2 {
		select {
		case u := <-out:
			seen[u.Role] = true
			assert.InDelta(t, 10.7769, u.Frame.Latitude, 0.01)
		case <-timeout:
			t.Fatalf("only saw %v", seen)
		}
	}
	cancel()
	require.NoError(t, <-done)
}

func TestTelemetryRejectsBadToken(t *testing.T) {
	e := setup(t)
	req, err := http.NewRequest(http.MethodGet, e.ts.URL+"/telemetry?deviceId=dev-x", nil)
	require.NoError(t, err)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
	req.Header.Set("Authorization", "Bearer nope")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	e := setup(t)
	e.login(t)

	resp, err := http.Get(e.ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	missing, err := http.Get(e.ts.URL + "/nope")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}
