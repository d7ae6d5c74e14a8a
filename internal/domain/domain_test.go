package domain

import (
	"errors"
	"testing"
	"time"

	"evrental-staff-core/internal/apperror"

	"github.com/stretchr/testify/assert"
)

func TestAPIResponse_Unwrap(t *testing.T) {
	ok := &APIResponse[string]{Success: true, Code: 200, Data: "x"}
	v, err := ok.Unwrap()
	assert.NoError(t, err)
	assert.Equal(t, "x", v)

	failed := &APIResponse[string]{Success: false, Code: 409, ErrorCode: "CONFLICT", Message: "Đã tồn tại", Data: "ignored"}
	v, err = failed.Unwrap()
	assert.Empty(t, v)
	var ee *apperror.EnvelopeError
	assert.True(t, errors.As(err, &ee))
	assert.Equal(t, 409, ee.Code)
	assert.Equal(t, "CONFLICT", ee.ErrorCode)
	assert.Equal(t, "Đã tồn tại", ee.Error())

	var nilResp *APIResponse[int]
	assert.Error(t, nilResp.Err())
}

func TestReply(t *testing.T) {
	t.Run("data", func(t *testing.T) {
		v, err := Reply(&APIResponse[int]{Success: true, Code: 200, Data: 7}, nil)
		assert.NoError(t, err)
		if assert.NotNil(t, v) {
			assert.Equal(t, 7, *v)
		}
	})

	t.Run("transport error passes through", func(t *testing.T) {
		boom := errors.New("connection refused")
		v, err := Reply[int](nil, boom)
		assert.Nil(t, v)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("envelope failure", func(t *testing.T) {
		v, err := Reply(&APIResponse[int]{Success: false, Code: 404, Message: "Không tìm thấy"}, nil)
		assert.Nil(t, v)
		var ee *apperror.EnvelopeError
		assert.True(t, errors.As(err, &ee))
		assert.Equal(t, 404, ee.Code)
	})
}

func TestSettlement(t *testing.T) {
	// Deposit 2,000,000 with 2,670,000 of charges leaves 670,000 owed.
	s := Settlement{
		BaseRentalFee:       1_800_000,
		TotalChargingFee:    120_000,
		TotalAdditionalFees: 750_000,
		TotalAmount:         2_670_000,
		DepositAmount:       2_000_000,
		RefundAmount:        -670_000,
	}
	assert.True(t, s.Consistent())
	assert.Equal(t, int64(670_000), s.AmountOwed())

	s.RefundAmount = 10
	assert.False(t, s.Consistent())
	assert.Equal(t, int64(0), s.AmountOwed())
}

func TestGpsSharingSession_Expired(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	s := &GpsSharingSession{Status: SharingStatusActive, ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Minute)))

	s.Status = SharingStatusExpired
	assert.True(t, s.Expired(now))
}

func TestReturnDraft_Settlement(t *testing.T) {
	d := &ReturnDraft{}
	_, ok := d.Settlement()
	assert.False(t, ok)

	d.Receipt = &ReturnReceipt{Settlement: Settlement{TotalAmount: 1}}
	s, ok := d.Settlement()
	assert.True(t, ok)
	assert.Equal(t, int64(1), s.TotalAmount)

	d.Summary = &ReturnSummary{Settlement: Settlement{TotalAmount: 2}}
	s, _ = d.Settlement()
	assert.Equal(t, int64(2), s.TotalAmount)
}
