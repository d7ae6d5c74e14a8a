package datasource

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/transport"
)

const rentalReturnService = "rentalReturn"

type RentalReturnDataSource struct {
	client Doer
}

func NewRentalReturnDataSource(client Doer) *RentalReturnDataSource {
	return &RentalReturnDataSource{client: client}
}

func (d *RentalReturnDataSource) AnalyzeReturn(ctx context.Context, req domain.AnalyzeReturnRequest) (*domain.APIResponse[domain.AnalyzeReturnResult], error) {
	if err := requireID("bookingId", req.BookingID); err != nil {
		return nil, err
	}
	form := transport.NewForm().Field("BookingId", req.BookingID)
	for _, img := range req.ReturnImages {
		form.File(fieldOr(img.Field, "ReturnImages"), img.Path, img.FileName, img.ContentType)
	}
	return call[domain.AnalyzeReturnResult](rentalReturnService, "analyzeReturn", func() (*transport.Response, error) {
		return d.client.DoMultipart(ctx, http.MethodPost, PathAnalyzeReturn, form)
	}, "booking_id", req.BookingID, "images", len(req.ReturnImages))
}

func (d *RentalReturnDataSource) CreateReceipt(ctx context.Context, req domain.ReceiptRequest) (*domain.APIResponse[domain.ReturnReceipt], error) {
	form, err := receiptForm(req, true)
	if err != nil {
		return nil, err
	}
	return call[domain.ReturnReceipt](rentalReturnService, "createReceipt", func() (*transport.Response, error) {
		return d.client.DoMultipart(ctx, http.MethodPost, PathCreateReceipt, form)
	}, "booking_id", req.BookingID, "fees", len(req.AdditionalFees))
}

func (d *RentalReturnDataSource) GetSummary(ctx context.Context, bookingID string) (*domain.APIResponse[domain.ReturnSummary], error) {
	if err := requireID("bookingId", bookingID); err != nil {
		return nil, err
	}
	return call[domain.ReturnSummary](rentalReturnService, "summary", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodGet, SummaryPath(bookingID), nil)
	}, "booking_id", bookingID)
}

func (d *RentalReturnDataSource) FinalizeReturn(ctx context.Context, req domain.FinalizeReturnRequest) (*domain.APIResponse[domain.FinalizeReturnResult], error) {
	if err := requireID("bookingId", req.BookingID); err != nil {
		return nil, err
	}
	return call[domain.FinalizeReturnResult](rentalReturnService, "finalizeReturn", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodPut, PathFinalize, req)
	}, "booking_id", req.BookingID, "renter_confirmed", req.RenterConfirmed)
}

func (d *RentalReturnDataSource) VehicleSwap(ctx context.Context, req domain.ReceiptRequest) (*domain.APIResponse[domain.VehicleSwapResult], error) {
	form, err := receiptForm(req, false)
	if err != nil {
		return nil, err
	}
	return call[domain.VehicleSwapResult](rentalReturnService, "vehicleSwap", func() (*transport.Response, error) {
		return d.client.DoMultipart(ctx, http.MethodPost, PathVehicleSwap, form)
	}, "booking_id", req.BookingID)
}

func (d *RentalReturnDataSource) UpdateReturnReceipt(ctx context.Context, req domain.ReceiptRequest) (*domain.APIResponse[domain.Empty], error) {
	form, err := receiptForm(req, true)
	if err != nil {
		return nil, err
	}
	return call[domain.Empty](rentalReturnService, "updateReturnReceipt", func() (*transport.Response, error) {
		return d.client.DoMultipart(ctx, http.MethodPut, PathUpdateReceipt, form)
	}, "booking_id", req.BookingID, "receipt_id", req.RentalReceiptID)
}

func receiptForm(req domain.ReceiptRequest, withReturnTime bool) (*transport.Form, error) {
	if err := requireID("bookingId", req.BookingID); err != nil {
		return nil, err
	}
	form := transport.NewForm().
		Field("BookingId", req.BookingID).
		Field("RentalReceiptId", req.RentalReceiptID)
	if withReturnTime {
		form.Field("ActualReturnDatetime", req.ActualReturnDatetime.UTC().Format(time.RFC3339))
	}
	form.Field("EndOdometerKm", formatFloat(req.EndOdometerKm)).
		Field("EndBatteryPercentage", formatFloat(req.EndBatteryPercentage)).
		Field("Notes", req.Notes)

	urls := req.ReturnImageURLs
	if urls == nil {
		urls = []string{}
	}
	if err := form.JSONField("ReturnImageUrls", urls); err != nil {
		return nil, err
	}
	fees := req.AdditionalFees
	if fees == nil {
		fees = []domain.AdditionalFee{}
	}
	if err := form.JSONField("AdditionalFees", fees); err != nil {
		return nil, err
	}
	if req.ChecklistImage != nil {
		c := req.ChecklistImage
		form.File(fieldOr(c.Field, "ChecklistImage"), c.Path, c.FileName, c.ContentType)
	}
	return form, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fieldOr(field, fallback string) string {
	if field == "" {
		return fallback
	}
	return field
}
