package mockapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"evrental-staff-core/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleAnalyzeReturn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Form không hợp lệ")
		return
	}
	bookingID := r.FormValue("BookingId")
	files := r.MultipartForm.File["ReturnImages"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, codeValidation, "Cần ít nhất một ảnh trả xe")
		return
	}

	s.mu.Lock()
	b, ok := s.bookings[bookingID]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "Không tìm thấy đơn thuê")
		return
	}

	urls, err := s.saveFiles(r.Context(), "return", files)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "", err.Error())
		return
	}

	result := domain.AnalyzeReturnResult{
		UploadedImageURLs: urls,
		VerificationResult: domain.VerificationResult{
			IsVerified:        true,
			Confidence:        0.92,
			Reason:            "Biển số " + b.Vehicle.LicensePlate + " khớp với xe của đơn thuê",
			LicensePlateMatch: true,
		},
		DamageResult: domain.DamageResult{Suggestions: []domain.DamageSuggestion{}},
	}
	for i, fh := range files {
		marked, err := damageMarked(fh)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "", err.Error())
			return
		}
		if marked {
			result.DamageResult.HasNewDamages = true
			result.DamageResult.Suggestions = append(result.DamageResult.Suggestions, domain.DamageSuggestion{
				Area:         "Thân xe",
				Severity:     "minor",
				Description:  fmt.Sprintf("Phát hiện vết xước mới trên ảnh số %d", i+1),
				SuggestedFee: 300_000,
			})
		}
	}
	writeOK(w, http.StatusOK, "Phân tích ảnh thành công", result)
}

func (s *Server) handleCreateReceipt(w http.ResponseWriter, r *http.Request) {
	form, ok := s.parseReceiptForm(w, r, true)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.openBooking(w, form.bookingID)
	if !ok {
		return
	}
	if b.Receipt != nil {
		writeError(w, http.StatusConflict, codeConflict, "Đơn thuê đã có biên nhận trả xe")
		return
	}
	if !form.validate(w, b) {
		return
	}

	b.Receipt = &receipt{ID: uuid.NewString(), CreatedAt: s.now()}
	form.apply(b)
	b.Status = bookingReturning

	writeOK(w, http.StatusCreated, "Tạo biên nhận thành công", domain.ReturnReceipt{
		ReceiptID:  b.Receipt.ID,
		BookingID:  b.ID,
		Settlement: settle(b),
		CreatedAt:  b.Receipt.CreatedAt,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "Không tìm thấy đơn thuê")
		return
	}
	if b.Receipt == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "Đơn thuê chưa có biên nhận trả xe")
		return
	}
	writeOK(w, http.StatusOK, "", summaryOf(b))
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	var req domain.FinalizeReturnRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[req.BookingID]
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "Không tìm thấy đơn thuê")
		return
	}
	if b.Receipt == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "Đơn thuê chưa có biên nhận trả xe")
		return
	}
	if b.Status == bookingCompleted {
		writeError(w, http.StatusConflict, codeConflict, "Đơn thuê đã được hoàn tất")
		return
	}
	if !req.RenterConfirmed {
		writeRejected(w, http.StatusBadRequest, codeRenterNotConfirmed, "Khách hàng chưa xác nhận biên nhận")
		return
	}

	settlement := settle(b)
	b.Status = bookingCompleted
	status := paymentStatus(settlement.RefundAmount)
	settlementsTotal.WithLabelValues(status).Inc()

	writeOK(w, http.StatusOK, "Hoàn tất trả xe", domain.FinalizeReturnResult{
		BookingID:     b.ID,
		Status:        b.Status,
		RefundAmount:  settlement.RefundAmount,
		PaymentStatus: status,
		RenterEmail:   b.RenterEmail,
		RenterName:    b.RenterName,
	})
}

// handleVehicleSwap returns the current vehicle and moves the rental onto a
// spare one. The receipt and the running settlement follow the new booking.
func (s *Server) handleVehicleSwap(w http.ResponseWriter, r *http.Request) {
	form, ok := s.parseReceiptForm(w, r, false)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.openBooking(w, form.bookingID)
	if !ok {
		return
	}
	if !form.validate(w, old) {
		return
	}
	if len(s.spares) == 0 {
		writeError(w, http.StatusConflict, codeConflict, "Không còn xe thay thế tại chi nhánh")
		return
	}
	vehicle := s.spares[0]
	s.spares = s.spares[1:]

	next := *old
	next.ID = fmt.Sprintf("%s-SW%d", old.ID, len(s.bookings))
	next.Vehicle = vehicle
	next.Fees = append([]domain.AdditionalFee(nil), old.Fees...)
	next.Charging = append([]domain.ChargingRecord(nil), old.Charging...)
	next.Receipt = &receipt{ID: uuid.NewString(), CreatedAt: s.now()}
	if old.Receipt != nil {
		next.Receipt.ID = old.Receipt.ID
	}
	form.returnAt = s.now()
	form.apply(&next)
	next.Status = bookingReturning

	old.Status = bookingSwapped
	s.bookings[next.ID] = &next

	writeOK(w, http.StatusOK, "Đổi xe thành công", domain.VehicleSwapResult{
		BookingID:    old.ID,
		NewBookingID: next.ID,
		NewVehicleID: vehicle.VehicleID,
		ReceiptID:    next.Receipt.ID,
		Settlement:   settle(&next),
	})
}

func (s *Server) handleUpdateReceipt(w http.ResponseWriter, r *http.Request) {
	form, ok := s.parseReceiptForm(w, r, true)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.openBooking(w, form.bookingID)
	if !ok {
		return
	}
	if b.Receipt == nil || (form.receiptID != "" && form.receiptID != b.Receipt.ID) {
		writeError(w, http.StatusNotFound, codeNotFound, "Không tìm thấy biên nhận trả xe")
		return
	}
	if !form.validate(w, b) {
		return
	}
	form.apply(b)
	writeOK(w, http.StatusOK, "Cập nhật biên nhận thành công", nil)
}

// openBooking finds a booking that can still be returned. Callers hold s.mu.
func (s *Server) openBooking(w http.ResponseWriter, id string) (*booking, bool) {
	b, ok := s.bookings[id]
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "Không tìm thấy đơn thuê")
		return nil, false
	}
	if b.Status == bookingCompleted || b.Status == bookingSwapped {
		writeError(w, http.StatusConflict, codeConflict, "Đơn thuê đã kết thúc")
		return nil, false
	}
	return b, true
}

type receiptForm struct {
	bookingID    string
	receiptID    string
	returnAt     time.Time
	odometer     float64
	battery      float64
	notes        string
	images       []string
	fees         []domain.AdditionalFee
	checklistURL string
}

func (s *Server) parseReceiptForm(w http.ResponseWriter, r *http.Request, withReturnTime bool) (*receiptForm, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Form không hợp lệ")
		return nil, false
	}
	f := &receiptForm{
		bookingID: r.FormValue("BookingId"),
		receiptID: r.FormValue("RentalReceiptId"),
		notes:     r.FormValue("Notes"),
		returnAt:  s.now(),
	}
	var err error
	if withReturnTime && r.FormValue("ActualReturnDatetime") != "" {
		if f.returnAt, err = time.Parse(time.RFC3339, r.FormValue("ActualReturnDatetime")); err != nil {
			writeError(w, http.StatusBadRequest, codeValidation, "Thời gian trả xe không hợp lệ")
			return nil, false
		}
	}
	if f.odometer, err = strconv.ParseFloat(r.FormValue("EndOdometerKm"), 64); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Số km không hợp lệ")
		return nil, false
	}
	if f.battery, err = strconv.ParseFloat(r.FormValue("EndBatteryPercentage"), 64); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Phần trăm pin không hợp lệ")
		return nil, false
	}
	if v := r.FormValue("ReturnImageUrls"); v != "" {
		if err := json.Unmarshal([]byte(v), &f.images); err != nil {
			writeError(w, http.StatusBadRequest, codeValidation, "Danh sách ảnh không hợp lệ")
			return nil, false
		}
	}
	if v := r.FormValue("AdditionalFees"); v != "" {
		if err := json.Unmarshal([]byte(v), &f.fees); err != nil {
			writeError(w, http.StatusBadRequest, codeValidation, "Danh sách phụ phí không hợp lệ")
			return nil, false
		}
	}
	if files := r.MultipartForm.File["ChecklistImage"]; len(files) > 0 {
		urls, err := s.saveFiles(r.Context(), "checklist", files[:1])
		if err != nil {
			writeError(w, http.StatusInternalServerError, "", err.Error())
			return nil, false
		}
		f.checklistURL = urls[0]
	}
	return f, true
}

func (f *receiptForm) validate(w http.ResponseWriter, b *booking) bool {
	if f.odometer < b.StartOdometer {
		writeError(w, http.StatusBadRequest, codeValidation,
			fmt.Sprintf("Số km cuối (%v) không được nhỏ hơn số km lúc nhận xe (%v)", f.odometer, b.StartOdometer))
		return false
	}
	if f.battery < 0 || f.battery > 100 {
		writeError(w, http.StatusBadRequest, codeValidation, "Phần trăm pin phải từ 0 đến 100")
		return false
	}
	for i, fee := range f.fees {
		if !validFeeType(fee.FeeType) || fee.Amount <= 0 {
			writeError(w, http.StatusBadRequest, codeValidation, fmt.Sprintf("Phụ phí thứ %d không hợp lệ", i+1))
			return false
		}
	}
	return true
}

// apply writes the form onto b's receipt. The form's fee list replaces the
// booking's fees.
func (f *receiptForm) apply(b *booking) {
	rc := b.Receipt
	rc.ActualReturnAt = f.returnAt
	rc.EndOdometer = f.odometer
	rc.EndBattery = f.battery
	rc.Notes = f.notes
	if f.images == nil {
		f.images = []string{}
	}
	rc.Images = f.images
	if f.checklistURL != "" {
		rc.ChecklistURL = f.checklistURL
	}

	fees := make([]domain.AdditionalFee, 0, len(f.fees))
	for _, fee := range f.fees {
		fee.ID = uuid.NewString()
		fee.BookingID = b.ID
		fees = append(fees, fee)
	}
	b.Fees = fees
}

// damageMarkerBytes bounds how much of an upload is scanned for a damage marker.
const damageMarkerBytes = 4 << 10

// damageMarked reports whether an uploaded image carries a "damage" or
// "scratch" marker in its leading bytes. Upload names are synthesized by the
// client, so the content is the only thing a test photo can tag.
func damageMarked(fh *multipart.FileHeader) (bool, error) {
	f, err := fh.Open()
	if err != nil {
		return false, err
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, damageMarkerBytes))
	if err != nil {
		return false, err
	}
	text := strings.ToLower(string(head))
	return strings.Contains(text, "damage") || strings.Contains(text, "scratch"), nil
}

func (s *Server) saveFiles(ctx context.Context, prefix string, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		key, err := s.images.Save(ctx, prefix, fh.Filename, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, s.images.URL(key))
	}
	return urls, nil
}

func summaryOf(b *booking) domain.ReturnSummary {
	fees := b.Fees
	if fees == nil {
		fees = []domain.AdditionalFee{}
	}
	return domain.ReturnSummary{
		BookingID:      b.ID,
		ReceiptID:      b.Receipt.ID,
		RenterName:     b.RenterName,
		RenterEmail:    b.RenterEmail,
		VehicleName:    b.Vehicle.Model,
		LicensePlate:   b.Vehicle.LicensePlate,
		StartOdometer:  b.StartOdometer,
		EndOdometer:    b.Receipt.EndOdometer,
		StartBattery:   b.StartBattery,
		EndBattery:     b.Receipt.EndBattery,
		ReturnImages:   b.Receipt.Images,
		AdditionalFees: fees,
		Settlement:     settle(b),
	}
}
