package mockapi

import (
	"net/http"

	"evrental-staff-core/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func (s *Server) handleListFees(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[mux.Vars(r)["bookingId"]]
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "Không tìm thấy đơn thuê")
		return
	}
	fees := b.Fees
	if fees == nil {
		fees = []domain.AdditionalFee{}
	}
	writeOK(w, http.StatusOK, "", fees)
}

func (s *Server) handleCreateFee(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAdditionalFeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validFeeType(req.FeeType) || req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, codeValidation, "Loại phí hoặc số tiền không hợp lệ")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.openBooking(w, req.BookingID)
	if !ok {
		return
	}
	fee := domain.AdditionalFee{
		ID:          uuid.NewString(),
		BookingID:   b.ID,
		FeeType:     req.FeeType,
		Amount:      req.Amount,
		Description: req.Description,
	}
	b.Fees = append(b.Fees, fee)
	writeOK(w, http.StatusCreated, "Đã thêm phụ phí", fee)
}

func (s *Server) handleDeleteFee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["feeId"]

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		for i, fee := range b.Fees {
			if fee.ID != id {
				continue
			}
			if b.Status == bookingCompleted {
				writeError(w, http.StatusConflict, codeConflict, "Đơn thuê đã được hoàn tất")
				return
			}
			b.Fees = append(b.Fees[:i:i], b.Fees[i+1:]...)
			writeOK(w, http.StatusOK, "Đã xóa phụ phí", nil)
			return
		}
	}
	writeError(w, http.StatusNotFound, codeNotFound, "Không tìm thấy phụ phí")
}

func (s *Server) handleStartCharging(w http.ResponseWriter, r *http.Request) {
	var req domain.StartChargingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.StartBattery < 0 || req.StartBattery > 100 {
		writeError(w, http.StatusBadRequest, codeValidation, "Phần trăm pin phải từ 0 đến 100")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.openBooking(w, req.BookingID)
	if !ok {
		return
	}
	for _, c := range b.Charging {
		if c.CompletedAt == nil {
			writeError(w, http.StatusConflict, codeConflict, "Xe đang có phiên sạc chưa hoàn tất")
			return
		}
	}
	rec := domain.ChargingRecord{
		ID:           uuid.NewString(),
		BookingID:    b.ID,
		StartBattery: req.StartBattery,
		StartedAt:    s.now(),
	}
	b.Charging = append(b.Charging, rec)
	writeOK(w, http.StatusCreated, "Bắt đầu sạc", rec)
}

func (s *Server) handleCompleteCharging(w http.ResponseWriter, r *http.Request) {
	var req domain.CompleteChargingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		for i := range b.Charging {
			rec := &b.Charging[i]
			if rec.ID != req.ChargingID {
				continue
			}
			if rec.CompletedAt != nil {
				writeError(w, http.StatusConflict, codeConflict, "Phiên sạc đã hoàn tất")
				return
			}
			if req.EndBattery < rec.StartBattery || req.EndBattery > 100 || req.KwhCharged < 0 {
				writeError(w, http.StatusBadRequest, codeValidation, "Thông số sạc không hợp lệ")
				return
			}
			done := s.now()
			rec.EndBattery = req.EndBattery
			rec.KwhCharged = req.KwhCharged
			rec.ChargingFee = chargingFee(req.KwhCharged, b.Pricing)
			rec.CompletedAt = &done
			writeOK(w, http.StatusOK, "Hoàn tất sạc", *rec)
			return
		}
	}
	writeError(w, http.StatusNotFound, codeNotFound, "Không tìm thấy phiên sạc")
}

func (s *Server) handleListCharging(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[mux.Vars(r)["bookingId"]]
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "Không tìm thấy đơn thuê")
		return
	}
	records := b.Charging
	if records == nil {
		records = []domain.ChargingRecord{}
	}
	writeOK(w, http.StatusOK, "", records)
}
