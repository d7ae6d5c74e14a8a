package mockapi

import (
	"net/http"
	"strings"
	"time"

	"evrental-staff-core/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	sharingTTL    = 2 * time.Hour
	invitationTTL = 15 * time.Minute
)

func deviceID(v domain.Vehicle) string {
	return "dev-" + v.VehicleID
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	var req domain.InviteSharingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.openBooking(w, req.BookingID)
	if !ok {
		return
	}
	now := s.now()
	session := &domain.GpsSharingSession{
		SessionID:           uuid.NewString(),
		InvitationCode:      strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6]),
		Status:              domain.SharingStatusPending,
		ExpiresAt:           now.Add(sharingTTL),
		InvitationExpiresAt: now.Add(invitationTTL),
		Owner:               participant(b),
	}
	s.sessions[session.SessionID] = session
	s.invites[session.InvitationCode] = session.SessionID

	out, err := s.withTokens(session)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "", err.Error())
		return
	}
	writeOK(w, http.StatusCreated, "Đã tạo lời mời chia sẻ vị trí", out)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req domain.JoinSharingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[s.invites[strings.ToUpper(strings.TrimSpace(req.InvitationCode))]]
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "Mã mời không tồn tại")
		return
	}
	if !s.now().Before(session.InvitationExpiresAt) || session.Guest != nil {
		writeError(w, http.StatusGone, codeInvitationExpired, "Mã mời đã hết hạn")
		return
	}
	b, ok := s.openBooking(w, req.BookingID)
	if !ok {
		return
	}
	if b.ID == session.Owner.BookingID {
		writeError(w, http.StatusBadRequest, codeValidation, "Không thể tham gia phiên của chính mình")
		return
	}
	session.Guest = participant(b)
	session.Status = domain.SharingStatusActive

	out, err := s.withTokens(session)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "", err.Error())
		return
	}
	writeOK(w, http.StatusOK, "Đã tham gia chia sẻ vị trí", out)
}

// handleGetSession returns the session with freshly issued device tokens,
// which is how clients renew telemetry credentials.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[mux.Vars(r)["sessionId"]]
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "Không tìm thấy phiên chia sẻ")
		return
	}
	if session.Expired(s.now()) {
		session.Status = domain.SharingStatusExpired
		writeOK(w, http.StatusOK, "Phiên chia sẻ đã hết hạn", session)
		return
	}
	out, err := s.withTokens(session)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "", err.Error())
		return
	}
	writeOK(w, http.StatusOK, "", out)
}

func participant(b *booking) *domain.SharingParticipant {
	return &domain.SharingParticipant{
		RenterID:  b.RenterID,
		FullName:  b.RenterName,
		BookingID: b.ID,
		Vehicle:   b.Vehicle,
		Tracking:  domain.DeviceTracking{DeviceID: deviceID(b.Vehicle)},
	}
}

// withTokens copies the session and signs a device token for every participant.
func (s *Server) withTokens(session *domain.GpsSharingSession) (domain.GpsSharingSession, error) {
	out := *session
	for _, p := range []**domain.SharingParticipant{&out.Owner, &out.Guest} {
		if *p == nil {
			continue
		}
		cp := **p
		tok, exp, err := s.tokens.GenerateDeviceToken(cp.Tracking.DeviceID)
		if err != nil {
			return out, err
		}
		cp.Tracking.Token, cp.Tracking.TokenExpiresAt = tok, exp
		*p = &cp
	}
	return out, nil
}
