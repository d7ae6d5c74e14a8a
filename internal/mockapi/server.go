// Package mockapi is an in-memory rental settlement service for development
// and end-to-end tests. It speaks the same envelope and routes as the real
// service and computes settlements server side.
package mockapi

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"evrental-staff-core/internal/config"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/logger"
	"evrental-staff-core/internal/security"
	"evrental-staff-core/internal/storage"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"
)

type Options struct {
	JWTSecret string
	Images    storage.ImageStore
	// Clock drives booking and settlement times. Tokens always use wall time.
	Clock func() time.Time
	// TelemetryInterval is the gap between synthetic GPS frames.
	TelemetryInterval time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost; tests pass bcrypt.MinCost.
	BcryptCost int
}

type Server struct {
	tokens   security.TokenManager
	images   storage.ImageStore
	now      func() time.Time
	interval time.Duration

	mu        sync.Mutex
	accounts  map[string]*staffAccount // by username
	bookings  map[string]*booking
	sessions  map[string]*domain.GpsSharingSession
	invites   map[string]string // invitation code -> session id
	documents map[string][]domain.Document
	spares    []domain.Vehicle
}

func New(opts Options) (*Server, error) {
	if opts.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if opts.Images == nil {
		return nil, errors.New("image store is required")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.TelemetryInterval == 0 {
		opts.TelemetryInterval = time.Second
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	s := &Server{
		tokens:    security.NewTokenManager(opts.JWTSecret),
		images:    opts.Images,
		now:       opts.Clock,
		interval:  opts.TelemetryInterval,
		accounts:  make(map[string]*staffAccount),
		bookings:  make(map[string]*booking),
		sessions:  make(map[string]*domain.GpsSharingSession),
		invites:   make(map[string]string),
		documents: make(map[string][]domain.Document),
		spares:    append([]domain.Vehicle(nil), spareVehicles...),
	}
	if err := s.seed(opts.BcryptCost); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the router with every settlement endpoint registered.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "Không tìm thấy đường dẫn")
	})
	r.Use(s.logRequests, s.authenticate)

	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/google", s.handleGoogleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/verifyOtp", s.handleVerifyOtp).Methods(http.MethodPost)
	r.HandleFunc("/auth/resendOtp", s.handleResendOtp).Methods(http.MethodPost)
	r.HandleFunc("/auth/profile", s.handleGetProfile).Methods(http.MethodGet)
	r.HandleFunc("/auth/profile", s.handleUpdateProfile).Methods(http.MethodPut)

	r.HandleFunc("/rentalReturn/analyzeReturn", s.handleAnalyzeReturn).Methods(http.MethodPost)
	r.HandleFunc("/rentalReturn/createReceipt", s.handleCreateReceipt).Methods(http.MethodPost)
	r.HandleFunc("/rentalReturn/summary/{bookingId}", s.handleSummary).Methods(http.MethodGet)
	r.HandleFunc("/rentalReturn/finalizeReturn", s.handleFinalize).Methods(http.MethodPut)
	r.HandleFunc("/rentalReturn/vehicleSwap", s.handleVehicleSwap).Methods(http.MethodPost)
	r.HandleFunc("/rentalReturn/updateReturnReceipt", s.handleUpdateReceipt).Methods(http.MethodPut)

	r.HandleFunc("/additionalFee/booking/{bookingId}", s.handleListFees).Methods(http.MethodGet)
	r.HandleFunc("/additionalFee", s.handleCreateFee).Methods(http.MethodPost)
	r.HandleFunc("/additionalFee/{feeId}", s.handleDeleteFee).Methods(http.MethodDelete)

	r.HandleFunc("/charging/start", s.handleStartCharging).Methods(http.MethodPost)
	r.HandleFunc("/charging/complete", s.handleCompleteCharging).Methods(http.MethodPut)
	r.HandleFunc("/charging/booking/{bookingId}", s.handleListCharging).Methods(http.MethodGet)

	r.HandleFunc("/gpsSharing/invite", s.handleInvite).Methods(http.MethodPost)
	r.HandleFunc("/gpsSharing/join", s.handleJoin).Methods(http.MethodPost)
	r.HandleFunc("/gpsSharing/{sessionId}", s.handleGetSession).Methods(http.MethodGet)

	r.HandleFunc("/document/me", s.handleMyDocuments).Methods(http.MethodGet)
	r.HandleFunc("/document/citizenId", s.handleUploadDocument(domain.DocumentTypeCitizenID)).Methods(http.MethodPost)
	r.HandleFunc("/document/drivingLicense", s.handleUploadDocument(domain.DocumentTypeDrivingLicense)).Methods(http.MethodPost)
	r.HandleFunc("/document/{documentId}", s.handleDeleteDocument).Methods(http.MethodDelete)

	r.HandleFunc("/api/v1/download/{key}", s.handleDownload).Methods(http.MethodGet)
	r.Handle("/telemetry", s.telemetryHandler()).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

// OTP returns the pending verification code of an account, for tests and
// local use where no mail is sent.
func (s *Server) OTP(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc := s.accountByEmail(email); acc != nil {
		return acc.otp
	}
	return ""
}

type claimsKey struct{}

func claimsFrom(ctx context.Context) *security.UserClaims {
	c, _ := ctx.Value(claimsKey{}).(*security.UserClaims)
	return c
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if config.GetSecurityLevel(r.URL.Path) == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "Thiếu access token")
			return
		}
		claims, err := s.tokens.ValidateToken(token, security.TokenTypeAccess)
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return h[7:]
	}
	return ""
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		logger.Info("HTTP request",
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"request_id", r.Header.Get("X-Request-ID"),
			"duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets the telemetry websocket take over the connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}
