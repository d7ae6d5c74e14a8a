package gps

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"evrental-staff-core/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

type telemetryServer struct {
	*httptest.Server
	dials  atomic.Int32
	mu     sync.Mutex
	tokens []string
}

// newTelemetryServer sends perConn frames on each connection; perConn < 0
// keeps streaming until the client goes away.
func newTelemetryServer(t *testing.T, perConn int) *telemetryServer {
	ts := &telemetryServer{}
	ts.Server = httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
		ts.dials.Add(1)
		ts.mu.Lock()
		ts.tokens = append(ts.tokens, ws.Request().Header.Get("Authorization"))
		ts.mu.Unlock()

		device := ws.Request().URL.Query().Get("deviceId")
		for i := 0; perConn < 0 || i < perConn; i++ {
			frame := domain.TelemetryFrame{DeviceID: device, Latitude: 10.77, Longitude: 106.7, Timestamp: time.Now()}
			if err := websocket.JSON.Send(ws, frame); err != nil {
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *telemetryServer) cfg() Config {
	return Config{
		URL:          "ws" + strings.TrimPrefix(ts.URL, "http") + "/telemetry",
		Origin:       "http://localhost/",
		HealthyAfter: time.Minute,
		Backoff:      Backoff{Initial: time.Millisecond, Max: 5 * time.Millisecond, Factor: 2},
	}
}

func (ts *telemetryServer) seenTokens() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]string(nil), ts.tokens...)
}

type stubCredentials struct {
	mu    sync.Mutex
	calls int
	next  func(n int) (domain.DeviceTracking, error)
}

func (s *stubCredentials) Credentials(ctx context.Context, deviceID string) (domain.DeviceTracking, error) {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.mu.Unlock()
	return s.next(n)
}

func receive(t *testing.T, ch <-chan domain.TelemetryFrame, n int) []domain.TelemetryFrame {
	t.Helper()
	var got []domain.TelemetryFrame
	timeout := time.After(5 * time.Second)
	for len(got) < n {
		select {
		case f := <-ch:
			got = append(got, f)
		case <-timeout:
			t.Fatalf("received %d of %d frames", len(got), n)
		}
	}
	return got
}

func TestBackoff_Delay(t *testing.T) {
	b := DefaultBackoff()

	t.Run("no jitter at midpoint", func(t *testing.T) {
		b.rand = func() float64 { return 0.5 }
		assert.Equal(t, time.Second, b.Delay(0))
		assert.Equal(t, 2*time.Second, b.Delay(1))
		assert.Equal(t, 16*time.Second, b.Delay(4))
		assert.Equal(t, 30*time.Second, b.Delay(5))
		assert.Equal(t, 30*time.Second, b.Delay(50))
	})

	t.Run("jitter bounds", func(t *testing.T) {
		b.rand = func() float64 { return 0 }
		assert.Equal(t, 800*time.Millisecond, b.Delay(0))
		b.rand = func() float64 { return 1 }
		assert.Equal(t, 1200*time.Millisecond, b.Delay(0))
		assert.Equal(t, 30*time.Second, b.Delay(10), "capped after jitter")
	})

	t.Run("real jitter stays in range", func(t *testing.T) {
		b.rand = nil
		for i := 0; i < 100; i++ {
			d := b.Delay(2)
			assert.GreaterOrEqual(t, d, 3200*time.Millisecond)
			assert.LessOrEqual(t, d, 4800*time.Millisecond)
		}
	})
}

func TestSubscription_HealthyConnectionIsNotRedialed(t *testing.T) {
	ts := newTelemetryServer(t, -1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := NewSubscription(ts.cfg(), domain.DeviceTracking{DeviceID: "dev-1", Token: "tok-1"}, nil)
	frames := make(chan domain.TelemetryFrame)
	done := make(chan error, 1)
	go func() { done <- sub.Run(ctx, frames) }()

	got := receive(t, frames, 5)
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), ts.dials.Load())
	assert.Equal(t, "dev-1", got[0].DeviceID)
	assert.Equal(t, []string{"Bearer tok-1"}, ts.seenTokens())
}

func TestSubscription_ReconnectsWithFreshToken(t *testing.T) {
	ts := newTelemetryServer(t, 1)
	creds := &stubCredentials{next: func(n int) (domain.DeviceTracking, error) {
		return domain.DeviceTracking{DeviceID: "dev-1", Token: "tok-refreshed"}, nil
	}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := NewSubscription(ts.cfg(), domain.DeviceTracking{DeviceID: "dev-1", Token: "tok-1"}, creds)
	frames := make(chan domain.TelemetryFrame)
	done := make(chan error, 1)
	go func() { done <- sub.Run(ctx, frames) }()

	receive(t, frames, 3)
	cancel()
	require.NoError(t, <-done)

	tokens := ts.seenTokens()
	require.GreaterOrEqual(t, len(tokens), 3)
	assert.Equal(t, "Bearer tok-1", tokens[0])
	assert.Equal(t, "Bearer tok-refreshed", tokens[1])
}

func TestSubscription_StopsWhenSessionExpires(t *testing.T) {
	ts := newTelemetryServer(t, 1)
	creds := &stubCredentials{next: func(n int) (domain.DeviceTracking, error) {
		return domain.DeviceTracking{}, ErrSessionExpired
	}}

	sub := NewSubscription(ts.cfg(), domain.DeviceTracking{DeviceID: "dev-1"}, creds)
	frames := make(chan domain.TelemetryFrame, 10)

	err := sub.Run(context.Background(), frames)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, creds.calls)
}

func TestSubscription_KeepsOldTokenWhenRefreshFails(t *testing.T) {
	ts := newTelemetryServer(t, 1)
	creds := &stubCredentials{next: func(n int) (domain.DeviceTracking, error) {
		return domain.DeviceTracking{}, errors.New("network down")
	}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := NewSubscription(ts.cfg(), domain.DeviceTracking{DeviceID: "dev-1", Token: "tok-1"}, creds)
	frames := make(chan domain.TelemetryFrame)
	done := make(chan error, 1)
	go func() { done <- sub.Run(ctx, frames) }()

	receive(t, frames, 2)
	cancel()
	require.NoError(t, <-done)
	for _, tok := range ts.seenTokens() {
		assert.Equal(t, "Bearer tok-1", tok)
	}
}

func TestSubscription_DialFailureRetries(t *testing.T) {
	ts := newTelemetryServer(t, -1)
	cfg := ts.cfg()
	good := cfg.URL
	cfg.URL = "ws://127.0.0.1:1/telemetry"

	creds := &stubCredentials{}
	sub := NewSubscription(cfg, domain.DeviceTracking{DeviceID: "dev-1"}, creds)
	// After the first failed dial, point the subscription at the live server.
	creds.next = func(n int) (domain.DeviceTracking, error) {
		sub.cfg.URL = good
		return domain.DeviceTracking{DeviceID: "dev-1", Token: "tok-2"}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	frames := make(chan domain.TelemetryFrame)
	done := make(chan error, 1)
	go func() { done <- sub.Run(ctx, frames) }()

	receive(t, frames, 1)
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, []string{"Bearer tok-2"}, ts.seenTokens())
}

type mockSharing struct {
	mock.Mock
}

func (m *mockSharing) Invite(ctx context.Context, bookingID string) (*domain.GpsSharingSession, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GpsSharingSession), args.Error(1)
}
func (m *mockSharing) Join(ctx context.Context, code, bookingID string) (*domain.GpsSharingSession, error) {
	args := m.Called(ctx, code, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GpsSharingSession), args.Error(1)
}
func (m *mockSharing) Get(ctx context.Context, sessionID string) (*domain.GpsSharingSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GpsSharingSession), args.Error(1)
}

func TestSessionCredentials(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	session := &domain.GpsSharingSession{
		SessionID: "s-1",
		Status:    domain.SharingStatusActive,
		ExpiresAt: now.Add(time.Hour),
		Owner:     &domain.SharingParticipant{Tracking: domain.DeviceTracking{DeviceID: "dev-owner", Token: "t-o"}},
		Guest:     &domain.SharingParticipant{Tracking: domain.DeviceTracking{DeviceID: "dev-guest", Token: "t-g"}},
	}

	t.Run("finds participant", func(t *testing.T) {
		m := new(mockSharing)
		m.On("Get", mock.Anything, "s-1").Return(session, nil)
		c := NewSessionCredentials(m, "s-1")
		c.now = func() time.Time { return now }

		tr, err := c.Credentials(context.Background(), "dev-guest")
		require.NoError(t, err)
		assert.Equal(t, "t-g", tr.Token)
		m.AssertExpectations(t)
	})

	t.Run("expired session", func(t *testing.T) {
		m := new(mockSharing)
		m.On("Get", mock.Anything, "s-1").Return(session, nil)
		c := NewSessionCredentials(m, "s-1")
		c.now = func() time.Time { return now.Add(2 * time.Hour) }

		_, err := c.Credentials(context.Background(), "dev-owner")
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("device left the session", func(t *testing.T) {
		m := new(mockSharing)
		m.On("Get", mock.Anything, "s-1").Return(session, nil)
		c := NewSessionCredentials(m, "s-1")
		c.now = func() time.Time { return now }

		_, err := c.Credentials(context.Background(), "dev-other")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSessionExpired)
	})
}

func TestTracker_FansInBothVehicles(t *testing.T) {
	ts := newTelemetryServer(t, -1)
	session := &domain.GpsSharingSession{
		Owner: &domain.SharingParticipant{Tracking: domain.DeviceTracking{DeviceID: "dev-owner"}},
		Guest: &domain.SharingParticipant{Tracking: domain.DeviceTracking{DeviceID: "dev-guest"}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := make(chan Update)
	done := make(chan error, 1)
	go func() { done <- NewTracker(ts.cfg(), nil).Run(ctx, session, out) }()

	seen := map[Role]string{}
	timeout := time.After(5 * time.Second)
	for len(seen) < 2 {
		select {
		case u := <-out:
			seen[u.Role] = u.Frame.DeviceID
		case <-timeout:
			t.Fatalf("only saw %v", seen)
		}
	}
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, "dev-owner", seen[RoleOwner])
	assert.Equal(t, "dev-guest", seen[RoleGuest])
}

func TestTracker_OwnerOnly(t *testing.T) {
	ts := newTelemetryServer(t, -1)
	session := &domain.GpsSharingSession{
		Owner: &domain.SharingParticipant{Tracking: domain.DeviceTracking{DeviceID: "dev-owner"}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Update)
	done := make(chan error, 1)
	go func() { done <- NewTracker(ts.cfg(), nil).Run(ctx, session, out) }()

	u := <-out
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, RoleOwner, u.Role)
}
