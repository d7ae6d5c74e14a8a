// Package container wires the client core from a Config. Every accessor
// builds its use cases once and hands back the same instances afterwards.
package container

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"evrental-staff-core/internal/config"
	"evrental-staff-core/internal/datasource"
	"evrental-staff-core/internal/gps"
	"evrental-staff-core/internal/logger"
	"evrental-staff-core/internal/notify"
	"evrental-staff-core/internal/repository"
	"evrental-staff-core/internal/repository/drafts"
	"evrental-staff-core/internal/repository/remote"
	"evrental-staff-core/internal/session"
	"evrental-staff-core/internal/transport"
	"evrental-staff-core/internal/usecase"
	"evrental-staff-core/internal/workflow"
)

type AuthUseCases struct {
	Login         usecase.LoginUseCase
	GoogleLogin   usecase.GoogleLoginUseCase
	VerifyOtp     usecase.VerifyOtpUseCase
	ResendOtp     usecase.ResendOtpUseCase
	GetProfile    usecase.GetProfileUseCase
	UpdateProfile usecase.UpdateProfileUseCase
}

type Option func(*Container)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Container) { c.httpClient = hc }
}

// WithDrafts replaces the configured draft store.
func WithDrafts(repo repository.DraftRepository) Option {
	return func(c *Container) { c.drafts = repo }
}

func WithNotifier(n workflow.Notifier) Option {
	return func(c *Container) { c.notifier = n }
}

// WithClock fixes the time used for upload file names and workflow stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Container) { c.now = now }
}

type Container struct {
	cfg        *config.Config
	Session    *session.Store
	client     *transport.Client
	httpClient *http.Client
	notifier   workflow.Notifier
	now        func() time.Time

	authOnce     sync.Once
	auth         AuthUseCases
	returnOnce   sync.Once
	rentalReturn workflow.UseCases
	feeOnce      sync.Once
	fees         usecase.AdditionalFeeUseCase
	chargingOnce sync.Once
	charging     usecase.ChargingUseCase
	sharingOnce  sync.Once
	sharing      usecase.GpsSharingUseCase
	docOnce      sync.Once
	documents    usecase.DocumentUseCase

	mu       sync.Mutex
	drafts   repository.DraftRepository
	store    *drafts.Store
	workflow *workflow.ReturnWorkflow
}

func New(cfg *config.Config, opts ...Option) (*Container, error) {
	c := &Container{cfg: cfg, Session: session.New(), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		if m := notify.NewReceiptMailer(cfg.SendGrid); m != nil {
			c.notifier = m
		}
	}

	topts := []transport.Option{transport.WithTokenSource(c.Session), transport.WithTimeout(cfg.Timeout())}
	if c.httpClient != nil {
		topts = append(topts, transport.WithHTTPClient(c.httpClient))
	}
	client, err := transport.New(cfg.API.BaseURL, topts...)
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}
	c.client = client
	return c, nil
}

func (c *Container) Config() *config.Config { return c.cfg }

func (c *Container) Auth() AuthUseCases {
	c.authOnce.Do(func() {
		repo := remote.NewAuthRepository(datasource.NewAuthDataSource(c.client))
		c.auth = AuthUseCases{
			Login:         usecase.NewLoginUseCase(repo),
			GoogleLogin:   usecase.NewGoogleLoginUseCase(repo),
			VerifyOtp:     usecase.NewVerifyOtpUseCase(repo),
			ResendOtp:     usecase.NewResendOtpUseCase(repo),
			GetProfile:    usecase.NewGetProfileUseCase(repo),
			UpdateProfile: usecase.NewUpdateProfileUseCase(repo),
		}
	})
	return c.auth
}

func (c *Container) RentalReturn() workflow.UseCases {
	c.returnOnce.Do(func() {
		repo := remote.NewRentalReturnRepository(datasource.NewRentalReturnDataSource(c.client), c.now)
		c.rentalReturn = workflow.UseCases{
			Analyze:       usecase.NewAiAnalyzeUseCase(repo),
			CreateReceipt: usecase.NewRentalReturnCreateReceiptUseCase(repo),
			Summary:       usecase.NewSummaryReceiptUseCase(repo),
			Finalize:      usecase.NewRentalReturnFinalizeUseCase(repo),
			Swap:          usecase.NewSwapVehicleReturnUseCase(repo),
			UpdateReceipt: usecase.NewUpdateReturnReceiptUseCase(repo),
		}
	})
	return c.rentalReturn
}

func (c *Container) AdditionalFee() usecase.AdditionalFeeUseCase {
	c.feeOnce.Do(func() {
		c.fees = usecase.NewAdditionalFeeUseCase(remote.NewAdditionalFeeRepository(datasource.NewAdditionalFeeDataSource(c.client)))
	})
	return c.fees
}

func (c *Container) Charging() usecase.ChargingUseCase {
	c.chargingOnce.Do(func() {
		c.charging = usecase.NewChargingUseCase(remote.NewChargingRepository(datasource.NewChargingDataSource(c.client)))
	})
	return c.charging
}

func (c *Container) GpsSharing() usecase.GpsSharingUseCase {
	c.sharingOnce.Do(func() {
		c.sharing = usecase.NewGpsSharingUseCase(remote.NewGpsSharingRepository(datasource.NewGpsSharingDataSource(c.client)))
	})
	return c.sharing
}

func (c *Container) Document() usecase.DocumentUseCase {
	c.docOnce.Do(func() {
		c.documents = usecase.NewDocumentUseCase(remote.NewDocumentRepository(datasource.NewDocumentDataSource(c.client), c.now))
	})
	return c.documents
}

// ChargingCalculator returns a fresh calculator for one charging screen.
func (c *Container) ChargingCalculator() *workflow.ChargingCalculator {
	return workflow.NewChargingCalculator(c.cfg.Charging.BatteryCapacityKwh)
}

// Drafts opens the configured draft store on first use.
func (c *Container) Drafts(ctx context.Context) (repository.DraftRepository, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftsLocked(ctx)
}

func (c *Container) draftsLocked(ctx context.Context) (repository.DraftRepository, error) {
	if c.drafts != nil {
		return c.drafts, nil
	}
	switch c.cfg.Drafts.Driver {
	case "memory":
		c.drafts = drafts.NewMemory()
	default:
		store, err := drafts.Open(ctx, drafts.Dialect(c.cfg.Drafts.Driver), c.cfg.Drafts.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info("Draft store opened", "driver", c.cfg.Drafts.Driver)
		c.store, c.drafts = store, store
	}
	return c.drafts, nil
}

func (c *Container) Workflow(ctx context.Context) (*workflow.ReturnWorkflow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.workflow != nil {
		return c.workflow, nil
	}
	repo, err := c.draftsLocked(ctx)
	if err != nil {
		return nil, err
	}
	opts := []workflow.Option{workflow.WithClock(c.now)}
	if c.notifier != nil {
		opts = append(opts, workflow.WithNotifier(c.notifier))
	}
	c.workflow = workflow.New(c.RentalReturn(), repo, opts...)
	return c.workflow, nil
}

// Tracker follows the vehicles of one sharing session, renewing device
// tokens through the sharing use case.
func (c *Container) Tracker(sessionID string) *gps.Tracker {
	t := c.cfg.Telemetry
	cfg := gps.Config{
		URL:          t.URL,
		Origin:       t.Origin,
		HealthyAfter: time.Duration(t.HealthySeconds) * time.Second,
		Backoff: gps.Backoff{
			Initial: time.Duration(t.InitialBackoffMillis) * time.Millisecond,
			Max:     time.Duration(t.MaxBackoffSeconds) * time.Second,
			Factor:  2,
			Jitter:  0.2,
		},
	}
	return gps.NewTracker(cfg, gps.NewSessionCredentials(c.GpsSharing(), sessionID))
}

func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
