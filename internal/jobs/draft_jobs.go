package jobs

import (
	"context"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	draftsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "evrental_drafts_purged_total",
		Help: "Return drafts deleted for being untouched past the retention window.",
	})
	openDrafts = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "evrental_open_drafts",
		Help: "Unfinished return drafts by workflow step.",
	}, []string{"step"})
)

var reportedSteps = []domain.ReturnStep{
	domain.StepPhotoCapture,
	domain.StepManualInspection,
	domain.StepAdditionalFees,
	domain.StepReceiptCreated,
	domain.StepSummary,
}

// PurgeStaleDrafts deletes drafts whose last update is older than the
// configured retention. Finalized drafts age out the same way.
func (jr *JobRunner) PurgeStaleDrafts() {
	jr.runWithRecovery("PurgeStaleDrafts", func() {
		ctx := context.Background()
		cutoff := jr.now().Add(-jr.config.Retention())

		n, err := jr.drafts.DeleteStaleBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge stale drafts", "cutoff", cutoff, "error", err)
			return
		}
		draftsPurged.Add(float64(n))
		logger.Info("Purged stale drafts", "count", n, "cutoff", cutoff)
	})
}

// ReportOpenDrafts counts unfinished drafts per step
func (jr *JobRunner) ReportOpenDrafts() {
	jr.runWithRecovery("ReportOpenDrafts", func() {
		counts, err := jr.countOpenDrafts(context.Background())
		if err != nil {
			logger.Error("Failed to list drafts", "error", err)
			return
		}
		for _, step := range reportedSteps {
			openDrafts.WithLabelValues(string(step)).Set(float64(counts[step]))
		}
		logger.Info("Open return drafts", "counts", counts)
	})
}

func (jr *JobRunner) countOpenDrafts(ctx context.Context) (map[domain.ReturnStep]int, error) {
	drafts, err := jr.drafts.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.ReturnStep]int, len(reportedSteps))
	for _, d := range drafts {
		if d.Step == domain.StepFinalized {
			continue
		}
		counts[d.Step]++
	}
	return counts, nil
}
