package worker

import (
	"context"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/interfaces"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/reliability"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// ReliabilityRefreshWorker recomputes every user's windowed reliability
// score on an interval, so scores keep tracking the trailing window even
// for users who complete nothing.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type ReliabilityRefreshWorker struct {
	repo        interfaces.Repository
	estimator   *reliability.Estimator
	interval    time.Duration
	concurrency int
	stopCh      chan struct{}
	doneCh      chan struct{}
}

// NewReliabilityRefreshWorker creates a new worker for refreshing
// reliability scores. Concurrency bounds the per-cycle fan-out across
// users.
func NewReliabilityRefreshWorker(repo interfaces.Repository, estimator *reliability.Estimator, interval time.Duration, concurrency int) *ReliabilityRefreshWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ReliabilityRefreshWorker{
		repo:        repo,
		estimator:   estimator,
		interval:    interval,
		concurrency: concurrency,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start begins the background refresh loop. Does not block startup.
func (w *ReliabilityRefreshWorker) Start(ctx context.Context) error {
	logging.Default().Info("Reliability refresh worker starting",
		"interval", w.interval.String(),
		"concurrency", w.concurrency)

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *ReliabilityRefreshWorker) Stop() {
	logging.Default().Info("Reliability refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Reliability refresh worker stopped")
}

func (w *ReliabilityRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.Refresh(ctx); err != nil {
		logging.Default().Error("Initial reliability refresh failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Refresh(ctx); err != nil {
				logging.Default().Error("Reliability refresh failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("Reliability refresh worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Reliability refresh worker context cancelled")
			return
		}
	}
}

// Refresh performs a single recompute cycle over all users.
func (w *ReliabilityRefreshWorker) Refresh(ctx context.Context) error {
	startTime := time.Now()

	users, err := w.repo.User().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list users")
	}

	cutoff := startTime.Add(-w.estimator.Window())

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.concurrency)
	for _, user := range users {
		eg.Go(func() error {
			observations, err := w.repo.Performance().ListByUserSince(ctx, user.ID, cutoff)
			if err != nil {
				return goerr.Wrap(err, "failed to list observations", goerr.V("userID", user.ID))
			}
			totalAssigned, err := w.repo.Task().CountAssignedSince(ctx, user.ID, cutoff)
			if err != nil {
				return goerr.Wrap(err, "failed to count assigned tasks", goerr.V("userID", user.ID))
			}

			score := w.estimator.Compute(observations, totalAssigned, startTime)
			if score == user.ReliabilityScore {
				return nil
			}

			user.ReliabilityScore = score
			if _, err := w.repo.User().Update(ctx, user); err != nil {
				return goerr.Wrap(err, "failed to update reliability score", goerr.V("userID", user.ID))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	logging.Default().Info("Reliability refresh completed",
		"users", len(users),
		"duration", time.Since(startTime).String())

	return nil
}
