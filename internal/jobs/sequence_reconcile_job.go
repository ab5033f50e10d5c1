package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"purchasing/internal/core/ports"
	"purchasing/internal/pkg/logger"

	"github.com/bsm/redislock"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	sequenceReconcileLockKey = "po:lock:sequence-reconcile"
	sequenceReconcileLockTTL = 30 * time.Second
	sequenceReconcileTimeout = 20 * time.Second
)

// SequenceSource reports the highest order number sequence already stored.
type SequenceSource interface {
	MaxSequence(ctx context.Context) (int64, error)
}

// SequenceReconcileJob raises the order number counter to the highest stored sequence,
// so a counter that was reset or lost cannot hand out a number that is already taken.
type SequenceReconcileJob struct {
	source   SequenceSource
	counter  ports.SequenceCounter
	locker   *redislock.Client
	schedule string
	cron     *cron.Cron
	log      *logrus.Entry
}

// NewSequenceReconcileJob creates the job. locker may be nil; with several instances
// sharing Redis it keeps the runs from overlapping.
func NewSequenceReconcileJob(
	source SequenceSource,
	counter ports.SequenceCounter,
	locker *redislock.Client,
	schedule string,
	log logrus.FieldLogger,
) *SequenceReconcileJob {
	return &SequenceReconcileJob{
		source:   source,
		counter:  counter,
		locker:   locker,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		log:      logger.Component(log, "sequence_reconcile_job"),
	}
}

func (j *SequenceReconcileJob) Name() string {
	return "sequence reconcile job"
}

// Start runs one pass right away and then schedules Reconcile. The schedule accepts six
// field cron expressions and descriptors such as "@every 5m".
func (j *SequenceReconcileJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.run()
	j.cron.Start()
	j.log.WithField("schedule", j.schedule).Info("Sequence reconcile job started")
	return nil
}

func (j *SequenceReconcileJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sequenceReconcileTimeout)
	defer cancel()

	if err := j.Reconcile(ctx); err != nil {
		logger.LogError(j.log, "jobs", "SequenceReconcileJob.run", "reconcile order number counter", j.schedule, err)
	}
}

// Stop waits for a running reconcile to finish.
func (j *SequenceReconcileJob) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info("Sequence reconcile job stopped")
}

// Reconcile runs one pass. When another instance holds the lock the pass is skipped.
func (j *SequenceReconcileJob) Reconcile(ctx context.Context) error {
	if j.locker != nil {
		lock, err := j.locker.Obtain(ctx, sequenceReconcileLockKey, sequenceReconcileLockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			j.log.Debug("Sequence reconcile skipped, lock held elsewhere")
			return nil
		}
		if err != nil {
			return fmt.Errorf("obtain lock: %w", err)
		}
		defer func() {
			if releaseErr := lock.Release(context.WithoutCancel(ctx)); releaseErr != nil {
				j.log.WithError(releaseErr).Warn("release sequence reconcile lock")
			}
		}()
	}

	maxSeq, err := j.source.MaxSequence(ctx)
	if err != nil {
		return err
	}
	if err = j.counter.EnsureAtLeast(ctx, maxSeq); err != nil {
		return err
	}

	j.log.WithField("max_sequence", maxSeq).Debug("Order number counter reconciled")
	return nil
}
