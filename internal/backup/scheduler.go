package backup

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler periodically writes a full snapshot to path, on the given
// cron spec (e.g. "@every 5m"). It never touches the ledger; a failed
// save is logged and skipped, since the ledger remains the durable
// source of truth.
//
// Scheduler takes no lock of its own: snapshot is expected to take
// whatever lock guards the live state itself (e.g. the service
// envelope's reader/writer lock) so there is exactly one lock
// discipline over that state, per spec.md §5, rather than a second
// mutex racing the one the write path actually holds.
type Scheduler struct {
	cron     *cron.Cron
	snapshot func() Snapshot
	path     string
	logger   *zap.Logger
}

// NewScheduler builds a Scheduler that calls snapshot to obtain a
// consistent Snapshot on every tick.
func NewScheduler(snapshot func() Snapshot, path string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		snapshot: snapshot,
		path:     path,
		logger:   logger,
	}
}

// Start schedules the snapshot job on spec and begins running it.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.snapshotOnce)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop blocks until any in-flight snapshot completes, then stops the
// scheduler.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) snapshotOnce() {
	snap := s.snapshot()

	if err := Save(s.path, snap); err != nil {
		s.logger.Warn("snapshot save failed", zap.Error(err), zap.String("path", s.path))
		return
	}
	s.logger.Debug("snapshot saved", zap.String("path", s.path), zap.Int("accounts", len(snap.Accounts)))
}
