package sessions

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultSweepInterval = 15 * time.Minute

	sweepLockKey = "fittrack-idle-sweep-lock"
	// the lock outlives a sweep, but not the gap between two sweeps
	sweepLockTTL = 5 * time.Minute
)

// deletes the lock only if it still holds our token
const releaseLockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

//go:generate mockgen -source=$GOFILE -destination=sweeper_mocks_test.go -package=sessions_test

type idleSessionsCloser interface {
	RunIdleSweep(ctx context.Context) ([]Session, error)
}

// Sweeper runs the idle sweep on a fixed interval. Runs never overlap: inside
// one process an atomic flag guards it, across replicas a redis lock does.
type Sweeper struct {
	closer         idleSessionsCloser
	redisClient    *redis.Client
	metricsManager *metrics.Manager
	interval       time.Duration
	running        atomic.Bool

	NewTokenFunc func() string
}

func NewSweeper(
	closer idleSessionsCloser,
	redisClient *redis.Client,
	metricsManager *metrics.Manager,
	interval time.Duration,
) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		closer:         closer,
		redisClient:    redisClient,
		metricsManager: metricsManager,
		interval:       interval,
		NewTokenFunc:   uuid.NewString,
	}
}

// Run sweeps every interval until ctx is done. A failed sweep is logged and
// the next one still happens.
func (s *Sweeper) Run(ctx context.Context) {
	log.Infof("idle sweeper started, interval: %s", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Infof("idle sweeper stopped: %s", ctx.Err())
			return
		case <-ticker.C:
			stopped, skipped, err := s.SweepOnce(ctx)
			if err != nil {
				log.Errorf("idle sweep failed: %s", err)
				continue
			}
			if skipped {
				log.Debugln("idle sweep skipped, another sweep is running")
				continue
			}
			if len(stopped) > 0 {
				log.Infof("idle sweep auto stopped %d sessions", len(stopped))
			}
		}
	}
}

// SweepOnce runs a single sweep. skipped is true when another sweep held the lock.
func (s *Sweeper) SweepOnce(ctx context.Context) (_ []Session, skipped bool, err error) {
	if !s.running.CompareAndSwap(false, true) {
		s.countSweep(metrics.SweepResultSkipped)
		return nil, true, nil
	}
	defer s.running.Store(false)

	if s.redisClient != nil {
		token := s.NewTokenFunc()
		locked, err := s.redisClient.SetNX(ctx, sweepLockKey, token, sweepLockTTL).Result()
		if err != nil {
			// the sweep is idempotent, running it unlocked is safe
			log.Warnf("idle sweep, acquire lock: %s", err)
		} else if !locked {
			s.countSweep(metrics.SweepResultSkipped)
			return nil, true, nil
		} else {
			defer s.releaseLock(ctx, token)
		}
	}

	start := time.Now()
	stopped, err := s.closer.RunIdleSweep(ctx)
	if s.metricsManager != nil {
		s.metricsManager.HistSweepDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		s.countSweep(metrics.SweepResultFailed)
		return nil, false, err
	}
	s.countSweep(metrics.SweepResultOK)

	for _, session := range stopped {
		log.Debugf("session %d of user %d auto stopped, last activity: %s",
			session.ID, session.UserID, session.LastActivity.Format(time.RFC3339))
	}

	return stopped, false, nil
}

func (s *Sweeper) releaseLock(ctx context.Context, token string) {
	if err := s.redisClient.Eval(ctx, releaseLockScript, []string{sweepLockKey}, token).Err(); err != nil {
		log.Warnf("idle sweep, release lock: %s", err)
	}
}

func (s *Sweeper) countSweep(result string) {
	if s.metricsManager == nil {
		return
	}
	s.metricsManager.CounterSweeps.WithLabelValues(result).Inc()
}
