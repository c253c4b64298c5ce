package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Reloader re-reads the knowledge directory on a cron schedule and on
// demand (SIGHUP). Reloads never overlap.
type Reloader struct {
	svc  *Service
	dir  string
	cron *cron.Cron
	mu   sync.Mutex
}

func NewReloader(svc *Service, dir string) *Reloader {
	logger := cronLogger{}
	return &Reloader{
		svc: svc,
		dir: dir,
		// Standard five-field specs plus descriptors such as "@every 10m".
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

// Schedule registers the periodic reload. An empty spec schedules nothing.
func (r *Reloader) Schedule(spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := r.cron.AddFunc(spec, func() { _ = r.ReloadNow() }); err != nil {
		return fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}
	log.Info().Str("schedule", spec).Str("dir", r.dir).Msg("⏰ Knowledge reload scheduled")
	return nil
}

// Scheduled reports whether a periodic reload is registered.
func (r *Reloader) Scheduled() bool {
	return len(r.cron.Entries()) > 0
}

// ReloadNow swaps in a freshly loaded knowledge base.
func (r *Reloader) ReloadNow() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.svc.Reload(r.dir); err != nil {
		log.Error().Err(err).Str("dir", r.dir).Msg("❌ Knowledge reload failed, keeping current data")
		return err
	}
	return nil
}

func (r *Reloader) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for a running reload to finish.
func (r *Reloader) Stop(ctx context.Context) {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// cronLogger routes cron's own log lines through zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
