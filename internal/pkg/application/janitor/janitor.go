package janitor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const DefaultInterval time.Duration = 1 * time.Hour

type Evicter interface {
	EvictOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Janitor interface {
	Start()
	Stop()
}

type janitorImpl struct {
	done      chan bool
	log       zerolog.Logger
	store     Evicter
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

// New returns a janitor that periodically removes overlay entries that have
// not been updated within retention. A zero retention keeps entries forever
// and the returned janitor does nothing.
func New(store Evicter, retention, interval time.Duration, log zerolog.Logger) Janitor {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &janitorImpl{
		log:       log,
		store:     store,
		retention: retention,
		interval:  interval,
		now:       func() time.Time { return time.Now().UTC() },
		done:      make(chan bool),
	}
}

func (j *janitorImpl) Start() {
	if j.retention <= 0 {
		j.log.Info().Msg("overlay retention is disabled, janitor will not run")
		return
	}

	go backgroundWorker(j, j.done)
}

func (j *janitorImpl) Stop() {
	if j.retention <= 0 {
		return
	}

	j.done <- true
}

func backgroundWorker(j *janitorImpl, done <-chan bool) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		j.sweep(context.Background())

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

func (j *janitorImpl) sweep(ctx context.Context) {
	cutoff := j.now().Add(-j.retention)

	evicted, err := j.store.EvictOlderThan(ctx, cutoff)
	if err != nil {
		j.log.Error().Err(err).Msg("could not evict stale overlay entries")
		return
	}

	if evicted > 0 {
		j.log.Info().Msgf("evicted %d overlay entries not updated since %s", evicted, cutoff.Format(time.RFC3339))
	}
}
