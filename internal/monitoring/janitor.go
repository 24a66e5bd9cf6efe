package monitoring

import (
	"time"

	"github.com/ekaraslan/portfolio-be/internal/middleware"
	"github.com/ekaraslan/portfolio-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Janitor runs periodic maintenance: purging expired sessions and compacting
// stale rate-limiter windows.
type Janitor struct {
	sessions services.SessionServiceProvider
	limiters []*middleware.RateLimiter
	schedule cron.Schedule
	done     chan bool
}

// NewJanitor creates a janitor from a standard cron expression.
func NewJanitor(cronExpr string, sessions services.SessionServiceProvider, limiters ...*middleware.RateLimiter) (*Janitor, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Janitor{
		sessions: sessions,
		limiters: limiters,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the janitor loop. It blocks until Stop is called.
func (j *Janitor) Run() {
	log.Info().Msg("Starting maintenance janitor")
	for {
		next := j.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-j.done:
			timer.Stop()
			log.Info().Msg("Stopping maintenance janitor")
			return
		case <-timer.C:
			j.sweep()
		}
	}
}

// Stop halts the janitor.
func (j *Janitor) Stop() {
	j.done <- true
}

func (j *Janitor) sweep() {
	purged, err := j.sessions.DeleteExpired()
	if err != nil {
		log.Error().Err(err).Msg("Janitor: failed to purge expired sessions")
	} else if purged > 0 {
		log.Info().Int64("sessions", purged).Msg("Janitor: purged expired sessions")
	}

	for _, rl := range j.limiters {
		rl.Cleanup()
	}
}
