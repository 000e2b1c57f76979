package session

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper periodically purges expired sessions from the store.
type Sweeper struct {
	manager  *Manager
	interval time.Duration
	ticker   *time.Ticker
	done     chan bool
}

// NewSweeper creates a sweeper that runs every interval.
func NewSweeper(manager *Manager, interval time.Duration) *Sweeper {
	return &Sweeper{
		manager:  manager,
		interval: interval,
		done:     make(chan bool),
	}
}

// Run starts the sweep loop. Call from a goroutine.
func (s *Sweeper) Run() {
	log.Info().Dur("interval", s.interval).Msg("Starting session sweeper...")
	s.ticker = time.NewTicker(s.interval)
	defer s.ticker.Stop()

	// Run once immediately on start
	s.sweep()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping session sweeper.")
			return
		case <-s.ticker.C:
			s.sweep()
		}
	}
}

// Stop halts the sweeper.
func (s *Sweeper) Stop() {
	s.done <- true
}

func (s *Sweeper) sweep() {
	removed, err := s.manager.Sweep(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Session sweep failed")
		return
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("Purged expired sessions")
	}
}
