package service

import (
	"context"
	"log"
	"time"
)

// SessionSweeperConfig holds settings for the idle session sweeper.
type SessionSweeperConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

// SessionSweeper periodically evicts sessions that have been idle too long.
type SessionSweeper struct {
	sessions SessionService
	cfg      SessionSweeperConfig
}

// NewSessionSweeper creates a new SessionSweeper.
func NewSessionSweeper(sessions SessionService, cfg SessionSweeperConfig) *SessionSweeper {
	return &SessionSweeper{sessions: sessions, cfg: cfg}
}

// Start runs the sweep loop until ctx is canceled.
func (w *SessionSweeper) Start(ctx context.Context) {
	if w.cfg.SweepInterval <= 0 || w.cfg.IdleTimeout <= 0 {
		log.Printf("sessionSweeper: disabled (interval=%s, idle=%s)", w.cfg.SweepInterval, w.cfg.IdleTimeout)
		return
	}

	ticker := time.NewTicker(w.cfg.SweepInterval)
	defer ticker.Stop()

	log.Printf("sessionSweeper: started (interval=%s, idle=%s)", w.cfg.SweepInterval, w.cfg.IdleTimeout)

	for {
		select {
		case <-ctx.Done():
			log.Printf("sessionSweeper: shutdown complete")
			return
		case <-ticker.C:
			if n := w.sessions.EvictIdle(ctx, w.cfg.IdleTimeout); n > 0 {
				log.Printf("sessionSweeper: evicted %d idle sessions", n)
			}
		}
	}
}
