package auth

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultSweepInterval is how often expired sessions and OAuth states are purged
const DefaultSweepInterval = 10 * time.Minute

// Sweeper periodically deletes expired sessions and abandoned OAuth states.
// Generation events are never touched.
type Sweeper struct {
	sessions *SessionStore
	states   *OAuthStateStore
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewSweeper(sessions *SessionStore, states *OAuthStateStore, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		sessions: sessions,
		states:   states,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the sweep loop until ctx is cancelled or Stop is called
func (s *Sweeper) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Stop waits for the loop to exit. Safe to call more than once.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

// Sweep runs one cleanup pass
func (s *Sweeper) Sweep() {
	if s.sessions != nil {
		n, err := s.sessions.CleanupExpiredSessions()
		if err != nil {
			log.Printf("sweeper: failed to clean sessions: %v", err)
		} else if n > 0 {
			log.Printf("sweeper: removed %d expired sessions", n)
		}
	}

	if s.states != nil {
		if _, err := s.states.CleanupExpiredStates(); err != nil {
			log.Printf("sweeper: failed to clean oauth states: %v", err)
		}
	}
}
