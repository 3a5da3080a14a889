// Package watch raises drift predictions for fishermen who stop reporting.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seaguard/driftwatch/internal/models"
	"github.com/seaguard/driftwatch/internal/service"
)

// Sessions is the part of the tracking service the sweeper needs
type Sessions interface {
	ListOverdueCandidates(ctx context.Context, cutoff time.Time) ([]models.TrackingSession, error)
	MarkOverdue(ctx context.Context, session models.TrackingSession, cutoff time.Time) (bool, error)
	ReactivateOverdue(ctx context.Context, session models.TrackingSession) error
}

// Simulator runs a drift simulation
type Simulator interface {
	Simulate(ctx context.Context, req models.DriftRequest) (*models.DriftResponse, error)
}

// Options configures a Sweeper
type Options struct {
	StaleAfter  time.Duration // silence after which an active session is overdue
	Interval    time.Duration
	Concurrency int
}

// Sweeper periodically marks silent sessions overdue and simulates where
// their fishermen have drifted since
type Sweeper struct {
	sessions  Sessions
	simulator Simulator
	opts      Options
	now       func() time.Time
}

// NewSweeper creates a sweeper
func NewSweeper(sessions Sessions, simulator Simulator, opts Options) *Sweeper {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Sweeper{sessions: sessions, simulator: simulator, opts: opts, now: time.Now}
}

// Run sweeps once immediately and then every Interval until ctx is done
func (s *Sweeper) Run(ctx context.Context) {
	log.Printf("[Watch] Sweeper started (stale after %s, every %s)", s.opts.StaleAfter, s.opts.Interval)

	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[Watch] Sweep failed: %v", err)
		}

		select {
		case <-ctx.Done():
			log.Println("[Watch] Sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}

// Sweep handles every session silent for longer than StaleAfter and returns
// how many simulations it stored
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.opts.StaleAfter)
	candidates, err := s.sessions.ListOverdueCandidates(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue sessions: %w", err)
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	var simulated atomic.Int32
	var eg errgroup.Group
	eg.SetLimit(s.opts.Concurrency)

	for _, session := range candidates {
		if ctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			ok, err := s.handle(ctx, session, cutoff)
			if ok {
				simulated.Add(1)
			}
			return err
		})
	}

	err = eg.Wait()
	if n := simulated.Load(); n > 0 {
		log.Printf("[Watch] %d of %d overdue sessions simulated", n, len(candidates))
	}
	return int(simulated.Load()), err
}

// handle marks one session overdue and simulates its drift. When the
// simulation fails the session goes back to active so the next sweep retries.
func (s *Sweeper) handle(ctx context.Context, session models.TrackingSession, cutoff time.Time) (bool, error) {
	marked, err := s.sessions.MarkOverdue(ctx, session, cutoff)
	if err != nil {
		return false, fmt.Errorf("session %s: %w", session.ID, err)
	}
	if !marked {
		return false, nil
	}

	sessionID := session.ID
	_, err = s.simulator.Simulate(ctx, models.DriftRequest{
		FishermanID: session.FishermanID,
		SessionID:   &sessionID,
	})
	if errors.Is(err, service.ErrInvalidInput) {
		log.Printf("[Watch] Session %s overdue but no position was ever reported", session.ID)
		return false, nil
	}
	if err != nil {
		// the mark must be undone even if ctx was cancelled mid-simulation
		if rerr := s.sessions.ReactivateOverdue(context.WithoutCancel(ctx), session); rerr != nil {
			log.Printf("[Watch] Session %s left overdue without a simulation: %v", session.ID, rerr)
		}
		return false, fmt.Errorf("session %s: %w", session.ID, err)
	}
	return true, nil
}
