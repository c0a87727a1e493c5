package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"chopengine/internal/analytics"
	"chopengine/internal/dto"

	"github.com/rs/zerolog/log"
)

// ErrSuperseded is returned by Refresh when a newer refresh started before
// this one finished. Its result is discarded.
var ErrSuperseded = errors.New("dashboard refresh superseded by a newer one")

// DashboardSource is satisfied by service.AnalyticsService.
type DashboardSource interface {
	Dashboard(ctx context.Context) (*analytics.Dashboard, error)
}

// DashboardPoller keeps the latest dashboard in memory. Every refresh, from
// the ticker or from Refresh, cancels the one in flight, and only the newest
// refresh may publish its result.
type DashboardPoller struct {
	src      DashboardSource
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	gen      uint64
	inflight context.CancelFunc
	snap     dto.DashboardSnapshot

	stop context.CancelFunc
	wg   sync.WaitGroup
}

const (
	minPollInterval = 10 * time.Second
	maxPollInterval = 60 * time.Second
)

// NewDashboardPoller clamps interval to 10s..60s.
func NewDashboardPoller(src DashboardSource, interval time.Duration) *DashboardPoller {
	switch {
	case interval < minPollInterval:
		interval = minPollInterval
	case interval > maxPollInterval:
		interval = maxPollInterval
	}
	return &DashboardPoller{src: src, interval: interval, now: time.Now}
}

func (p *DashboardPoller) Interval() time.Duration { return p.interval }

// Snapshot returns the last published dashboard. Dashboard is nil until the
// first successful refresh.
func (p *DashboardPoller) Snapshot() dto.DashboardSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// Refresh aborts any in-flight fetch and fetches again.
func (p *DashboardPoller) Refresh(ctx context.Context) (dto.DashboardSnapshot, error) {
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.mu.Lock()
	if p.inflight != nil {
		p.inflight()
	}
	p.gen++
	gen := p.gen
	p.inflight = cancel
	p.mu.Unlock()

	d, err := p.src.Dashboard(fetchCtx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return p.snap, ErrSuperseded
	}
	p.inflight = nil
	if err != nil {
		p.snap.Error = err.Error()
		return p.snap, err
	}
	fetched := p.now()
	p.snap = dto.DashboardSnapshot{Dashboard: d, FetchedAt: &fetched}
	return p.snap, nil
}

// Start refreshes immediately and then on every tick until Stop is called
// or ctx is done.
func (p *DashboardPoller) Start(ctx context.Context) {
	ctx, p.stop = context.WithCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.tick(ctx)
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("dashboard poller stopped")
				return
			case <-ticker.C:
				p.tick(ctx)
			}
		}
	}()
	log.Info().Dur("interval", p.interval).Msg("dashboard poller started")
}

func (p *DashboardPoller) tick(ctx context.Context) {
	_, err := p.Refresh(ctx)
	switch {
	case err == nil, errors.Is(err, ErrSuperseded), ctx.Err() != nil:
	default:
		log.Warn().Err(err).Msg("dashboard refresh failed")
	}
}

// Stop cancels the loop and any in-flight fetch, then waits for the loop to
// exit.
func (p *DashboardPoller) Stop() {
	if p.stop != nil {
		p.stop()
	}
	p.mu.Lock()
	if p.inflight != nil {
		p.inflight()
	}
	p.mu.Unlock()
	p.wg.Wait()
}
