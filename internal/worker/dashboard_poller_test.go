package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"chopengine/internal/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcSource adapts a function to DashboardSource.
type funcSource func(ctx context.Context) (*analytics.Dashboard, error)

func (f funcSource) Dashboard(ctx context.Context) (*analytics.Dashboard, error) { return f(ctx) }

var _ DashboardSource = funcSource(nil)

func TestDashboardPoller_RefreshPublishes(t *testing.T) {
	p := NewDashboardPoller(funcSource(func(context.Context) (*analytics.Dashboard, error) {
		return &analytics.Dashboard{OrderCount: 3}, nil
	}), 30*time.Second)

	assert.Nil(t, p.Snapshot().Dashboard)
	snap, err := p.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap.Dashboard)
	assert.Equal(t, 3, snap.Dashboard.OrderCount)
	assert.NotNil(t, p.Snapshot().FetchedAt)
}

func TestDashboardPoller_FailureKeepsLastGoodDashboard(t *testing.T) {
	var fail atomic.Bool
	p := NewDashboardPoller(funcSource(func(context.Context) (*analytics.Dashboard, error) {
		if fail.Load() {
			return nil, errors.New("store down")
		}
		return &analytics.Dashboard{OrderCount: 1}, nil
	}), 30*time.Second)

	_, err := p.Refresh(context.Background())
	require.NoError(t, err)
	fail.Store(true)
	snap, err := p.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, "store down", snap.Error)
	require.NotNil(t, snap.Dashboard)
	assert.Equal(t, 1, snap.Dashboard.OrderCount)
}

func TestDashboardPoller_NewerRefreshCancelsAndWins(t *testing.T) {
	started := make(chan struct{})
	var calls atomic.Int32
	p := NewDashboardPoller(funcSource(func(ctx context.Context) (*analytics.Dashboard, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-ctx.Done()
			// a slow store that answers anyway after being cancelled
			return &analytics.Dashboard{OrderCount: 1}, nil
		}
		return &analytics.Dashboard{OrderCount: 2}, nil
	}), 30*time.Second)

	firstErr := make(chan error, 1)
	go func() {
		_, err := p.Refresh(context.Background())
		firstErr <- err
	}()
	<-started

	snap, err := p.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Dashboard.OrderCount)

	assert.ErrorIs(t, <-firstErr, ErrSuperseded)
	assert.Equal(t, 2, p.Snapshot().Dashboard.OrderCount, "stale result must not overwrite the newer one")
}

func TestDashboardPoller_StartAndStop(t *testing.T) {
	fetched := make(chan struct{}, 1)
	p := NewDashboardPoller(funcSource(func(context.Context) (*analytics.Dashboard, error) {
		select {
		case fetched <- struct{}{}:
		default:
		}
		return &analytics.Dashboard{}, nil
	}), time.Second)
	assert.Equal(t, minPollInterval, p.Interval())

	p.Start(context.Background())
	select {
	case <-fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not refresh on start")
	}
	p.Stop()
	assert.NotNil(t, p.Snapshot().Dashboard)
}
