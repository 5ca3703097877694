// Package report drives end-of-day report generation and the dashboard's
// data refresh.
package report

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bilalkalyar/workspace-agent-cli/internal/model/workspace"
)

// Fetcher is the slice of the backend client the poller needs.
type Fetcher interface {
	Report(ctx context.Context) (workspace.Report, error)
	Snapshot(ctx context.Context) (workspace.Snapshot, error)
	GenerateReport(ctx context.Context) error
}

// Data is one dashboard refresh: the latest report and snapshot together.
type Data struct {
	Report   workspace.Report
	Snapshot workspace.Snapshot
}

// Poller triggers server-side report generation and schedules one delayed
// refetch per trigger. Repeated triggers coalesce: a pending refetch is
// replaced, not stacked.
type Poller struct {
	mu     sync.Mutex
	api    Fetcher
	log    *zap.Logger
	delay  time.Duration
	timer  *time.Timer
	onData func(Data)
}

// NewPoller wires a poller. onData receives the refetched dashboard data
// after a trigger's delay elapses; it may be nil.
func NewPoller(api Fetcher, delay time.Duration, onData func(Data), log *zap.Logger) *Poller {
	return &Poller{api: api, delay: delay, onData: onData, log: log}
}

// Refresh fetches the report and snapshot concurrently. Used for the
// dashboard's initial load and by the post-trigger refetch.
func (p *Poller) Refresh(ctx context.Context) (Data, error) {
	g, ctx := errgroup.WithContext(ctx)

	var data Data
	g.Go(func() error {
		rep, err := p.api.Report(ctx)
		if err != nil {
			return err
		}
		data.Report = rep
		return nil
	})
	g.Go(func() error {
		snap, err := p.api.Snapshot(ctx)
		if err != nil {
			return err
		}
		data.Snapshot = snap
		return nil
	})

	if err := g.Wait(); err != nil {
		return Data{}, err
	}
	return data, nil
}

// Trigger fires the generation request and schedules one refetch after the
// configured delay, whether or not generation was accepted. The trigger is
// fire-and-forget: its own failure is only logged.
func (p *Poller) Trigger(ctx context.Context) {
	go func() {
		if err := p.api.GenerateReport(ctx); err != nil {
			p.log.Warn("report generation request failed", zap.Error(err))
		}
	}()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.delay, func() {
		data, err := p.Refresh(ctx)
		if err != nil {
			p.log.Warn("post-generation refresh failed", zap.Error(err))
			return
		}
		if p.onData != nil {
			p.onData(data)
		}
	})
}

// Close cancels any pending refetch.
func (p *Poller) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
