package report_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bilalkalyar/workspace-agent-cli/internal/model/workspace"
	"github.com/bilalkalyar/workspace-agent-cli/internal/service/report"
)

type fakeBackend struct {
	mu       sync.Mutex
	genCalls int
	genErr   error
	report   workspace.Report
	snapshot workspace.Snapshot
	fetchErr error
}

func (f *fakeBackend) Report(_ context.Context) (workspace.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.report, f.fetchErr
}

func (f *fakeBackend) Snapshot(_ context.Context) (workspace.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot, f.fetchErr
}

func (f *fakeBackend) GenerateReport(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.genCalls++
	return f.genErr
}

func (f *fakeBackend) generateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.genCalls
}

func TestRefreshFetchesReportAndSnapshot(t *testing.T) {
	backend := &fakeBackend{
		report:   workspace.Report{Date: "2025-06-01", Content: "## End of Day Report"},
		snapshot: workspace.Snapshot{UrgentCount: 2},
	}
	poller := report.NewPoller(backend, time.Millisecond, nil, zap.NewNop())
	defer poller.Close()

	data, err := poller.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh err: %v", err)
	}
	if data.Report.Date != "2025-06-01" {
		t.Fatalf("unexpected report date %q", data.Report.Date)
	}
	if data.Snapshot.UrgentCount != 2 {
		t.Fatalf("unexpected urgent count %d", data.Snapshot.UrgentCount)
	}
}

func TestRefreshPropagatesFetchFailure(t *testing.T) {
	backend := &fakeBackend{fetchErr: errors.New("backend down")}
	poller := report.NewPoller(backend, time.Millisecond, nil, zap.NewNop())
	defer poller.Close()

	if _, err := poller.Refresh(context.Background()); err == nil {
		t.Fatal("expected error when the backend is down")
	}
}

func TestTriggerSchedulesOneRefetch(t *testing.T) {
	refetched := make(chan report.Data, 4)
	backend := &fakeBackend{report: workspace.Report{Content: "regenerated"}}
	poller := report.NewPoller(backend, 10*time.Millisecond, func(d report.Data) {
		refetched <- d
	}, zap.NewNop())
	defer poller.Close()

	poller.Trigger(context.Background())

	select {
	case data := <-refetched:
		if data.Report.Content != "regenerated" {
			t.Fatalf("unexpected refetched content %q", data.Report.Content)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("refetch never fired")
	}

	if calls := backend.generateCalls(); calls != 1 {
		t.Fatalf("expected one generation call, got %d", calls)
	}
}

func TestTriggerRefetchesEvenWhenGenerationFails(t *testing.T) {
	refetched := make(chan report.Data, 1)
	backend := &fakeBackend{genErr: errors.New("llm unavailable")}
	poller := report.NewPoller(backend, 10*time.Millisecond, func(d report.Data) {
		refetched <- d
	}, zap.NewNop())
	defer poller.Close()

	poller.Trigger(context.Background())

	select {
	case <-refetched:
	case <-time.After(2 * time.Second):
		t.Fatal("refetch must fire regardless of generation outcome")
	}
}

func TestRepeatedTriggersCoalesce(t *testing.T) {
	refetched := make(chan report.Data, 4)
	backend := &fakeBackend{}
	poller := report.NewPoller(backend, 80*time.Millisecond, func(d report.Data) {
		refetched <- d
	}, zap.NewNop())
	defer poller.Close()

	poller.Trigger(context.Background())
	time.Sleep(20 * time.Millisecond)
	poller.Trigger(context.Background())

	select {
	case <-refetched:
	case <-time.After(2 * time.Second):
		t.Fatal("refetch never fired")
	}

	// The first trigger's pending refetch was replaced, so no second
	// delivery follows.
	select {
	case <-refetched:
		t.Fatal("coalesced triggers must refetch once")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCloseCancelsPendingRefetch(t *testing.T) {
	refetched := make(chan report.Data, 1)
	backend := &fakeBackend{}
	poller := report.NewPoller(backend, 50*time.Millisecond, func(d report.Data) {
		refetched <- d
	}, zap.NewNop())

	poller.Trigger(context.Background())
	poller.Close()

	select {
	case <-refetched:
		t.Fatal("closed poller must not refetch")
	case <-time.After(150 * time.Millisecond):
	}
}
