package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/milstat-dev/milstat/pkg/domain/interfaces"
	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
	"github.com/milstat-dev/milstat/pkg/gateway/memory"
	"github.com/milstat-dev/milstat/pkg/usecase"
)

// hookedGateway lets a test stall, fail or replace the report collection
// while delegating everything else to the in-memory backend.
type hookedGateway struct {
	interfaces.Gateway
	reports *reportStoreHook
}

func (g *hookedGateway) Reports() interfaces.ReportStore {
	return g.reports
}

type reportStoreHook struct {
	interfaces.ReportStore

	mu        sync.Mutex
	listGate  chan struct{}
	listBegan chan struct{}
	canned    []*model.StatusReport
	useCanned bool
	listErr   error
	upsertErr error
	listCalls int
}

func (s *reportStoreHook) List(ctx context.Context, unit types.Unit) ([]*model.StatusReport, error) {
	s.mu.Lock()
	s.listCalls++
	gate, began := s.listGate, s.listBegan
	canned, useCanned := s.canned, s.useCanned
	listErr := s.listErr
	s.mu.Unlock()

	if began != nil {
		select {
		case began <- struct{}{}:
		default:
		}
	}
	if gate != nil {
		<-gate
	}
	if listErr != nil {
		return nil, listErr
	}
	if useCanned {
		return canned, nil
	}
	return s.ReportStore.List(ctx, unit)
}

func (s *reportStoreHook) Upsert(ctx context.Context, report *model.StatusReport) error {
	s.mu.Lock()
	upsertErr := s.upsertErr
	s.mu.Unlock()

	if upsertErr != nil {
		return upsertErr
	}
	return s.ReportStore.Upsert(ctx, report)
}

func (s *reportStoreHook) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

func testReport(content string) *model.StatusReport {
	return &model.StatusReport{
		Unit:        types.UnitC3,
		PositionKey: "SQ_01_01",
		Name:        "member SQ_01_01",
		Date:        testDate,
		TimeSlot:    testSlot,
		Content:     content,
	}
}

func TestReloadDiscardsSupersededFetch(t *testing.T) {
	ctx := context.Background()
	gw := memory.New()
	hook := &reportStoreHook{ReportStore: gw.Reports()}
	uc := usecase.New(&hookedGateway{Gateway: gw, reports: hook}, usecase.WithBlockingSync())

	seedRoster(t, gw, types.UnitC3, "SQ_01_01")

	snap, err := uc.Snapshot(ctx, types.UnitC3)
	gt.NoError(t, err).Required()
	gt.Array(t, snap.Reports).Length(0)

	// the next fetch returns an empty view and stalls until released
	gate := make(chan struct{})
	began := make(chan struct{}, 1)
	hook.mu.Lock()
	hook.listGate = gate
	hook.listBegan = began
	hook.useCanned = true
	hook.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- uc.Reload(ctx, types.UnitC3, false)
	}()
	<-began

	// a report lands while that fetch is in flight
	gt.NoError(t, uc.SaveReport(ctx, testReport("sick call"))).Required()

	close(gate)
	gt.NoError(t, <-done).Required()

	// the superseded result is discarded and the newer write survives
	snap, err = uc.Snapshot(ctx, types.UnitC3)
	gt.NoError(t, err).Required()
	gt.Array(t, snap.Reports).Length(1).Required()
	gt.Value(t, snap.Reports[0].Content).Equal("sick call")

	// the same fetch applied forcibly does replace
	gt.NoError(t, uc.Reload(ctx, types.UnitC3, true)).Required()
	snap, err = uc.Snapshot(ctx, types.UnitC3)
	gt.NoError(t, err).Required()
	gt.Array(t, snap.Reports).Length(0)
}

func TestSyncWriteFailureKeepsLocalState(t *testing.T) {
	ctx := context.Background()
	gw := memory.New()
	hook := &reportStoreHook{ReportStore: gw.Reports()}
	uc := usecase.New(&hookedGateway{Gateway: gw, reports: hook}, usecase.WithBlockingSync())

	seedRoster(t, gw, types.UnitC3, "SQ_01_01")

	_, err := uc.Snapshot(ctx, types.UnitC3)
	gt.NoError(t, err).Required()

	// backend goes down: the write and the reconcile fetch both fail
	backendDown := goerr.New("backend unreachable")
	hook.mu.Lock()
	hook.upsertErr = backendDown
	hook.listErr = backendDown
	hook.mu.Unlock()

	before := hook.calls()
	gt.NoError(t, uc.SaveReport(ctx, testReport("sick call"))).Required()

	// the optimistic write is kept and a reconcile fetch was attempted
	snap, err := uc.Snapshot(ctx, types.UnitC3)
	gt.NoError(t, err).Required()
	gt.Array(t, snap.Reports).Length(1).Required()
	gt.Value(t, snap.Reports[0].Content).Equal("sick call")
	gt.Bool(t, hook.calls() > before).True()

	// the backend never saw the write
	stored, err := gw.Reports().List(ctx, types.UnitC3)
	gt.NoError(t, err).Required()
	gt.Array(t, stored).Length(0)

	// after recovery a manual reload converges on the backend's truth
	hook.mu.Lock()
	hook.upsertErr = nil
	hook.listErr = nil
	hook.mu.Unlock()

	gt.NoError(t, uc.Reload(ctx, types.UnitC3, true)).Required()
	snap, err = uc.Snapshot(ctx, types.UnitC3)
	gt.NoError(t, err).Required()
	gt.Array(t, snap.Reports).Length(0)
}
