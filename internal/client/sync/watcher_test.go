package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/familyhub/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// chanStream отдает события из канала, после закрытия канала
// возвращает ошибку обрыва
type chanStream struct {
	events chan *api.WatchEvent
	once   sync.Once
	closed chan struct{}
}

func newChanStream(events ...*api.WatchEvent) *chanStream {
	ch := make(chan *api.WatchEvent, len(events))
	for _, e := range events {
		ch <- e
	}
	return &chanStream{events: ch, closed: make(chan struct{})}
}

func (s *chanStream) Next() (*api.WatchEvent, error) {
	select {
	case event := <-s.events:
		return event, nil
	case <-s.closed:
		return nil, errors.New("connection closed")
	}
}

func (s *chanStream) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

// recordingApplier запоминает примененные события
type recordingApplier struct {
	mu      sync.Mutex
	applied []*api.WatchEvent
	refresh int
	lastRev int64
}

func (a *recordingApplier) ApplyWatchEvent(ctx context.Context, event *api.WatchEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.applied = append(a.applied, event)
	if event.Document.Rev > a.lastRev {
		a.lastRev = event.Document.Rev
	}
}

func (a *recordingApplier) Refresh(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.refresh++
	return nil
}

func (a *recordingApplier) LastRev() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastRev
}

func (a *recordingApplier) appliedCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.applied)
}

func putEvent(id string, rev int64) *api.WatchEvent {
	return &api.WatchEvent{
		Type:     api.WatchEventPut,
		Document: api.Document{ID: id, Rev: rev},
	}
}

func TestWatcher_AppliesEvents(t *testing.T) {
	stream := newChanStream(putEvent("doc-1", 1), putEvent("doc-2", 2))
	applier := &recordingApplier{}

	var printed []*api.WatchEvent
	var printedMu sync.Mutex

	w := NewWatcher(testLogger(), func(ctx context.Context, familyID string, since int64) (Stream, error) {
		assert.Equal(t, "fam-1", familyID)
		return stream, nil
	}, applier, "fam-1")
	w.OnEvent = func(event *api.WatchEvent) {
		printedMu.Lock()
		printed = append(printed, event)
		printedMu.Unlock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitFor(t, func() bool { return applier.appliedCount() == 2 })
	cancel()

	err := <-done
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, int64(2), applier.LastRev())
	printedMu.Lock()
	assert.Len(t, printed, 2)
	printedMu.Unlock()
}

func TestWatcher_ReconnectsAndRefreshes(t *testing.T) {
	first := newChanStream(putEvent("doc-1", 5))
	second := newChanStream()

	var dials []int64
	var dialsMu sync.Mutex

	applier := &recordingApplier{}
	w := NewWatcher(testLogger(), func(ctx context.Context, familyID string, since int64) (Stream, error) {
		dialsMu.Lock()
		dials = append(dials, since)
		n := len(dials)
		dialsMu.Unlock()
		if n == 1 {
			return first, nil
		}
		return second, nil
	}, applier, "fam-1")
	w.delay = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitFor(t, func() bool { return applier.appliedCount() == 1 })
	// Обрываем первую подписку, Watcher должен переподключиться
	require.NoError(t, first.Close())

	waitFor(t, func() bool {
		dialsMu.Lock()
		defer dialsMu.Unlock()
		return len(dials) >= 2
	})
	cancel()
	<-done

	dialsMu.Lock()
	assert.Equal(t, int64(0), dials[0])
	assert.Equal(t, int64(5), dials[1], "переподписка с последней примененной ревизии")
	dialsMu.Unlock()

	applier.mu.Lock()
	assert.GreaterOrEqual(t, applier.refresh, 1, "перед переподпиской дотянуты пропуски")
	applier.mu.Unlock()
}

func TestWatcher_DialFailureRetries(t *testing.T) {
	var attempts int
	var attemptsMu sync.Mutex

	applier := &recordingApplier{}
	w := NewWatcher(testLogger(), func(ctx context.Context, familyID string, since int64) (Stream, error) {
		attemptsMu.Lock()
		attempts++
		attemptsMu.Unlock()
		return nil, errors.New("connection refused")
	}, applier, "fam-1")
	w.delay = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitFor(t, func() bool {
		attemptsMu.Lock()
		defer attemptsMu.Unlock()
		return attempts >= 3
	})
	cancel()
	<-done
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	stream := newChanStream()
	applier := &recordingApplier{}
	w := NewWatcher(testLogger(), func(ctx context.Context, familyID string, since int64) (Stream, error) {
		return stream, nil
	}, applier, "fam-1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after context cancel")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
