// Package sync держит состояние клиента в согласии с сервером:
// подписка на watch-канал, переподключение и дотягивание пропущенных
// изменений по последней известной ревизии.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/familyhub/pkg/api"
)

// DefaultReconnectDelay пауза перед повторной подпиской после обрыва
const DefaultReconnectDelay = 3 * time.Second

// Stream отдает события изменений документов по одному
type Stream interface {
	Next() (*api.WatchEvent, error)
	Close() error
}

// DialFunc открывает подписку на изменения документов семьи начиная
// с заданной ревизии
type DialFunc func(ctx context.Context, familyID string, since int64) (Stream, error)

// Applier принимает события изменений. Реализуется доменным слоем.
type Applier interface {
	ApplyWatchEvent(ctx context.Context, event *api.WatchEvent)
	Refresh(ctx context.Context) error
	LastRev() int64
}

// Watcher держит подписку на изменения документов семьи открытой,
// пока не отменен контекст. После обрыва соединения пропущенные
// изменения дотягиваются запросом по ревизии, затем подписка
// открывается заново.
type Watcher struct {
	logger   *slog.Logger
	dial     DialFunc
	applier  Applier
	familyID string
	delay    time.Duration

	// OnEvent вызывается после применения каждого события,
	// например для вывода в терминал. Может быть nil.
	OnEvent func(event *api.WatchEvent)
}

func NewWatcher(logger *slog.Logger, dial DialFunc, applier Applier, familyID string) *Watcher {
	return &Watcher{
		logger:   logger,
		dial:     dial,
		applier:  applier,
		familyID: familyID,
		delay:    DefaultReconnectDelay,
	}
}

// Run блокируется до отмены контекста, переподключаясь после обрывов
func (w *Watcher) Run(ctx context.Context) error {
	first := true
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if !first {
			if err := w.applier.Refresh(ctx); err != nil {
				w.logger.WarnContext(ctx, "catch-up refresh failed",
					slog.Any("error", err))
			}
		}
		first = false

		if err := w.watchOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.WarnContext(ctx, "watch connection lost, reconnecting",
				slog.Duration("delay", w.delay),
				slog.Any("error", err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.delay):
		}
	}
}

// watchOnce читает события одной подписки до первой ошибки
func (w *Watcher) watchOnce(ctx context.Context) error {
	stream, err := w.dial(ctx, w.familyID, w.applier.LastRev())
	if err != nil {
		return fmt.Errorf("subscribe to changes: %w", err)
	}
	defer stream.Close()

	// Next блокируется на сетевом чтении, закрытие потока его будит
	stop := context.AfterFunc(ctx, func() { _ = stream.Close() })
	defer stop()

	for {
		event, err := stream.Next()
		if err != nil {
			return fmt.Errorf("read change event: %w", err)
		}

		w.applier.ApplyWatchEvent(ctx, event)
		if w.OnEvent != nil {
			w.OnEvent(event)
		}
	}
}
