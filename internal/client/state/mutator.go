package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// CreateFunc выполняет удаленное создание записи. Возвращает
// присвоенный сервером RemoteID, ревизию и опциональную функцию
// merge для серверных полей (например, оценки питательности).
type CreateFunc[T any] func(ctx context.Context) (remoteID string, rev int64, merge func(T) T, err error)

// SaveFunc выполняет удаленное сохранение измененной записи
type SaveFunc[T any] func(ctx context.Context, payload T) (rev int64, err error)

// Mutator применяет мутацию локально сразу, выполняет удаленную
// запись асинхронно и сводит состояние по результату: успех
// подтверждает запись, сбой откатывает ее. Мутации одной записи
// сериализуются по LocalID: вторая мутация той же записи ждет
// завершения первой. Мутации разных записей идут параллельно и
// не трогают позиции друг друга.
type Mutator[T any] struct {
	logger *slog.Logger
	list   *ListView[T]

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewMutator создает мутатор над списком
func NewMutator[T any](logger *slog.Logger, list *ListView[T]) *Mutator[T] {
	return &Mutator[T]{
		logger: logger,
		list:   list,
		locks:  make(map[string]*sync.Mutex),
	}
}

// List возвращает список, которым управляет мутатор
func (m *Mutator[T]) List() *ListView[T] {
	return m.list
}

// Apply синхронно вставляет оптимистичную запись и асинхронно
// выполняет удаленное создание. Возвращает LocalID вставленной
// записи и канал с результатом: nil при подтверждении, ошибка
// при откате. Повторов нет, сбой сразу откатывает вставку.
func (m *Mutator[T]) Apply(ctx context.Context, payload T, create CreateFunc[T]) (string, <-chan error) {
	localID := m.list.Insert(payload)

	// Лок свежего LocalID свободен, захват мгновенный. Последующие
	// мутации этой записи встанут в очередь за созданием.
	lock := m.lockFor(localID)
	lock.Lock()

	done := make(chan error, 1)
	go func() {
		defer lock.Unlock()

		remoteID, rev, merge, err := create(ctx)
		if err != nil {
			m.list.Remove(localID)
			m.logger.WarnContext(ctx, "optimistic create rolled back",
				slog.String("local_id", localID),
				slog.Any("error", err))
			done <- fmt.Errorf("%w: %w", ErrRemoteWrite, err)
			return
		}

		m.list.Confirm(localID, remoteID, rev, merge)
		done <- nil
	}()

	return localID, done
}

// Toggle оптимистично применяет flip к записи и асинхронно сохраняет
// ее. При сбое payload возвращается к состоянию до мутации, включая
// позицию в сортировке. Запись при откате не удаляется.
func (m *Mutator[T]) Toggle(ctx context.Context, localID string, flip func(*T), save SaveFunc[T]) <-chan error {
	return m.patch(ctx, localID, flip, save)
}

// Update применяет общее изменение записи с тем же контрактом
// отката, что и Toggle
func (m *Mutator[T]) Update(ctx context.Context, localID string, change func(*T), save SaveFunc[T]) <-chan error {
	return m.patch(ctx, localID, change, save)
}

func (m *Mutator[T]) patch(ctx context.Context, localID string, change func(*T), save SaveFunc[T]) <-chan error {
	done := make(chan error, 1)

	// Захват лока до локального применения: если по этой записи уже
	// идет мутация, следующая ждет ее исхода и стартует от сведенного
	// состояния, а не от оптимистичного.
	lock := m.lockFor(localID)
	lock.Lock()

	before, ok := m.list.Get(localID)
	if !ok {
		lock.Unlock()
		done <- fmt.Errorf("%w: %s", ErrEntityNotFound, localID)
		return done
	}

	var after T
	m.list.mutate(localID, func(e *Entity[T]) {
		change(&e.Payload)
		e.Pending = true
		e.WriteErr = nil
		after = e.Payload
	})

	go func() {
		defer lock.Unlock()

		rev, err := save(ctx, after)
		if err != nil {
			wrapped := fmt.Errorf("%w: %w", ErrRemoteWrite, err)
			m.list.mutate(localID, func(e *Entity[T]) {
				e.Payload = before.Payload
				e.Pending = false
				e.WriteErr = wrapped
			})
			m.logger.WarnContext(ctx, "optimistic update rolled back",
				slog.String("local_id", localID),
				slog.Any("error", err))
			done <- wrapped
			return
		}

		m.list.mutate(localID, func(e *Entity[T]) {
			e.Rev = rev
			e.Pending = false
			e.WriteErr = nil
		})
		done <- nil
	}()

	return done
}

// lockFor возвращает мьютекс сериализации мутаций для LocalID
func (m *Mutator[T]) lockFor(localID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[localID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[localID] = lock
	}
	return lock
}
