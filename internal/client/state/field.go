package state

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultQuietPeriod период тишины перед отправкой поля на сервер
const DefaultQuietPeriod = 1000 * time.Millisecond

// FieldSaveFunc выполняет удаленное сохранение значения поля
type FieldSaveFunc func(ctx context.Context, value string) error

// Field хранит один синхронизируемый скаляр (текст доски объявлений)
// с отложенной записью. Каждая правка перезапускает таймер тишины,
// на сервер уходит только последнее значение. Правки во время
// незавершенной записи принимаются и приводят ровно к одной
// дополнительной записи. Сбой записи логируется, локальное значение
// не откатывается: введенный пользователем текст не теряется.
type Field struct {
	logger *slog.Logger
	save   FieldSaveFunc
	quiet  time.Duration

	mu               sync.Mutex
	value            string
	dirty            bool
	pendingSave      bool
	saveIssuedAt     time.Time
	lastRemoteSeenAt time.Time
	timer            *time.Timer
	closed           bool

	// now подменяется в тестах
	now func() time.Time
}

// NewField создает поле с отложенной синхронизацией.
// quiet меньше или равный нулю заменяется DefaultQuietPeriod.
func NewField(logger *slog.Logger, quiet time.Duration, save FieldSaveFunc) *Field {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Field{
		logger: logger,
		save:   save,
		quiet:  quiet,
		now:    time.Now,
	}
}

// Edit принимает локальную правку и перезапускает таймер тишины
func (f *Field) Edit(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}

	f.value = value
	f.dirty = true

	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.quiet, f.flush)
}

// Value возвращает текущее локальное значение
func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Pending возвращает true, если есть несохраненная правка или
// незавершенная запись
func (f *Field) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty || f.pendingSave
}

// ApplyRemote применяет серверное значение к полю.
// Снимок отбрасывается, если есть несохраненная локальная правка,
// если он старше момента выдачи незавершенной записи (эхо состояния,
// которое этот клиент вот-вот перезапишет) или если значение не
// изменилось. Возвращает true, если значение применено.
func (f *Field) ApplyRemote(value string, ts time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dirty {
		return false
	}
	if f.pendingSave && ts.Before(f.saveIssuedAt) {
		return false
	}
	if value == f.value {
		return false
	}

	f.value = value
	f.lastRemoteSeenAt = ts
	return true
}

// Flush немедленно отправляет несохраненную правку, не дожидаясь
// таймера. Используется при завершении работы клиента.
func (f *Field) Flush() {
	f.mu.Lock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.mu.Unlock()

	f.flush()
}

// Close останавливает таймер, дальнейшие правки игнорируются
func (f *Field) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

// flush отправляет последнее значение на сервер.
// Нет правок с последней успешной отправки, значит ничего не делаем.
func (f *Field) flush() {
	f.mu.Lock()
	if !f.dirty || f.closed {
		f.mu.Unlock()
		return
	}
	if f.pendingSave {
		// Запись уже в полете, ее завершение само назначит
		// следующую отправку
		f.mu.Unlock()
		return
	}
	value := f.value
	f.dirty = false
	f.pendingSave = true
	f.saveIssuedAt = f.now()
	f.mu.Unlock()

	err := f.save(context.Background(), value)

	f.mu.Lock()
	f.pendingSave = false
	rearm := f.dirty && !f.closed
	f.mu.Unlock()

	if err != nil {
		f.logger.Warn("field save failed, keeping local value",
			slog.Any("error", err))
	}

	if rearm {
		// Во время записи пришла новая правка, назначаем еще одну
		// отправку с обычным периодом тишины
		f.mu.Lock()
		if f.timer != nil {
			f.timer.Stop()
		}
		f.timer = time.AfterFunc(f.quiet, f.flush)
		f.mu.Unlock()
	}
}
