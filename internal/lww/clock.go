package lww

import "sync"

// RevClock представляет монотонный счетчик ревизий документов семьи.
// Каждая запись в хранилище получает ревизию строго больше предыдущей,
// что дает тотальный порядок записей в рамках одной семьи.
type RevClock struct {
	counter int64      // монотонно возрастающий счетчик
	mu      sync.Mutex // мьютекс для потокобезопасности
}

// NewRevClock создает счетчик ревизий, начиная с seed.
// Seed задает максимальную ревизию, уже существующую в хранилище
// (0 для новой семьи).
func NewRevClock(seed int64) *RevClock {
	return &RevClock{counter: seed}
}

// Tick увеличивает счетчик и возвращает новую ревизию.
// Используется при каждой записи документа.
func (c *RevClock) Tick() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counter++
	return c.counter
}

// Observe обновляет счетчик на основе ревизии, увиденной извне
// (например, при восстановлении состояния): counter = max(counter, rev).
func (c *RevClock) Observe(rev int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rev > c.counter {
		c.counter = rev
	}
}

// Current возвращает текущее значение счетчика без его изменения
func (c *RevClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.counter
}
