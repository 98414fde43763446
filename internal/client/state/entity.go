package state

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Entity представляет одну видимую строку списка с оптимистичным
// состоянием записи. LocalID присваивается при создании и никогда
// не меняется, он остается стабильным ключом строки даже после того,
// как сервер присвоил RemoteID.
type Entity[T any] struct {
	LocalID  string // локальный ключ, uuid
	RemoteID string // пустой, пока создание не подтверждено сервером
	Payload  T
	Rev      int64 // ревизия последнего принятого серверного состояния
	Pending  bool  // есть незавершенная удаленная запись
	WriteErr error // последняя ошибка записи

	seq uint64 // порядковый номер вставки, ключ полного порядка
}

// LessFunc задает политику сортировки списка.
// nil означает порядок вставки.
type LessFunc[T any] func(a, b *Entity[T]) bool

// ListView хранит упорядоченный список Entity и пересортировывает
// его после каждой мутации. Все методы безопасны для конкурентного
// использования.
type ListView[T any] struct {
	mu       sync.Mutex
	entities []*Entity[T]
	less     LessFunc[T]
	nextSeq  uint64
}

// NewListView создает пустой список с заданной политикой сортировки
func NewListView[T any](less LessFunc[T]) *ListView[T] {
	return &ListView[T]{less: less}
}

// Insert добавляет новую оптимистичную запись и возвращает ее LocalID
func (l *ListView[T]) Insert(payload T) string {
	entity := &Entity[T]{
		LocalID: uuid.New().String(),
		Payload: payload,
		Pending: true,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entity.seq = l.takeSeq()
	l.entities = append(l.entities, entity)
	l.resort()

	return entity.LocalID
}

// Confirm переводит запись в подтвержденное состояние: присваивает
// RemoteID, применяет серверные поля через merge и снимает Pending.
// Повторное подтверждение с тем же RemoteID ничего не меняет.
// Подтверждение после локального удаления записи безвредно.
func (l *ListView[T]) Confirm(localID, remoteID string, rev int64, merge func(T) T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entity := l.find(localID)
	if entity == nil {
		return false
	}
	if entity.RemoteID == remoteID && !entity.Pending {
		return false
	}

	entity.RemoteID = remoteID
	entity.Rev = rev
	entity.Pending = false
	entity.WriteErr = nil
	if merge != nil {
		entity.Payload = merge(entity.Payload)
	}
	l.resort()

	return true
}

// Remove удаляет запись по LocalID
func (l *ListView[T]) Remove(localID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, entity := range l.entities {
		if entity.LocalID == localID {
			l.entities = append(l.entities[:i], l.entities[i+1:]...)
			return true
		}
	}
	return false
}

// Get возвращает копию записи по LocalID
func (l *ListView[T]) Get(localID string) (Entity[T], bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entity := l.find(localID); entity != nil {
		return *entity, true
	}
	var zero Entity[T]
	return zero, false
}

// ByRemoteID возвращает копию записи по RemoteID
func (l *ListView[T]) ByRemoteID(remoteID string) (Entity[T], bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if remoteID == "" {
		var zero Entity[T]
		return zero, false
	}
	for _, entity := range l.entities {
		if entity.RemoteID == remoteID {
			return *entity, true
		}
	}
	var zero Entity[T]
	return zero, false
}

// Entities возвращает снимок списка в текущем порядке
func (l *ListView[T]) Entities() []Entity[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot := make([]Entity[T], 0, len(l.entities))
	for _, entity := range l.entities {
		snapshot = append(snapshot, *entity)
	}
	return snapshot
}

// Len возвращает количество записей
func (l *ListView[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entities)
}

// mutate применяет изменение к записи под общим локом и пересортировывает
func (l *ListView[T]) mutate(localID string, change func(*Entity[T])) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entity := l.find(localID)
	if entity == nil {
		return false
	}
	change(entity)
	l.resort()
	return true
}

// find ищет запись по LocalID, вызывается под локом
func (l *ListView[T]) find(localID string) *Entity[T] {
	for _, entity := range l.entities {
		if entity.LocalID == localID {
			return entity
		}
	}
	return nil
}

// takeSeq выдает очередной порядковый номер вставки, вызывается под локом
func (l *ListView[T]) takeSeq() uint64 {
	l.nextSeq++
	return l.nextSeq
}

// resort пересортировывает список, вызывается под локом. Равные по
// политике записи упорядочиваются по номеру вставки, поэтому порядок
// полный: откат payload возвращает запись ровно на прежнюю позицию.
func (l *ListView[T]) resort() {
	if l.less == nil {
		sort.Slice(l.entities, func(i, j int) bool {
			return l.entities[i].seq < l.entities[j].seq
		})
		return
	}
	sort.Slice(l.entities, func(i, j int) bool {
		a, b := l.entities[i], l.entities[j]
		if l.less(a, b) {
			return true
		}
		if l.less(b, a) {
			return false
		}
		return a.seq < b.seq
	})
}
