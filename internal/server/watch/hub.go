// Package watch реализует рассылку событий изменения документов
// подписчикам watch-канала. Доставка at-least-once: медленный
// подписчик отключается и переподключается с параметром since.
package watch

import (
	"log/slog"
	"sync"

	"github.com/iudanet/familyhub/pkg/api"
)

// subscriberBuffer размер буфера событий одного подписчика
const subscriberBuffer = 64

// Subscriber представляет одного подписчика watch-канала
type Subscriber struct {
	events chan api.WatchEvent
	once   sync.Once
}

// Events возвращает канал событий подписчика.
// Канал закрывается при отключении подписчика.
func (s *Subscriber) Events() <-chan api.WatchEvent {
	return s.events
}

func (s *Subscriber) close() {
	s.once.Do(func() {
		close(s.events)
	})
}

// Hub хранит подписчиков по семьям и рассылает им события
type Hub struct {
	logger *slog.Logger
	subs   map[string]map[*Subscriber]struct{}
	mu     sync.RWMutex
}

// NewHub создает новый Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger,
		subs:   make(map[string]map[*Subscriber]struct{}),
	}
}

// Subscribe регистрирует нового подписчика на события семьи
func (h *Hub) Subscribe(familyID string) *Subscriber {
	sub := &Subscriber{
		events: make(chan api.WatchEvent, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[familyID] == nil {
		h.subs[familyID] = make(map[*Subscriber]struct{})
	}
	h.subs[familyID][sub] = struct{}{}

	return sub
}

// Unsubscribe удаляет подписчика и закрывает его канал
func (h *Hub) Unsubscribe(familyID string, sub *Subscriber) {
	h.mu.Lock()
	if set, ok := h.subs[familyID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, familyID)
		}
	}
	h.mu.Unlock()

	sub.close()
}

// Publish рассылает событие всем подписчикам семьи.
// Подписчик с переполненным буфером отключается: он догонит
// пропущенное через since-replay при переподключении.
func (h *Hub) Publish(familyID string, event api.WatchEvent) {
	h.mu.RLock()
	slow := make([]*Subscriber, 0)
	for sub := range h.subs[familyID] {
		select {
		case sub.events <- event:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		h.logger.Warn("dropping slow watch subscriber", slog.String("family_id", familyID))
		h.Unsubscribe(familyID, sub)
	}
}

// Subscribers возвращает число подписчиков семьи
func (h *Hub) Subscribers(familyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[familyID])
}
