package hub

import (
	"context"

	"github.com/iudanet/familyhub/internal/client/state"
	"github.com/iudanet/familyhub/internal/models"
)

// Events возвращает события календаря по возрастанию даты
func (h *Hub) Events() []state.Entity[models.Event] {
	return h.events.entities()
}

// AddEvent вставляет событие в календарь сразу и создает его на
// сервере. Позиция в списке определяется датой события.
func (h *Hub) AddEvent(ctx context.Context, event models.Event) (string, <-chan error) {
	return h.events.add(ctx, event)
}

// RemoveEvent удаляет событие на сервере и из календаря
func (h *Hub) RemoveEvent(ctx context.Context, localID string) error {
	return h.events.remove(ctx, localID)
}
