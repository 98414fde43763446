package hub

import (
	"context"
	"time"

	"github.com/iudanet/familyhub/internal/client/state"
	"github.com/iudanet/familyhub/internal/models"
)

// Chores возвращает снимок списка дел в порядке добавления
func (h *Hub) Chores() []state.Entity[models.Chore] {
	return h.chores.entities()
}

// AddChore вставляет дело в список сразу и создает его на сервере.
// Канал возвращает nil после подтверждения или ошибку после отката.
func (h *Hub) AddChore(ctx context.Context, chore models.Chore) (string, <-chan error) {
	if chore.Status == "" {
		chore.Status = models.ChoreStatusPending
	}
	return h.chores.add(ctx, chore)
}

// CompleteChore отмечает дело выполненным. Очки за выполнение
// начисляет сервер при сохранении документа.
func (h *Hub) CompleteChore(ctx context.Context, localID string) <-chan error {
	return h.chores.toggle(ctx, localID, func(chore *models.Chore) {
		now := time.Now().UTC()
		chore.Status = models.ChoreStatusCompleted
		chore.CompletedAt = &now
	})
}

// ReopenChore возвращает дело в состояние pending
func (h *Hub) ReopenChore(ctx context.Context, localID string) <-chan error {
	return h.chores.toggle(ctx, localID, func(chore *models.Chore) {
		chore.Status = models.ChoreStatusPending
		chore.CompletedAt = nil
	})
}

// RemoveChore удаляет дело на сервере и из списка
func (h *Hub) RemoveChore(ctx context.Context, localID string) error {
	return h.chores.remove(ctx, localID)
}
