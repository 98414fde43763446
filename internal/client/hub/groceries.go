package hub

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/familyhub/internal/client/state"
	"github.com/iudanet/familyhub/internal/models"
	"github.com/iudanet/familyhub/pkg/api"
)

// GroceryLists возвращает списки покупок в порядке добавления
func (h *Hub) GroceryLists() []state.Entity[models.GroceryList] {
	return h.lists.entities()
}

// AddGroceryList вставляет список покупок сразу и создает его на сервере
func (h *Hub) AddGroceryList(ctx context.Context, list models.GroceryList) (string, <-chan error) {
	return h.lists.add(ctx, list)
}

// OpenGroceryList загружает позиции списка покупок. listID это
// серверный ID документа списка.
func (h *Hub) OpenGroceryList(ctx context.Context, listID string) error {
	return h.itemsFor(listID).load(ctx)
}

// GroceryItems возвращает позиции открытого списка, некупленные вперед
func (h *Hub) GroceryItems(listID string) []state.Entity[models.GroceryItem] {
	return h.itemsFor(listID).entities()
}

// AddGroceryItem вставляет позицию в список сразу и создает ее на
// сервере. После подтверждения в фоне запрашивается оценка
// питательности; если оценка недоступна, позиция остается без нее.
func (h *Hub) AddGroceryItem(ctx context.Context, listID string, item models.GroceryItem) (string, <-chan error) {
	c := h.itemsFor(listID)
	localID, created := c.add(ctx, item)

	done := make(chan error, 1)
	go func() {
		err := <-created
		done <- err
		if err != nil {
			return
		}
		h.enrichItem(ctx, c, localID)
	}()

	return localID, done
}

// ToggleGroceryItem переключает флаг "куплено". Список сразу
// пересортировывается, при сбое сохранения позиция возвращается
// на прежнее место.
func (h *Hub) ToggleGroceryItem(ctx context.Context, listID, localID string) <-chan error {
	return h.itemsFor(listID).toggle(ctx, localID, func(item *models.GroceryItem) {
		item.Checked = !item.Checked
	})
}

// RemoveGroceryItem удаляет позицию на сервере и из списка
func (h *Hub) RemoveGroceryItem(ctx context.Context, listID, localID string) error {
	return h.itemsFor(listID).remove(ctx, localID)
}

// SeedGroceryList наполняет список позициями, предложенными AI по
// текстовому описанию и/или фото. Возвращает LocalID добавленных
// позиций; каждая позиция проходит обычный оптимистичный цикл
// создания и обогащения.
func (h *Hub) SeedGroceryList(ctx context.Context, listID, description, imageBase64 string) ([]string, error) {
	if description == "" && imageBase64 == "" {
		return nil, fmt.Errorf("description or photo is required")
	}

	resp, err := h.remote.SuggestGroceries(ctx, api.SuggestGroceriesRequest{
		Description: description,
		ImageBase64: imageBase64,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest groceries: %w", err)
	}

	localIDs := make([]string, 0, len(resp.Items))
	for _, suggested := range resp.Items {
		localID, _ := h.AddGroceryItem(ctx, listID, models.GroceryItem{
			Name:     suggested.Name,
			Quantity: suggested.Quantity,
		})
		localIDs = append(localIDs, localID)
	}

	return localIDs, nil
}

func (h *Hub) itemsFor(listID string) *collection[models.GroceryItem] {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.items[listID]
	if !ok {
		c = newCollection(h, models.CollectionGroceryItems, listID, uncheckedFirst)
		h.items[listID] = c
	}
	return c
}

// enrichItem запрашивает у AI оценку питательности позиции и
// сохраняет ее. Недоступность оценки не ошибка, позиция уже
// подтверждена и остается в списке.
func (h *Hub) enrichItem(ctx context.Context, c *collection[models.GroceryItem], localID string) {
	entity, ok := c.mutator.List().Get(localID)
	if !ok {
		return
	}

	resp, err := h.remote.Nutrition(ctx, entity.Payload.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "nutrition estimate unavailable",
			slog.String("item", entity.Payload.Name),
			slog.Any("error", err))
		return
	}
	if resp.Calories == "" && resp.Protein == "" {
		return
	}

	saved := c.update(ctx, localID, func(item *models.GroceryItem) {
		item.Calories = resp.Calories
		item.Protein = resp.Protein
	})
	if err := <-saved; err != nil {
		h.logger.WarnContext(ctx, "nutrition estimate not saved",
			slog.String("item", entity.Payload.Name),
			slog.Any("error", err))
	}
}
