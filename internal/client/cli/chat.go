package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/familyhub/pkg/api"
)

// runChat ведет интерактивный диалог с ассистентом. История передается
// серверу целиком при каждом запросе, пустой ввод завершает диалог.
func (c *Cli) runChat(ctx context.Context) error {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return err
	}
	defer h.Close()

	c.io.Println("Family assistant. Empty line ends the conversation.")

	var history []api.ChatMessage

	for {
		input, err := c.io.ReadInput("> ")
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}
		if input == "" {
			return nil
		}

		history = append(history, api.ChatMessage{
			Role:    api.ChatRoleUser,
			Content: input,
		})

		var reply string
		err = c.withAuthRetry(ctx, func() error {
			var opErr error
			reply, opErr = h.Chat(ctx, history)
			return opErr
		})
		if err != nil {
			return fmt.Errorf("assistant request: %w", err)
		}

		history = append(history, api.ChatMessage{
			Role:    api.ChatRoleModel,
			Content: reply,
		})

		c.io.Println(reply)
	}
}
