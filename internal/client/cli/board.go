package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runBoard(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}

	switch args[0] {
	case "show":
		return c.runBoardShow(ctx)
	case "edit":
		return c.runBoardEdit(ctx)
	default:
		return fmt.Errorf("unknown board command: %s", args[0])
	}
}

func (c *Cli) runBoardShow(ctx context.Context) error {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return err
	}
	defer h.Close()

	message := h.Board()
	if message == "" {
		c.io.Println("The board is empty. Leave a note with 'familyhub board edit'.")
		return nil
	}

	c.io.Println("=== Family board ===")
	c.io.Println(message)

	return nil
}

func (c *Cli) runBoardEdit(ctx context.Context) error {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return err
	}
	defer h.Close()

	current := h.Board()
	if current != "" {
		c.io.Println("Current note:")
		c.io.Println(current)
	}

	message, err := c.io.ReadInput("New note: ")
	if err != nil {
		return fmt.Errorf("read note: %w", err)
	}

	h.EditBoard(message)
	h.FlushBoard()

	c.io.Println("✓ Board updated")

	return nil
}
