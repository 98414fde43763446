package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/iudanet/familyhub/internal/client/state"
	"github.com/iudanet/familyhub/internal/models"
)

func (c *Cli) runChores(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "add":
		return c.runChoresAdd(ctx)
	case "list":
		return c.runChoresList(ctx)
	case "done":
		return c.runChoresToggle(ctx, args[1:], true)
	case "undone":
		return c.runChoresToggle(ctx, args[1:], false)
	case "remove":
		return c.runChoresRemove(ctx, args[1:])
	default:
		return fmt.Errorf("unknown chores command: %s", args[0])
	}
}

func (c *Cli) runChoresAdd(ctx context.Context) error {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return err
	}

	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		return fmt.Errorf("read title: %w", err)
	}
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	assignedTo, err := c.io.ReadInput("Assigned to (member name, optional): ")
	if err != nil {
		return fmt.Errorf("read assignee: %w", err)
	}

	pointsRaw, err := c.io.ReadInput("Points (default 0): ")
	if err != nil {
		return fmt.Errorf("read points: %w", err)
	}
	points := 0
	if pointsRaw != "" {
		points, err = strconv.Atoi(pointsRaw)
		if err != nil {
			return fmt.Errorf("points must be a number: %w", err)
		}
	}

	_, done := h.AddChore(ctx, models.Chore{
		Title:      title,
		AssignedTo: assignedTo,
		Points:     points,
	})
	if err := <-done; err != nil {
		return err
	}

	c.io.Printf("✓ Chore %q added\n", title)

	return nil
}

func (c *Cli) runChoresList(ctx context.Context) error {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return err
	}

	chores := h.Chores()
	if len(chores) == 0 {
		c.io.Println("No chores yet. Add one with 'familyhub chores add'.")
		return nil
	}

	c.io.Println("=== Chores ===")
	for i, chore := range chores {
		c.io.Printf("%2d. %s\n", i+1, formatChore(chore))
	}

	return nil
}

func (c *Cli) runChoresToggle(ctx context.Context, args []string, complete bool) error {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return err
	}

	chore, err := pickEntity(h.Chores(), args)
	if err != nil {
		return err
	}

	var done <-chan error
	if complete {
		done = h.CompleteChore(ctx, chore.LocalID)
	} else {
		done = h.ReopenChore(ctx, chore.LocalID)
	}
	if err := <-done; err != nil {
		return err
	}

	if complete {
		c.io.Printf("✓ %q completed", chore.Payload.Title)
		if chore.Payload.Points > 0 {
			c.io.Printf(", %d points awarded", chore.Payload.Points)
		}
		c.io.Println()
	} else {
		c.io.Printf("✓ %q reopened\n", chore.Payload.Title)
	}

	return nil
}

func (c *Cli) runChoresRemove(ctx context.Context, args []string) error {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return err
	}

	chore, err := pickEntity(h.Chores(), args)
	if err != nil {
		return err
	}

	if err := h.RemoveChore(ctx, chore.LocalID); err != nil {
		return err
	}

	c.io.Printf("✓ %q removed\n", chore.Payload.Title)

	return nil
}

func formatChore(chore state.Entity[models.Chore]) string {
	mark := " "
	if chore.Payload.Status == models.ChoreStatusCompleted {
		mark = "x"
	}

	line := fmt.Sprintf("[%s] %s", mark, chore.Payload.Title)
	if chore.Payload.Points > 0 {
		line += fmt.Sprintf(" (%d pts)", chore.Payload.Points)
	}
	if chore.Payload.AssignedTo != "" {
		line += " -> " + chore.Payload.AssignedTo
	}
	if chore.Payload.CompletedAt != nil {
		line += " done " + chore.Payload.CompletedAt.Format(time.DateOnly)
	}
	return line
}

// pickEntity выбирает запись по номеру из аргументов команды.
// Нумерация идет с единицы, как в выводе list.
func pickEntity[T any](entities []state.Entity[T], args []string) (state.Entity[T], error) {
	var zero state.Entity[T]
	if len(args) == 0 {
		return zero, fmt.Errorf("item number is required")
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(entities) {
		return zero, fmt.Errorf("invalid item number %q, expected 1..%d", args[0], len(entities))
	}
	return entities[n-1], nil
}
