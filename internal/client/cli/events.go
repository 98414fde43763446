package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/familyhub/internal/models"
)

func (c *Cli) runEvents(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "add":
		return c.runEventsAdd(ctx)
	case "list":
		return c.runEventsList(ctx)
	case "remove":
		return c.runEventsRemove(ctx, args[1:])
	default:
		return fmt.Errorf("unknown events command: %s", args[0])
	}
}

func (c *Cli) runEventsAdd(ctx context.Context) error {
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

	dateRaw, err := c.io.ReadInput("Date (YYYY-MM-DD or YYYY-MM-DD HH:MM): ")
	if err != nil {
		return fmt.Errorf("read date: %w", err)
	}
	date, err := parseEventDate(dateRaw)
	if err != nil {
		return err
	}

	description, err := c.io.ReadInput("Description (optional): ")
	if err != nil {
		return fmt.Errorf("read description: %w", err)
	}

	_, done := h.AddEvent(ctx, models.Event{
		Title:       title,
		Description: description,
		Date:        date,
	})
	if err := <-done; err != nil {
		return err
	}

	c.io.Printf("✓ Event %q added for %s\n", title, date.Format("2006-01-02 15:04"))

	return nil
}

func (c *Cli) runEventsList(ctx context.Context) error {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return err
	}

	events := h.Events()
	if len(events) == 0 {
		c.io.Println("No events yet. Add one with 'familyhub events add'.")
		return nil
	}

	c.io.Println("=== Events ===")
	for i, event := range events {
		line := fmt.Sprintf("%2d. %s  %s", i+1,
			event.Payload.Date.Format("2006-01-02 15:04"), event.Payload.Title)
		if event.Payload.Description != "" {
			line += " (" + event.Payload.Description + ")"
		}
		c.io.Println(line)
	}

	return nil
}

func (c *Cli) runEventsRemove(ctx context.Context, args []string) error {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return err
	}

	event, err := pickEntity(h.Events(), args)
	if err != nil {
		return err
	}

	if err := h.RemoveEvent(ctx, event.LocalID); err != nil {
		return err
	}

	c.io.Printf("✓ %q removed\n", event.Payload.Title)

	return nil
}

func parseEventDate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", time.DateOnly} {
		if date, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or YYYY-MM-DD HH:MM", raw)
}
