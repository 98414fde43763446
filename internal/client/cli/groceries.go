package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/familyhub/internal/client/hub"
	"github.com/iudanet/familyhub/internal/models"
)

func (c *Cli) runGroceries(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"lists"}
	}

	switch args[0] {
	case "lists":
		return c.runGroceryLists(ctx)
	case "create":
		return c.runGroceryCreate(ctx, args[1:])
	case "show":
		return c.runGroceryShow(ctx, args[1:])
	case "add":
		return c.runGroceryAdd(ctx, args[1:])
	case "check":
		return c.runGroceryCheck(ctx, args[1:])
	case "seed":
		return c.runGrocerySeed(ctx, args[1:])
	case "remove":
		return c.runGroceryRemove(ctx, args[1:])
	default:
		return fmt.Errorf("unknown groceries command: %s", args[0])
	}
}

func (c *Cli) runGroceryLists(ctx context.Context) error {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return err
	}

	lists := h.GroceryLists()
	if len(lists) == 0 {
		c.io.Println("No grocery lists yet. Create one with 'familyhub groceries create <title>'.")
		return nil
	}

	c.io.Println("=== Grocery Lists ===")
	for _, list := range lists {
		c.io.Printf("%s  %s\n", list.RemoteID, list.Payload.Title)
	}

	return nil
}

func (c *Cli) runGroceryCreate(ctx context.Context, args []string) error {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return err
	}

	title, err := c.argOrPrompt(args, 0, "List title: ")
	if err != nil {
		return err
	}

	localID, done := h.AddGroceryList(ctx, models.GroceryList{Title: title})
	if err := <-done; err != nil {
		return err
	}

	list, _ := findList(h, localID)
	c.io.Printf("✓ List %q created\n", title)
	c.io.Printf("ID: %s\n", list)

	return nil
}

func (c *Cli) runGroceryShow(ctx context.Context, args []string) error {
	h, listID, err := c.openList(ctx, args)
	if err != nil {
		return err
	}

	c.printItems(h, listID)
	return nil
}

func (c *Cli) runGroceryAdd(ctx context.Context, args []string) error {
	h, listID, err := c.openList(ctx, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: familyhub groceries add <list-id> <name> [quantity]")
	}

	item := models.GroceryItem{Name: args[1]}
	if len(args) > 2 {
		item.Quantity = args[2]
	}

	_, done := h.AddGroceryItem(ctx, listID, item)
	if err := <-done; err != nil {
		return err
	}

	c.io.Printf("✓ %s added\n", item.Name)
	c.io.Println("Nutrition estimate will appear once the assistant responds.")

	return nil
}

func (c *Cli) runGroceryCheck(ctx context.Context, args []string) error {
	h, listID, err := c.openList(ctx, args)
	if err != nil {
		return err
	}

	item, err := pickEntity(h.GroceryItems(listID), args[1:])
	if err != nil {
		return err
	}

	if err := <-h.ToggleGroceryItem(ctx, listID, item.LocalID); err != nil {
		return err
	}

	if item.Payload.Checked {
		c.io.Printf("✓ %s unchecked\n", item.Payload.Name)
	} else {
		c.io.Printf("✓ %s checked off\n", item.Payload.Name)
	}
	c.printItems(h, listID)

	return nil
}

func (c *Cli) runGrocerySeed(ctx context.Context, args []string) error {
	h, listID, err := c.openList(ctx, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: familyhub groceries seed <list-id> <description...>")
	}

	description := strings.Join(args[1:], " ")
	localIDs, err := h.SeedGroceryList(ctx, listID, description, "")
	if err != nil {
		return err
	}

	c.io.Printf("✓ %d item(s) suggested\n", len(localIDs))
	c.printItems(h, listID)

	return nil
}

func (c *Cli) runGroceryRemove(ctx context.Context, args []string) error {
	h, listID, err := c.openList(ctx, args)
	if err != nil {
		return err
	}

	item, err := pickEntity(h.GroceryItems(listID), args[1:])
	if err != nil {
		return err
	}

	if err := h.RemoveGroceryItem(ctx, listID, item.LocalID); err != nil {
		return err
	}

	c.io.Printf("✓ %s removed\n", item.Payload.Name)
	c.printItems(h, listID)

	return nil
}

// openList загружает hub и позиции списка из первого аргумента
func (c *Cli) openList(ctx context.Context, args []string) (*hub.Hub, string, error) {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(args) == 0 {
		return nil, "", fmt.Errorf("list ID is required, see 'familyhub groceries lists'")
	}

	listID := args[0]
	if err := c.withAuthRetry(ctx, func() error { return h.OpenGroceryList(ctx, listID) }); err != nil {
		return nil, "", fmt.Errorf("open list: %w", err)
	}

	return h, listID, nil
}

func (c *Cli) printItems(h *hub.Hub, listID string) {
	items := h.GroceryItems(listID)
	if len(items) == 0 {
		c.io.Println("List is empty.")
		return
	}

	for i, item := range items {
		mark := " "
		if item.Payload.Checked {
			mark = "x"
		}
		line := fmt.Sprintf("%2d. [%s] %s", i+1, mark, item.Payload.Name)
		if item.Payload.Quantity != "" {
			line += " " + item.Payload.Quantity
		}
		if item.Payload.Calories != "" || item.Payload.Protein != "" {
			line += fmt.Sprintf("  (%s, %s)", item.Payload.Calories, item.Payload.Protein)
		}
		c.io.Println(line)
	}
}

// findList возвращает серверный ID списка по его LocalID
func findList(h *hub.Hub, localID string) (string, bool) {
	for _, list := range h.GroceryLists() {
		if list.LocalID == localID {
			return list.RemoteID, true
		}
	}
	return "", false
}
