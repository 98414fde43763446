package cli

import (
	"context"
	"errors"
	"fmt"

	clientsync "github.com/iudanet/familyhub/internal/client/sync"
	"github.com/iudanet/familyhub/pkg/api"
)

// runWatch подписывается на изменения документов семьи и печатает их
// до прерывания (Ctrl+C)
func (c *Cli) runWatch(ctx context.Context) error {
	h, session, err := c.familyHub(ctx)
	if err != nil {
		return err
	}
	defer h.Close()

	dial := func(ctx context.Context, familyID string, since int64) (clientsync.Stream, error) {
		return c.client.Watch(ctx, familyID, since)
	}

	watcher := clientsync.NewWatcher(c.logger, dial, h, session.FamilyID)
	watcher.OnEvent = func(event *api.WatchEvent) {
		c.printWatchEvent(event)
	}

	c.io.Println("Watching family changes, press Ctrl+C to stop...")

	err = watcher.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *Cli) printWatchEvent(event *api.WatchEvent) {
	action := "updated"
	if event.Type == api.WatchEventDelete {
		action = "deleted"
	}

	line := fmt.Sprintf("[rev %d] %s %s %s",
		event.Document.Rev, event.Document.Collection, event.Document.ID, action)
	if event.Document.CreatedBy != "" {
		line += " by " + event.Document.CreatedBy
	}
	c.io.Println(line)
}
