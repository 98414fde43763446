// Package cli реализует команды терминального клиента FamilyHub
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apiclient "github.com/iudanet/familyhub/internal/client/api"
	"github.com/iudanet/familyhub/internal/client/auth"
	"github.com/iudanet/familyhub/internal/client/hub"
	"github.com/iudanet/familyhub/internal/client/iocli"
	"github.com/iudanet/familyhub/internal/client/storage"
)

type Cli struct {
	io     iocli.IO
	logger *slog.Logger
	client *apiclient.Client
	auth   *auth.Service
	cache  storage.DocumentCache
}

func New(logger *slog.Logger, io iocli.IO, client *apiclient.Client, authService *auth.Service, cache storage.DocumentCache) *Cli {
	return &Cli{
		io:     io,
		logger: logger,
		client: client,
		auth:   authService,
		cache:  cache,
	}
}

// Run выполняет команду. Ошибку печатает вызывающий.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx, args)
	case "verify":
		return c.runVerify(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "family":
		return c.runFamily(ctx, args)
	case "chores":
		return c.runChores(ctx, args)
	case "events":
		return c.runEvents(ctx, args)
	case "groceries":
		return c.runGroceries(ctx, args)
	case "memoir":
		return c.runMemoir(ctx, args)
	case "board":
		return c.runBoard(ctx, args)
	case "chat":
		return c.runChat(ctx)
	case "watch":
		return c.runWatch(ctx)
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (c *Cli) PrintUsage() {
	c.io.Println("FamilyHub Client")
	c.io.Println()
	c.io.Println("Usage:")
	c.io.Println("  familyhub [OPTIONS] COMMAND")
	c.io.Println()
	c.io.Println("Options:")
	c.io.Println("  --version      Show version information")
	c.io.Println("  --server URL   Server URL (default: http://localhost:8080)")
	c.io.Println("  --db PATH      Path to local database (default: familyhub-client.db)")
	c.io.Println("  -v             Enable debug logging")
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  login [email]                 Request a one-time login code")
	c.io.Println("  verify [email]                Exchange the code for a session")
	c.io.Println("  logout                        End the session")
	c.io.Println("  status                        Show session and sync status")
	c.io.Println("  family create <name>          Create a family")
	c.io.Println("  family join                   Join the family you were invited to")
	c.io.Println("  family invite <email> <name> <role>")
	c.io.Println("                                Invite a member (Parent, Child, Grandparent)")
	c.io.Println("  family members                List family members and points")
	c.io.Println("  chores add                    Add a chore")
	c.io.Println("  chores list                   List chores")
	c.io.Println("  chores done <n>               Mark chore n completed")
	c.io.Println("  chores undone <n>             Reopen chore n")
	c.io.Println("  chores remove <n>             Remove chore n")
	c.io.Println("  events add                    Add a calendar event")
	c.io.Println("  events list                   List events by date")
	c.io.Println("  events remove <n>             Remove event n")
	c.io.Println("  groceries                     List grocery lists")
	c.io.Println("  groceries create <title>      Create a grocery list")
	c.io.Println("  groceries show <list-id>      Show items of a list")
	c.io.Println("  groceries add <list-id> <name> [quantity]")
	c.io.Println("                                Add an item")
	c.io.Println("  groceries check <list-id> <n> Toggle item n")
	c.io.Println("  groceries remove <list-id> <n>")
	c.io.Println("                                Remove item n")
	c.io.Println("  groceries seed <list-id> <description...>")
	c.io.Println("                                Fill the list with AI suggestions")
	c.io.Println("  memoir create <title>         Start a memoir")
	c.io.Println("  memoir list                   List memoirs")
	c.io.Println("  memoir questions <memoir-id>  Show questions of a memoir")
	c.io.Println("  memoir ask <memoir-id>        Add a question")
	c.io.Println("  memoir answer <memoir-id> <n> Answer question n")
	c.io.Println("  memoir read <memoir-id> <n>   Read answers to question n")
	c.io.Println("  memoir pending                Questions waiting for your answer")
	c.io.Println("  board show                    Show the family bulletin board")
	c.io.Println("  board edit                    Edit the bulletin board note")
	c.io.Println("  chat                          Talk to the family assistant")
	c.io.Println("  watch                         Stream live changes until interrupted")
	c.io.Println()
	c.io.Println("Examples:")
	c.io.Println("  familyhub login mama@example.com")
	c.io.Println("  familyhub verify mama@example.com")
	c.io.Println("  familyhub family create \"The Ivanovs\"")
	c.io.Println("  familyhub chores add")
	c.io.Println("  familyhub groceries seed 4f2c... \"week of quick dinners\"")
	c.io.Println("  familyhub --server https://hub.example.com status")
}

// session возвращает сохраненную сессию, настроив API клиента
func (c *Cli) session(ctx context.Context) (*storage.Session, error) {
	session, err := c.auth.Restore(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, fmt.Errorf("not logged in, run 'familyhub login' first")
		}
		return nil, err
	}
	return session, nil
}

// familyHub восстанавливает сессию, требует членства в семье и
// загружает доменное состояние
func (c *Cli) familyHub(ctx context.Context) (*hub.Hub, *storage.Session, error) {
	session, err := c.session(ctx)
	if err != nil {
		return nil, nil, err
	}
	if session.FamilyID == "" {
		return nil, nil, fmt.Errorf("no family yet, run 'familyhub family create' or 'familyhub family join'")
	}

	h := hub.New(c.logger, c.client, c.cache, session.FamilyID, session.DisplayName)
	if err := c.withAuthRetry(ctx, func() error { return h.Load(ctx) }); err != nil {
		return nil, nil, fmt.Errorf("load family data: %w", err)
	}

	return h, session, nil
}

// withAuthRetry повторяет операцию один раз после обновления токенов,
// если сервер отверг текущий access token
func (c *Cli) withAuthRetry(ctx context.Context, op func() error) error {
	err := op()
	if err == nil || !errors.Is(err, apiclient.ErrUnauthorized) {
		return err
	}

	if _, refreshErr := c.auth.RefreshSession(ctx); refreshErr != nil {
		return fmt.Errorf("session expired, run 'familyhub login' again: %w", refreshErr)
	}
	return op()
}
