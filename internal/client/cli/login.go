package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	email, err := c.argOrPrompt(args, 0, "Email: ")
	if err != nil {
		return err
	}

	message, err := c.auth.RequestCode(ctx, email)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println(message)
	c.io.Printf("Check your inbox and run 'familyhub verify %s' with the code.\n", email)

	return nil
}

func (c *Cli) runVerify(ctx context.Context, args []string) error {
	c.io.Println("=== Verify ===")
	c.io.Println()

	email, err := c.argOrPrompt(args, 0, "Email: ")
	if err != nil {
		return err
	}

	// Код вводится скрыто, как пароль
	code, err := c.io.ReadPassword("Login code: ")
	if err != nil {
		return fmt.Errorf("read login code: %w", err)
	}
	if code == "" {
		return fmt.Errorf("login code cannot be empty")
	}

	session, err := c.auth.Verify(ctx, email, code)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Logged in!")
	c.io.Printf("Email: %s\n", session.Email)
	if session.DisplayName != "" {
		c.io.Printf("Name:  %s\n", session.DisplayName)
	}
	if session.FamilyID == "" {
		c.io.Println()
		c.io.Println("You are not in a family yet.")
		c.io.Println("Run 'familyhub family create <name>' or 'familyhub family join'.")
	}

	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.auth.Logout(ctx); err != nil {
		return err
	}
	c.io.Println("✓ Logged out")
	return nil
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	session, err := c.session(ctx)
	if err != nil {
		return err
	}

	c.io.Println("Status: Logged in")
	c.io.Printf("Email:  %s\n", session.Email)
	if session.DisplayName != "" {
		c.io.Printf("Name:   %s\n", session.DisplayName)
	}
	if session.FamilyID != "" {
		c.io.Printf("Family: %s (%s)\n", session.FamilyID, session.Role)
	} else {
		c.io.Println("Family: none")
	}

	expiresAt := time.Unix(session.ExpiresAt, 0)
	c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))

	if rev, err := c.cache.GetLastRev(ctx); err == nil && rev > 0 {
		c.io.Printf("Last synced revision: %d\n", rev)
	}

	return nil
}

// argOrPrompt берет значение из позиционного аргумента или спрашивает
func (c *Cli) argOrPrompt(args []string, index int, prompt string) (string, error) {
	if len(args) > index && args[index] != "" {
		return args[index], nil
	}

	value, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if value == "" {
		return "", fmt.Errorf("value cannot be empty")
	}
	return value, nil
}
