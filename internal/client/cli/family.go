package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/familyhub/pkg/api"
)

func (c *Cli) runFamily(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: familyhub family create|join|invite|members")
	}

	switch args[0] {
	case "create":
		return c.runFamilyCreate(ctx, args[1:])
	case "join":
		return c.runFamilyJoin(ctx)
	case "invite":
		return c.runFamilyInvite(ctx, args[1:])
	case "members":
		return c.runFamilyMembers(ctx)
	default:
		return fmt.Errorf("unknown family command: %s", args[0])
	}
}

func (c *Cli) runFamilyCreate(ctx context.Context, args []string) error {
	session, err := c.session(ctx)
	if err != nil {
		return err
	}
	if session.FamilyID != "" {
		return fmt.Errorf("already in family %s", session.FamilyID)
	}

	name, err := c.argOrPrompt(args, 0, "Family name: ")
	if err != nil {
		return err
	}

	var family *api.FamilyResponse
	err = c.withAuthRetry(ctx, func() error {
		var opErr error
		family, opErr = c.client.CreateFamily(ctx, name)
		return opErr
	})
	if err != nil {
		return err
	}

	// Создатель становится родителем
	if err := c.auth.SetFamily(ctx, family.ID, "Parent"); err != nil {
		return err
	}

	c.io.Printf("✓ Family %q created\n", family.Name)
	c.io.Printf("ID: %s\n", family.ID)
	c.io.Println()
	c.io.Println("Invite members with 'familyhub family invite <email> <name> <role>'.")

	return nil
}

func (c *Cli) runFamilyJoin(ctx context.Context) error {
	if _, err := c.session(ctx); err != nil {
		return err
	}

	var joined *api.JoinFamilyResponse
	err := c.withAuthRetry(ctx, func() error {
		var opErr error
		joined, opErr = c.client.JoinFamily(ctx)
		return opErr
	})
	if err != nil {
		return err
	}

	if err := c.auth.SetFamily(ctx, joined.FamilyID, joined.Role); err != nil {
		return err
	}

	c.io.Printf("✓ Joined family %s as %s\n", joined.FamilyID, joined.Role)

	return nil
}

func (c *Cli) runFamilyInvite(ctx context.Context, args []string) error {
	session, err := c.session(ctx)
	if err != nil {
		return err
	}
	if session.FamilyID == "" {
		return fmt.Errorf("no family yet, run 'familyhub family create' first")
	}
	if len(args) < 3 {
		return fmt.Errorf("usage: familyhub family invite <email> <name> <role>")
	}

	req := api.InviteRequest{
		Email: args[0],
		Name:  args[1],
		Role:  args[2],
	}

	var invite *api.InviteResponse
	err = c.withAuthRetry(ctx, func() error {
		var opErr error
		invite, opErr = c.client.Invite(ctx, session.FamilyID, req)
		return opErr
	})
	if err != nil {
		return err
	}

	c.io.Printf("✓ Invited %s as %s\n", invite.Email, invite.Role)
	c.io.Println("They can accept with 'familyhub family join' after logging in.")

	return nil
}

func (c *Cli) runFamilyMembers(ctx context.Context) error {
	session, err := c.session(ctx)
	if err != nil {
		return err
	}
	if session.FamilyID == "" {
		return fmt.Errorf("no family yet")
	}

	var members *api.ListMembersResponse
	err = c.withAuthRetry(ctx, func() error {
		var opErr error
		members, opErr = c.client.ListMembers(ctx, session.FamilyID)
		return opErr
	})
	if err != nil {
		return err
	}

	c.io.Println("=== Family Members ===")
	c.io.Println()
	for _, member := range members.Members {
		status := "invited"
		if member.Joined {
			status = "joined"
		}
		c.io.Printf("%-20s %-12s %-8s %4d pts  [%s]\n",
			member.Name, member.Email, member.Role, member.Points, status)
	}
	if len(members.Members) == 0 {
		c.io.Println("No members yet.")
	}

	return nil
}
