package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/familyhub/internal/client/hub"
	"github.com/iudanet/familyhub/internal/client/state"
	"github.com/iudanet/familyhub/internal/models"
)

func (c *Cli) runMemoir(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "create":
		return c.runMemoirCreate(ctx, args[1:])
	case "list":
		return c.runMemoirList(ctx)
	case "questions":
		return c.runMemoirQuestions(ctx, args[1:])
	case "ask":
		return c.runMemoirAsk(ctx, args[1:])
	case "answer":
		return c.runMemoirAnswer(ctx, args[1:])
	case "read":
		return c.runMemoirRead(ctx, args[1:])
	case "pending":
		return c.runMemoirPending(ctx)
	default:
		return fmt.Errorf("unknown memoir command: %s", args[0])
	}
}

func (c *Cli) runMemoirCreate(ctx context.Context, args []string) error {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return err
	}

	title, err := c.argOrPrompt(args, 0, "Memoir title: ")
	if err != nil {
		return err
	}

	assignedTo, err := c.io.ReadInput("Who is it about (member name, optional): ")
	if err != nil {
		return fmt.Errorf("read assignee: %w", err)
	}

	_, done := h.AddMemoir(ctx, models.Memoir{Title: title, AssignedTo: assignedTo})
	if err := <-done; err != nil {
		return err
	}

	c.io.Printf("✓ Memoir %q started\n", title)

	return nil
}

func (c *Cli) runMemoirList(ctx context.Context) error {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return err
	}

	memoirs := h.Memoirs()
	if len(memoirs) == 0 {
		c.io.Println("No memoirs yet. Start one with 'familyhub memoir create <title>'.")
		return nil
	}

	c.io.Println("=== Memoirs ===")
	for _, memoir := range memoirs {
		line := fmt.Sprintf("%s  %s", memoir.RemoteID, memoir.Payload.Title)
		if memoir.Payload.AssignedTo != "" {
			line += " (about " + memoir.Payload.AssignedTo + ")"
		}
		c.io.Println(line)
	}

	return nil
}

func (c *Cli) runMemoirQuestions(ctx context.Context, args []string) error {
	h, memoirID, err := c.openMemoir(ctx, args)
	if err != nil {
		return err
	}

	questions := h.MemoirQuestions(memoirID)
	if len(questions) == 0 {
		c.io.Println("No questions yet. Add one with 'familyhub memoir ask'.")
		return nil
	}

	c.io.Println("=== Questions ===")
	for i, question := range questions {
		mark := " "
		if question.Payload.Status == models.QuestionStatusAnswered {
			mark = "x"
		}
		c.io.Printf("%2d. [%s] %s -> %s\n", i+1, mark,
			question.Payload.QuestionText, question.Payload.AssignedTo)
	}

	return nil
}

func (c *Cli) runMemoirAsk(ctx context.Context, args []string) error {
	h, memoirID, err := c.openMemoir(ctx, args)
	if err != nil {
		return err
	}

	text, err := c.io.ReadInput("Question: ")
	if err != nil {
		return fmt.Errorf("read question: %w", err)
	}
	if text == "" {
		return fmt.Errorf("question cannot be empty")
	}

	assignedTo, err := c.io.ReadInput("Ask whom (member name): ")
	if err != nil {
		return fmt.Errorf("read assignee: %w", err)
	}

	prompt, err := c.io.ReadInput("Hint for the answer (optional): ")
	if err != nil {
		return fmt.Errorf("read hint: %w", err)
	}

	_, done := h.AddMemoirQuestion(ctx, memoirID, models.MemoirQuestion{
		QuestionType: models.QuestionTypePrompt,
		QuestionText: text,
		PromptText:   prompt,
		AssignedTo:   assignedTo,
	})
	if err := <-done; err != nil {
		return err
	}

	c.io.Println("✓ Question added")

	return nil
}

func (c *Cli) runMemoirAnswer(ctx context.Context, args []string) error {
	h, memoirID, err := c.openMemoir(ctx, args)
	if err != nil {
		return err
	}

	question, err := pickEntity(h.MemoirQuestions(memoirID), args[1:])
	if err != nil {
		return err
	}

	c.io.Println(question.Payload.QuestionText)
	if question.Payload.PromptText != "" {
		c.io.Printf("Hint: %s\n", question.Payload.PromptText)
	}

	text, err := c.io.ReadInput("Answer: ")
	if err != nil {
		return fmt.Errorf("read answer: %w", err)
	}
	if text == "" {
		return fmt.Errorf("answer cannot be empty")
	}

	session, err := c.session(ctx)
	if err != nil {
		return err
	}

	if err := h.AnswerQuestion(ctx, memoirID, question.LocalID, session.DisplayName, text); err != nil {
		return err
	}

	c.io.Println("✓ Answer saved")

	return nil
}

func (c *Cli) runMemoirRead(ctx context.Context, args []string) error {
	h, memoirID, err := c.openMemoir(ctx, args)
	if err != nil {
		return err
	}

	question, err := pickEntity(h.MemoirQuestions(memoirID), args[1:])
	if err != nil {
		return err
	}
	if question.RemoteID == "" {
		return fmt.Errorf("question is not synced yet, try again shortly")
	}

	var answers []state.Entity[models.MemoirAnswer]
	err = c.withAuthRetry(ctx, func() error {
		var opErr error
		answers, opErr = h.MemoirAnswers(ctx, question.RemoteID)
		return opErr
	})
	if err != nil {
		return err
	}

	c.io.Println(question.Payload.QuestionText)
	if len(answers) == 0 {
		c.io.Println("No answers yet.")
		return nil
	}

	for _, answer := range answers {
		c.io.Printf("%s (%s):\n%s\n", answer.Payload.AnsweredBy,
			answer.Payload.AnsweredAt.Local().Format("2006-01-02 15:04"),
			answer.Payload.AnswerText)
	}

	return nil
}

func (c *Cli) runMemoirPending(ctx context.Context) error {
	h, session, err := c.familyHub(ctx)
	if err != nil {
		return err
	}

	pending, err := h.PendingQuestions(ctx, session.DisplayName)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		c.io.Println("No questions waiting for you.")
		return nil
	}

	c.io.Println("=== Questions for you ===")
	for _, q := range pending {
		c.io.Printf("memoir %s: %s\n", q.MemoirID, q.Question.QuestionText)
	}

	return nil
}

func (c *Cli) openMemoir(ctx context.Context, args []string) (*hub.Hub, string, error) {
	h, _, err := c.familyHub(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(args) == 0 {
		return nil, "", fmt.Errorf("memoir ID is required, see 'familyhub memoir list'")
	}

	memoirID := args[0]
	if err := c.withAuthRetry(ctx, func() error { return h.OpenMemoir(ctx, memoirID) }); err != nil {
		return nil, "", fmt.Errorf("open memoir: %w", err)
	}

	return h, memoirID, nil
}
