package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iudanet/familyhub/internal/client/state"
	"github.com/iudanet/familyhub/internal/models"
)

// PendingQuestion представляет ожидающий ответа вопрос мемуара
// в сводке по всем мемуарам семьи
type PendingQuestion struct {
	QuestionID string
	MemoirID   string
	Question   models.MemoirQuestion
}

// Memoirs возвращает мемуары семьи в порядке добавления
func (h *Hub) Memoirs() []state.Entity[models.Memoir] {
	return h.memoirs.entities()
}

// AddMemoir вставляет мемуар сразу и создает его на сервере
func (h *Hub) AddMemoir(ctx context.Context, memoir models.Memoir) (string, <-chan error) {
	return h.memoirs.add(ctx, memoir)
}

// OpenMemoir загружает вопросы мемуара. memoirID это серверный ID
// документа мемуара.
func (h *Hub) OpenMemoir(ctx context.Context, memoirID string) error {
	return h.questionsFor(memoirID).load(ctx)
}

// MemoirQuestions возвращает вопросы открытого мемуара
func (h *Hub) MemoirQuestions(memoirID string) []state.Entity[models.MemoirQuestion] {
	return h.questionsFor(memoirID).entities()
}

// AddMemoirQuestion добавляет вопрос в мемуар
func (h *Hub) AddMemoirQuestion(ctx context.Context, memoirID string, question models.MemoirQuestion) (string, <-chan error) {
	if question.Status == "" {
		question.Status = models.QuestionStatusPending
	}
	return h.questionsFor(memoirID).add(ctx, question)
}

// MemoirAnswers возвращает ответы на вопрос. questionID это серверный
// ID документа вопроса.
func (h *Hub) MemoirAnswers(ctx context.Context, questionID string) ([]state.Entity[models.MemoirAnswer], error) {
	c := h.answersFor(questionID)
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c.entities(), nil
}

// AnswerQuestion записывает ответ на вопрос мемуара и помечает вопрос
// отвеченным. Ответ создается с ожиданием подтверждения: помечать
// вопрос имеет смысл только если ответ реально сохранен.
func (h *Hub) AnswerQuestion(ctx context.Context, memoirID, questionLocalID, answeredBy, text string) error {
	questions := h.questionsFor(memoirID)
	question, ok := questions.mutator.List().Get(questionLocalID)
	if !ok {
		return fmt.Errorf("%w: %s", state.ErrEntityNotFound, questionLocalID)
	}
	if question.RemoteID == "" {
		return fmt.Errorf("question %s is not confirmed yet", questionLocalID)
	}

	answers := h.answersFor(question.RemoteID)
	_, created := answers.add(ctx, models.MemoirAnswer{
		AnsweredBy: answeredBy,
		AnswerText: text,
		AnsweredAt: time.Now().UTC(),
	})
	if err := <-created; err != nil {
		return fmt.Errorf("save answer: %w", err)
	}

	marked := questions.update(ctx, questionLocalID, func(q *models.MemoirQuestion) {
		q.Status = models.QuestionStatusAnswered
	})
	if err := <-marked; err != nil {
		return fmt.Errorf("mark question answered: %w", err)
	}

	return nil
}

// PendingQuestions возвращает вопросы со статусом pending по всем
// мемуарам семьи. При memberID не пустом остаются только вопросы,
// адресованные этому члену семьи.
func (h *Hub) PendingQuestions(ctx context.Context, memberID string) ([]PendingQuestion, error) {
	resp, err := h.remote.ListDocuments(ctx, h.familyID, models.CollectionMemoirQuestions, "")
	if err != nil {
		return nil, fmt.Errorf("list memoir questions: %w", err)
	}

	var pending []PendingQuestion
	for i := range resp.Documents {
		doc := &resp.Documents[i]
		h.cacheDocument(ctx, doc)
		if doc.Deleted {
			continue
		}

		var question models.MemoirQuestion
		if err := json.Unmarshal(doc.Data, &question); err != nil {
			continue
		}
		if question.Status != models.QuestionStatusPending {
			continue
		}
		if memberID != "" && question.AssignedTo != memberID {
			continue
		}

		pending = append(pending, PendingQuestion{
			QuestionID: doc.ID,
			MemoirID:   doc.ParentID,
			Question:   question,
		})
	}

	return pending, nil
}

func (h *Hub) questionsFor(memoirID string) *collection[models.MemoirQuestion] {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.questions[memoirID]
	if !ok {
		c = newCollection[models.MemoirQuestion](h, models.CollectionMemoirQuestions, memoirID, nil)
		h.questions[memoirID] = c
	}
	return c
}

func (h *Hub) answersFor(questionID string) *collection[models.MemoirAnswer] {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.answers[questionID]
	if !ok {
		c = newCollection[models.MemoirAnswer](h, models.CollectionMemoirAnswers, questionID, nil)
		h.answers[questionID] = c
	}
	return c
}
