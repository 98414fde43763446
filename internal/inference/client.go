package inference

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/iudanet/familyhub/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс AI-вывода для семейного хаба.
// Реализации должны считать модель медленной и ненадежной: ответы
// валидируются, ошибки не фатальны для вызывающих операций.
type Service interface {
	// SuggestGroceries генерирует список покупок по описанию и/или фото
	SuggestGroceries(ctx context.Context, description, imageBase64 string) ([]api.SuggestedItem, error)

	// Nutrition оценивает калорийность и белок для товара
	Nutrition(ctx context.Context, itemName string) (*api.NutritionResponse, error)

	// Chat отвечает на сообщение в диалоге семейного ассистента
	Chat(ctx context.Context, messages []api.ChatMessage) (string, error)
}

// DefaultModel модель Gemini, используемая по умолчанию
const DefaultModel = "gemini-3-flash-preview"

// chatMaxOutputTokens лимит ответа ассистента
const chatMaxOutputTokens = 1000

// GenAI реализует Service поверх Google Gemini API
type GenAI struct {
	client *genai.Client
	model  string
}

// NewGenAI создает клиент Gemini.
// Если model пустая строка, используется DefaultModel.
func NewGenAI(ctx context.Context, apiKey, model string) (*GenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GenAI{
		client: client,
		model:  model,
	}, nil
}

// SuggestGroceries генерирует структурированный список покупок.
// При наличии фото (JPEG base64) модель анализирует его на предмет
// недостающих продуктов.
func (g *GenAI) SuggestGroceries(ctx context.Context, description, imageBase64 string) ([]api.SuggestedItem, error) {
	prompt := "Analyze the input and generate a structured grocery list of items the user is likely to need. " +
		"Return ONLY a valid JSON array of objects with 'name' (string) and 'quantity' (string, e.g., '1L', '2x') properties. " +
		"Do not wrap in markdown code blocks."

	parts := make([]*genai.Part, 0, 3)

	if description != "" {
		parts = append(parts, genai.NewPartFromText(description))
	}

	if imageBase64 != "" {
		// Убираем data URL header, если он есть ("data:image/jpeg;base64,...")
		raw := imageBase64
		if idx := strings.Index(raw, ","); idx >= 0 {
			raw = raw[idx+1:]
		}

		imageData, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid image encoding: %v", ErrMalformed, err)
		}

		parts = append(parts, genai.NewPartFromBytes(imageData, "image/jpeg"))
		prompt += " Analyze the image (refrigerator/pantry) to see what is missing or low."
	}

	parts = append(parts, genai.NewPartFromText(prompt))

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var items []api.SuggestedItem
	if err := DecodeArray(resp.Text(), &items); err != nil {
		return nil, err
	}

	return items, nil
}

// Nutrition оценивает питательность товара.
// Значения возвращаются строками в том виде, в котором их дала модель
// ("80 kcal", "10 g"); отсутствующие поля остаются пустыми.
func (g *GenAI) Nutrition(ctx context.Context, itemName string) (*api.NutritionResponse, error) {
	prompt := fmt.Sprintf(
		"Estimate the calories and protein content for: %q. "+
			"Return ONLY a valid JSON object with 'calories' (string, e.g., '120 kcal') and "+
			"'protein' (string, e.g., '10 g') properties. If unknown, return reasonable estimates. "+
			"Do not wrap in markdown code blocks.", itemName)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var nutrition api.NutritionResponse
	if err := DecodeObject(resp.Text(), &nutrition); err != nil {
		return nil, err
	}

	return &nutrition, nil
}

// Chat отвечает на последнее сообщение диалога, используя предыдущие
// сообщения как историю.
func (g *GenAI) Chat(ctx context.Context, messages []api.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("%w: empty message history", ErrMalformed)
	}

	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		var role genai.Role = genai.RoleUser
		if msg.Role == api.ChatRoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: chatMaxOutputTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	reply := resp.Text()
	if reply == "" {
		return "", fmt.Errorf("%w: empty model reply", ErrMalformed)
	}

	return reply, nil
}
