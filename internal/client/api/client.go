package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/iudanet/familyhub/pkg/api"
)

// ErrUnauthorized возвращается на ответ сервера 401.
// Вызывающий код может попробовать обновить токены и повторить.
var ErrUnauthorized = errors.New("unauthorized")

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu          sync.RWMutex
	accessToken string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetAccessToken устанавливает токен для авторизованных запросов
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

// AccessToken возвращает текущий access token
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// MagicLink запрашивает одноразовый код входа для email
func (c *Client) MagicLink(ctx context.Context, email string) (*api.MagicLinkResponse, error) {
	var resp api.MagicLinkResponse
	err := c.doRequest(ctx, "POST", "/api/v1/auth/magiclink", api.MagicLinkRequest{Email: email}, &resp)
	if err != nil {
		return nil, fmt.Errorf("magiclink request failed: %w", err)
	}
	return &resp, nil
}

// Verify обменивает код входа на токены
func (c *Client) Verify(ctx context.Context, email, code string) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, "POST", "/api/v1/auth/verify", api.VerifyRequest{Email: email, Code: code}, &resp)
	if err != nil {
		return nil, fmt.Errorf("verify request failed: %w", err)
	}
	return &resp, nil
}

// Refresh обновляет пару токенов
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, "POST", "/api/v1/auth/refresh", api.RefreshRequest{RefreshToken: refreshToken}, &resp)
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Logout отзывает все refresh токены пользователя
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, "POST", "/api/v1/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// GetMe возвращает профиль текущего пользователя
func (c *Client) GetMe(ctx context.Context) (*api.Profile, error) {
	var resp api.Profile
	if err := c.doRequest(ctx, "GET", "/api/v1/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("get profile request failed: %w", err)
	}
	return &resp, nil
}

// UpdateMe обновляет профиль текущего пользователя
func (c *Client) UpdateMe(ctx context.Context, req api.UpdateProfileRequest) (*api.Profile, error) {
	var resp api.Profile
	if err := c.doRequest(ctx, "PUT", "/api/v1/me", req, &resp); err != nil {
		return nil, fmt.Errorf("update profile request failed: %w", err)
	}
	return &resp, nil
}

// CreateFamily создает новую семью
func (c *Client) CreateFamily(ctx context.Context, name string) (*api.FamilyResponse, error) {
	var resp api.FamilyResponse
	err := c.doRequest(ctx, "POST", "/api/v1/families", api.CreateFamilyRequest{Name: name}, &resp)
	if err != nil {
		return nil, fmt.Errorf("create family request failed: %w", err)
	}
	return &resp, nil
}

// JoinFamily присоединяет пользователя к семье по ожидающему приглашению
func (c *Client) JoinFamily(ctx context.Context) (*api.JoinFamilyResponse, error) {
	var resp api.JoinFamilyResponse
	if err := c.doRequest(ctx, "POST", "/api/v1/families/join", nil, &resp); err != nil {
		return nil, fmt.Errorf("join family request failed: %w", err)
	}
	return &resp, nil
}

// Invite приглашает нового члена семьи
func (c *Client) Invite(ctx context.Context, familyID string, req api.InviteRequest) (*api.InviteResponse, error) {
	var resp api.InviteResponse
	path := fmt.Sprintf("/api/v1/families/%s/invites", familyID)
	if err := c.doRequest(ctx, "POST", path, req, &resp); err != nil {
		return nil, fmt.Errorf("invite request failed: %w", err)
	}
	return &resp, nil
}

// ListMembers возвращает членов семьи
func (c *Client) ListMembers(ctx context.Context, familyID string) (*api.ListMembersResponse, error) {
	var resp api.ListMembersResponse
	path := fmt.Sprintf("/api/v1/families/%s/members", familyID)
	if err := c.doRequest(ctx, "GET", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list members request failed: %w", err)
	}
	return &resp, nil
}

// CreateDocument создает документ в коллекции семьи
func (c *Client) CreateDocument(ctx context.Context, familyID string, req api.CreateDocumentRequest) (*api.Document, error) {
	var resp api.Document
	path := fmt.Sprintf("/api/v1/families/%s/documents", familyID)
	if err := c.doRequest(ctx, "POST", path, req, &resp); err != nil {
		return nil, fmt.Errorf("create document request failed: %w", err)
	}
	return &resp, nil
}

// GetDocument возвращает документ по ID
func (c *Client) GetDocument(ctx context.Context, familyID, docID string) (*api.Document, error) {
	var resp api.Document
	path := fmt.Sprintf("/api/v1/families/%s/documents/%s", familyID, docID)
	if err := c.doRequest(ctx, "GET", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get document request failed: %w", err)
	}
	return &resp, nil
}

// ListDocuments возвращает документы коллекции,
// при необходимости отфильтрованные по родителю
func (c *Client) ListDocuments(ctx context.Context, familyID, collection, parentID string) (*api.ListDocumentsResponse, error) {
	query := url.Values{}
	query.Set("collection", collection)
	if parentID != "" {
		query.Set("parent_id", parentID)
	}

	var resp api.ListDocumentsResponse
	path := fmt.Sprintf("/api/v1/families/%s/documents?%s", familyID, query.Encode())
	if err := c.doRequest(ctx, "GET", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list documents request failed: %w", err)
	}
	return &resp, nil
}

// ListDocumentsSince возвращает все изменения семьи после ревизии since,
// включая удаленные документы
func (c *Client) ListDocumentsSince(ctx context.Context, familyID string, since int64) (*api.ListDocumentsResponse, error) {
	var resp api.ListDocumentsResponse
	path := fmt.Sprintf("/api/v1/families/%s/documents?since=%s", familyID, strconv.FormatInt(since, 10))
	if err := c.doRequest(ctx, "GET", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list documents since request failed: %w", err)
	}
	return &resp, nil
}

// UpdateDocument заменяет доменные данные документа
func (c *Client) UpdateDocument(ctx context.Context, familyID, docID string, data json.RawMessage) (*api.Document, error) {
	var resp api.Document
	path := fmt.Sprintf("/api/v1/families/%s/documents/%s", familyID, docID)
	if err := c.doRequest(ctx, "PUT", path, api.UpdateDocumentRequest{Data: data}, &resp); err != nil {
		return nil, fmt.Errorf("update document request failed: %w", err)
	}
	return &resp, nil
}

// DeleteDocument помечает документ удаленным
func (c *Client) DeleteDocument(ctx context.Context, familyID, docID string) error {
	path := fmt.Sprintf("/api/v1/families/%s/documents/%s", familyID, docID)
	if err := c.doRequest(ctx, "DELETE", path, nil, nil); err != nil {
		return fmt.Errorf("delete document request failed: %w", err)
	}
	return nil
}

// SuggestGroceries просит ассистента предложить список покупок
func (c *Client) SuggestGroceries(ctx context.Context, req api.SuggestGroceriesRequest) (*api.SuggestGroceriesResponse, error) {
	var resp api.SuggestGroceriesResponse
	if err := c.doRequest(ctx, "POST", "/api/v1/assist/groceries", req, &resp); err != nil {
		return nil, fmt.Errorf("suggest groceries request failed: %w", err)
	}
	return &resp, nil
}

// Nutrition запрашивает оценку питательности товара
func (c *Client) Nutrition(ctx context.Context, item string) (*api.NutritionResponse, error) {
	var resp api.NutritionResponse
	if err := c.doRequest(ctx, "POST", "/api/v1/assist/nutrition", api.NutritionRequest{Item: item}, &resp); err != nil {
		return nil, fmt.Errorf("nutrition request failed: %w", err)
	}
	return &resp, nil
}

// Chat отправляет историю диалога семейному ассистенту
func (c *Client) Chat(ctx context.Context, messages []api.ChatMessage) (*api.ChatResponse, error) {
	var resp api.ChatResponse
	if err := c.doRequest(ctx, "POST", "/api/v1/assist/chat", api.ChatRequest{Messages: messages}, &resp); err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	requestURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		message := string(respBody)
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			message = errResp.Message
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %s", ErrUnauthorized, message)
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, message)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
