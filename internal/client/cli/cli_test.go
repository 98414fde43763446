package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/iudanet/familyhub/internal/client/api"
	"github.com/iudanet/familyhub/internal/client/auth"
	"github.com/iudanet/familyhub/internal/client/iocli"
	"github.com/iudanet/familyhub/internal/client/state"
	"github.com/iudanet/familyhub/internal/client/storage"
	"github.com/iudanet/familyhub/internal/models"
	"github.com/iudanet/familyhub/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memorySessions хранит сессию в памяти для тестов
type memorySessions struct {
	mu      sync.Mutex
	session *storage.Session
}

func (m *memorySessions) SaveSession(_ context.Context, session *storage.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	m.session = &copied
	return nil
}

func (m *memorySessions) GetSession(_ context.Context) (*storage.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, storage.ErrSessionNotFound
	}
	copied := *m.session
	return &copied, nil
}

func (m *memorySessions) DeleteSession(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return storage.ErrSessionNotFound
	}
	m.session = nil
	return nil
}

func (m *memorySessions) current() *storage.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// scriptedIO подменяет терминал: ввод идет из заготовленных строк,
// вывод собирается в builder
func scriptedIO(out *strings.Builder, inputs ...string) *iocli.IOMock {
	var mu sync.Mutex
	next := func() string {
		mu.Lock()
		defer mu.Unlock()
		if len(inputs) == 0 {
			return ""
		}
		value := inputs[0]
		inputs = inputs[1:]
		return value
	}
	return &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintln(out, a...)
		},
		PrintfFunc: func(format string, a ...any) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(out, format, a...)
		},
		ReadInputFunc:    func(_ string) (string, error) { return next(), nil },
		ReadPasswordFunc: func(_ string) (string, error) { return next(), nil },
	}
}

func noopCache() *storage.DocumentCacheMock {
	return &storage.DocumentCacheMock{
		SaveDocumentFunc: func(_ context.Context, _ *models.Document) (bool, error) {
			return true, nil
		},
		GetDocumentFunc: func(_ context.Context, _ string) (*models.Document, error) {
			return nil, storage.ErrDocNotFound
		},
		ListDocumentsFunc: func(_ context.Context, _, _ string) ([]*models.Document, error) {
			return nil, nil
		},
		SaveLastRevFunc: func(_ context.Context, _ int64) error { return nil },
		GetLastRevFunc:  func(_ context.Context) (int64, error) { return 0, nil },
		ClearFunc:       func(_ context.Context) error { return nil },
	}
}

// fakeServer имитирует сервер FamilyHub в памяти
type fakeServer struct {
	mu   sync.Mutex
	docs map[string]*api.Document
	ids  []string
	rev  int64
	seq  int

	// requireToken включает проверку Authorization на документных
	// запросах, пустое значение отключает ее
	requireToken string
	refreshes    int

	suggest   []api.SuggestedItem
	nutrition api.NutritionResponse
	chatReply string
}

func newFakeServer() *fakeServer {
	return &fakeServer{docs: make(map[string]*api.Document)}
}

// seed кладет документ в хранилище сервера, минуя HTTP
func (s *fakeServer) seed(t *testing.T, id, collection, parentID string, v any) {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rev++
	s.docs[id] = &api.Document{
		ID:         id,
		FamilyID:   "fam-1",
		Collection: collection,
		ParentID:   parentID,
		Data:       data,
		Rev:        s.rev,
		CreatedBy:  "user-1",
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	s.ids = append(s.ids, id)
}

func (s *fakeServer) document(id string) *api.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil
	}
	copied := *doc
	return &copied
}

// firstOf возвращает первый документ коллекции в порядке создания
func (s *fakeServer) firstOf(collection string) *api.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.ids {
		if doc := s.docs[id]; !doc.Deleted && doc.Collection == collection {
			copied := *doc
			return &copied
		}
	}
	return nil
}

func (s *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case r.URL.Path == "/api/v1/auth/magiclink":
		writeJSON(w, api.MagicLinkResponse{Message: "Login code sent by email"})
	case r.URL.Path == "/api/v1/auth/verify":
		var req api.VerifyRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Code != "123456" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, api.ErrorResponse{Error: "invalid_code", Message: "invalid login code"})
			return
		}
		writeJSON(w, api.TokenResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExpiresIn:    900,
			Profile: api.Profile{
				ID:          "user-1",
				Email:       req.Email,
				DisplayName: "Mama",
				FamilyID:    "fam-1",
				Role:        "Parent",
			},
		})
	case r.URL.Path == "/api/v1/auth/refresh":
		s.refreshes++
		s.requireToken = fmt.Sprintf("access-%d", s.refreshes+1)
		writeJSON(w, api.TokenResponse{
			AccessToken:  s.requireToken,
			RefreshToken: "refresh-2",
			ExpiresIn:    900,
			Profile: api.Profile{
				ID: "user-1", Email: "mama@example.com", DisplayName: "Mama",
				FamilyID: "fam-1", Role: "Parent",
			},
		})
	case r.URL.Path == "/api/v1/auth/logout":
		w.WriteHeader(http.StatusNoContent)
	case r.URL.Path == "/api/v1/families" && r.Method == http.MethodPost:
		var req api.CreateFamilyRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, api.FamilyResponse{ID: "fam-9", Name: req.Name, CreatedBy: "user-1"})
	case r.URL.Path == "/api/v1/families/join":
		writeJSON(w, api.JoinFamilyResponse{FamilyID: "fam-9", Role: "Child"})
	case strings.HasSuffix(r.URL.Path, "/invites"):
		var req api.InviteRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, api.InviteResponse{
			ID: "inv-1", FamilyID: "fam-1",
			Email: req.Email, Role: req.Role, Status: "pending",
		})
	case strings.HasSuffix(r.URL.Path, "/members"):
		writeJSON(w, api.ListMembersResponse{Members: []api.MemberResponse{
			{ID: "m-1", Email: "mama@example.com", Name: "Mama", Role: "Parent", Points: 12, Joined: true},
			{ID: "m-2", Email: "alex@example.com", Name: "Alex", Role: "Child", Points: 5, Joined: false},
		}})
	case strings.Contains(r.URL.Path, "/documents"):
		s.handleDocuments(w, r)
	case r.URL.Path == "/api/v1/assist/groceries":
		writeJSON(w, api.SuggestGroceriesResponse{Items: s.suggest})
	case r.URL.Path == "/api/v1/assist/nutrition":
		writeJSON(w, s.nutrition)
	case r.URL.Path == "/api/v1/assist/chat":
		writeJSON(w, api.ChatResponse{Reply: s.chatReply})
	default:
		http.NotFound(w, r)
	}
}

func (s *fakeServer) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if s.requireToken != "" && r.Header.Get("Authorization") != "Bearer "+s.requireToken {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, api.ErrorResponse{Error: "unauthorized", Message: "token expired"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		resp := api.ListDocumentsResponse{MaxRev: s.rev}
		if query.Has("since") {
			since, _ := strconv.ParseInt(query.Get("since"), 10, 64)
			for _, id := range s.ids {
				if doc := s.docs[id]; doc.Rev > since {
					resp.Documents = append(resp.Documents, *doc)
				}
			}
		} else {
			collection := query.Get("collection")
			parentID := query.Get("parent_id")
			for _, id := range s.ids {
				doc := s.docs[id]
				if doc.Deleted || doc.Collection != collection {
					continue
				}
				if parentID != "" && doc.ParentID != parentID {
					continue
				}
				resp.Documents = append(resp.Documents, *doc)
			}
		}
		writeJSON(w, resp)
	case http.MethodPost:
		var req api.CreateDocumentRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		id := req.ID
		if id == "" {
			s.seq++
			id = fmt.Sprintf("doc-%d", s.seq)
		} else if _, exists := s.docs[id]; exists {
			// Создание с занятым ID конфликтует, как на настоящем сервере
			w.WriteHeader(http.StatusConflict)
			return
		}
		s.rev++
		doc := &api.Document{
			ID:         id,
			FamilyID:   "fam-1",
			Collection: req.Collection,
			ParentID:   req.ParentID,
			Data:       req.Data,
			Rev:        s.rev,
			CreatedBy:  "user-1",
			CreatedAt:  time.Now().UTC(),
			UpdatedAt:  time.Now().UTC(),
		}
		s.docs[id] = doc
		s.ids = append(s.ids, id)
		writeJSON(w, doc)
	case http.MethodPut:
		doc, ok := s.docs[path.Base(r.URL.Path)]
		if !ok {
			http.NotFound(w, r)
			return
		}
		var req api.UpdateDocumentRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.rev++
		doc.Data = req.Data
		doc.Rev = s.rev
		doc.UpdatedAt = time.Now().UTC()
		writeJSON(w, doc)
	case http.MethodDelete:
		doc, ok := s.docs[path.Base(r.URL.Path)]
		if !ok {
			http.NotFound(w, r)
			return
		}
		s.rev++
		doc.Deleted = true
		doc.Rev = s.rev
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func testSession(familyID string) *storage.Session {
	return &storage.Session{
		Email:        "mama@example.com",
		UserID:       "user-1",
		DisplayName:  "Mama",
		FamilyID:     familyID,
		Role:         "Parent",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
	}
}

// newTestCli собирает Cli поверх фальшивого сервера
func newTestCli(t *testing.T, fake *fakeServer, session *storage.Session, inputs ...string) (*Cli, *strings.Builder, *memorySessions) {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	out := &strings.Builder{}
	sessions := &memorySessions{}
	if session != nil {
		require.NoError(t, sessions.SaveSession(context.Background(), session))
	}

	client := apiclient.NewClient(server.URL)
	authService := auth.NewService(testLogger(), client, sessions)
	c := New(testLogger(), scriptedIO(out, inputs...), client, authService, noopCache())

	return c, out, sessions
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestRun_UnknownCommand(t *testing.T) {
	c, out, _ := newTestCli(t, newFakeServer(), nil)

	err := c.Run(context.Background(), "frobnicate", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_NotLoggedIn(t *testing.T) {
	c, _, _ := newTestCli(t, newFakeServer(), nil)

	err := c.Run(context.Background(), "chores", []string{"list"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestRunLogin(t *testing.T) {
	c, out, _ := newTestCli(t, newFakeServer(), nil)

	err := c.Run(context.Background(), "login", []string{"mama@example.com"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Login code sent by email")
	assert.Contains(t, out.String(), "familyhub verify mama@example.com")
}

func TestRunVerify_SavesSession(t *testing.T) {
	c, out, sessions := newTestCli(t, newFakeServer(), nil, "123456")

	err := c.Run(context.Background(), "verify", []string{"mama@example.com"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Logged in!")

	session := sessions.current()
	require.NotNil(t, session)
	assert.Equal(t, "mama@example.com", session.Email)
	assert.Equal(t, "fam-1", session.FamilyID)
	assert.Equal(t, "access-1", session.AccessToken)
}

func TestRunVerify_BadCode(t *testing.T) {
	c, _, sessions := newTestCli(t, newFakeServer(), nil, "000000")

	err := c.Run(context.Background(), "verify", []string{"mama@example.com"})

	require.Error(t, err)
	assert.Nil(t, sessions.current())
}

func TestRunStatus(t *testing.T) {
	c, out, _ := newTestCli(t, newFakeServer(), testSession("fam-1"))

	err := c.Run(context.Background(), "status", nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Logged in")
	assert.Contains(t, out.String(), "fam-1 (Parent)")
}

func TestRunFamilyCreate_UpdatesSession(t *testing.T) {
	c, out, sessions := newTestCli(t, newFakeServer(), testSession(""))

	err := c.Run(context.Background(), "family", []string{"create", "The Ivanovs"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), `Family "The Ivanovs" created`)

	session := sessions.current()
	require.NotNil(t, session)
	assert.Equal(t, "fam-9", session.FamilyID)
	assert.Equal(t, "Parent", session.Role)
}

func TestRunFamilyCreate_AlreadyInFamily(t *testing.T) {
	c, _, _ := newTestCli(t, newFakeServer(), testSession("fam-1"))

	err := c.Run(context.Background(), "family", []string{"create", "Another"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in family")
}

func TestRunFamilyMembers(t *testing.T) {
	c, out, _ := newTestCli(t, newFakeServer(), testSession("fam-1"))

	err := c.Run(context.Background(), "family", []string{"members"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Mama")
	assert.Contains(t, out.String(), "12 pts")
	assert.Contains(t, out.String(), "invited")
}

func TestRunChores_AddListDone(t *testing.T) {
	fake := newFakeServer()
	c, out, _ := newTestCli(t, fake, testSession("fam-1"), "Dishes", "Alex", "5")

	require.NoError(t, c.Run(context.Background(), "chores", []string{"add"}))
	assert.Contains(t, out.String(), `Chore "Dishes" added`)

	out.Reset()
	require.NoError(t, c.Run(context.Background(), "chores", []string{"list"}))
	assert.Contains(t, out.String(), "[ ] Dishes (5 pts) -> Alex")

	out.Reset()
	require.NoError(t, c.Run(context.Background(), "chores", []string{"done", "1"}))
	assert.Contains(t, out.String(), `"Dishes" completed, 5 points awarded`)

	doc := fake.firstOf("chores")
	require.NotNil(t, doc)
	assert.Contains(t, string(doc.Data), `"status":"completed"`)
}

func TestRunChores_InvalidNumber(t *testing.T) {
	c, _, _ := newTestCli(t, newFakeServer(), testSession("fam-1"))

	err := c.Run(context.Background(), "chores", []string{"done", "7"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid item number")
}

func TestRunChores_Remove(t *testing.T) {
	fake := newFakeServer()
	fake.seed(t, "chore-1", "chores", "", map[string]any{"title": "Dishes", "status": "pending"})

	c, out, _ := newTestCli(t, fake, testSession("fam-1"))

	require.NoError(t, c.Run(context.Background(), "chores", []string{"remove", "1"}))
	assert.Contains(t, out.String(), `"Dishes" removed`)

	doc := fake.document("chore-1")
	require.NotNil(t, doc)
	assert.True(t, doc.Deleted)
}

func TestRunEvents_AddAndList(t *testing.T) {
	c, out, _ := newTestCli(t, newFakeServer(), testSession("fam-1"),
		"Dentist", "2026-09-03 10:30", "bring the card")

	require.NoError(t, c.Run(context.Background(), "events", []string{"add"}))
	assert.Contains(t, out.String(), `Event "Dentist" added for 2026-09-03 10:30`)

	out.Reset()
	require.NoError(t, c.Run(context.Background(), "events", []string{"list"}))
	assert.Contains(t, out.String(), "2026-09-03 10:30  Dentist (bring the card)")
}

func TestRunGroceries_AddEnrichesNutrition(t *testing.T) {
	fake := newFakeServer()
	fake.nutrition = api.NutritionResponse{Calories: "80 kcal", Protein: "10 g"}
	fake.seed(t, "list-1", "grocery_lists", "", map[string]string{"title": "Weekly"})

	c, out, _ := newTestCli(t, fake, testSession("fam-1"))

	require.NoError(t, c.Run(context.Background(), "groceries", []string{"add", "list-1", "Milk", "1L"}))
	assert.Contains(t, out.String(), "Milk added")

	// Оценка питательности дописывается фоновым запросом
	waitFor(t, func() bool {
		doc := fake.firstOf("grocery_items")
		return doc != nil && strings.Contains(string(doc.Data), "80 kcal")
	})

	out.Reset()
	require.NoError(t, c.Run(context.Background(), "groceries", []string{"show", "list-1"}))
	assert.Contains(t, out.String(), "[ ] Milk 1L  (80 kcal, 10 g)")
}

func TestRunGroceries_Seed(t *testing.T) {
	fake := newFakeServer()
	fake.suggest = []api.SuggestedItem{
		{Name: "Pasta", Quantity: "500g"},
		{Name: "Tomatoes", Quantity: "6x"},
	}
	fake.seed(t, "list-1", "grocery_lists", "", map[string]string{"title": "Dinners"})

	c, out, _ := newTestCli(t, fake, testSession("fam-1"))

	err := c.Run(context.Background(), "groceries", []string{"seed", "list-1", "week", "of", "dinners"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "2 item(s) suggested")
	assert.Contains(t, out.String(), "Pasta")
	assert.Contains(t, out.String(), "Tomatoes")
}

func TestRunBoard_EditAndShow(t *testing.T) {
	fake := newFakeServer()
	c, out, _ := newTestCli(t, fake, testSession("fam-1"), "Grandma arrives Friday!")

	require.NoError(t, c.Run(context.Background(), "board", []string{"edit"}))
	assert.Contains(t, out.String(), "Board updated")

	doc := fake.document(models.BoardDocID)
	require.NotNil(t, doc)
	assert.Contains(t, string(doc.Data), "Grandma arrives Friday!")
	assert.Contains(t, string(doc.Data), `"author":"Mama"`)

	out.Reset()
	require.NoError(t, c.Run(context.Background(), "board", []string{"show"}))
	assert.Contains(t, out.String(), "Grandma arrives Friday!")
}

func TestRunMemoir_CreateAskAnswer(t *testing.T) {
	fake := newFakeServer()
	c, out, _ := newTestCli(t, fake, testSession("fam-1"),
		"Grandpa's stories", "Grandpa")

	require.NoError(t, c.Run(context.Background(), "memoir", []string{"create"}))
	assert.Contains(t, out.String(), `Memoir "Grandpa's stories" started`)

	memoir := fake.firstOf("memoirs")
	require.NotNil(t, memoir)

	c2, out2, _ := newTestCli(t, fake, testSession("fam-1"),
		"How did you meet grandma?", "Grandpa", "the dance hall photo")
	require.NoError(t, c2.Run(context.Background(), "memoir", []string{"ask", memoir.ID}))
	assert.Contains(t, out2.String(), "Question added")

	c3, out3, _ := newTestCli(t, fake, testSession("fam-1"), "At a dance in 1963.")
	require.NoError(t, c3.Run(context.Background(), "memoir", []string{"answer", memoir.ID, "1"}))
	assert.Contains(t, out3.String(), "Answer saved")

	question := fake.firstOf("memoir_questions")
	require.NotNil(t, question)
	assert.Contains(t, string(question.Data), `"status":"answered"`)

	answer := fake.firstOf("memoir_answers")
	require.NotNil(t, answer)
	assert.Equal(t, question.ID, answer.ParentID)
	assert.Contains(t, string(answer.Data), "At a dance in 1963.")

	c4, out4, _ := newTestCli(t, fake, testSession("fam-1"))
	require.NoError(t, c4.Run(context.Background(), "memoir", []string{"read", memoir.ID, "1"}))
	assert.Contains(t, out4.String(), "At a dance in 1963.")
}

func TestRunChat(t *testing.T) {
	fake := newFakeServer()
	fake.chatReply = "Pasta tonight."

	c, out, _ := newTestCli(t, fake, testSession("fam-1"), "What's for dinner?", "")

	err := c.Run(context.Background(), "chat", nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Pasta tonight.")
}

func TestWithAuthRetry_RefreshesToken(t *testing.T) {
	fake := newFakeServer()
	// Сервер принимает только новый токен, старый отвергает
	fake.requireToken = "access-2"
	fake.seed(t, "list-1", "grocery_lists", "", map[string]string{"title": "Weekly"})

	c, out, sessions := newTestCli(t, fake, testSession("fam-1"))

	err := c.Run(context.Background(), "groceries", []string{"lists"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Weekly")

	session := sessions.current()
	require.NotNil(t, session)
	assert.Equal(t, "access-2", session.AccessToken)
}

func TestParseEventDate(t *testing.T) {
	date, err := parseEventDate("2026-09-03")
	require.NoError(t, err)
	assert.Equal(t, 3, date.Day())

	date, err = parseEventDate("2026-09-03 10:30")
	require.NoError(t, err)
	assert.Equal(t, 10, date.Hour())

	_, err = parseEventDate("tomorrow")
	require.Error(t, err)
}

func TestPickEntity(t *testing.T) {
	entities := []state.Entity[string]{
		{LocalID: "a", Payload: "first"},
		{LocalID: "b", Payload: "second"},
	}

	picked, err := pickEntity(entities, []string{"2"})
	require.NoError(t, err)
	assert.Equal(t, "second", picked.Payload)

	_, err = pickEntity(entities, nil)
	require.Error(t, err)

	_, err = pickEntity(entities, []string{"3"})
	require.Error(t, err)
}
