package models

import "time"

// Статусы домашних дел
const (
	ChoreStatusPending   = "pending"
	ChoreStatusCompleted = "completed"
)

// Chore представляет домашнее дело с очками за выполнение
type Chore struct {
	Title       string     `json:"title"`                  // название дела
	Description string     `json:"description,omitempty"`  // описание
	AssignedTo  string     `json:"assigned_to"`            // ID члена семьи
	Points      int        `json:"points"`                 // очки за выполнение
	Status      string     `json:"status"`                 // pending или completed
	CompletedAt *time.Time `json:"completed_at,omitempty"` // время выполнения
}

// Event представляет событие в семейном календаре
type Event struct {
	Title       string    `json:"title"`                 // название события
	Description string    `json:"description,omitempty"` // описание
	Date        time.Time `json:"date"`                  // дата события
	AssignedTo  string    `json:"assigned_to,omitempty"` // ID члена семьи
}

// GroceryList представляет список покупок
type GroceryList struct {
	Title      string `json:"title"`                 // название списка
	AssignedTo string `json:"assigned_to,omitempty"` // кому поручен список
}

// GroceryItem представляет позицию в списке покупок.
// Calories и Protein заполняются асинхронно оценкой от AI в том виде,
// в котором их вернула модель ("80 kcal", "10 g"); пустая строка
// означает, что оценка не получена.
type GroceryItem struct {
	Name     string `json:"name"`               // название товара
	Quantity string `json:"quantity,omitempty"` // количество, например "1L" или "2x"
	Checked  bool   `json:"checked"`            // куплено
	Calories string `json:"calories,omitempty"` // ккал, оценка AI
	Protein  string `json:"protein,omitempty"`  // граммы белка, оценка AI
}

// Memoir представляет семейный мемуар, сборник вопросов и ответов
type Memoir struct {
	Title         string `json:"title"`                     // название мемуара
	Description   string `json:"description,omitempty"`     // описание
	CoverImageURL string `json:"cover_image_url,omitempty"` // обложка
	AssignedTo    string `json:"assigned_to,omitempty"`     // кому адресован
}

// Типы и статусы вопросов мемуара
const (
	QuestionTypeImage  = "image"
	QuestionTypePrompt = "prompt"

	QuestionStatusPending  = "pending"
	QuestionStatusAnswered = "answered"
)

// MemoirQuestion представляет вопрос мемуара, адресованный члену семьи
type MemoirQuestion struct {
	QuestionType string `json:"question_type"`         // image или prompt
	QuestionText string `json:"question_text"`         // текст вопроса
	ImageURL     string `json:"image_url,omitempty"`   // изображение-подсказка
	PromptText   string `json:"prompt_text,omitempty"` // текстовая подсказка
	AssignedTo   string `json:"assigned_to"`           // ID члена семьи
	Status       string `json:"status"`                // pending или answered
}

// MemoirAnswer представляет ответ на вопрос мемуара
type MemoirAnswer struct {
	AnsweredBy string    `json:"answered_by"` // ID ответившего
	AnswerText string    `json:"answer_text"` // текст ответа
	AnsweredAt time.Time `json:"answered_at"` // время ответа
}

// BoardNote представляет записку на доске объявлений семьи.
// Единственный документ на семью (BoardDocID), синхронизируется
// с debounce на клиенте.
type BoardNote struct {
	Message string `json:"message"` // текст записки
	Author  string `json:"author"`  // отображаемое имя последнего автора
}

// Nutrition представляет оценку питательности от AI.
// Значения хранятся строками вида "80 kcal" и "10 g", как их возвращает модель;
// пустая строка означает, что оценка не получена.
type Nutrition struct {
	Calories string `json:"calories"` // например "80 kcal"
	Protein  string `json:"protein"`  // например "10 g"
}
