package api

// SuggestGroceriesRequest представляет запрос на генерацию списка покупок.
// Описание и фото (например, холодильника) опциональны, но хотя бы
// одно из них должно быть задано.
type SuggestGroceriesRequest struct {
	Description string `json:"description,omitempty"`  // текстовое описание потребностей
	ImageBase64 string `json:"image_base64,omitempty"` // JPEG фото в base64
}

// SuggestedItem представляет одну позицию, предложенную AI
type SuggestedItem struct {
	Name     string `json:"name"`     // название товара
	Quantity string `json:"quantity"` // количество, например "1L" или "2x"
}

// SuggestGroceriesResponse представляет ответ с предложенными позициями
type SuggestGroceriesResponse struct {
	Items []SuggestedItem `json:"items"`
}

// NutritionRequest представляет запрос оценки питательности товара
type NutritionRequest struct {
	Item string `json:"item"` // название товара
}

// NutritionResponse представляет оценку питательности.
// Значения хранятся строками в том виде, в котором их вернула модель
// ("80 kcal", "10 g"); пустая строка означает, что оценка не получена.
type NutritionResponse struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
}

// Роли сообщений в чате с ассистентом
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ChatMessage представляет одно сообщение диалога с ассистентом
type ChatMessage struct {
	Role    string `json:"role"`    // user или model
	Content string `json:"content"` // текст сообщения
}

// ChatRequest представляет запрос к семейному ассистенту.
// Messages содержит всю историю диалога, последнее сообщение
// должно быть от пользователя.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse представляет ответ ассистента
type ChatResponse struct {
	Reply string `json:"reply"`
}
