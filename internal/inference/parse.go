package inference

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripFences убирает markdown code fences (```json ... ```) из ответа модели.
// Модель добавляет их несмотря на явную инструкцию этого не делать.
func StripFences(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// extractRegion находит первый сбалансированный JSON регион (объект или массив),
// закопанный в прозе. Возвращает пустую строку, если регион не найден.
func extractRegion(text string, open, close byte) string {
	start := strings.IndexByte(text, open)
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}

// DecodeObject декодирует JSON объект из сырого ответа модели в v.
// Сначала пробует текст после снятия fences целиком, затем пытается
// извлечь первый сбалансированный {...} из прозы.
func DecodeObject(text string, v any) error {
	cleaned := StripFences(text)

	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	region := extractRegion(cleaned, '{', '}')
	if region == "" {
		return fmt.Errorf("%w: no JSON object in %q", ErrMalformed, truncate(text, 120))
	}

	if err := json.Unmarshal([]byte(region), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return nil
}

// DecodeArray декодирует JSON массив из сырого ответа модели в v
func DecodeArray(text string, v any) error {
	cleaned := StripFences(text)

	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	region := extractRegion(cleaned, '[', ']')
	if region == "" {
		return fmt.Errorf("%w: no JSON array in %q", ErrMalformed, truncate(text, 120))
	}

	if err := json.Unmarshal([]byte(region), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
