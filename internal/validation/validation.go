package validation

import (
	"fmt"
	"regexp"

	"github.com/iudanet/familyhub/internal/models"
)

// EmailPattern определяет допустимый формат email.
// Намеренно простой: local@domain.tld, без попытки покрыть весь RFC 5322.
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	// MaxEmailLen максимальная длина email
	MaxEmailLen = 254
	// MaxDisplayNameLen максимальная длина отображаемого имени
	MaxDisplayNameLen = 64
	// MaxTitleLen максимальная длина названий (дел, событий, списков)
	MaxTitleLen = 200
)

// ValidateEmail проверяет, что email соответствует требованиям
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// ValidateDisplayName проверяет отображаемое имя пользователя
func ValidateDisplayName(name string) error {
	if name == "" {
		return fmt.Errorf("display name cannot be empty")
	}

	if len(name) > MaxDisplayNameLen {
		return fmt.Errorf("display name must not exceed %d characters", MaxDisplayNameLen)
	}

	return nil
}

// ValidateRole проверяет, что роль входит в список допустимых
func ValidateRole(role string) error {
	switch role {
	case models.RoleParent, models.RoleChild, models.RoleGrandparent:
		return nil
	default:
		return fmt.Errorf("role must be one of: %s, %s, %s",
			models.RoleParent, models.RoleChild, models.RoleGrandparent)
	}
}

// ValidateTitle проверяет названия пользовательских сущностей
func ValidateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	if len(title) > MaxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", MaxTitleLen)
	}

	return nil
}

// ValidateCollection проверяет, что имя коллекции известно серверу
func ValidateCollection(collection string) error {
	switch collection {
	case models.CollectionChores,
		models.CollectionEvents,
		models.CollectionGroceryLists,
		models.CollectionGroceryItems,
		models.CollectionMemoirs,
		models.CollectionMemoirQuestions,
		models.CollectionMemoirAnswers,
		models.CollectionBoard:
		return nil
	default:
		return fmt.Errorf("unknown collection: %q", collection)
	}
}
