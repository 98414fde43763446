package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/familyhub/internal/models"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid simple", "mom@example.com", false},
		{"valid with plus", "dad+hub@example.co.uk", false},
		{"valid with dots", "grand.parent@family.org", false},
		{"empty", "", true},
		{"no at sign", "momexample.com", true},
		{"no domain", "mom@", true},
		{"no tld", "mom@example", true},
		{"spaces", "mom @example.com", true},
		{"too long", strings.Repeat("a", 250) + "@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole(models.RoleParent))
	assert.NoError(t, ValidateRole(models.RoleChild))
	assert.NoError(t, ValidateRole(models.RoleGrandparent))
	assert.Error(t, ValidateRole(""))
	assert.Error(t, ValidateRole("Admin"))
	assert.Error(t, ValidateRole("parent")) // роли чувствительны к регистру
}

func TestValidateDisplayName(t *testing.T) {
	assert.NoError(t, ValidateDisplayName("Anna"))
	assert.Error(t, ValidateDisplayName(""))
	assert.Error(t, ValidateDisplayName(strings.Repeat("x", MaxDisplayNameLen+1)))
}

func TestValidateCollection(t *testing.T) {
	for _, c := range []string{
		models.CollectionChores,
		models.CollectionEvents,
		models.CollectionGroceryLists,
		models.CollectionGroceryItems,
		models.CollectionMemoirs,
		models.CollectionMemoirQuestions,
		models.CollectionMemoirAnswers,
		models.CollectionBoard,
	} {
		assert.NoError(t, ValidateCollection(c))
	}

	assert.Error(t, ValidateCollection("secrets"))
	assert.Error(t, ValidateCollection(""))
}
