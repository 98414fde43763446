package lww

import (
	"sync"

	"github.com/iudanet/familyhub/internal/models"
)

// Set представляет Last-Write-Wins набор документов семьи.
// Конфликты между версиями одного документа разрешаются автоматически
// по правилу LWW: побеждает версия с большей ревизией (см. Document.IsNewerThan).
// Клиентский кэш держит Set как индекс документов в памяти поверх
// персистентного bucket.
type Set struct {
	docs map[string]*models.Document // map[id]document
	mu   sync.RWMutex                // мьютекс для потокобезопасности
}

// NewSet создает новый пустой LWW набор
func NewSet() *Set {
	return &Set{
		docs: make(map[string]*models.Document),
	}
}

// Apply добавляет документ в набор или обновляет существующий,
// если новая версия новее по правилу LWW. Надгробия применяются
// теми же правилами, надгробие с большей ревизией побеждает.
// Возвращает true, если документ был добавлен/обновлен.
func (s *Set) Apply(doc *models.Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.docs[doc.ID]
	if exists && !doc.IsNewerThan(existing) {
		return false
	}

	s.docs[doc.ID] = doc.Clone()
	return true
}

// Get возвращает документ по ID, включая помеченные удаленными.
// Возвращает nil, если документа нет в наборе.
func (s *Set) Get(id string) *models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, exists := s.docs[id]
	if !exists {
		return nil
	}

	return doc.Clone()
}

// Collection возвращает все неудаленные документы коллекции,
// опционально отфильтрованные по parentID (пустая строка = без фильтра).
func (s *Set) Collection(collection, parentID string) []*models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Document, 0)
	for _, doc := range s.docs {
		if doc.Deleted || doc.Collection != collection {
			continue
		}
		if parentID != "" && doc.ParentID != parentID {
			continue
		}
		result = append(result, doc.Clone())
	}

	return result
}

// Merge объединяет текущий набор с документами из другого источника.
// Для каждого документа применяется правило LWW. Операция коммутативна
// и идемпотентна. Возвращает количество примененных документов.
func (s *Set) Merge(docs []*models.Document) int {
	applied := 0
	for _, doc := range docs {
		if s.Apply(doc) {
			applied++
		}
	}
	return applied
}

// Clear удаляет из набора все документы, включая надгробия
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = make(map[string]*models.Document)
}
