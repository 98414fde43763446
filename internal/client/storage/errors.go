package storage

import "errors"

// Ошибки клиентского хранилища
var (
	// ErrSessionNotFound означает, что сохраненной сессии нет
	ErrSessionNotFound = errors.New("session not found")

	// ErrDocNotFound означает, что документа нет в локальном кэше
	ErrDocNotFound = errors.New("document not found in cache")

	// ErrStorageClosed означает, что хранилище закрыто
	ErrStorageClosed = errors.New("storage is closed")
)
