package state

import "errors"

// Ошибки пакета state
var (
	// ErrRemoteWrite оборачивает любой сбой удаленной записи.
	// Локальное состояние к этому моменту уже откатано.
	ErrRemoteWrite = errors.New("remote write failed")

	// ErrEntityNotFound возвращается при мутации несуществующей записи
	ErrEntityNotFound = errors.New("entity not found")
)
