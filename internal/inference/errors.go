package inference

import "errors"

var (
	// ErrUnavailable модель недоступна или вызов завершился ошибкой
	ErrUnavailable = errors.New("inference unavailable")

	// ErrMalformed вызов успешен, но структура ответа не прошла валидацию
	ErrMalformed = errors.New("malformed inference result")
)
