package models

import "errors"

// ErrTaskNotFound возвращается, когда операция попала на несуществующий id.
// Обработчик превращает её во flash-сообщение, а не в 404.
var ErrTaskNotFound = errors.New("task not found")

// ValidationError - ошибка пользовательского ввода (пустой title, слишком
// длинный title, кривая дата). Всегда обрабатывается локально.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
