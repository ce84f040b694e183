package apperr

import (
	"errors"
	"fmt"
)

// Kind закрытый перечень ожидаемых ошибок ядра. Всё, что не имеет Kind,
// считается непредвиденной ошибкой инфраструктуры.
type Kind int

const (
	KindUnknown Kind = iota
	// NotFound тест, вопрос, вариант, ответ или профиль не существует
	NotFound
	// Inconsistent идентификаторы теста, вопроса и варианта не связаны между собой
	Inconsistent
	// Forbidden роль вызывающего не позволяет выполнить операцию
	Forbidden
	// NoAnswers попытка вычислить профиль по пустому набору ответов
	NoAnswers
	// StoreUnavailable временный сбой хранилища, вызов можно повторить
	StoreUnavailable
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Inconsistent:
		return "inconsistent"
	case Forbidden:
		return "forbidden"
	case NoAnswers:
		return "no_answers"
	case StoreUnavailable:
		return "store_unavailable"
	default:
		return "unknown"
	}
}

// Error ошибка с видом и названием операции, в которой она возникла
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// E оборачивает err в ошибку заданного вида
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf создает ошибку заданного вида с форматированным сообщением
func Newf(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf возвращает вид ошибки или KindUnknown, если ошибка непредвиденная
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is сообщает, относится ли ошибка к заданному виду
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsRetryable сообщает, можно ли безопасно повторить вызов
func IsRetryable(err error) bool {
	return Is(err, StoreUnavailable)
}
