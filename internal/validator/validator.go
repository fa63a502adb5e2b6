package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldFailure is one failed rule, in struct field order.
type FieldFailure struct {
	Field string
	Tag   string
}

// ValidationError - это кастомный тип ошибки, который содержит
// карту ошибок "поле" -> "сообщение".
type ValidationError struct {
	Errors   map[string]string
	Failures []FieldFailure
}

// Error реализует стандартный интерфейс error.
func (e *ValidationError) Error() string {
	var errMsgs []string
	for _, f := range e.Failures {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", f.Field, e.Errors[f.Field]))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// HasTag reports whether any field failed the given rule.
func (e *ValidationError) HasTag(tag string) bool {
	for _, f := range e.Failures {
		if f.Tag == tag {
			return true
		}
	}
	return false
}

// Validator - это наша обертка над go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// New создает новый экземпляр Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Регистрируем функцию для использования JSON-тегов в сообщениях об ошибках.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validate: v,
	}
}

// Validate выполняет валидацию переданной структуры.
// Если есть ошибки, возвращает *ValidationError.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	// Проверяем, является ли ошибка ошибкой валидации от go-playground
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := &ValidationError{Errors: make(map[string]string, len(validationErrors))}
	for _, fe := range validationErrors {
		// fe.Field() вернет имя из json-тега благодаря RegisterTagNameFunc
		out.Errors[fe.Field()] = v.getErrorMessage(fe)
		out.Failures = append(out.Failures, FieldFailure{Field: fe.Field(), Tag: fe.Tag()})
	}

	return out
}

// getErrorMessage - вспомогательная функция для генерации сообщений.
func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
