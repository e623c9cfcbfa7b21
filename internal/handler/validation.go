package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"boutiqueCMS/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// NewValidator reports field names the way they appear in JSON bodies.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return errors.New("Неверные данные")
	}

	fe := fieldErrors[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("Поле %s обязательно", fe.Field())
	case "email":
		return errors.New("Неверный формат email")
	default:
		return fmt.Errorf("Недопустимое значение поля %s", fe.Field())
	}
}

// positiveQueryInt parses an optional positive integer query parameter.
func positiveQueryInt(value string, fallback int) (int, bool) {
	if value == "" {
		return fallback, true
	}

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseDate accepts either a calendar date or an RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("Неверный формат даты: %q", value)
	}
	return t, nil
}

// resourceID returns the {id} path variable. Stored rows are keyed by UUID, so anything else is reported as not found.
func resourceID(r *http.Request) (string, error) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("запись %q: %w", id, repository.ErrNotFound)
	}
	return id, nil
}
