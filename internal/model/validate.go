package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Title and description bounds, enforced at the boundary that constructs
// add/update requests. The store itself does not re-validate.
const (
	TitleMinLen       = 2
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
)

// ValidationError describes a rejected field value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateTitle trims the title and checks the length bounds. It returns the
// trimmed title on success.
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	n := utf8.RuneCountInString(trimmed)
	switch {
	case n == 0:
		return "", &ValidationError{Field: "title", Reason: "must not be empty"}
	case n < TitleMinLen:
		return "", &ValidationError{
			Field:  "title",
			Reason: fmt.Sprintf("must be at least %d characters", TitleMinLen),
		}
	case n > TitleMaxLen:
		return "", &ValidationError{
			Field:  "title",
			Reason: fmt.Sprintf("must be at most %d characters", TitleMaxLen),
		}
	}
	return trimmed, nil
}

// ValidateDescription trims the description and checks the length bound.
// An empty description is valid.
func ValidateDescription(desc string) (string, error) {
	trimmed := strings.TrimSpace(desc)
	if utf8.RuneCountInString(trimmed) > DescriptionMaxLen {
		return "", &ValidationError{
			Field:  "description",
			Reason: fmt.Sprintf("must be at most %d characters", DescriptionMaxLen),
		}
	}
	return trimmed, nil
}
