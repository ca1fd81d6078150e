package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTaskLength caps the accepted task size in characters.
const MaxTaskLength = 10000

// ValidateTask rejects empty or oversized tasks. It runs before any
// execution record is created, so rejected tasks leave no side effects.
func ValidateTask(task string) error {
	if strings.TrimSpace(task) == "" {
		return &ValidationError{Reason: "task cannot be empty"}
	}
	if utf8.RuneCountInString(task) > MaxTaskLength {
		return &ValidationError{Reason: fmt.Sprintf("task exceeds maximum length of %d characters", MaxTaskLength)}
	}
	return nil
}
