package lifecycle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTransitionRejected marks a command issued outside the legal
// state x role matrix. By default the engines swallow it and leave the
// stores untouched; in strict mode it is returned to the caller.
var ErrTransitionRejected = errors.New("transition rejected")

// ValidationError reports missing required fields on a command payload.
// It never leaves a store mutated.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
