package validation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidUUID marks path or body IDs that are not UUIDs.
var ErrInvalidUUID = errors.New("invalid UUID format")

// ValidateUUID rejects IDs that are not well-formed UUIDs.
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}
