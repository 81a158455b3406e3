package model

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID mints a short entity id of the form "<prefix>_<8 hex chars>",
// e.g. "staff_a1b2c3d4".
func NewID(prefix string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%x", prefix, id[:4])
}
