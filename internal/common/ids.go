package common

import (
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// NewID returns prefix_<base58 of a random uuid>, e.g. menu_JzQ3...
func NewID(prefix string) string {
	id := uuid.New()
	return prefix + "_" + base58.Encode(id[:])
}
