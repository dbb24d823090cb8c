// Package ids generates identifiers for new entries and images. The store
// never invents ids; callers obtain them here and pass them in.
package ids

import (
	"strconv"

	"github.com/google/uuid"
)

// Generator returns a new globally unique identifier.
type Generator func() string

// New returns a random UUID string.
func New() string {
	return uuid.NewString()
}

// Sequence returns a Generator that yields prefix-1, prefix-2, ... for tests.
func Sequence(prefix string) Generator {
	n := 0
	return func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}

