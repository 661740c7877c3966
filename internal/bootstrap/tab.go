package bootstrap

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// TabIDPrefix marks generated tab identifiers.
const TabIDPrefix = "tab-"

// NewTabID generates a tab identifier.
// Format: tab-{ulid_lowercase}, 30 characters total.
func NewTabID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return TabIDPrefix + strings.ToLower(id.String()), nil
}
