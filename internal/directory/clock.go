package directory

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so controller logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }

// tempIDPrefix marks client-generated ids that have not been reconciled
// with a server-assigned id yet.
const tempIDPrefix = "tmp-"

// TempID builds a temporary listing id from the generator's next value.
func TempID(g IDGenerator) string { return tempIDPrefix + g.New() }

// IsTempID reports whether id is a client-generated temporary id.
func IsTempID(id string) bool {
	return len(id) >= len(tempIDPrefix) && id[:len(tempIDPrefix)] == tempIDPrefix
}
