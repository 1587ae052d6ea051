package id

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// Timestamped yields "<unix-millis>-<8 hex chars>" identifiers. The random
// suffix keeps ids generated within the same millisecond distinct.
type Timestamped struct {
	Now func() time.Time
}

func (g Timestamped) New() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s", now().UnixMilli(), suffix)
}
