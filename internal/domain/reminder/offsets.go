package reminder

import (
	"fmt"
	"strconv"
	"strings"
)

// Offsets is the ordered set of lead-time day offsets at which reminders
// fire: {3, 1, 0} means "3 days before", "1 day before" and "due today".
// It is an explicit configuration value handed to every evaluation; callers
// must not mutate a shared instance.
//
// Caveat: if two offsets resolve to the same target date on one run (only
// possible with duplicate values), a client is matched once per offset and
// will receive one message per match. Choosing non-colliding offsets is an
// operator responsibility, not something enforced here.
type Offsets []int

// DefaultOffsets matches the product's standard reminder ladder.
func DefaultOffsets() Offsets {
	return Offsets{3, 1, 0}
}

// ParseOffsets parses a comma-separated list such as "3,1,0". Offsets must
// be non-negative; order is preserved.
func ParseOffsets(s string) (Offsets, error) {
	parts := strings.Split(s, ",")
	offsets := make(Offsets, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid reminder offset %q: %w", p, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("reminder offset must be non-negative, got %d", n)
		}
		offsets = append(offsets, n)
	}
	if len(offsets) == 0 {
		return nil, fmt.Errorf("no reminder offsets in %q", s)
	}
	return offsets, nil
}

func (o Offsets) String() string {
	parts := make([]string, len(o))
	for i, n := range o {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
