// Package scorever is the scoring version registry: pure metadata
// functions deciding whether stored scores were produced by a compatible
// revision of the scoring algorithm. It never touches scores itself; the
// persistence path acts on its verdicts.
package scorever

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Current identifies the scoring algorithm revision this build
	// produces. Stamped onto every scored bundle.
	Current = "2.1.0"
	// Minimum is the oldest stored version whose scores are still
	// comparable with Current without a fresh scoring pass.
	Minimum = "2.0.0"
)

// Compatibility is the structured verdict for a stored version.
type Compatibility struct {
	Compatible      bool   `json:"compatible"`
	RequiresRescore bool   `json:"requires_rescore"`
	Message         string `json:"message"`
}

// Compare orders two semantic versions as 3-tuples: -1 when a < b, 0 when
// equal, +1 when a > b. Missing or non-numeric components count as 0, so
// "1.2" equals "1.2.0" and garbage degrades instead of erroring.
func Compare(a, b string) int {
	av := parse(a)
	bv := parse(b)
	for i := 0; i < 3; i++ {
		if av[i] != bv[i] {
			if av[i] < bv[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Check reports whether scores stored under the given version are still
// usable. An empty stored version predates versioning entirely and is
// accepted as-is; anything below Minimum must be rescored; anything else
// is compatible, with the message noting whether it differs from Current.
func Check(stored string) Compatibility {
	if strings.TrimSpace(stored) == "" {
		return Compatibility{
			Compatible: true,
			Message:    "stored scores predate scoring versioning; accepted without rescore",
		}
	}
	if Compare(stored, Minimum) < 0 {
		return Compatibility{
			Compatible:      false,
			RequiresRescore: true,
			Message:         fmt.Sprintf("stored scoring version %s is below the minimum %s; rescore required", stored, Minimum),
		}
	}
	switch Compare(stored, Current) {
	case -1:
		return Compatibility{
			Compatible: true,
			Message:    fmt.Sprintf("stored scoring version %s predates current %s but remains compatible", stored, Current),
		}
	case 1:
		return Compatibility{
			Compatible: true,
			Message:    fmt.Sprintf("stored scoring version %s postdates current %s; scores accepted", stored, Current),
		}
	default:
		return Compatibility{
			Compatible: true,
			Message:    fmt.Sprintf("stored scoring version %s is current", stored),
		}
	}
}

func parse(v string) [3]int {
	var out [3]int
	parts := strings.SplitN(strings.TrimSpace(v), ".", 3)
	for i := 0; i < len(parts) && i < 3; i++ {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[i])); err == nil {
			out[i] = n
		}
	}
	return out
}
