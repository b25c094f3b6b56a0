package flashcard

import (
	"fmt"
	"strconv"
	"strings"
)

// Quality is the learner's self-reported recall grade for one review.
type Quality int

const (
	Again Quality = iota // failed to recall
	Hard                 // recalled with serious difficulty
	Good                 // recalled with some effort
	Easy                 // recalled effortlessly
)

var qualityNames = [...]string{Again: "again", Hard: "hard", Good: "good", Easy: "easy"}

// IsValid reports whether q is one of Again, Hard, Good or Easy.
func (q Quality) IsValid() bool {
	return q >= Again && q <= Easy
}

func (q Quality) String() string {
	if q.IsValid() {
		return qualityNames[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// Lapse reports whether q resets the correct streak and the interval.
func (q Quality) Lapse() bool {
	return q == Again
}

// Failing reports whether q counts as a mistake and demotes the word to review.
// Hard is failing for status purposes but still advances the schedule.
func (q Quality) Failing() bool {
	return q == Again || q == Hard
}

// ParseQuality accepts a digit ("0".."3") or a grade name, case-insensitive.
func ParseQuality(s string) (Quality, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		q := Quality(n)
		if !q.IsValid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidQuality, n)
		}
		return q, nil
	}
	for i, name := range qualityNames {
		if strings.EqualFold(s, name) {
			return Quality(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidQuality, s)
}

// QualityFromPass maps the binary pass/fail flow onto the four-level scale.
func QualityFromPass(pass bool) Quality {
	if pass {
		return Good
	}
	return Again
}
