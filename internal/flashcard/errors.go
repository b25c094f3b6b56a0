package flashcard

import "errors"

// Sentinel errors for the flashcard package. Check with errors.Is.
var (
	ErrInvalidQuality  = errors.New("flashcard: invalid quality")
	ErrInvalidInterval = errors.New("flashcard: invalid interval")
)
