package ingest

import (
	"fmt"
	"iter"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
)

// Chunk is one window of a document. Start and End are rune offsets,
// End exclusive.
type Chunk struct {
	Index int
	Start int
	End   int
	Text  string
}

// ValidateWindow checks a chunk window configuration
func ValidateWindow(maxLength, overlap int) error {
	if maxLength <= 0 {
		return fmt.Errorf("max length must be positive, got %d: %w", maxLength, errs.ErrInvalidConfiguration)
	}
	if overlap < 0 {
		return fmt.Errorf("overlap must not be negative, got %d: %w", overlap, errs.ErrInvalidConfiguration)
	}
	if overlap >= maxLength {
		return fmt.Errorf("overlap %d must be smaller than max length %d: %w", overlap, maxLength, errs.ErrInvalidConfiguration)
	}
	return nil
}

// Split returns a lazy sequence of overlapping windows over content.
//
// The sequence is a single forward pass, but content is immutable so
// ranging over it again yields the same chunks. It ends after the first
// window that reaches the end of content; empty content yields nothing.
func Split(content string, maxLength, overlap int) (iter.Seq[Chunk], error) {
	if err := ValidateWindow(maxLength, overlap); err != nil {
		return nil, err
	}

	return func(yield func(Chunk) bool) {
		runes := []rune(content)
		step := maxLength - overlap

		for i, start := 0, 0; start < len(runes); i, start = i+1, start+step {
			end := min(start+maxLength, len(runes))
			if !yield(Chunk{Index: i, Start: start, End: end, Text: string(runes[start:end])}) {
				return
			}
			if end == len(runes) {
				return
			}
		}
	}, nil
}

// Count returns how many chunks Split yields for a content of n runes
func Count(n, maxLength, overlap int) (int, error) {
	if err := ValidateWindow(maxLength, overlap); err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	if n <= maxLength {
		return 1, nil
	}
	step := maxLength - overlap
	return 1 + (n-maxLength+step-1)/step, nil
}
