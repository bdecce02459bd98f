package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
)

// ParseLineSpec parses comma-separated 1-based line numbers such as "2,5".
// Order is kept and repeats are allowed.
func ParseLineSpec(spec string) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("empty line spec: %w", errs.ErrInvalidConfiguration)
	}

	parts := strings.Split(spec, ",")
	lines := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid line number %q in %q: %w", part, spec, errs.ErrInvalidConfiguration)
		}
		if n < 1 {
			return nil, fmt.Errorf("line number %d in %q must be at least 1: %w", n, spec, errs.ErrInvalidConfiguration)
		}
		lines = append(lines, n)
	}
	return lines, nil
}
