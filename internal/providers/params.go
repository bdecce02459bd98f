package providers

import (
	"fmt"
	"strconv"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
)

func requireString(params map[string]interface{}, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%s parameter required: %w", key, errs.ErrInvalidConfiguration)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T: %w", key, v, errs.ErrInvalidConfiguration)
	}
	return s, nil
}

func optionalString(params map[string]interface{}, key string) (string, error) {
	if v, ok := params[key]; !ok || v == nil {
		return "", nil
	}
	return requireString(params, key)
}

// stringPtr distinguishes an absent text from an empty one
func stringPtr(params map[string]interface{}, key string) (*string, error) {
	if v, ok := params[key]; !ok || v == nil {
		return nil, nil
	}
	s, err := requireString(params, key)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// optionalInt accepts Go ints, JSON numbers, and numeric strings
func optionalInt(params map[string]interface{}, key string, def int) (int, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%s must be a whole number, got %v: %w", key, n, errs.ErrInvalidConfiguration)
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number, got %q: %w", key, n, errs.ErrInvalidConfiguration)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T: %w", key, v, errs.ErrInvalidConfiguration)
	}
}
