package editor

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
)

// Action is the kind of line edit
type Action int

const (
	Insert Action = iota + 1
	Modify
	Delete
)

var actionNames = map[string]Action{
	"insert":  Insert,
	"add":     Insert,
	"modify":  Modify,
	"replace": Modify,
	"delete":  Delete,
}

// ParseAction parses an action name. "add" and "replace" are accepted as
// aliases of insert and modify.
func ParseAction(name string) (Action, error) {
	if a, ok := actionNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("invalid action %q, must be one of add, insert, modify, replace, delete: %w",
		name, errs.ErrInvalidConfiguration)
}

func (a Action) String() string {
	switch a {
	case Insert:
		return "insert"
	case Modify:
		return "modify"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Title returns the capitalized name used in result messages
func (a Action) Title() string {
	s := a.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// MarshalText encodes the action by name
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// needsNewText reports whether the action requires replacement text
func (a Action) needsNewText() bool {
	return a == Insert || a == Modify
}

// needsOldText reports whether the action requires text to match
func (a Action) needsOldText() bool {
	return a == Modify
}

// BatchMode controls how line numbers of one request are resolved
type BatchMode string

const (
	// BatchSequential checks each number against the live line count
	BatchSequential BatchMode = "sequential"
	// BatchOriginal checks every number against the original file and
	// applies edits bottom-up
	BatchOriginal BatchMode = "original"
)

// ParseBatchMode parses a batch mode name; empty means sequential
func ParseBatchMode(name string) (BatchMode, error) {
	switch BatchMode(strings.ToLower(strings.TrimSpace(name))) {
	case "", BatchSequential:
		return BatchSequential, nil
	case BatchOriginal:
		return BatchOriginal, nil
	default:
		return "", fmt.Errorf("invalid batch mode %q: %w", name, errs.ErrInvalidConfiguration)
	}
}
