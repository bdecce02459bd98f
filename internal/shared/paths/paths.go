package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
)

// Well-known names inside the sandbox
const (
	// LogFileName is the operation log kept at the sandbox root
	LogFileName = "file_logger.txt"

	// BackupSuffix is appended to a file name for its line editor backup
	BackupSuffix = ".bak"

	// HiddenPrefix marks files that search skips
	HiddenPrefix = "."

	// RootMarker selects the sandbox root in search requests
	RootMarker = "/"
)

// Resolve joins segments onto base and normalizes the result.
//
// An absolute segment replaces everything joined before it, so "/etc/passwd"
// is tested as-is rather than nested under base. The normalized path must
// start with base as a literal string, otherwise errs.ErrPathEscape is
// returned. Resolve has no side effects.
func Resolve(base string, segments ...string) (string, error) {
	joined := base
	for _, seg := range segments {
		if filepath.IsAbs(seg) {
			joined = seg
			continue
		}
		joined = filepath.Join(joined, seg)
	}

	clean := filepath.Clean(joined)
	if !strings.HasPrefix(clean, base) {
		return "", fmt.Errorf("%s: %w", filepath.Join(segments...), errs.ErrPathEscape)
	}
	return clean, nil
}

// Guard resolves paths against a fixed sandbox root
type Guard struct {
	root string
}

// NewGuard returns a Guard for root. The root is made absolute and cleaned.
// When create is set a missing root is created; otherwise it must exist.
func NewGuard(root string, create bool) (*Guard, error) {
	if root == "" {
		return nil, fmt.Errorf("sandbox root cannot be empty: %w", errs.ErrInvalidConfiguration)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve sandbox root: %w", err)
	}

	if create {
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return nil, fmt.Errorf("create sandbox root: %v: %w", err, errs.ErrIO)
		}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("sandbox root %s: %v: %w", abs, err, errs.ErrFileNotFound)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sandbox root %s is not a directory: %w", abs, errs.ErrInvalidConfiguration)
	}

	return &Guard{root: abs}, nil
}

// Root returns the absolute sandbox root
func (g *Guard) Root() string {
	return g.root
}

// Resolve resolves segments against the sandbox root
func (g *Guard) Resolve(segments ...string) (string, error) {
	return Resolve(g.root, segments...)
}

// Rel returns path relative to the sandbox root
func (g *Guard) Rel(path string) (string, error) {
	return filepath.Rel(g.root, path)
}

// LogPath returns the location of the operation log
func (g *Guard) LogPath() (string, error) {
	return g.Resolve(LogFileName)
}

// BackupPath returns the backup location for an already resolved file
func BackupPath(resolved string) string {
	return resolved + BackupSuffix
}

// IsHidden reports whether a base name carries the hidden marker
func IsHidden(name string) bool {
	return strings.HasPrefix(name, HiddenPrefix)
}

// IsRootMarker reports whether a search directory selects the whole sandbox
func IsRootMarker(dir string) bool {
	return dir == "" || dir == RootMarker
}
