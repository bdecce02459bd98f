package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/logging"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/paths"
	"go.uber.org/zap"
)

// Options configures an Editor
type Options struct {
	// Debug attaches a unified diff and line stats to every result
	Debug bool
	// Mode is the batch mode for requests that leave Mode empty
	Mode    BatchMode
	Logger  *logging.Logger
	Metrics *monitoring.Metrics
}

// Editor applies line edits inside one sandbox
type Editor struct {
	guard   *paths.Guard
	debug   bool
	mode    BatchMode
	logger  *logging.Logger
	metrics *monitoring.Metrics

	mu sync.Mutex
}

// Request is one edit call
type Request struct {
	Filename string
	// Lines is a comma-separated list of 1-based line numbers
	Lines   string
	Action  string
	OldText *string
	NewText *string
	Mode    BatchMode
}

// Result reports a committed edit
type Result struct {
	Filename string   `json:"filename" yaml:"filename"`
	Action   Action   `json:"action" yaml:"action"`
	Changed  bool     `json:"changed" yaml:"changed"`
	Message  string   `json:"message" yaml:"message"`
	Backup   string   `json:"backup" yaml:"backup"`
	Diff     string   `json:"diff,omitempty" yaml:"diff,omitempty"`
	Stat     DiffStat `json:"stat" yaml:"stat"`
}

// New creates an Editor over the sandbox behind guard
func New(guard *paths.Guard, opts Options) *Editor {
	mode := opts.Mode
	if mode == "" {
		mode = BatchSequential
	}
	return &Editor{
		guard:   guard,
		debug:   opts.Debug,
		mode:    mode,
		logger:  logging.OrNop(opts.Logger).Component("editor"),
		metrics: opts.Metrics,
	}
}

// edit is a validated request
type edit struct {
	action  Action
	lines   []int
	mode    BatchMode
	oldText string
	newText string
}

// Edit validates req, applies it to the file's lines, writes the backup,
// and commits. Any error before the backup leaves the file untouched.
func (e *Editor) Edit(req Request) (res *Result, err error) {
	defer func() {
		if err != nil {
			e.logger.Warn("edit failed",
				logging.File(req.Filename), zap.String("action", req.Action),
				logging.Kind(errs.Kind(err)), zap.Error(err))
		}
	}()

	path, err := e.guard.Resolve(req.Filename)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("file %s does not exist: %w", req.Filename, errs.ErrFileNotFound)
	}

	ed, err := e.validate(req)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	original, err := loadLines(path)
	if err != nil {
		return nil, err
	}

	var edited []string
	switch ed.mode {
	case BatchOriginal:
		edited, err = applyOriginal(original, ed)
	default:
		edited, err = applySequential(original, ed)
	}
	if err != nil {
		return nil, err
	}

	backup := paths.BackupPath(path)
	if err := writeLines(backup, original, info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("write backup for %s: %v: %w", req.Filename, err, errs.ErrIO)
	}
	if err := commit(path, edited, info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("commit %s (backup kept at %s): %v: %w", req.Filename, filepath.Base(backup), err, errs.ErrIO)
	}

	res = &Result{
		Filename: req.Filename,
		Action:   ed.action,
		Changed:  !slices.Equal(original, edited),
		Backup:   req.Filename + paths.BackupSuffix,
	}
	res.Message = message(res)

	if e.debug {
		e.report(res, original, edited)
	}

	e.metrics.RecordEdit(ed.action.String(), res.Changed)
	e.logger.Info("edit committed",
		logging.File(req.Filename), zap.Stringer("action", ed.action),
		zap.Ints("lines", ed.lines), zap.Bool("changed", res.Changed))
	return res, nil
}

// report attaches the diff of the edit; diff failures only get logged
func (e *Editor) report(res *Result, original, edited []string) {
	unified, err := unifiedDiff(res.Filename, original, edited)
	if err != nil {
		e.logger.Warn("diff failed", logging.File(res.Filename), zap.Error(err))
		return
	}
	res.Diff = unified

	if res.Stat, err = diffStat(unified); err != nil {
		e.logger.Warn("diff stat failed", logging.File(res.Filename), zap.Error(err))
	}
	e.logger.Debug("edit diff", logging.File(res.Filename), zap.String("diff", unified))
}

// validate checks everything that does not need the file content
func (e *Editor) validate(req Request) (edit, error) {
	action, err := ParseAction(req.Action)
	if err != nil {
		return edit{}, err
	}
	lines, err := ParseLineSpec(req.Lines)
	if err != nil {
		return edit{}, err
	}

	mode := e.mode
	if req.Mode != "" {
		if mode, err = ParseBatchMode(string(req.Mode)); err != nil {
			return edit{}, err
		}
	}

	ed := edit{action: action, lines: lines, mode: mode}
	if action.needsNewText() {
		if req.NewText == nil {
			return edit{}, fmt.Errorf("new text is required for %s: %w", action, errs.ErrInvalidConfiguration)
		}
		ed.newText = *req.NewText
	}
	if action.needsOldText() {
		if req.OldText == nil {
			return edit{}, fmt.Errorf("old text is required for %s: %w", action, errs.ErrInvalidConfiguration)
		}
		ed.oldText = *req.OldText
	}
	return ed, nil
}

// applySequential applies edits in caller order against the live lines
func applySequential(original []string, ed edit) ([]string, error) {
	lines := slices.Clone(original)
	for _, n := range ed.lines {
		var err error
		if lines, err = applyOne(lines, n, ed); err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// applyOriginal resolves every number against the original lines and
// applies bottom-up so earlier edits never shift later targets
func applyOriginal(original []string, ed edit) ([]string, error) {
	targets := slices.Clone(ed.lines)
	slices.Sort(targets)
	for i := 1; i < len(targets); i++ {
		if targets[i] == targets[i-1] {
			return nil, fmt.Errorf("line %d listed twice: %w", targets[i], errs.ErrInvalidConfiguration)
		}
	}
	for _, n := range ed.lines {
		if n > len(original) {
			return nil, outOfRange(n, len(original))
		}
	}

	lines := slices.Clone(original)
	for _, n := range slices.Backward(targets) {
		var err error
		if lines, err = applyOne(lines, n, ed); err != nil {
			return nil, err
		}
	}
	return lines, nil
}

func applyOne(lines []string, n int, ed edit) ([]string, error) {
	if n < 1 || n > len(lines) {
		return nil, outOfRange(n, len(lines))
	}
	i := n - 1

	switch ed.action {
	case Insert:
		return slices.Insert(lines, i, ed.newText+"\n"), nil
	case Modify:
		if !strings.Contains(lines[i], ed.oldText) {
			return nil, fmt.Errorf("text %q not found on line %d %q: %w",
				ed.oldText, n, strings.TrimRight(lines[i], "\r\n"), errs.ErrTextNotFound)
		}
		lines[i] = strings.Replace(lines[i], ed.oldText, ed.newText, 1)
		return lines, nil
	case Delete:
		return slices.Delete(lines, i, i+1), nil
	default:
		return nil, fmt.Errorf("unsupported action %s: %w", ed.action, errs.ErrInvalidConfiguration)
	}
}

func outOfRange(n, count int) error {
	return fmt.Errorf("line number %d is out of range (file has %d lines): %w", n, count, errs.ErrLineOutOfRange)
}

func message(res *Result) string {
	outcome := "No changes made"
	if res.Changed {
		outcome = "Success."
	}
	return fmt.Sprintf("File: %s, Action: %s, Result: %s", res.Filename, res.Action.Title(), outcome)
}

// loadLines reads path as lines with their terminators kept
func loadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %v: %w", filepath.Base(path), err, errs.ErrIO)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s is not valid UTF-8 text: %w", filepath.Base(path), errs.ErrIO)
	}
	if len(data) == 0 {
		return nil, nil
	}
	lines := strings.SplitAfter(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

func writeLines(path string, lines []string, perm os.FileMode) error {
	return os.WriteFile(path, []byte(strings.Join(lines, "")), perm)
}

// commit replaces path through a temp file in the same directory
func commit(path string, lines []string, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), paths.HiddenPrefix+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strings.Join(lines, "")); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
