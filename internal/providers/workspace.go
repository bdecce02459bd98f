package providers

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/providers/editor"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/providers/filesystem"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/providers/ingest"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/types"
)

// WorkspaceID is the service ID of the workspace tools
const WorkspaceID = "file"

// Workspace exposes the sandbox to the agent as "file.*" tools
type Workspace struct {
	store    *filesystem.Store
	ingester *ingest.Ingester
	editor   *editor.Editor
	sink     ingest.Sink

	maxLength int
	overlap   int
}

// WorkspaceOption configures a Workspace
type WorkspaceOption func(*Workspace)

// WithChunkWindow sets the default ingest window
func WithChunkWindow(maxLength, overlap int) WorkspaceOption {
	return func(w *Workspace) {
		w.maxLength = maxLength
		w.overlap = overlap
	}
}

// NewWorkspace creates the workspace provider. sink receives ingested chunks.
func NewWorkspace(store *filesystem.Store, ing *ingest.Ingester, ed *editor.Editor, sink ingest.Sink, opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		store:     store,
		ingester:  ing,
		editor:    ed,
		sink:      sink,
		maxLength: ingest.DefaultMaxLength,
		overlap:   ingest.DefaultOverlap,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Definition returns service metadata
func (w *Workspace) Definition() types.Service {
	filename := types.Parameter{Name: "filename", Type: "string", Description: "Path relative to the workspace root", Required: true}

	return types.Service{
		ID:          WorkspaceID,
		Name:        "Workspace Files",
		Description: "Sandboxed file access with an operation log, chunked ingestion, and line editing",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"read",
			"write",
			"append",
			"delete",
			"search",
			"glob",
			"ingest",
			"edit_line",
		},
		Tools: []types.Tool{
			{
				ID:          "file.read",
				Name:        "Read File",
				Description: "Read the full text of a file",
				Parameters:  []types.Parameter{filename},
				Returns:     "string",
			},
			{
				ID:          "file.write",
				Name:        "Write File",
				Description: "Write text to a file; a file can be written once per session",
				Parameters: []types.Parameter{
					filename,
					{Name: "text", Type: "string", Description: "Full file content", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "file.append",
				Name:        "Append File",
				Description: "Append text to a file, creating it if missing",
				Parameters: []types.Parameter{
					filename,
					{Name: "text", Type: "string", Description: "Text to append", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "file.delete",
				Name:        "Delete File",
				Description: "Delete a file; a file can be deleted once per session",
				Parameters:  []types.Parameter{filename},
				Returns:     "object",
			},
			{
				ID:          "file.exists",
				Name:        "File Exists",
				Description: "Check whether a regular file exists",
				Parameters:  []types.Parameter{filename},
				Returns:     "boolean",
			},
			{
				ID:          "file.search",
				Name:        "Search Files",
				Description: "List non-hidden files under a directory recursively",
				Parameters: []types.Parameter{
					{Name: "directory", Type: "string", Description: "Directory relative to the root; empty or / for the whole workspace", Required: false},
				},
				Returns: "array",
			},
			{
				ID:          "file.glob",
				Name:        "Glob Files",
				Description: "List files matching a doublestar pattern such as **/*.md",
				Parameters: []types.Parameter{
					{Name: "pattern", Type: "string", Description: "Glob pattern relative to the root", Required: true},
				},
				Returns: "array",
			},
			{
				ID:          "file.ingest",
				Name:        "Ingest File",
				Description: "Split a file into overlapping chunks and add them to memory",
				Parameters: []types.Parameter{
					filename,
					{Name: "max_length", Type: "number", Description: "Chunk size in characters", Required: false},
					{Name: "overlap", Type: "number", Description: "Characters shared by consecutive chunks", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "file.edit_line",
				Name:        "Edit Line",
				Description: "Insert, modify, or delete lines of a file, keeping a .bak backup",
				Parameters: []types.Parameter{
					filename,
					{Name: "lines", Type: "string", Description: "Comma-separated 1-based line numbers", Required: true},
					{Name: "action", Type: "string", Description: "insert, modify, or delete (add and replace are aliases)", Required: true},
					{Name: "old_text", Type: "string", Description: "Text to replace, for modify", Required: false},
					{Name: "new_text", Type: "string", Description: "Text to insert or substitute", Required: false},
					{Name: "mode", Type: "string", Description: "sequential or original line numbering", Required: false},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs a workspace tool. Tool failures come back as a failed
// Result with its Kind set; the error return is reserved for unknown tools.
func (w *Workspace) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	if err := ctx.Err(); err != nil {
		return types.Failure(fmt.Errorf("%s: %v: %w", toolID, err, errs.ErrIO)), nil
	}

	switch toolID {
	case "file.read":
		return w.read(params)
	case "file.write":
		return w.write(params)
	case "file.append":
		return w.append(params)
	case "file.delete":
		return w.delete(params)
	case "file.exists":
		return w.exists(params)
	case "file.search":
		return w.search(params)
	case "file.glob":
		return w.glob(params)
	case "file.ingest":
		return w.ingest(params)
	case "file.edit_line":
		return w.editLine(params)
	default:
		err := fmt.Errorf("unknown tool: %s: %w", toolID, errs.ErrInvalidConfiguration)
		return types.Failure(err), err
	}
}

func (w *Workspace) read(params map[string]interface{}) (*types.Result, error) {
	filename, err := requireString(params, "filename")
	if err != nil {
		return types.Failure(err), nil
	}
	content, err := w.store.Read(filename)
	if err != nil {
		return types.Failure(err), nil
	}
	return types.Success(map[string]interface{}{"filename": filename, "content": content}), nil
}

func (w *Workspace) write(params map[string]interface{}) (*types.Result, error) {
	filename, err := requireString(params, "filename")
	if err != nil {
		return types.Failure(err), nil
	}
	text, err := requireString(params, "text")
	if err != nil {
		return types.Failure(err), nil
	}
	if err := w.store.Write(filename, text); err != nil {
		return types.Failure(err), nil
	}
	return types.Success(map[string]interface{}{"filename": filename, "message": "File written to successfully."}), nil
}

func (w *Workspace) append(params map[string]interface{}) (*types.Result, error) {
	filename, err := requireString(params, "filename")
	if err != nil {
		return types.Failure(err), nil
	}
	text, err := requireString(params, "text")
	if err != nil {
		return types.Failure(err), nil
	}
	if err := w.store.Append(filename, text); err != nil {
		return types.Failure(err), nil
	}
	return types.Success(map[string]interface{}{"filename": filename, "message": "Text appended successfully."}), nil
}

func (w *Workspace) delete(params map[string]interface{}) (*types.Result, error) {
	filename, err := requireString(params, "filename")
	if err != nil {
		return types.Failure(err), nil
	}
	if err := w.store.Delete(filename); err != nil {
		return types.Failure(err), nil
	}
	return types.Success(map[string]interface{}{"filename": filename, "message": "File deleted successfully."}), nil
}

func (w *Workspace) exists(params map[string]interface{}) (*types.Result, error) {
	filename, err := requireString(params, "filename")
	if err != nil {
		return types.Failure(err), nil
	}
	ok, err := w.store.Exists(filename)
	if err != nil {
		return types.Failure(err), nil
	}
	return types.Success(map[string]interface{}{"filename": filename, "exists": ok}), nil
}

func (w *Workspace) search(params map[string]interface{}) (*types.Result, error) {
	directory, err := optionalString(params, "directory")
	if err != nil {
		return types.Failure(err), nil
	}
	files, err := w.store.SearchAll(directory)
	if err != nil {
		return types.Failure(err), nil
	}
	return types.Success(map[string]interface{}{"files": files, "count": len(files)}), nil
}

func (w *Workspace) glob(params map[string]interface{}) (*types.Result, error) {
	pattern, err := requireString(params, "pattern")
	if err != nil {
		return types.Failure(err), nil
	}
	files, err := w.store.Glob(pattern)
	if err != nil {
		return types.Failure(err), nil
	}
	return types.Success(map[string]interface{}{"files": files, "count": len(files)}), nil
}

func (w *Workspace) ingest(params map[string]interface{}) (*types.Result, error) {
	filename, err := requireString(params, "filename")
	if err != nil {
		return types.Failure(err), nil
	}
	maxLength, err := optionalInt(params, "max_length", w.maxLength)
	if err != nil {
		return types.Failure(err), nil
	}
	overlap, err := optionalInt(params, "overlap", w.overlap)
	if err != nil {
		return types.Failure(err), nil
	}

	report, err := w.ingester.Ingest(filename, w.sink, maxLength, overlap)
	if err != nil {
		result := types.Failure(err)
		// chunks already added stay in memory
		result.Data = map[string]interface{}{"id": report.ID.String(), "added": report.Added, "chunks": report.Chunks}
		return result, nil
	}
	return types.Success(map[string]interface{}{
		"id":       report.ID.String(),
		"filename": report.Filename,
		"length":   report.Length,
		"chunks":   report.Chunks,
		"added":    report.Added,
	}), nil
}

func (w *Workspace) editLine(params map[string]interface{}) (*types.Result, error) {
	req := editor.Request{}
	var err error

	if req.Filename, err = requireString(params, "filename"); err != nil {
		return types.Failure(err), nil
	}
	if req.Lines, err = requireString(params, "lines"); err != nil {
		return types.Failure(err), nil
	}
	if req.Action, err = requireString(params, "action"); err != nil {
		return types.Failure(err), nil
	}
	if req.OldText, err = stringPtr(params, "old_text"); err != nil {
		return types.Failure(err), nil
	}
	if req.NewText, err = stringPtr(params, "new_text"); err != nil {
		return types.Failure(err), nil
	}
	mode, err := optionalString(params, "mode")
	if err != nil {
		return types.Failure(err), nil
	}
	req.Mode = editor.BatchMode(mode)

	res, err := w.editor.Edit(req)
	if err != nil {
		return types.Failure(err), nil
	}

	data := map[string]interface{}{
		"filename": res.Filename,
		"action":   res.Action.String(),
		"changed":  res.Changed,
		"message":  res.Message,
		"backup":   res.Backup,
	}
	if res.Diff != "" {
		data["diff"] = res.Diff
		data["added"] = res.Stat.Added
		data["removed"] = res.Stat.Removed
	}
	return types.Success(data), nil
}
