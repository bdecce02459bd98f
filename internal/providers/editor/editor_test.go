package editor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/providers/editor"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func setup(t *testing.T, opts editor.Options, content string) (*editor.Editor, *paths.Guard) {
	t.Helper()
	guard := testutil.NewGuard(t)
	testutil.WriteFile(t, guard, "f.txt", content)
	return editor.New(guard, opts), guard
}

func backupExists(t *testing.T, guard *paths.Guard) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(guard.Root(), "f.txt.bak"))
	return err == nil
}

func TestInsertWritesBackup(t *testing.T) {
	ed, guard := setup(t, editor.Options{}, "a\nb\nc\n")

	res, err := ed.Edit(editor.Request{Filename: "f.txt", Lines: "2", Action: "insert", NewText: ptr("X")})
	require.NoError(t, err)

	assert.Equal(t, "a\nX\nb\nc\n", testutil.ReadFile(t, guard, "f.txt"))
	assert.Equal(t, "a\nb\nc\n", testutil.ReadFile(t, guard, "f.txt.bak"))
	assert.True(t, res.Changed)
	assert.Equal(t, editor.Insert, res.Action)
	assert.Equal(t, "f.txt.bak", res.Backup)
	assert.Equal(t, "File: f.txt, Action: Insert, Result: Success.", res.Message)
}

func TestModifyReplacesFirstOccurrence(t *testing.T) {
	ed, guard := setup(t, editor.Options{}, "one\nfoo foo\nthree")

	res, err := ed.Edit(editor.Request{
		Filename: "f.txt", Lines: "2", Action: "modify", OldText: ptr("foo"), NewText: ptr("bar"),
	})
	require.NoError(t, err)

	assert.Equal(t, "one\nbar foo\nthree", testutil.ReadFile(t, guard, "f.txt"))
	assert.True(t, res.Changed)
}

func TestModifyTextNotFound(t *testing.T) {
	ed, guard := setup(t, editor.Options{}, "a\nb\nc\n")

	_, err := ed.Edit(editor.Request{
		Filename: "f.txt", Lines: "1", Action: "modify", OldText: ptr("zzz"), NewText: ptr("y"),
	})
	assert.ErrorIs(t, err, errs.ErrTextNotFound)
	assert.Equal(t, "a\nb\nc\n", testutil.ReadFile(t, guard, "f.txt"))
	assert.False(t, backupExists(t, guard))
}

func TestDeleteOutOfRange(t *testing.T) {
	ed, guard := setup(t, editor.Options{}, "a\nb\nc\n")

	_, err := ed.Edit(editor.Request{Filename: "f.txt", Lines: "5", Action: "delete"})
	assert.ErrorIs(t, err, errs.ErrLineOutOfRange)
	assert.Equal(t, "a\nb\nc\n", testutil.ReadFile(t, guard, "f.txt"))
	assert.False(t, backupExists(t, guard))
}

func TestDeleteLastLine(t *testing.T) {
	ed, guard := setup(t, editor.Options{}, "a\nb\nc")

	_, err := ed.Edit(editor.Request{Filename: "f.txt", Lines: "3", Action: "delete"})
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", testutil.ReadFile(t, guard, "f.txt"))
}

func TestSequentialBatchShiftsIndices(t *testing.T) {
	ed, guard := setup(t, editor.Options{}, "a\nb\nc\n")

	_, err := ed.Edit(editor.Request{Filename: "f.txt", Lines: "1,2", Action: "insert", NewText: ptr("x")})
	require.NoError(t, err)
	assert.Equal(t, "x\nx\na\nb\nc\n", testutil.ReadFile(t, guard, "f.txt"))
}

func TestSequentialBatchFailsMidway(t *testing.T) {
	ed, guard := setup(t, editor.Options{}, "a\nb\nc\n")

	// the second delete targets line 3 of a two-line file
	_, err := ed.Edit(editor.Request{Filename: "f.txt", Lines: "1,3", Action: "delete"})
	assert.ErrorIs(t, err, errs.ErrLineOutOfRange)
	assert.Equal(t, "a\nb\nc\n", testutil.ReadFile(t, guard, "f.txt"))
}

func TestOriginalBatchMode(t *testing.T) {
	ed, guard := setup(t, editor.Options{Mode: editor.BatchOriginal}, "a\nb\nc\n")

	_, err := ed.Edit(editor.Request{Filename: "f.txt", Lines: "1,3", Action: "delete"})
	require.NoError(t, err)
	assert.Equal(t, "b\n", testutil.ReadFile(t, guard, "f.txt"))
}

func TestOriginalBatchModePerRequest(t *testing.T) {
	ed, guard := setup(t, editor.Options{}, "a\nb\nc\n")

	_, err := ed.Edit(editor.Request{
		Filename: "f.txt", Lines: "3,1", Action: "insert", NewText: ptr("x"), Mode: editor.BatchOriginal,
	})
	require.NoError(t, err)
	assert.Equal(t, "x\na\nb\nx\nc\n", testutil.ReadFile(t, guard, "f.txt"))

	_, err = ed.Edit(editor.Request{
		Filename: "f.txt", Lines: "2,2", Action: "delete", Mode: editor.BatchOriginal,
	})
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestAliases(t *testing.T) {
	ed, guard := setup(t, editor.Options{}, "a\nb\n")

	res, err := ed.Edit(editor.Request{Filename: "f.txt", Lines: "1", Action: "add", NewText: ptr("z")})
	require.NoError(t, err)
	assert.Equal(t, editor.Insert, res.Action)

	res, err = ed.Edit(editor.Request{
		Filename: "f.txt", Lines: "1", Action: "replace", OldText: ptr("z"), NewText: ptr("y"),
	})
	require.NoError(t, err)
	assert.Equal(t, editor.Modify, res.Action)
	assert.Equal(t, "y\na\nb\n", testutil.ReadFile(t, guard, "f.txt"))
}

func TestUnchangedStillBacksUp(t *testing.T) {
	ed, guard := setup(t, editor.Options{}, "same\n")

	res, err := ed.Edit(editor.Request{
		Filename: "f.txt", Lines: "1", Action: "modify", OldText: ptr("same"), NewText: ptr("same"),
	})
	require.NoError(t, err)

	assert.False(t, res.Changed)
	assert.Equal(t, "File: f.txt, Action: Modify, Result: No changes made", res.Message)
	assert.True(t, backupExists(t, guard))
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		req  editor.Request
		want error
	}{
		{"missing file", editor.Request{Filename: "nope.txt", Lines: "1", Action: "delete"}, errs.ErrFileNotFound},
		{"escape", editor.Request{Filename: "../f.txt", Lines: "1", Action: "delete"}, errs.ErrPathEscape},
		{"bad action", editor.Request{Filename: "f.txt", Lines: "1", Action: "swap"}, errs.ErrInvalidConfiguration},
		{"bad spec", editor.Request{Filename: "f.txt", Lines: "one", Action: "delete"}, errs.ErrInvalidConfiguration},
		{"zero line", editor.Request{Filename: "f.txt", Lines: "0", Action: "delete"}, errs.ErrInvalidConfiguration},
		{"insert without text", editor.Request{Filename: "f.txt", Lines: "1", Action: "insert"}, errs.ErrInvalidConfiguration},
		{"modify without old text", editor.Request{Filename: "f.txt", Lines: "1", Action: "modify", NewText: ptr("x")}, errs.ErrInvalidConfiguration},
		{"bad mode", editor.Request{Filename: "f.txt", Lines: "1", Action: "delete", Mode: "reverse"}, errs.ErrInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, guard := setup(t, editor.Options{}, "a\n")

			_, err := ed.Edit(tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, "a\n", testutil.ReadFile(t, guard, "f.txt"))
			assert.False(t, backupExists(t, guard))
		})
	}
}

func TestDebugDiff(t *testing.T) {
	metrics := monitoring.NewMetrics()
	ed, _ := setup(t, editor.Options{Debug: true, Metrics: metrics}, "a\nb\nc\n")

	res, err := ed.Edit(editor.Request{
		Filename: "f.txt", Lines: "2", Action: "modify", OldText: ptr("b"), NewText: ptr("B"),
	})
	require.NoError(t, err)

	assert.Contains(t, res.Diff, "--- a/f.txt")
	assert.Contains(t, res.Diff, "-b\n")
	assert.Contains(t, res.Diff, "+B\n")
	assert.Equal(t, editor.DiffStat{Added: 1, Removed: 1}, res.Stat)
	assert.Equal(t, float64(1), promtest.ToFloat64(metrics.EditsTotal.WithLabelValues("modify", "true")))
}

func TestNoDiffWithoutDebug(t *testing.T) {
	ed, _ := setup(t, editor.Options{}, "a\n")

	res, err := ed.Edit(editor.Request{Filename: "f.txt", Lines: "1", Action: "insert", NewText: ptr("b")})
	require.NoError(t, err)
	assert.Empty(t, res.Diff)
}
