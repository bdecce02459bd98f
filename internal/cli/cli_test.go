package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invocation struct {
	code   int
	stdout string
	stderr string
}

func invoke(t *testing.T, root, stdin string, args ...string) invocation {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--root", root}, args...)
	code := Run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return invocation{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func setup(t *testing.T) string {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("MEMORY_FILE", "")
	return filepath.Join(t.TempDir(), "ws")
}

func TestWriteThenRead(t *testing.T) {
	root := setup(t)

	res := invoke(t, root, "", "write", "notes.txt", "hello")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "File written to successfully.\n", res.stdout)

	res = invoke(t, root, "", "read", "notes.txt")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "hello\n", res.stdout)
}

func TestWriteFromStdin(t *testing.T) {
	root := setup(t)

	res := invoke(t, root, "from stdin\n", "write", "in.txt")
	require.Equal(t, 0, res.code, res.stderr)

	data, err := os.ReadFile(filepath.Join(root, "in.txt"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin\n", string(data))
}

func TestDuplicateWriteFails(t *testing.T) {
	root := setup(t)

	require.Equal(t, 0, invoke(t, root, "", "write", "a.txt", "x").code)

	res := invoke(t, root, "", "write", "a.txt", "y")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "DuplicateOperation")
}

func TestJSONOutput(t *testing.T) {
	root := setup(t)
	require.Equal(t, 0, invoke(t, root, "", "write", "a.txt", "x").code)

	res := invoke(t, root, "", "--output", "json", "read", "missing.txt")
	assert.Equal(t, 1, res.code)

	var decoded struct {
		Success bool   `json:"success"`
		Kind    string `json:"kind"`
	}
	require.NoError(t, sonic.UnmarshalString(res.stdout, &decoded))
	assert.False(t, decoded.Success)
	assert.Equal(t, "FileNotFoundError", decoded.Kind)
}

func TestYAMLOutput(t *testing.T) {
	root := setup(t)
	require.Equal(t, 0, invoke(t, root, "", "write", "a.txt", "x").code)

	res := invoke(t, root, "", "-o", "yaml", "search")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "success: true")
	assert.Contains(t, res.stdout, "a.txt")
}

func TestUnknownOutputFormat(t *testing.T) {
	res := invoke(t, setup(t), "", "-o", "xml", "search")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "unknown output format")
}

func TestEditCommand(t *testing.T) {
	root := setup(t)
	require.Equal(t, 0, invoke(t, root, "", "write", "f.txt", "a\nb\nc\n").code)

	res := invoke(t, root, "", "edit", "f.txt", "--lines", "2", "--action", "insert", "--new", "X")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "File: f.txt, Action: Insert, Result: Success.")

	data, err := os.ReadFile(filepath.Join(root, "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a\nX\nb\nc\n", string(data))

	res = invoke(t, root, "", "edit", "f.txt", "--lines", "1", "--action", "modify", "--new", "z")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "InvalidConfiguration")
}

func TestLogCommand(t *testing.T) {
	root := setup(t)
	require.Equal(t, 0, invoke(t, root, "", "write", "a.txt", "x").code)
	require.Equal(t, 0, invoke(t, root, "", "append", "a.txt", "y").code)
	require.Equal(t, 0, invoke(t, root, "", "delete", "a.txt").code)

	res := invoke(t, root, "", "log")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "write: a.txt\nappend: a.txt\ndelete: a.txt\n", res.stdout)

	res = invoke(t, root, "", "log", "--op", "append")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "append: a.txt\n", res.stdout)
}

func TestIngestAndMemory(t *testing.T) {
	root := setup(t)
	memFile := filepath.Join(t.TempDir(), "memory.jsonl")
	t.Setenv("MEMORY_FILE", memFile)

	require.Equal(t, 0, invoke(t, root, "", "write", "n.txt", "abcdefghij").code)

	res := invoke(t, root, "", "ingest", "n.txt", "--max-length", "4", "--overlap", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Ingested 3 chunks of n.txt")

	res = invoke(t, root, "", "memory")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, 3, strings.Count(res.stdout, "Filename: n.txt"))
}

func TestMetricsFile(t *testing.T) {
	root := setup(t)
	metrics := filepath.Join(t.TempDir(), "workspace.prom")

	res := invoke(t, root, "", "--metrics-file", metrics, "read", "missing.txt")
	assert.Equal(t, 1, res.code)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `workspace_ops_total{op="read",status="FileNotFoundError"} 1`)
}

func TestToolsCommand(t *testing.T) {
	res := invoke(t, setup(t), "", "tools", "edit line")
	require.Equal(t, 0, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "file.edit_line"))
}

func TestTOMLOutput(t *testing.T) {
	root := setup(t)
	require.Equal(t, 0, invoke(t, root, "", "write", "a.txt", "x").code)

	res := invoke(t, root, "", "-o", "toml", "log")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "[[entries]]")
	assert.Contains(t, res.stdout, "a.txt")
}
