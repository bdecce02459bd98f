// Package testutil provides testing utilities and helpers for workspace tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/oplog"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSink is a mock implementation of the memory sink.
type MockSink struct {
	mock.Mock
}

// Add mocks the Add method.
func (m *MockSink) Add(text string) {
	m.Called(text)
}

// NewMockSink creates a mock sink accepting any text.
func NewMockSink(t *testing.T) *MockSink {
	t.Helper()
	m := new(MockSink)
	m.On("Add", mock.Anything).Return().Maybe()
	return m
}

// NewGuard creates a guard over a fresh temporary sandbox.
func NewGuard(t *testing.T) *paths.Guard {
	t.Helper()
	guard, err := paths.NewGuard(t.TempDir(), false)
	require.NoError(t, err)
	return guard
}

// NewLog opens the operation log of the sandbox behind guard.
func NewLog(t *testing.T, guard *paths.Guard) *oplog.Log {
	t.Helper()
	log, err := oplog.Open(guard, oplog.Options{})
	require.NoError(t, err)
	return log
}

// WriteFile creates name inside the sandbox, bypassing the operation log.
func WriteFile(t *testing.T, guard *paths.Guard, name, content string) string {
	t.Helper()
	path := filepath.Join(guard.Root(), name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ReadFile returns the content of name inside the sandbox.
func ReadFile(t *testing.T, guard *paths.Guard, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(guard.Root(), name))
	require.NoError(t, err)
	return string(data)
}

// AssertSuccess is a helper to assert a successful result.
func AssertSuccess(t *testing.T, result *types.Result) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if !result.Success {
		t.Fatalf("Expected success, got error: %v (%s)", derefString(result.Error), result.Kind)
	}
}

// AssertFailure is a helper to assert a failed result of the given kind.
func AssertFailure(t *testing.T, result *types.Result, kind string) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if result.Success {
		t.Fatal("Expected error, got success")
	}
	if result.Error == nil {
		t.Fatal("Expected error message, got nil")
	}
	if result.Kind != kind {
		t.Fatalf("Expected kind %s, got %s (%s)", kind, result.Kind, *result.Error)
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
