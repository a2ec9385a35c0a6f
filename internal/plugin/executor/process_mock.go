package executor

import (
	"context"
	"errors"
	"io"
	"sync"
)

// MockProcessRunner is a mock implementation of ProcessRunner for testing.
type MockProcessRunner struct {
	// RunFunc answers calls that are not --plugin-info queries.
	RunFunc func(ctx context.Context, path string, args []string, stdin []byte) (stdout, stderr []byte, err error)

	// Info is returned for --plugin-info queries.
	Info []byte

	// ShouldTimeout blocks filter calls until the context is cancelled.
	ShouldTimeout bool

	mu        sync.Mutex
	calls     int
	lastStdin []byte
}

// Run executes the mock behaviour.
func (m *MockProcessRunner) Run(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	var input []byte
	if stdin != nil {
		var err error
		if input, err = io.ReadAll(stdin); err != nil {
			return nil, nil, err
		}
	}

	m.mu.Lock()
	m.calls++
	m.lastStdin = input
	m.mu.Unlock()

	if len(args) == 1 && args[0] == "--plugin-info" {
		if m.Info == nil {
			return nil, []byte("unknown flag"), errors.New("exit status 2")
		}
		return m.Info, nil, nil
	}

	if m.ShouldTimeout {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}

	if m.RunFunc != nil {
		return m.RunFunc(ctx, path, args, input)
	}
	return []byte("[]"), nil, nil
}

// Calls returns how many processes were started.
func (m *MockProcessRunner) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastStdin returns the input of the most recent call.
func (m *MockProcessRunner) LastStdin() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastStdin
}

// NewMockProcessRunner creates a mock that reports info for --plugin-info.
func NewMockProcessRunner(info string) *MockProcessRunner {
	return &MockProcessRunner{Info: []byte(info)}
}

// NewErrorMockProcessRunner creates a mock whose filter calls fail.
func NewErrorMockProcessRunner(info, errMsg string) *MockProcessRunner {
	return &MockProcessRunner{
		Info: []byte(info),
		RunFunc: func(context.Context, string, []string, []byte) ([]byte, []byte, error) {
			return nil, []byte(errMsg), errors.New("exit status 1")
		},
	}
}
