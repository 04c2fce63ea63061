package app

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestOperationErrorMessage(t *testing.T) {
	tests := []struct {
		err  *OperationError
		want string
	}{
		{NewOperationError("save", "/tmp/a.txt", fs.ErrPermission), "save /tmp/a.txt: permission denied"},
		{NewOperationError("save", "", nil), "save"},
		{NewOperationError("open", "a", nil), "open a"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestOperationErrorUnwrap(t *testing.T) {
	err := NewOperationError("save", "x", fs.ErrPermission)
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is should see the wrapped error")
	}

	var nilErr *OperationError
	if nilErr.Error() != "" || nilErr.Unwrap() != nil {
		t.Error("nil OperationError should be safe to use")
	}
}

func TestInitError(t *testing.T) {
	cause := errors.New("no tty")
	err := &InitError{Component: "backend", Err: cause}

	if err.Error() != "init backend: no tty" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("InitError should unwrap to its cause")
	}
}

func TestRecoveredPanicError(t *testing.T) {
	err := &RecoveredPanicError{Value: "boom", Stack: "goroutine 1 [running]:\nmain.main()"}
	if err.Error() != "panic: boom" {
		t.Errorf("Error() = %q, want the panic value only", err.Error())
	}
	if strings.Contains(err.Error(), "goroutine") {
		t.Error("Error() should not include the stack")
	}
}
