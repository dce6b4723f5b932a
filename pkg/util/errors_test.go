package util

import (
	"errors"
	"strings"
	"testing"
)

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrInvalidParameter,
		ErrUnknownParameter,
		ErrWriteFailed,
		ErrCommandFailed,
		ErrNotFound,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v matches %v", a, b)
			}
		}
	}
}

func TestInvalidParameterError(t *testing.T) {
	err := NewInvalidParameterError("hello_time", "-1", "must be positive")
	if !errors.Is(err, ErrInvalidParameter) {
		t.Error("should unwrap to ErrInvalidParameter")
	}
	msg := err.Error()
	for _, want := range []string{"hello_time", "-1", "must be positive"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestInvalidParameterErrorWithoutReason(t *testing.T) {
	err := NewInvalidParameterError("priority", "x", "")
	if strings.HasSuffix(err.Error(), ": ") {
		t.Errorf("dangling reason separator: %q", err.Error())
	}
}

func TestWriteError(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewWriteError("/sys/class/net/br0/bridge/stp_state", cause)
	if !errors.Is(err, ErrWriteFailed) {
		t.Error("should unwrap to ErrWriteFailed")
	}
	if !strings.Contains(err.Error(), "stp_state") || !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("message %q should name location and cause", err.Error())
	}
}

func TestCommandError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := NewCommandError("ip link set dev eth0 master br0", "RTNETLINK answers: Operation not permitted\n", cause)
	if !errors.Is(err, ErrCommandFailed) {
		t.Error("should unwrap to ErrCommandFailed")
	}
	msg := err.Error()
	if !strings.Contains(msg, "ip link set dev eth0 master br0") {
		t.Errorf("message %q should include the command", msg)
	}
	if !strings.Contains(msg, "RTNETLINK answers") {
		t.Errorf("message %q should include the output", msg)
	}
}

func TestCommandErrorEmptyOutput(t *testing.T) {
	err := NewCommandError("ip link set dev br0 up", "  \n", errors.New("exit status 2"))
	if strings.Contains(err.Error(), "output") {
		t.Errorf("blank output should be omitted: %q", err.Error())
	}
}
