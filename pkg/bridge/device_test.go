package bridge

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/bridgewise-net/bridgewise/pkg/util"
)

func intp(v int) *int { return &v }

// testDevice builds a Device backed by a fresh Recorder.
func testDevice() (*Device, *Recorder) {
	rec := NewRecorder()
	return NewDevice("br0", rec, rec), rec
}

func TestTimingParametersConvertToCentiseconds(t *testing.T) {
	tests := []struct {
		name     string
		set      func(*Device, int) error
		location string
	}{
		{"ageing_time", (*Device).SetAgeingTime, "/sys/class/net/br0/bridge/ageing_time"},
		{"forward_delay", (*Device).SetForwardDelay, "/sys/class/net/br0/bridge/forward_delay"},
		{"hello_time", (*Device).SetHelloTime, "/sys/class/net/br0/bridge/hello_time"},
		{"max_age", (*Device).SetMaxAge, "/sys/class/net/br0/bridge/max_age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, rec := testDevice()
			if err := tt.set(dev, 300); err != nil {
				t.Fatalf("set %s: %v", tt.name, err)
			}
			got, ok := rec.Values[tt.location]
			if !ok {
				t.Fatalf("no write recorded at %s", tt.location)
			}
			stored, err := strconv.Atoi(got)
			if err != nil {
				t.Fatalf("stored value %q not an integer", got)
			}
			// Round-trip at the conversion boundary: stored/100 == input.
			if stored/100 != 300 {
				t.Errorf("stored %d, want %d", stored, 30000)
			}
		})
	}
}

func TestPriorityHasNoConversion(t *testing.T) {
	dev, rec := testDevice()
	if err := dev.SetPriority(8192); err != nil {
		t.Fatalf("SetPriority: %v", err)
	}
	if got := rec.Values["/sys/class/net/br0/bridge/priority"]; got != "8192" {
		t.Errorf("priority stored as %q, want 8192", got)
	}
}

func TestInvalidValuesNeverReachTheStore(t *testing.T) {
	setters := map[string]func(*Device, int) error{
		"ageing_time":   (*Device).SetAgeingTime,
		"forward_delay": (*Device).SetForwardDelay,
		"hello_time":    (*Device).SetHelloTime,
		"max_age":       (*Device).SetMaxAge,
		"priority":      (*Device).SetPriority,
	}

	for name, set := range setters {
		for _, bad := range []int{0, -1, -300} {
			t.Run(fmt.Sprintf("%s=%d", name, bad), func(t *testing.T) {
				dev, rec := testDevice()
				err := set(dev, bad)
				if !errors.Is(err, util.ErrInvalidParameter) {
					t.Fatalf("want ErrInvalidParameter, got %v", err)
				}
				if !strings.Contains(err.Error(), name) {
					t.Errorf("error should name the parameter: %v", err)
				}
				if len(rec.Ops) != 0 {
					t.Errorf("store written despite validation failure: %v", rec.Ops)
				}
			})
		}
	}
}

func TestBooleanParameters(t *testing.T) {
	dev, rec := testDevice()

	if err := dev.SetSTP(true); err != nil {
		t.Fatalf("SetSTP: %v", err)
	}
	if got := rec.Values["/sys/class/net/br0/bridge/stp_state"]; got != "1" {
		t.Errorf("stp_state = %q, want 1", got)
	}

	if err := dev.SetSTP(false); err != nil {
		t.Fatalf("SetSTP: %v", err)
	}
	if got := rec.Values["/sys/class/net/br0/bridge/stp_state"]; got != "0" {
		t.Errorf("stp_state = %q, want 0", got)
	}

	if err := dev.SetMulticastQuerier(true); err != nil {
		t.Fatalf("SetMulticastQuerier: %v", err)
	}
	if got := rec.Values["/sys/class/net/br0/bridge/multicast_querier"]; got != "1" {
		t.Errorf("multicast_querier = %q, want 1", got)
	}
}

func TestAddPortCommand(t *testing.T) {
	dev, rec := testDevice()
	if err := dev.AddPort("eth0"); err != nil {
		t.Fatalf("AddPort: %v", err)
	}
	if len(rec.Ops) != 1 || rec.Ops[0].Target != "ip link set dev eth0 master br0" {
		t.Errorf("unexpected ops: %v", rec.Ops)
	}
}

func TestDelPortToleratesDetachFailure(t *testing.T) {
	dev, rec := testDevice()
	rec.Fail = func(op Op) error {
		if op.Kind == OpCommand && strings.Contains(op.Target, "nomaster") {
			return errors.New("Device \"eth9\" does not exist")
		}
		return nil
	}
	// A port that is not attached is already satisfied.
	if err := dev.DelPort("eth9"); err != nil {
		t.Errorf("DelPort should not fail for a non-member: %v", err)
	}
}

func countCommands(rec *Recorder, substr string) int {
	n := 0
	for _, op := range rec.Ops {
		if op.Kind == OpCommand && strings.Contains(op.Target, substr) {
			n++
		}
	}
	return n
}

func TestAdminStateReferenceCounting(t *testing.T) {
	dev, rec := testDevice()

	// down, down, up: the device stays down with one hold remaining.
	for _, s := range []AdminState{AdminDown, AdminDown, AdminUp} {
		if err := dev.SetAdminState(s); err != nil {
			t.Fatalf("SetAdminState(%s): %v", s, err)
		}
	}
	if dev.DownHolds() != 1 {
		t.Fatalf("down holds = %d, want 1", dev.DownHolds())
	}
	if got := countCommands(rec, "down"); got != 1 {
		t.Errorf("kernel down issued %d times, want 1", got)
	}
	if got := countCommands(rec, " up"); got != 0 {
		t.Errorf("kernel up issued while still held down")
	}

	// One more up releases the last hold and brings the device up.
	if err := dev.SetAdminState(AdminUp); err != nil {
		t.Fatalf("SetAdminState(up): %v", err)
	}
	if dev.DownHolds() != 0 {
		t.Fatalf("down holds = %d, want 0", dev.DownHolds())
	}
	if got := countCommands(rec, " up"); got != 1 {
		t.Errorf("kernel up issued %d times, want 1", got)
	}
}

func TestAdminUpWithNoHoldsIsIdempotent(t *testing.T) {
	dev, rec := testDevice()
	for i := 0; i < 2; i++ {
		if err := dev.SetAdminState(AdminUp); err != nil {
			t.Fatalf("SetAdminState(up): %v", err)
		}
	}
	if dev.DownHolds() != 0 {
		t.Errorf("down holds = %d, want 0", dev.DownHolds())
	}
	if got := countCommands(rec, " up"); got != 2 {
		// Each request writes "up"; the kernel treats it as a no-op.
		t.Errorf("kernel up issued %d times, want 2", got)
	}
}
