package bridge

import (
	"fmt"

	"github.com/bridgewise-net/bridgewise/pkg/util"
)

// Step identifies the phase of a reconciliation pass.
type Step string

const (
	StepParameters       Step = "parameters"
	StepSTP              Step = "stp"
	StepMulticastQuerier Step = "multicast-querier"
	StepPortRemove       Step = "port-remove"
	StepPortAdd          Step = "port-add"
	StepAdminState       Step = "admin-state"
)

// ReconcileError wraps a failed setter call with the bridge, step and
// parameter or port being processed when the pass aborted. Steps applied
// before the failure are not rolled back; a later pass converges the rest
// once the underlying cause is fixed.
type ReconcileError struct {
	Bridge    string
	Step      Step
	Parameter string // parameter name, when a parameter write failed
	Port      string // member port, when a port operation failed
	Err       error
}

func (e *ReconcileError) Error() string {
	msg := fmt.Sprintf("reconciling %s: step %s", e.Bridge, e.Step)
	if e.Parameter != "" {
		msg += " parameter " + e.Parameter
	}
	if e.Port != "" {
		msg += " port " + e.Port
	}
	return msg + ": " + e.Err.Error()
}

func (e *ReconcileError) Unwrap() error {
	return e.Err
}

// Engine applies desired configurations to bridge devices. One engine may
// serve many devices; it holds no per-device state.
type Engine struct {
	flusher AddrFlusher
}

// NewEngine creates a reconciliation engine using the given address flusher
// for joining ports.
func NewEngine(flusher AddrFlusher) *Engine {
	return &Engine{flusher: flusher}
}

// Apply converges dev to cfg. The step order is load-bearing: later steps
// assume earlier ones completed, and the admin-state transition must come
// last so the link does not flap while parameters that require admin-down
// are being written. The first failure aborts the pass.
func (e *Engine) Apply(dev *Device, cfg *Config) error {
	log := util.WithBridge(dev.Name())

	// 1. Scalar parameters: configured values only, absent keys untouched.
	scalars := []struct {
		name  string
		value *int
		set   func(int) error
	}{
		{"ageing_time", cfg.AgeingTime, dev.SetAgeingTime},
		{"forward_delay", cfg.ForwardDelay, dev.SetForwardDelay},
		{"hello_time", cfg.HelloTime, dev.SetHelloTime},
		{"max_age", cfg.MaxAge, dev.SetMaxAge},
		{"priority", cfg.Priority, dev.SetPriority},
	}
	for _, s := range scalars {
		if s.value == nil {
			continue
		}
		if err := s.set(*s.value); err != nil {
			return e.fail(dev, StepParameters, s.name, "", err)
		}
	}

	// 2. STP toggle: always written, an unset flag means "disabled".
	if err := dev.SetSTP(cfg.STP); err != nil {
		return e.fail(dev, StepSTP, "stp", "", err)
	}

	// 3. Multicast querier: same always-write semantics as STP.
	if err := dev.SetMulticastQuerier(cfg.IGMP.Querier); err != nil {
		return e.fail(dev, StepMulticastQuerier, "multicast_querier", "", err)
	}

	// 4. Port removals, before additions, so a port named in both ends the
	// pass attached.
	for _, port := range cfg.Member.InterfaceRemove {
		if err := dev.DelPort(port); err != nil {
			return e.fail(dev, StepPortRemove, "", port, err)
		}
	}

	// 5. Port additions: flush addresses (a port must be address-less to
	// join), attach, then per-port spanning tree inputs.
	for _, port := range cfg.Member.memberNames() {
		pc := cfg.Member.Interface[port]
		if err := e.flusher.FlushAddrs(port); err != nil {
			return e.fail(dev, StepPortAdd, "", port, err)
		}
		if err := dev.AddPort(port); err != nil {
			return e.fail(dev, StepPortAdd, "", port, err)
		}
		ctl := dev.Port(port)
		if pc.Cost != nil {
			if err := ctl.SetPathCost(*pc.Cost); err != nil {
				return e.fail(dev, StepPortAdd, "path_cost", port, err)
			}
		}
		if pc.Priority != nil {
			if err := ctl.SetPathPriority(*pc.Priority); err != nil {
				return e.fail(dev, StepPortAdd, "path_priority", port, err)
			}
		}
	}

	// 6. Admin state, strictly last.
	state := AdminUp
	if cfg.Disable {
		state = AdminDown
	}
	if err := dev.SetAdminState(state); err != nil {
		return e.fail(dev, StepAdminState, "", "", err)
	}

	log.Debugf("reconciled (admin %s, %d members)", state, len(cfg.Member.Interface))
	return nil
}

func (e *Engine) fail(dev *Device, step Step, parameter, port string, err error) error {
	rerr := &ReconcileError{
		Bridge:    dev.Name(),
		Step:      step,
		Parameter: parameter,
		Port:      port,
		Err:       err,
	}
	util.WithBridge(dev.Name()).Errorf("%v", rerr)
	return rerr
}
