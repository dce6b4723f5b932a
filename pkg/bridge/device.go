package bridge

import (
	"strconv"

	"github.com/bridgewise-net/bridgewise/pkg/util"
)

// AdminState is a requested administrative state transition.
type AdminState int

const (
	AdminUp AdminState = iota
	AdminDown
)

func (s AdminState) String() string {
	if s == AdminDown {
		return "down"
	}
	return "up"
}

// Device represents one bridge device. It is the sole writer of the bridge's
// kernel parameters, port membership and admin state. A Device is not safe
// for concurrent use; callers serialize reconciliation per device.
type Device struct {
	name  string
	store PropertyStore
	exec  CommandExecutor

	// downHolds counts outstanding "hold the device down" requests. Several
	// independent configuration phases may each need the device down while
	// they apply settings that are illegal on a live device; the kernel is
	// told "up" only after every hold is released, so the link does not flap
	// mid-reconfiguration.
	downHolds int
}

// NewDevice binds a Device to the named bridge. The kernel object is expected
// to exist (or be created by the caller); this does not probe it.
func NewDevice(name string, store PropertyStore, exec CommandExecutor) *Device {
	return &Device{
		name:  name,
		store: store,
		exec:  exec,
	}
}

// Name returns the bridge device name.
func (d *Device) Name() string {
	return d.name
}

// DownHolds returns the current number of outstanding down requests.
func (d *Device) DownHolds() int {
	return d.downHolds
}

// setParam validates, converts and writes one parameter value.
func (d *Device) setParam(p Param, vars Vars, value int) error {
	spec, err := resolveParam(p)
	if err != nil {
		return err
	}
	if err := spec.validate(value); err != nil {
		return util.NewInvalidParameterError(spec.name, strconv.Itoa(value), err.Error())
	}
	stored := value
	if spec.convert != nil {
		stored = spec.convert(value)
	}
	return d.store.Write(spec.location, vars, strconv.Itoa(stored))
}

func (d *Device) setBridgeParam(p Param, value int) error {
	return d.setParam(p, Vars{Ifname: d.name}, value)
}

func boolValue(enabled bool) int {
	if enabled {
		return 1
	}
	return 0
}

// SetAgeingTime sets the MAC address ageing time in seconds. The kernel
// stores centiseconds; default is 300 seconds.
func (d *Device) SetAgeingTime(seconds int) error {
	return d.setBridgeParam(ParamAgeingTime, seconds)
}

// SetForwardDelay sets the forwarding delay in seconds.
func (d *Device) SetForwardDelay(seconds int) error {
	return d.setBridgeParam(ParamForwardDelay, seconds)
}

// SetHelloTime sets the spanning tree hello time in seconds.
func (d *Device) SetHelloTime(seconds int) error {
	return d.setBridgeParam(ParamHelloTime, seconds)
}

// SetMaxAge sets the maximum message age in seconds.
func (d *Device) SetMaxAge(seconds int) error {
	return d.setBridgeParam(ParamMaxAge, seconds)
}

// SetPriority sets the bridge priority used in root bridge election.
func (d *Device) SetPriority(priority int) error {
	return d.setBridgeParam(ParamPriority, priority)
}

// SetSTP enables or disables the spanning tree protocol on the bridge.
func (d *Device) SetSTP(enabled bool) error {
	return d.setBridgeParam(ParamSTP, boolValue(enabled))
}

// SetMulticastQuerier sets whether the bridge actively runs an IGMP querier.
func (d *Device) SetMulticastQuerier(enabled bool) error {
	return d.setBridgeParam(ParamMulticastQuerier, boolValue(enabled))
}

func (d *Device) runCommand(c Command, vars Vars) error {
	_, err := d.exec.Run(c.Template(), vars)
	return err
}

// AddPort enslaves an interface to the bridge as a member port. Attaching an
// already-attached port is a no-op at the kernel level.
func (d *Device) AddPort(port string) error {
	if err := d.runCommand(CmdAddPort, Vars{Ifname: d.name, Port: port}); err != nil {
		return err
	}
	util.WithPort(d.name, port).Debug("port attached")
	return nil
}

// DelPort removes a member port from the bridge. Detaching a port that is not
// attached is already satisfied, so command failures are logged and ignored.
func (d *Device) DelPort(port string) error {
	if err := d.runCommand(CmdDelPort, Vars{Ifname: d.name, Port: port}); err != nil {
		util.WithPort(d.name, port).Debugf("detach skipped: %v", err)
		return nil
	}
	util.WithPort(d.name, port).Debug("port detached")
	return nil
}

// SetAdminState requests an administrative state transition. Down requests
// are reference-counted: each AdminDown takes a hold (the kernel is brought
// down only on the first), each AdminUp releases one (never below zero), and
// the kernel is brought up only once no holds remain.
func (d *Device) SetAdminState(state AdminState) error {
	switch state {
	case AdminDown:
		d.downHolds++
		if d.downHolds > 1 {
			return nil // already held down by an earlier phase
		}
		return d.runCommand(CmdAdminDown, Vars{Ifname: d.name})
	default:
		if d.downHolds > 0 {
			d.downHolds--
		}
		if d.downHolds > 0 {
			return nil // another phase still needs the device down
		}
		return d.runCommand(CmdAdminUp, Vars{Ifname: d.name})
	}
}
