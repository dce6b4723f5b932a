package bridge

import (
	"fmt"

	"github.com/bridgewise-net/bridgewise/pkg/util"
)

// Param enumerates the writable bridge parameters. The set is closed: every
// writable parameter has exactly one descriptor in paramSpecs.
type Param int

const (
	ParamAgeingTime Param = iota
	ParamForwardDelay
	ParamHelloTime
	ParamMaxAge
	ParamPriority
	ParamSTP
	ParamMulticastQuerier

	// Port-scoped spanning tree inputs, keyed by bridge and member port.
	ParamPathCost
	ParamPathPriority
)

// paramSpec describes one writable parameter: how to validate raw input, how
// to convert it to the stored unit (nil means identity) and where to write it.
// Validators run before converters; a value that fails validation never
// reaches the store.
type paramSpec struct {
	name     string
	validate func(int) error
	convert  func(int) int
	location string
}

// secondsToCentiseconds converts the user-facing unit of the bridge timing
// parameters to the kernel's internal representation.
func secondsToCentiseconds(v int) int { return v * 100 }

func validatePositive(v int) error {
	if v <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func validateBool(v int) error {
	if v != 0 && v != 1 {
		return fmt.Errorf("must be 0 or 1")
	}
	return nil
}

var paramSpecs = map[Param]paramSpec{
	ParamAgeingTime: {
		name:     "ageing_time",
		validate: validatePositive,
		convert:  secondsToCentiseconds,
		location: "/sys/class/net/{ifname}/bridge/ageing_time",
	},
	ParamForwardDelay: {
		name:     "forward_delay",
		validate: validatePositive,
		convert:  secondsToCentiseconds,
		location: "/sys/class/net/{ifname}/bridge/forward_delay",
	},
	ParamHelloTime: {
		name:     "hello_time",
		validate: validatePositive,
		convert:  secondsToCentiseconds,
		location: "/sys/class/net/{ifname}/bridge/hello_time",
	},
	ParamMaxAge: {
		name:     "max_age",
		validate: validatePositive,
		convert:  secondsToCentiseconds,
		location: "/sys/class/net/{ifname}/bridge/max_age",
	},
	ParamPriority: {
		name:     "priority",
		validate: validatePositive,
		location: "/sys/class/net/{ifname}/bridge/priority",
	},
	ParamSTP: {
		name:     "stp",
		validate: validateBool,
		location: "/sys/class/net/{ifname}/bridge/stp_state",
	},
	ParamMulticastQuerier: {
		name:     "multicast_querier",
		validate: validateBool,
		location: "/sys/class/net/{ifname}/bridge/multicast_querier",
	},
	ParamPathCost: {
		name:     "path_cost",
		validate: validatePositive,
		location: "/sys/class/net/{ifname}/brif/{port}/path_cost",
	},
	ParamPathPriority: {
		name:     "path_priority",
		validate: validatePositive,
		location: "/sys/class/net/{ifname}/brif/{port}/priority",
	},
}

// resolveParam returns the descriptor for p.
func resolveParam(p Param) (paramSpec, error) {
	spec, ok := paramSpecs[p]
	if !ok {
		return paramSpec{}, fmt.Errorf("parameter %d: %w", int(p), util.ErrUnknownParameter)
	}
	return spec, nil
}

// Name returns the logical parameter name, e.g. "ageing_time".
func (p Param) Name() string {
	if spec, ok := paramSpecs[p]; ok {
		return spec.name
	}
	return fmt.Sprintf("param(%d)", int(p))
}

// Location returns the parameter's storage location template.
func (p Param) Location() string {
	return paramSpecs[p].location
}

// BridgeParams lists the bridge-scoped parameters in display order.
func BridgeParams() []Param {
	return []Param{
		ParamAgeingTime, ParamForwardDelay, ParamHelloTime,
		ParamMaxAge, ParamPriority, ParamSTP, ParamMulticastQuerier,
	}
}

// Command enumerates the device-management commands. add_port and del_port
// are command invocations, not property writes: enslaving an interface goes
// through ip(8), not sysfs.
type Command int

const (
	CmdAddPort Command = iota
	CmdDelPort
	CmdAdminUp
	CmdAdminDown
)

var commandSpecs = map[Command]string{
	CmdAddPort:   "ip link set dev {port} master {ifname}",
	CmdDelPort:   "ip link set dev {port} nomaster",
	CmdAdminUp:   "ip link set dev {ifname} up",
	CmdAdminDown: "ip link set dev {ifname} down",
}

// Template returns the command template for c.
func (c Command) Template() string {
	return commandSpecs[c]
}
