// Package bridge implements lifecycle and live-configuration management for
// Linux software bridge devices. The core is a reconciliation engine: given a
// desired configuration and a live bridge, it applies the parameter writes,
// port attach/detach commands and the final admin-state transition needed to
// converge the device, in an order the kernel device model requires.
//
// The package owns no I/O of its own. Kernel access goes through three small
// collaborator contracts: PropertyStore (per-device sysfs parameters),
// CommandExecutor (privileged ip(8) commands) and AddrFlusher (clearing
// addresses from a port before it can join a bridge). Production
// implementations live in pkg/sysfs, pkg/iplink and pkg/remote; Recorder in
// this package implements all three for dry-run previews and tests.
package bridge

import (
	"fmt"
	"strings"
)

// Vars holds the identifiers substituted into location and command templates.
type Vars struct {
	Ifname string // bridge device name, e.g. "br0"
	Port   string // member port name, e.g. "eth0"; port-scoped templates only
}

// PropertyStore reads and writes named kernel-exposed device parameters.
// Implementations resolve the location template with the given vars into a
// concrete storage address. Write failures surface as *util.WriteError.
type PropertyStore interface {
	Write(template string, vars Vars, value string) error
	Read(template string, vars Vars) (string, error)
}

// CommandExecutor runs privileged device-management commands (port attach,
// port detach, admin-state change). A non-zero exit or execution failure
// surfaces as *util.CommandError.
type CommandExecutor interface {
	Run(template string, vars Vars) (string, error)
}

// AddrFlusher removes all network addresses assigned to an interface.
// A port must be address-less before it can be enslaved to a bridge.
type AddrFlusher interface {
	FlushAddrs(port string) error
}

// ResolveTemplate substitutes {ifname} and {port} placeholders in a location
// or command template. Every placeholder present in the template must have a
// non-empty value in vars.
func ResolveTemplate(template string, vars Vars) (string, error) {
	if strings.Contains(template, "{ifname}") && vars.Ifname == "" {
		return "", fmt.Errorf("template %q requires a bridge name", template)
	}
	if strings.Contains(template, "{port}") && vars.Port == "" {
		return "", fmt.Errorf("template %q requires a port name", template)
	}
	resolved := strings.NewReplacer("{ifname}", vars.Ifname, "{port}", vars.Port).Replace(template)
	if strings.Contains(resolved, "{") {
		return "", fmt.Errorf("template %q has unknown placeholders", template)
	}
	return resolved, nil
}
