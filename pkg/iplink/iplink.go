// Package iplink implements the bridge.CommandExecutor and bridge.AddrFlusher
// contracts by running ip(8).
package iplink

import (
	"os/exec"
	"strings"

	"github.com/bridgewise-net/bridgewise/pkg/bridge"
	"github.com/bridgewise-net/bridgewise/pkg/util"
)

// Runner executes a command and returns its combined output. Injectable so
// tests can observe the argv without shelling out.
type Runner func(name string, args ...string) (string, error)

func execRunner(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	return string(out), err
}

// Exec runs device-management commands through ip(8). It needs CAP_NET_ADMIN
// (or root) to actually change link state.
type Exec struct {
	run Runner
}

// New returns an executor backed by os/exec.
func New() *Exec {
	return &Exec{run: execRunner}
}

// NewWithRunner returns an executor using a custom runner.
func NewWithRunner(r Runner) *Exec {
	return &Exec{run: r}
}

// Run resolves the command template and executes it. Non-zero exit or
// execution failure surfaces as *util.CommandError with the command output.
func (e *Exec) Run(template string, vars bridge.Vars) (string, error) {
	command, err := bridge.ResolveTemplate(template, vars)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(command)
	out, err := e.run(fields[0], fields[1:]...)
	if err != nil {
		return out, util.NewCommandError(command, out, err)
	}
	return out, nil
}

// FlushAddrs removes every address assigned to the interface. A port must be
// address-less before it can be enslaved to a bridge.
func (e *Exec) FlushAddrs(port string) error {
	out, err := e.run("ip", "addr", "flush", "dev", port)
	if err != nil {
		return util.NewCommandError("ip addr flush dev "+port, out, err)
	}
	return nil
}
