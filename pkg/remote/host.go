// Package remote manages bridges on a remote machine over SSH. A Host
// implements the bridge.PropertyStore, bridge.CommandExecutor and
// bridge.AddrFlusher contracts; parameter writes become shell redirections
// into the remote sysfs tree.
package remote

import (
	"fmt"

	"golang.org/x/crypto/ssh"

	"github.com/bridgewise-net/bridgewise/pkg/bridge"
	"github.com/bridgewise-net/bridgewise/pkg/util"
)

// execer runs one shell command on the remote side and returns combined
// output. Split out so tests can substitute a fake for the SSH client.
type execer interface {
	CombinedOutput(cmd string) (string, error)
	Close() error
}

// Host is a connected remote machine.
type Host struct {
	addr   string
	client execer
}

// sshExecer adapts *ssh.Client to execer with a session per call.
type sshExecer struct {
	client *ssh.Client
}

func (e *sshExecer) CombinedOutput(cmd string) (string, error) {
	session, err := e.client.NewSession()
	if err != nil {
		return "", fmt.Errorf("SSH session: %w", err)
	}
	defer session.Close()

	out, err := session.CombinedOutput(cmd)
	return string(out), err
}

func (e *sshExecer) Close() error {
	return e.client.Close()
}

// Dial connects to host:22 with password auth.
func Dial(host, user, pass string) (*Host, error) {
	config := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.Password(pass),
		},
		// Lab environment; production deployments verify host keys.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	client, err := ssh.Dial("tcp", host+":22", config)
	if err != nil {
		return nil, fmt.Errorf("SSH dial %s: %w", host, err)
	}
	return &Host{addr: host, client: &sshExecer{client: client}}, nil
}

// newHost builds a Host over a custom execer. Test seam.
func newHost(addr string, client execer) *Host {
	return &Host{addr: addr, client: client}
}

// Addr returns the remote address.
func (h *Host) Addr() string {
	return h.addr
}

// Close closes the SSH connection.
func (h *Host) Close() error {
	return h.client.Close()
}

// Write resolves the location template and writes value through a shell
// redirection on the remote host.
func (h *Host) Write(template string, vars bridge.Vars, value string) error {
	location, err := bridge.ResolveTemplate(template, vars)
	if err != nil {
		return err
	}
	cmd := fmt.Sprintf("printf '%s' > %s", value, location)
	if out, err := h.client.CombinedOutput(cmd); err != nil {
		return util.NewWriteError(h.addr+":"+location, fmt.Errorf("%w (output: %s)", err, out))
	}
	return nil
}

// Read returns the trimmed contents of the resolved remote location.
func (h *Host) Read(template string, vars bridge.Vars) (string, error) {
	location, err := bridge.ResolveTemplate(template, vars)
	if err != nil {
		return "", err
	}
	out, err := h.client.CombinedOutput("cat " + location)
	if err != nil {
		return "", fmt.Errorf("reading %s on %s: %w", location, h.addr, err)
	}
	return trimOutput(out), nil
}

// Run resolves and executes a device-management command on the remote host.
func (h *Host) Run(template string, vars bridge.Vars) (string, error) {
	command, err := bridge.ResolveTemplate(template, vars)
	if err != nil {
		return "", err
	}
	out, err := h.client.CombinedOutput(command)
	if err != nil {
		return out, util.NewCommandError(command, out, err)
	}
	return out, nil
}

// FlushAddrs removes every address from the remote interface.
func (h *Host) FlushAddrs(port string) error {
	cmd := "ip addr flush dev " + port
	if out, err := h.client.CombinedOutput(cmd); err != nil {
		return util.NewCommandError(cmd, out, err)
	}
	return nil
}

func trimOutput(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r' || s[len(s)-1] == ' ') {
		s = s[:len(s)-1]
	}
	return s
}
