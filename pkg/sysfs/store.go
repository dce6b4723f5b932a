// Package sysfs implements the bridge.PropertyStore contract over the kernel
// sysfs tree (/sys/class/net/<bridge>/bridge/...).
package sysfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bridgewise-net/bridgewise/pkg/bridge"
	"github.com/bridgewise-net/bridgewise/pkg/util"
)

// Store reads and writes bridge parameters through sysfs. The root is "/" in
// production; tests point it at a scratch directory.
type Store struct {
	root string
}

// New returns a store rooted at the real filesystem.
func New() *Store {
	return &Store{root: "/"}
}

// NewWithRoot returns a store rooted at root.
func NewWithRoot(root string) *Store {
	return &Store{root: root}
}

func (s *Store) path(template string, vars bridge.Vars) (string, error) {
	resolved, err := bridge.ResolveTemplate(template, vars)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, resolved), nil
}

// Write resolves the location template and writes value to it. Failures
// (device absent, permission denied, value rejected by the kernel) surface
// as *util.WriteError.
func (s *Store) Write(template string, vars bridge.Vars, value string) error {
	path, err := s.path(template, vars)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(value), 0644); err != nil {
		return util.NewWriteError(path, err)
	}
	return nil
}

// Read resolves the location template and returns its trimmed contents.
func (s *Store) Read(template string, vars bridge.Vars) (string, error) {
	path, err := s.path(template, vars)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", path, util.ErrNotFound)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Ports lists the member ports currently attached to the named bridge, from
// the kernel's brif directory.
func (s *Store) Ports(bridgeName string) ([]string, error) {
	dir := filepath.Join(s.root, "sys", "class", "net", bridgeName, "brif")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("bridge %s: %w", bridgeName, util.ErrNotFound)
		}
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	ports := make([]string, 0, len(entries))
	for _, e := range entries {
		ports = append(ports, e.Name())
	}
	return ports, nil
}
