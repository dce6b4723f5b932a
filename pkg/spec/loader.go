// Package spec loads and validates desired-configuration documents for
// bridgewise. A document is a YAML file mapping bridge names to their
// desired state:
//
//	bridges:
//	  br0:
//	    forwarding_delay: 15
//	    stp: true
//	    member:
//	      interface:
//	        eth0: {cost: 100}
package spec

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/bridgewise-net/bridgewise/pkg/bridge"
	"github.com/bridgewise-net/bridgewise/pkg/util"
)

// File is a parsed desired-configuration document.
type File struct {
	Bridges map[string]*bridge.Config `yaml:"bridges"`
}

// Load reads and parses a desired-configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return f, nil
}

// Parse parses and validates a desired-configuration document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// validate performs structural checks only. Per-parameter range validation
// belongs to the device setters, where a bad value is rejected before any
// write happens.
func (f *File) validate() error {
	for name, cfg := range f.Bridges {
		if name == "" {
			return fmt.Errorf("bridge with empty name")
		}
		if cfg == nil {
			// An empty section is a valid config: all parameters
			// untouched, flags disabled, no members.
			f.Bridges[name] = &bridge.Config{}
			continue
		}
		for member := range cfg.Member.Interface {
			if member == "" {
				return fmt.Errorf("bridge %s: member interface with empty name", name)
			}
		}
		for _, member := range cfg.Member.InterfaceRemove {
			if member == "" {
				return fmt.Errorf("bridge %s: interface_remove entry with empty name", name)
			}
		}
	}
	return nil
}

// Bridge returns the desired config for one bridge.
func (f *File) Bridge(name string) (*bridge.Config, error) {
	cfg, ok := f.Bridges[name]
	if !ok {
		return nil, fmt.Errorf("bridge %s: %w", name, util.ErrNotFound)
	}
	return cfg, nil
}

// Names returns the configured bridge names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Bridges))
	for name := range f.Bridges {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
