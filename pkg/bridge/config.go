package bridge

import "sort"

// Config is the desired state for one bridge, treated as immutable input to a
// reconciliation pass.
//
// The numeric parameters are pointers: nil means "not configured, do not
// touch". The flag fields (STP, IGMP.Querier, Disable) are plain bools:
// absence in the source document decodes to false, and false is a positive
// "disabled" instruction applied on every pass, not a skip. The asymmetry is
// deliberate and matches the configuration schema.
type Config struct {
	AgeingTime   *int         `yaml:"aging,omitempty" json:"aging,omitempty"`
	ForwardDelay *int         `yaml:"forwarding_delay,omitempty" json:"forwarding_delay,omitempty"`
	HelloTime    *int         `yaml:"hello_time,omitempty" json:"hello_time,omitempty"`
	MaxAge       *int         `yaml:"max_age,omitempty" json:"max_age,omitempty"`
	Priority     *int         `yaml:"priority,omitempty" json:"priority,omitempty"`
	STP          bool         `yaml:"stp,omitempty" json:"stp,omitempty"`
	IGMP         IGMPConfig   `yaml:"igmp,omitempty" json:"igmp,omitempty"`
	Member       MemberConfig `yaml:"member,omitempty" json:"member,omitempty"`
	Disable      bool         `yaml:"disable,omitempty" json:"disable,omitempty"`
}

// IGMPConfig holds multicast snooping settings.
type IGMPConfig struct {
	Querier bool `yaml:"querier,omitempty" json:"querier,omitempty"`
}

// MemberConfig describes the desired port membership.
type MemberConfig struct {
	// Interface maps member port name to its per-port settings.
	Interface map[string]PortConfig `yaml:"interface,omitempty" json:"interface,omitempty"`
	// InterfaceRemove lists ports to detach before additions are processed.
	InterfaceRemove []string `yaml:"interface_remove,omitempty" json:"interface_remove,omitempty"`
}

// PortConfig holds per-port spanning tree inputs. Nil means "not configured".
type PortConfig struct {
	Cost     *int `yaml:"cost,omitempty" json:"cost,omitempty"`
	Priority *int `yaml:"priority,omitempty" json:"priority,omitempty"`
}

// memberNames returns the joining port names in stable order.
func (m MemberConfig) memberNames() []string {
	names := make([]string, 0, len(m.Interface))
	for name := range m.Interface {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
