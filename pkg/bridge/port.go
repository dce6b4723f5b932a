package bridge

// PortController is a per-member-port view of a bridge. Its setters write the
// spanning tree inputs (path cost, path priority) for one port; the values
// are consumed by the kernel STP machinery while spanning tree is enabled on
// the parent bridge.
type PortController struct {
	dev  *Device
	port string
}

// Port returns a controller for the named member port.
func (d *Device) Port(port string) *PortController {
	return &PortController{dev: d, port: port}
}

// Name returns the member port name.
func (c *PortController) Name() string {
	return c.port
}

// SetPathCost sets the STP path cost for this port.
func (c *PortController) SetPathCost(cost int) error {
	return c.dev.setParam(ParamPathCost, Vars{Ifname: c.dev.name, Port: c.port}, cost)
}

// SetPathPriority sets the STP path priority for this port.
func (c *PortController) SetPathPriority(priority int) error {
	return c.dev.setParam(ParamPathPriority, Vars{Ifname: c.dev.name, Port: c.port}, priority)
}
