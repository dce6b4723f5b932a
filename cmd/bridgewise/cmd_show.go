package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bridgewise-net/bridgewise/pkg/bridge"
	"github.com/bridgewise-net/bridgewise/pkg/cli"
	"github.com/bridgewise-net/bridgewise/pkg/sysfs"
	"github.com/bridgewise-net/bridgewise/pkg/util"
)

var showCmd = &cobra.Command{
	Use:   "show <bridge>",
	Short: "Show live parameter values and members of a bridge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		store := sysfs.New()

		fmt.Println(cli.Bold(name))
		for _, p := range bridge.BridgeParams() {
			value, err := store.Read(p.Location(), bridge.Vars{Ifname: name})
			if err != nil {
				if errors.Is(err, util.ErrNotFound) {
					value = cli.Dim("-")
				} else {
					return err
				}
			}
			fmt.Printf("  %s %s\n", cli.DotPad(p.Name(), 24), value)
		}

		ports, err := store.Ports(name)
		if err != nil {
			if errors.Is(err, util.ErrNotFound) {
				return fmt.Errorf("bridge %s does not exist", name)
			}
			return err
		}
		if len(ports) == 0 {
			fmt.Printf("  %s %s\n", cli.DotPad("members", 24), cli.Dim("none"))
		} else {
			fmt.Printf("  %s %s\n", cli.DotPad("members", 24), strings.Join(ports, ", "))
		}
		return nil
	},
}
