package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bridgewise-net/bridgewise/pkg/audit"
	"github.com/bridgewise-net/bridgewise/pkg/bridge"
	"github.com/bridgewise-net/bridgewise/pkg/cli"
	"github.com/bridgewise-net/bridgewise/pkg/iplink"
	"github.com/bridgewise-net/bridgewise/pkg/remote"
	"github.com/bridgewise-net/bridgewise/pkg/spec"
	"github.com/bridgewise-net/bridgewise/pkg/sysfs"
)

var applyCmd = &cobra.Command{
	Use:   "apply [bridge...]",
	Short: "Reconcile bridges against a desired-configuration file",
	Long: `Apply reconciles the named bridges (or every bridge in the file)
against their desired configuration. Without -x the pass runs against a
recorder and the planned operations are printed instead of executed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := spec.Load(configFile)
		if err != nil {
			return err
		}

		names := args
		if len(names) == 0 {
			names = file.Names()
		}

		for _, name := range names {
			cfg, err := file.Bridge(name)
			if err != nil {
				return err
			}
			if err := applyBridge(name, cfg); err != nil {
				return err
			}
		}
		printDryRunNotice()
		return nil
	},
}

// applyBridge runs one reconciliation pass, dry-run or live.
func applyBridge(name string, cfg *bridge.Config) error {
	if !executeMode {
		rec := bridge.NewRecorder()
		dev := bridge.NewDevice(name, rec, rec)
		engine := bridge.NewEngine(rec)

		err := engine.Apply(dev, cfg)

		event := audit.NewEvent(name, "apply")
		event.DryRun = true
		for _, op := range rec.Ops {
			event.Ops = append(event.Ops, op.String())
		}
		audit.Log(event.WithResult(err))

		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", cli.Bold(name), cli.Dim(fmt.Sprintf("(%d operations)", len(rec.Ops))))
		for _, op := range rec.Ops {
			fmt.Println("  " + op.String())
		}
		return nil
	}

	store, exec, flusher, closer, err := collaborators()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	dev := bridge.NewDevice(name, store, exec)
	engine := bridge.NewEngine(flusher)

	err = engine.Apply(dev, cfg)
	audit.Log(audit.NewEvent(name, "apply").WithResult(err))
	if err != nil {
		return err
	}
	fmt.Println(cli.Green(name + " reconciled."))
	return nil
}

// collaborators selects local (sysfs + ip) or remote (SSH) implementations
// based on the --host flag.
func collaborators() (bridge.PropertyStore, bridge.CommandExecutor, bridge.AddrFlusher, io.Closer, error) {
	if remoteHost == "" {
		exec := iplink.New()
		return sysfs.New(), exec, exec, nil, nil
	}
	if userSettings.SSHUser == "" {
		return nil, nil, nil, nil, fmt.Errorf("--host requires SSH credentials: bridgewise settings set ssh-user <user>")
	}
	host, err := remote.Dial(remoteHost, userSettings.SSHUser, userSettings.SSHPass)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return host, host, host, host, nil
}
