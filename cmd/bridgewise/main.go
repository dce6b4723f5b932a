// Bridgewise - Linux Bridge Configuration Tool
//
// A CLI for declarative management of Linux software bridges:
//   - Desired state in YAML, reconciled against the live device
//   - Dry-run by default (preview operations, require -x to execute)
//   - Audit logging of all reconciliation passes
//   - Local (sysfs + ip) or remote (SSH) targets
//
// Examples:
//
//	bridgewise apply -f bridges.yaml                # preview all bridges
//	bridgewise apply -f bridges.yaml br0 -x         # reconcile br0
//	bridgewise show br0                             # live parameter values
//	bridgewise push -f bridges.yaml                 # publish configs to redis
//	bridgewise watch                                # apply on redis changes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bridgewise-net/bridgewise/pkg/audit"
	"github.com/bridgewise-net/bridgewise/pkg/cli"
	"github.com/bridgewise-net/bridgewise/pkg/settings"
	"github.com/bridgewise-net/bridgewise/pkg/util"
	"github.com/bridgewise-net/bridgewise/pkg/version"
)

var (
	// Global option flags
	configFile  string
	executeMode bool
	remoteHost  string
	verbose     bool

	// Global state
	userSettings *settings.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "bridgewise",
	Short:         "Linux Bridge Configuration Tool",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Bridgewise reconciles Linux software bridges against a declarative
desired state: bridge parameters, port membership, spanning tree inputs and
admin state, in the order the kernel device model requires.

Write commands preview operations by default; use -x to execute.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isSettingsOrHelp(cmd) {
			return nil
		}

		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}

		// Quiet by default, verbose on -v
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}

		auditLogger, err := audit.NewFileLogger(userSettings.GetAuditLog(), audit.RotationConfig{
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxBackups: 10,
		})
		if err != nil {
			util.Warnf("Could not initialize audit logging: %v", err)
		} else {
			audit.SetDefaultLogger(auditLogger)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	for _, cmd := range []*cobra.Command{applyCmd, pushCmd} {
		cmd.Flags().StringVarP(&configFile, "file", "f", "", "Desired-configuration YAML file")
		cmd.MarkFlagRequired("file")
	}
	applyCmd.Flags().BoolVarP(&executeMode, "execute", "x", false, "Execute changes (default is dry-run)")
	applyCmd.Flags().StringVar(&remoteHost, "host", "", "Manage bridges on a remote host via SSH")

	rootCmd.AddCommand(applyCmd, showCmd, pushCmd, watchCmd, auditCmd, settingsCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Println("bridgewise dev build (use 'make build' for version info)")
		} else {
			fmt.Printf("bridgewise %s\n", version.Info())
		}
	},
}

// isSettingsOrHelp checks whether cmd (or any ancestor) is a settings, help,
// or version command.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "settings":
			return true
		}
	}
	return false
}

func printDryRunNotice() {
	if !executeMode {
		fmt.Println("\n" + cli.Yellow("DRY-RUN: No changes applied. Use -x to execute."))
	}
}
