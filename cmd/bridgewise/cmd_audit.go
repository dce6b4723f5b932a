package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bridgewise-net/bridgewise/pkg/audit"
	"github.com/bridgewise-net/bridgewise/pkg/cli"
)

var (
	auditBridge string
	auditLimit  int
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query the reconciliation audit log",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := audit.NewFileLogger(userSettings.GetAuditLog(), audit.RotationConfig{})
		if err != nil {
			return err
		}
		defer logger.Close()

		events, err := logger.Query(audit.Filter{
			Bridge: auditBridge,
			Limit:  auditLimit,
		})
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No audit events.")
			return nil
		}

		for _, e := range events {
			status := cli.Green("ok")
			if !e.Success {
				status = cli.Red("failed: " + e.Error)
			}
			mode := ""
			if e.DryRun {
				mode = cli.Dim(" [dry-run]")
			}
			fmt.Printf("%s  %-12s %-8s %s%s\n",
				e.Timestamp.Format("2006-01-02 15:04:05"),
				e.Bridge, e.Operation, status, mode)
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().StringVar(&auditBridge, "bridge", "", "Filter by bridge name")
	auditCmd.Flags().IntVar(&auditLimit, "limit", 20, "Show at most N most recent events")
}
