package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bridgewise-net/bridgewise/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent user settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return err
		}
		fmt.Printf("redis-addr: %s\n", s.GetRedisAddr())
		fmt.Printf("audit-log:  %s\n", s.GetAuditLog())
		fmt.Printf("ssh-user:   %s\n", s.SSHUser)
		if s.SSHPass != "" {
			fmt.Println("ssh-pass:   (set)")
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting (redis-addr, audit-log, ssh-user, ssh-pass)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return err
		}
		switch args[0] {
		case "redis-addr":
			s.RedisAddr = args[1]
		case "audit-log":
			s.AuditLog = args[1]
		case "ssh-user":
			s.SSHUser = args[1]
		case "ssh-pass":
			s.SSHPass = args[1]
		default:
			return fmt.Errorf("unknown setting %q", args[0])
		}
		return s.Save()
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
}
