package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bridgewise-net/bridgewise/pkg/bridge"
	"github.com/bridgewise-net/bridgewise/pkg/driver"
	"github.com/bridgewise-net/bridgewise/pkg/iplink"
	"github.com/bridgewise-net/bridgewise/pkg/spec"
	"github.com/bridgewise-net/bridgewise/pkg/sysfs"
	"github.com/bridgewise-net/bridgewise/pkg/util"
)

var watchRedisAddr string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Apply desired configs from redis as they change",
	Long: `Watch subscribes to the desired-config store and reconciles a bridge
whenever its configuration is published (see 'bridgewise push'). Passes run
one at a time; a failed pass is retried on the next notification.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := watchRedisAddr
		if addr == "" {
			addr = userSettings.GetRedisAddr()
		}
		source, err := driver.NewRedisSource(addr)
		if err != nil {
			return err
		}
		defer source.Close()

		exec := iplink.New()
		store := sysfs.New()
		d := driver.New(source, bridge.NewEngine(exec), func(name string) *bridge.Device {
			return bridge.NewDevice(name, store, exec)
		})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		util.Infof("watching %s for desired-config changes", addr)
		if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

var pushCmd = &cobra.Command{
	Use:   "push [bridge...]",
	Short: "Publish desired configs from a file to redis",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := spec.Load(configFile)
		if err != nil {
			return err
		}

		source, err := driver.NewRedisSource(userSettings.GetRedisAddr())
		if err != nil {
			return err
		}
		defer source.Close()

		names := args
		if len(names) == 0 {
			names = file.Names()
		}

		ctx := context.Background()
		for _, name := range names {
			cfg, err := file.Bridge(name)
			if err != nil {
				return err
			}
			if err := source.Publish(ctx, name, cfg); err != nil {
				return err
			}
			fmt.Printf("published %s\n", name)
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchRedisAddr, "redis", "", "Redis address (default from settings)")
}
