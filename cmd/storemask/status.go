package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/storemask/storemask/system"
	"github.com/storemask/storemask/view"
)

var statusCommand = cli.Command{
	Name:  "status",
	Usage: "show the state of a view",
	Flags: commonFlags,
	Action: func(c *cli.Context) error {
		cfg, err := resolveConfig(c)
		if err != nil {
			return err
		}
		info, err := view.Status(cfg, system.Local{})
		if err != nil {
			return err
		}
		fmt.Printf("View %s of %s\n", info.Name, cfg.Store)
		fmt.Printf("  mounted: %v\n", info.Mounted)
		fmt.Printf("  store paths: %d\n", info.Store)
		fmt.Printf("  masked: %d\n", info.Masked)
		fmt.Printf("  visible: %d\n", info.Visible)
		if len(info.Broken) > 0 {
			fmt.Printf("  broken markers: %s\n", strings.Join(info.Broken, ", "))
		}
		return nil
	},
}
