package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/storemask/storemask/system"
	"github.com/storemask/storemask/view"
)

var teardownCommand = cli.Command{
	Name:  "teardown",
	Usage: "unmount the merged directory of a view",
	Flags: commonFlags,
	Action: func(c *cli.Context) error {
		cfg, err := resolveConfig(c)
		if err != nil {
			return err
		}
		unmounted, err := view.Teardown(cfg, system.Local{})
		if err != nil {
			return err
		}
		if unmounted {
			fmt.Printf("Unmounted view %s\n", cfg.Name)
		} else {
			fmt.Printf("View %s is not mounted\n", cfg.Name)
		}
		return nil
	},
}
