package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/storemask/storemask"
	"github.com/storemask/storemask/log"
	"github.com/storemask/storemask/system"
	"github.com/storemask/storemask/view"
)

var commonFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "root",
		Usage: "directory holding the per view state",
		Value: storemask.DefaultRoot,
	},
	cli.StringFlag{
		Name:  "name, n",
		Usage: "name of the view to operate on",
	},
	cli.StringFlag{
		Name:  "store",
		Usage: "package store directory the view is built from",
		Value: storemask.DefaultStore,
	},
	cli.StringFlag{
		Name:  "config",
		Usage: "path to the config file",
	},
}

func main() {
	app := cli.NewApp()
	app.Name = "storemask"
	app.Usage = "storemask exposes a whitelisted slice of a package store as an overlay mount"
	app.Version = "v0.1.0"
	app.ArgsUsage = "[ROOT-PATH...]"
	app.Flags = append(commonFlags, cli.BoolFlag{
		Name:  "debug",
		Usage: "enable debug output in logs",
	})
	app.Commands = []cli.Command{
		statusCommand,
		teardownCommand,
	}

	app.Action = func(c *cli.Context) error {
		cfg, err := resolveConfig(c)
		if err != nil {
			return err
		}
		cfg.Roots = c.Args()
		counts, err := view.Converge(cfg, system.Local{})
		if err != nil {
			return err
		}
		fmt.Printf("Made %d paths available, removed %d outdated and %d unneeded paths\n",
			counts.Unmasked, counts.Stale, counts.Masked)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Raw().Error(err)
		os.Exit(1)
	}
}

// resolveConfig merges the config file with the command line, the
// latter winning. Flags may be given before or after the subcommand.
func resolveConfig(c *cli.Context) (storemask.Config, error) {
	path, explicit := storemask.DefaultConfigPath, false
	if c.IsSet("config") {
		path, explicit = c.String("config"), true
	} else if c.GlobalIsSet("config") {
		path, explicit = c.GlobalString("config"), true
	}
	cfg, err := storemask.LoadConfig(path, explicit)
	if err != nil {
		return storemask.Config{}, err
	}
	if c.IsSet("root") {
		cfg.Root = c.String("root")
	} else if c.GlobalIsSet("root") {
		cfg.Root = c.GlobalString("root")
	}
	if c.IsSet("store") {
		cfg.Store = c.String("store")
	} else if c.GlobalIsSet("store") {
		cfg.Store = c.GlobalString("store")
	}
	if c.IsSet("name") {
		cfg.Name = c.String("name")
	} else if c.GlobalIsSet("name") {
		cfg.Name = c.GlobalString("name")
	}
	cfg.Debug = c.GlobalBool("debug")
	log.SetDebug(cfg.Debug)
	if cfg.Name == "" {
		return storemask.Config{}, errors.New("a view name must be provided")
	}
	return cfg, nil
}
