package storemask

const (
	// DefaultRoot is the directory that holds the state of every view,
	// one subdirectory per view name.
	DefaultRoot = "/var/lib/container-stores"

	// DefaultStore is the package store the views filter.
	DefaultStore = "/nix/store"

	// DefaultConfigPath is consulted when no config file is given on the
	// command line.
	DefaultConfigPath = "/etc/storemask/config.yml"
)
