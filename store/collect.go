package store

import (
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/storemask/storemask/errdefs"
	"github.com/storemask/storemask/system"
)

// List returns the set of entry names directly under dir. The listing is
// a snapshot, concurrent mutation by other processes is tolerated and
// resolved by the next run.
func List(dir string) (PathSet, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, errors.Wrapf(errdefs.ErrIo, "failed to open directory %s: %v", dir, err)
	}
	defer f.Close()
	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, errors.Wrapf(errdefs.ErrIo, "failed to list directory %s: %v", dir, err)
	}
	set := make(PathSet, len(names))
	for _, name := range names {
		set.Add(name)
	}
	return set, nil
}

// Closure expands roots into the set of store paths they transitively
// require. Every path the resolver reports must live under storeDir; its
// identifier is the remainder after the store prefix. No roots means an
// empty closure, the resolver is not consulted.
func Closure(sys system.System, storeDir string, roots []string) (PathSet, error) {
	if len(roots) == 0 {
		return PathSet{}, nil
	}
	out, err := sys.QueryClosure(roots)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimSuffix(storeDir, "/") + "/"
	set := PathSet{}
	for _, line := range strings.Split(string(out), "\n") {
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, prefix) {
			return nil, errors.Wrapf(errdefs.ErrResolution, "resolver returned %q which is not under %s", line, storeDir)
		}
		set.Add(strings.TrimPrefix(line, prefix))
	}
	return set, nil
}
