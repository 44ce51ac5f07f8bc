package whiteout

import (
	"os"
	"path"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/storemask/storemask/errdefs"
	"github.com/storemask/storemask/store"
)

// Counts reports how many mutations an Apply performed. After a failed
// Apply it carries the operations that completed before the failure.
type Counts struct {
	Unmasked int
	Stale    int
	Masked   int
}

// Create writes a masking marker at p: a zero length, zero permission
// entry made with mknod and the null device pair. Its only meaning is
// that the overlay treats the same name in lower layers as absent.
func Create(p string) error {
	if err := unix.Mknod(p, 0, 0); err != nil {
		return errors.Wrapf(errdefs.ErrIo, "failed to create marker %s: %v", p, err)
	}
	return nil
}

// Remove deletes the marker at p.
func Remove(p string) error {
	if err := os.Remove(p); err != nil {
		return errors.Wrapf(errdefs.ErrIo, "failed to remove marker %s: %v", p, err)
	}
	return nil
}

// IsMarker reports whether info describes a masking marker. Markers made
// here are empty permissionless regular files; 0:0 character devices
// written by other overlay tooling count as well.
func IsMarker(info os.FileInfo) bool {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		if st.Rdev == 0 && (st.Mode&syscall.S_IFMT) == syscall.S_IFCHR {
			return true
		}
	}
	return info.Mode().IsRegular() && info.Size() == 0 && info.Mode().Perm() == 0
}

// Apply executes plan against the masking directory dir. All removals
// run before any creation so a name scheduled for both directions never
// collides with its own marker. On failure the counts completed so far
// are returned together with the error.
func Apply(dir string, plan store.Plan) (Counts, error) {
	var counts Counts
	for id := range plan.Unmask {
		if err := Remove(path.Join(dir, id)); err != nil {
			return counts, err
		}
		counts.Unmasked++
	}
	for id := range plan.Stale {
		if err := Remove(path.Join(dir, id)); err != nil {
			return counts, err
		}
		counts.Stale++
	}
	for id := range plan.Mask {
		if err := Create(path.Join(dir, id)); err != nil {
			return counts, err
		}
		counts.Masked++
	}
	return counts, nil
}
