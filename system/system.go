package system

import (
	"os/exec"

	"github.com/pkg/errors"

	"github.com/storemask/storemask/errdefs"
)

// System runs the external commands the pipeline depends on, one method
// per operation, so tests can substitute an in-memory implementation.
type System interface {
	// MountTable returns the raw output of the mount table query.
	MountTable() ([]byte, error)
	// Unmount detaches the mount at target.
	Unmount(target string) error
	// MountOverlay mounts an overlay assembled from options at target.
	MountOverlay(options string, target string) error
	// QueryClosure resolves roots into the newline separated store
	// paths they transitively require.
	QueryClosure(roots []string) ([]byte, error)
}

// Local implements System with the host's command line tools.
type Local struct{}

var _ System = Local{}

func (Local) MountTable() ([]byte, error) {
	out, err := exec.Command("mount").Output()
	if err != nil {
		return nil, errors.Wrapf(errdefs.ErrMount, "failed to query the mount table: %v", err)
	}
	return out, nil
}

func (Local) Unmount(target string) error {
	if out, err := exec.Command("umount", target).CombinedOutput(); err != nil {
		return errors.Wrapf(errdefs.ErrMount, "failed to unmount %s: %v: %s", target, err, out)
	}
	return nil
}

func (Local) MountOverlay(options string, target string) error {
	cmd := exec.Command("mount", "-t", "overlay", "overlay", "-o", options, target)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(errdefs.ErrMount, "failed to mount overlay on %s: %v: %s", target, err, out)
	}
	return nil
}

func (Local) QueryClosure(roots []string) ([]byte, error) {
	args := append([]string{"--query", "--requisites"}, roots...)
	out, err := exec.Command("nix-store", args...).Output()
	if err != nil {
		return nil, errors.Wrapf(errdefs.ErrResolution, "failed to query the store closure: %v", err)
	}
	return out, nil
}
