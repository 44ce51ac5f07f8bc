// Package view drives whole views: it reconciles the masking layer of a
// named view against the wanted closure and manages the overlay mount
// on top of it.
package view

import (
	"os"
	"path"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/storemask/storemask"
	"github.com/storemask/storemask/errdefs"
	"github.com/storemask/storemask/log"
	"github.com/storemask/storemask/overlay"
	"github.com/storemask/storemask/store"
	"github.com/storemask/storemask/system"
	"github.com/storemask/storemask/whiteout"
)

// Converge brings the view named in cfg in line with the whitelist:
// afterwards every store path outside the closure of cfg.Roots is
// covered by a marker and the merged overlay is mounted on the result.
// A mount left behind by a previous run is detached first so the
// masking layer is never edited under an active overlay.
func Converge(cfg storemask.Config, sys system.System) (whiteout.Counts, error) {
	v := overlay.NewView(cfg.Root, cfg.Name)
	if err := v.EnsureDirs(); err != nil {
		return whiteout.Counts{}, err
	}

	mounted, err := v.Mounted(sys)
	if err != nil {
		return whiteout.Counts{}, err
	}
	if mounted {
		log.Phase("mount").Debugf("unmounting previous view at %s", v.MergedDir)
		if err := v.Unmount(sys); err != nil {
			return whiteout.Counts{}, err
		}
	}

	var (
		g      errgroup.Group
		needed store.PathSet
		masked store.PathSet
	)
	g.Go(joinable(func() error {
		var err error
		needed, err = store.Closure(sys, cfg.Store, cfg.Roots)
		return err
	}))
	g.Go(joinable(func() error {
		var err error
		masked, err = store.List(v.MaskDir)
		return err
	}))
	present, listErr := store.List(cfg.Store)
	if err := g.Wait(); err != nil {
		return whiteout.Counts{}, err
	}
	if listErr != nil {
		return whiteout.Counts{}, listErr
	}

	plan := store.Reconcile(present, needed, masked)
	entry := log.Phase("reconcile")
	entry = log.WithInterface(entry, "unmask", plan.Unmask.Sorted())
	entry = log.WithInterface(entry, "stale", plan.Stale.Sorted())
	entry = log.WithInterface(entry, "mask", plan.Mask.Sorted())
	entry.Debugf("%d store paths, %d in closure, %d already masked", len(present), len(needed), len(masked))

	counts, err := whiteout.Apply(v.MaskDir, plan)
	if err != nil {
		return counts, err
	}
	if err := v.RestrictMaskDir(); err != nil {
		return counts, err
	}
	if err := v.Mount(sys, cfg.Store); err != nil {
		return counts, err
	}
	return counts, nil
}

// joinable turns a panic inside a listing task into a regular error so
// a failed task surfaces through the group instead of crashing the
// reconciliation midway.
func joinable(task func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Wrapf(errdefs.ErrConcurrency, "task panicked: %v", r)
			}
		}()
		return task()
	}
}

// Info describes the observable state of one view.
type Info struct {
	Name    string
	Mounted bool
	Store   int
	Masked  int
	Visible int
	Broken  []string
}

// Status inspects the view named in cfg without changing anything. A
// view whose directories were never created reports the whole store as
// visible. Broken lists masking entries that are not marker shaped and
// would be carried into the merged view by the overlay driver.
func Status(cfg storemask.Config, sys system.System) (Info, error) {
	v := overlay.NewView(cfg.Root, cfg.Name)
	info := Info{Name: cfg.Name}

	mounted, err := v.Mounted(sys)
	if err != nil {
		return Info{}, err
	}
	info.Mounted = mounted

	present, err := store.List(cfg.Store)
	if err != nil {
		return Info{}, err
	}
	info.Store = len(present)

	if _, err := os.Stat(v.MaskDir); err != nil {
		if os.IsNotExist(err) {
			info.Visible = len(present)
			return info, nil
		}
		return Info{}, errors.Wrapf(errdefs.ErrIo, "failed to inspect %s: %v", v.MaskDir, err)
	}

	masked, err := store.List(v.MaskDir)
	if err != nil {
		return Info{}, err
	}
	info.Masked = len(masked)
	for id := range present {
		if !masked.Has(id) {
			info.Visible++
		}
	}
	for _, id := range masked.Sorted() {
		fi, err := os.Lstat(path.Join(v.MaskDir, id))
		if err != nil {
			return Info{}, errors.Wrapf(errdefs.ErrIo, "failed to inspect marker %s: %v", id, err)
		}
		if !whiteout.IsMarker(fi) {
			info.Broken = append(info.Broken, id)
		}
	}
	return info, nil
}

// Teardown detaches the merged mount of the view named in cfg. It
// reports whether an unmount actually happened; the masking layer is
// kept so the next Converge can reuse it.
func Teardown(cfg storemask.Config, sys system.System) (bool, error) {
	v := overlay.NewView(cfg.Root, cfg.Name)
	mounted, err := v.Mounted(sys)
	if err != nil {
		return false, err
	}
	if !mounted {
		return false, nil
	}
	if err := v.Unmount(sys); err != nil {
		return false, err
	}
	return true, nil
}
