package overlay

import (
	"bytes"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"

	"github.com/storemask/storemask/errdefs"
	"github.com/storemask/storemask/system"
)

const (
	// maskDirName is "upper" on disk so views written by earlier
	// releases keep working; the layer is mounted as a lowerdir.
	maskDirName   = "upper"
	mergedDirName = "merged"
	workDirName   = "work"

	lowerPrefix = "lowerdir="
)

// View is one named overlay instance: the masking layer, the merged
// mount point and the scratch directory.
type View struct {
	Name      string
	Dir       string
	MaskDir   string
	MergedDir string
	WorkDir   string
}

// NewView derives the directory layout of the view called name under root.
func NewView(root, name string) View {
	dir := path.Join(root, name)
	return View{
		Name:      name,
		Dir:       dir,
		MaskDir:   path.Join(dir, maskDirName),
		MergedDir: path.Join(dir, mergedDirName),
		WorkDir:   path.Join(dir, workDirName),
	}
}

// EnsureDirs creates the view's directories if they are missing and
// reopens the masking directory for the coming reconciliation. MkdirAll
// leaves the mode of an existing directory alone, so the restriction a
// previous run applied has to be lifted here explicitly.
func (v View) EnsureDirs() error {
	for _, dir := range []string{v.MergedDir, v.MaskDir, v.WorkDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(errdefs.ErrIo, "failed to create %s: %v", dir, err)
		}
	}
	if err := os.Chmod(v.MaskDir, 0755); err != nil {
		return errors.Wrapf(errdefs.ErrIo, "failed to open up %s: %v", v.MaskDir, err)
	}
	return nil
}

// RestrictMaskDir drops the masking directory to execute only bits.
// Name lookups by the overlay driver keep working while the marker
// names cannot be enumerated by arbitrary store users.
func (v View) RestrictMaskDir() error {
	if err := os.Chmod(v.MaskDir, 0111); err != nil {
		return errors.Wrapf(errdefs.ErrIo, "failed to restrict %s: %v", v.MaskDir, err)
	}
	return nil
}

// Mounted reports whether the merged directory is an active mount.
func (v View) Mounted(sys system.System) (bool, error) {
	table, err := sys.MountTable()
	if err != nil {
		return false, err
	}
	return bytes.Contains(table, []byte(v.MergedDir)), nil
}

// Unmount detaches the merged mount.
func (v View) Unmount(sys system.System) error {
	return sys.Unmount(v.MergedDir)
}

// Mount assembles the merged view: the masking layer stacked above the
// store. Both layers are lower layers, so the result is read only.
func (v View) Mount(sys system.System, storeDir string) error {
	options := lowerPrefix + strings.Join([]string{v.MaskDir, storeDir}, ":")
	return sys.MountOverlay(options, v.MergedDir)
}
